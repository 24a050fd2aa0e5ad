package engine

import "time"

// PausableClock converts wall-clock time into simulation time that stops while paused
// Elapsed is the value fed to Scheduler.AdvanceTo; it never decreases
type PausableClock struct {
	provider TimeProvider

	startTime       time.Time     // When the clock was created
	paused          bool          // Current pause state
	pauseStartTime  time.Time     // When the current pause started
	totalPausedTime time.Duration // Cumulative completed pause duration
}

// NewPausableClock creates a running clock starting at provider.Now()
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &PausableClock{
		provider:  provider,
		startTime: provider.Now(),
	}
}

// Elapsed returns simulation time since the clock started, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	now := pc.provider.Now()
	if pc.paused {
		// Frozen at the pause point
		now = pc.pauseStartTime
	}
	return now.Sub(pc.startTime) - pc.totalPausedTime
}

// RealTime returns actual wall clock time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.provider.Now()
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.paused {
		pc.Resume()
	} else {
		pc.Pause()
	}
	return pc.paused
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	total := pc.totalPausedTime
	if pc.paused {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
