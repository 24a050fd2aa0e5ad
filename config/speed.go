package config

import "github.com/pkg/errors"

// Speed names accepted by sim.speed
const (
	SpeedNormal  = "normal"
	SpeedFast    = "fast"
	SpeedFaster  = "faster"
	SpeedFastest = "fastest"
)

// timeScales multiply every scheduled delay
var timeScales = map[string]float64{
	SpeedNormal:  1.0,
	SpeedFast:    0.5,
	SpeedFaster:  0.25,
	SpeedFastest: 0.10,
}

// TimeScale returns the smallest scale among the requested speeds
// Empty names are ignored; none requested is normal speed
func TimeScale(speeds ...string) (float64, error) {
	scale := timeScales[SpeedNormal]
	for _, name := range speeds {
		if name == "" {
			continue
		}
		s, ok := timeScales[name]
		if !ok {
			return 0, errors.Errorf("unknown speed %q", name)
		}
		scale = min(scale, s)
	}
	return scale, nil
}
