package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTimeScale(t *testing.T) {
	tests := []struct {
		name    string
		speeds  []string
		want    float64
		wantErr bool
	}{
		{"none", nil, 1.0, false},
		{"normal", []string{"normal"}, 1.0, false},
		{"fast", []string{"fast"}, 0.5, false},
		{"faster", []string{"faster"}, 0.25, false},
		{"fastest", []string{"fastest"}, 0.10, false},
		{"minimum wins", []string{"fast", "fastest", "faster"}, 0.10, false},
		{"empty ignored", []string{"", "fast"}, 0.5, false},
		{"unknown", []string{"ludicrous"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeScale(tt.speeds...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TimeScale(%v) error = %v, wantErr %v", tt.speeds, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TimeScale(%v) = %v, want %v", tt.speeds, got, tt.want)
			}
		})
	}
}

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("reef", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return f
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(parse(t, "-env", ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Cols != 80 || cfg.World.Rows != 40 {
		t.Errorf("world = %dx%d, want 80x40", cfg.World.Cols, cfg.World.Rows)
	}
	if cfg.Sim.TickInterval != 100*time.Millisecond {
		t.Errorf("tick = %v, want 100ms", cfg.Sim.TickInterval)
	}
	if cfg.TimeScale != 1.0 {
		t.Errorf("TimeScale = %v, want 1", cfg.TimeScale)
	}
	if cfg.Log.Enabled || cfg.Audio.Enabled {
		t.Error("logging or audio enabled by default")
	}
	if cfg.History.CensusInterval != 10*time.Second {
		t.Errorf("census interval = %v, want 10s", cfg.History.CensusInterval)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "reef.toml")
	toml := `
[world]
cols = 30
rows = 20
file = "from-file.sav"

[sim]
speed = "fast"
tick_interval = "50ms"
`
	if err := os.WriteFile(file, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REEF_WORLD_ROWS", "25")
	t.Setenv("REEF_WORLD_FILE", "from-env.sav")

	cfg, err := Load(parse(t, "-env", "", "-config", file, "-world", "from-flag.sav", "-faster"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"cols from file", cfg.World.Cols, 30},
		{"rows from env", cfg.World.Rows, 25},
		{"file from flag", cfg.World.File, "from-flag.sav"},
		{"tick from file", cfg.Sim.TickInterval, 50 * time.Millisecond},
		{"faster flag beats fast", cfg.TimeScale, 0.25},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envFile, []byte("REEF_AUDIO_ENABLED=true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("REEF_AUDIO_ENABLED") })

	cfg, err := Load(parse(t, "-env", envFile))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Audio.Enabled {
		t.Error("audio.enabled from the env file was not applied")
	}
}

func TestLoadMissingEnvFileIgnored(t *testing.T) {
	if _, err := Load(parse(t, "-env", filepath.Join(t.TempDir(), "absent.env"))); err != nil {
		t.Errorf("Load with a missing env file: %v", err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero cols", []string{"-cols", "0"}},
		{"bad speed", []string{"-speed", "warp"}},
		{"bad level", []string{"-log-level", "chatty"}},
		{"missing config", []string{"-config", "/nonexistent/reef.toml"}},
		{"zero tick", []string{"-tick", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-env", ""}, tt.args...)
			if _, err := Load(parse(t, args...)); err == nil {
				t.Errorf("Load(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestLoadNilFlags(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load(nil): %v", err)
	}
	if cfg.World.File != "world.sav" {
		t.Errorf("world file = %q, want world.sav", cfg.World.File)
	}
}
