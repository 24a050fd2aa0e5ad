// Package config resolves run settings from defaults, an optional config
// file, a dotenv file, REEF_ environment variables and command-line flags,
// in increasing priority.
package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: sim.speed -> REEF_SIM_SPEED
const EnvPrefix = "REEF"

// Config is the resolved run configuration
type Config struct {
	World   WorldConfig
	Sprites SpritesConfig
	Sim     SimConfig
	Log     LogConfig
	Audio   AudioConfig
	History HistoryConfig

	// TimeScale is resolved from sim.speed and the speed flags
	TimeScale float64 `mapstructure:"-"`
}

type WorldConfig struct {
	File     string
	Cols     int
	Rows     int
	Generate bool
	Seed     int64
}

type SpritesConfig struct {
	File string
}

type SimConfig struct {
	Speed        string
	TickInterval time.Duration `mapstructure:"tick_interval"`
	Seed         int64
	Headless     bool
	// Duration bounds a headless run; zero runs until interrupted
	Duration time.Duration
}

type LogConfig struct {
	Enabled    bool
	File       string
	Level      string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
}

type AudioConfig struct {
	Enabled bool
}

type HistoryConfig struct {
	File           string
	CensusInterval time.Duration `mapstructure:"census_interval"`
}

var defaults = map[string]any{
	"world.file":     "world.sav",
	"world.cols":     80,
	"world.rows":     40,
	"world.generate": false,
	"world.seed":     int64(0),

	"sprites.file": "",

	"sim.speed":         SpeedNormal,
	"sim.tick_interval": 100 * time.Millisecond,
	"sim.seed":          int64(0),
	"sim.headless":      false,
	"sim.duration":      time.Duration(0),

	"log.enabled":     false,
	"log.file":        "logs/reef.log",
	"log.level":       "info",
	"log.max_size_mb": 10,
	"log.max_backups": 3,

	"audio.enabled": false,

	"history.file":            "",
	"history.census_interval": 10 * time.Second,
}

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"world":     "world.file",
	"cols":      "world.cols",
	"rows":      "world.rows",
	"generate":  "world.generate",
	"map-seed":  "world.seed",
	"sprites":   "sprites.file",
	"speed":     "sim.speed",
	"tick":      "sim.tick_interval",
	"seed":      "sim.seed",
	"headless":  "sim.headless",
	"duration":  "sim.duration",
	"log":       "log.enabled",
	"log-file":  "log.file",
	"log-level": "log.level",
	"audio":     "audio.enabled",
	"history":   "history.file",
}

// Flags are the command-line switches that steer loading itself
type Flags struct {
	fs *flag.FlagSet

	ConfigFile string
	EnvFile    string

	Fast    bool
	Faster  bool
	Fastest bool
}

// BindFlags registers every reef flag on fs
// Config-key flags only override when given explicitly
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigFile, "config", "", "config file (toml, yaml or json)")
	fs.StringVar(&f.EnvFile, "env", ".env", "dotenv file merged into the environment")
	fs.BoolVar(&f.Fast, "fast", false, "run at 2x speed")
	fs.BoolVar(&f.Faster, "faster", false, "run at 4x speed")
	fs.BoolVar(&f.Fastest, "fastest", false, "run at 10x speed")

	fs.String("world", defaults["world.file"].(string), "world file to load")
	fs.Int("cols", defaults["world.cols"].(int), "world width in tiles")
	fs.Int("rows", defaults["world.rows"].(int), "world height in tiles")
	fs.Bool("generate", false, "generate the world instead of loading it")
	fs.Int64("map-seed", 0, "seed for world generation, 0 picks one")
	fs.String("sprites", "", "sprite list file, empty uses the built-in set")
	fs.String("speed", SpeedNormal, "simulation speed: normal, fast, faster, fastest")
	fs.Duration("tick", defaults["sim.tick_interval"].(time.Duration), "real time between simulation advances")
	fs.Int64("seed", 0, "seed for spawn timing, 0 picks one")
	fs.Bool("headless", false, "run without a terminal UI")
	fs.Duration("duration", 0, "stop a headless run after this long")
	fs.Bool("log", false, "write a log file")
	fs.String("log-file", defaults["log.file"].(string), "log file path")
	fs.String("log-level", defaults["log.level"].(string), "log level")
	fs.Bool("audio", false, "play audio cues")
	fs.String("history", "", "sqlite file recording run history")
	return f
}

// Load resolves the configuration; f may be nil
func Load(f *Flags) (*Config, error) {
	if f == nil {
		f = &Flags{}
	}

	if f.EnvFile != "" {
		if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "load env file %s", f.EnvFile)
		}
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if f.ConfigFile != "" {
		v.SetConfigFile(f.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", f.ConfigFile)
		}
	}

	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) {
			key, ok := flagKeys[fl.Name]
			if !ok {
				return
			}
			if getter, ok := fl.Value.(flag.Getter); ok {
				v.Set(key, getter.Get())
			}
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	speeds := []string{cfg.Sim.Speed}
	if f.Fast {
		speeds = append(speeds, SpeedFast)
	}
	if f.Faster {
		speeds = append(speeds, SpeedFaster)
	}
	if f.Fastest {
		speeds = append(speeds, SpeedFastest)
	}
	scale, err := TimeScale(speeds...)
	if err != nil {
		return nil, err
	}
	cfg.TimeScale = scale

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	if c.World.Cols <= 0 || c.World.Rows <= 0 {
		return errors.Errorf("world size %dx%d must be positive", c.World.Cols, c.World.Rows)
	}
	if c.Sim.TickInterval <= 0 {
		return errors.Errorf("tick interval %v must be positive", c.Sim.TickInterval)
	}
	if c.History.CensusInterval < 0 {
		return errors.Errorf("census interval %v is negative", c.History.CensusInterval)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}
