// Package config holds the keyer's tunables. A configuration starts from
// Default, may be overlaid by a YAML file and then by ELKEY_* environment
// variables, and must pass Validate before a device is built from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/elkey/sim"
	"github.com/sarchlab/elkey/speed"
)

// EnvPrefix is the prefix of the environment variables that override the
// configuration. The rest of the name is the upper-cased YAML key, for
// example ELKEY_DEBOUNCE_MS.
const EnvPrefix = "ELKEY_"

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config configures a keyer. All the durations are in time units of the base
// timer.
type Config struct {
	TimeUnitHz        uint64 `yaml:"time_unit_hz"`
	SpeedScale        uint64 `yaml:"speed_scale"`
	DefaultInterval   uint64 `yaml:"default_interval"`
	MinInterval       uint64 `yaml:"min_interval"`
	ADCLatency        uint64 `yaml:"adc_latency"`
	TickHandlerBudget uint64 `yaml:"tick_handler_budget"`

	PowerDownEnabled    bool   `yaml:"power_down_enabled"`
	DebounceEnabled     bool   `yaml:"debounce_enabled"`
	DebounceMs          uint64 `yaml:"debounce_ms"`
	SpeedControlEnabled bool   `yaml:"speed_control_enabled"`
	DahDurationTicks    uint8  `yaml:"dah_duration_ticks"`

	SidetoneEnabled bool   `yaml:"sidetone_enabled"`
	SidetoneHz      uint64 `yaml:"sidetone_hz"`
}

// Default returns the factory configuration: a 40 kHz base timer, so that a
// reading maps to the same number of milliseconds, and a 30 WPM default
// speed.
func Default() Config {
	return Config{
		TimeUnitHz:        40000,
		SpeedScale:        40,
		DefaultInterval:   1600,
		MinInterval:       960,
		ADCLatency:        213,
		TickHandlerBudget: 4,

		PowerDownEnabled:    true,
		DebounceEnabled:     false,
		DebounceMs:          10,
		SpeedControlEnabled: true,
		DahDurationTicks:    3,

		SidetoneEnabled: true,
		SidetoneHz:      600,
	}
}

// Load reads a YAML file on top of the default configuration. An empty path
// returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// FromEnv overrides the configuration with ELKEY_* variables. Variables from
// the given dotenv files apply only where the process environment does not
// set the same variable.
func FromEnv(cfg Config, files ...string) (Config, error) {
	vars := map[string]string{}

	if len(files) > 0 {
		fileVars, err := godotenv.Read(files...)
		if err != nil {
			return cfg, fmt.Errorf("reading env files: %w", err)
		}

		for k, v := range fileVars {
			vars[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			vars[k] = v
		}
	}

	return cfg, cfg.apply(vars)
}

func (c *Config) apply(vars map[string]string) error {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		key := EnvPrefix + strings.ToUpper(t.Field(i).Tag.Get("yaml"))

		value, ok := vars[key]
		if !ok {
			continue
		}

		if err := setField(v.Field(i), value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

func setField(f reflect.Value, value string) error {
	value = strings.TrimSpace(value)

	switch f.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Uint8, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(n)
	default:
		panic(fmt.Sprintf("unsupported config field kind %s", f.Kind()))
	}

	return nil
}

// Validate checks that the configuration can run. In particular, the tick
// handler, including one analog conversion, must finish before the shortest
// tick interval elapses.
func (c Config) Validate() error {
	switch {
	case c.TimeUnitHz == 0:
		return invalid("time_unit_hz must be > 0")
	case c.SpeedScale == 0:
		return invalid("speed_scale must be > 0")
	case c.MinInterval == 0:
		return invalid("min_interval must be > 0")
	case c.DefaultInterval < c.MinInterval:
		return invalid("default_interval must be >= min_interval")
	case c.DahDurationTicks == 0:
		return invalid("dah_duration_ticks must be >= 1")
	}

	if busy := c.tickBusy(); busy >= c.MinInterval {
		return invalid(fmt.Sprintf(
			"tick handler takes up to %d time units, "+
				"which does not fit in min_interval %d",
			busy, c.MinInterval))
	}

	if c.DebounceEnabled && c.DebounceCycles() == 0 {
		return invalid("debounce_ms must be > 0 when debouncing")
	}

	if c.SidetoneEnabled {
		if c.SidetoneHz == 0 {
			return invalid("sidetone_hz must be > 0")
		}

		if c.SidetoneInterval() == 0 {
			return invalid(fmt.Sprintf(
				"sidetone_hz %d is too high for time_unit_hz %d",
				c.SidetoneHz, c.TimeUnitHz))
		}
	}

	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

func (c Config) tickBusy() uint64 {
	busy := c.TickHandlerBudget
	if c.SpeedControlEnabled {
		busy += c.ADCLatency
	}

	return busy
}

// Freq returns the frequency of the base timer.
func (c Config) Freq() sim.Freq {
	return sim.Freq(c.TimeUnitHz)
}

// DebounceCycles returns the settle delay in time units.
func (c Config) DebounceCycles() sim.VTimeInCycle {
	return sim.VTimeInCycle(c.TimeUnitHz * c.DebounceMs / 1000)
}

// SidetoneInterval returns the half period of the sidetone in time units.
func (c Config) SidetoneInterval() sim.VTimeInCycle {
	if c.SidetoneHz == 0 {
		return 0
	}

	return sim.VTimeInCycle(c.TimeUnitHz / (2 * c.SidetoneHz))
}

// TickBudget returns how long the tick handler may run, excluding the analog
// conversion.
func (c Config) TickBudget() sim.VTimeInCycle {
	return sim.VTimeInCycle(c.TickHandlerBudget)
}

// SpeedSettings returns the settings of the speed controller.
func (c Config) SpeedSettings() speed.Settings {
	return speed.Settings{
		Enabled:         c.SpeedControlEnabled,
		Scale:           sim.VTimeInCycle(c.SpeedScale),
		DefaultInterval: sim.VTimeInCycle(c.DefaultInterval),
		MinInterval:     sim.VTimeInCycle(c.MinInterval),
		Latency:         sim.VTimeInCycle(c.ADCLatency),
	}
}
