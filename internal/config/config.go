package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rentdash/internal/engine"
)

var ErrNoData = errors.New("no data file configured (use --data or RENTDASH_DATA)")

type Config struct {
	Addr          string
	Data          string
	Format        string
	Sheet         string
	Lang          string
	LogLevel      string
	Strict        bool
	Chronological bool
	UnitTypes     []string
}

// flag name -> config key, for the keys whose names differ
var flagKeys = map[string]string{
	"log-level":     "log_level",
	"chronological": "quarters.chronological",
	"unit-type":     "unit_types",
}

// Load resolves configuration from (highest first) flags, RENTDASH_*
// environment variables, the optional config file, and defaults.
func Load(flags *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("lang", "fr")
	v.SetDefault("log_level", "info")
	v.SetDefault("strict", false)
	v.SetDefault("quarters.chronological", false)
	v.SetDefault("unit_types", engine.UnitTypeCategories)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			key := f.Name
			if k, ok := flagKeys[key]; ok {
				key = k
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
	}

	cfg := Config{
		Addr:          v.GetString("addr"),
		Data:          v.GetString("data"),
		Format:        v.GetString("format"),
		Sheet:         v.GetString("sheet"),
		Lang:          strings.ToLower(v.GetString("lang")),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		Strict:        v.GetBool("strict"),
		Chronological: v.GetBool("quarters.chronological"),
		UnitTypes:     stringList(v, "unit_types"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Lang {
	case "en", "fr":
	default:
		return fmt.Errorf("unsupported lang %q (want en or fr)", c.Lang)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// RequireData fails with ErrNoData when no table file is set.
func (c Config) RequireData() error {
	if c.Data == "" {
		return ErrNoData
	}
	return nil
}

// TableOptions turns the table settings into engine options.
func (c Config) TableOptions() []engine.Option {
	return []engine.Option{
		engine.WithStrict(c.Strict),
		engine.WithChronologicalQuarters(c.Chronological),
		engine.WithUnitTypes(c.UnitTypes),
	}
}

func (c Config) LoadOptions() engine.LoadOptions {
	return engine.LoadOptions{Format: c.Format, Sheet: c.Sheet}
}

func ParseLevel(s string) (log.Lvl, error) {
	switch s {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unsupported log level %q", s)
}

// stringList reads key as a list. A plain string value, as set through
// the environment, is split on commas so unit type names keep their spaces.
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
