package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up in the workspace dir and the
	// user config dir. The extension selects the viper decoder.
	FileName  = "restack.yaml"
	envPrefix = "RESTACK"
)

// Config is the resolved set of runtime settings.
type Config struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
	Pretty bool   `mapstructure:"pretty"`
	Log    Log    `mapstructure:"log"`
	Drag   Drag   `mapstructure:"drag"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Drag struct {
	ActivationDelay  time.Duration `mapstructure:"activationDelay"`
	SuppressAdjacent bool          `mapstructure:"suppressAdjacent"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Format: "json",
		Log:    Log{Level: "info"},
		Drag: Drag{
			ActivationDelay:  10 * time.Millisecond,
			SuppressAdjacent: true,
		},
	}
}

// Loader layers flags over env over file over defaults.
type Loader struct {
	v *viper.Viper
	// explicit is set when RESTACK_CONFIG names a file; a missing file is an
	// error only in that case.
	explicit string
}

func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("dir", d.Dir)
	v.SetDefault("format", d.Format)
	v.SetDefault("pretty", d.Pretty)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("drag.activationDelay", d.Drag.ActivationDelay)
	v.SetDefault("drag.suppressAdjacent", d.Drag.SuppressAdjacent)

	return &Loader{v: v, explicit: strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG"))}
}

// BindFlag ties a config key to a cobra/pflag flag; a flag that was set on
// the command line wins over every other source.
func (l *Loader) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("bind %s: missing flag", key)
	}
	return l.v.BindPFlag(key, f)
}

// Load reads the config file (if any) and decodes the merged settings.
// searchDirs are tried in order when no explicit file is configured.
func (l *Loader) Load(searchDirs ...string) (Config, error) {
	if l.explicit != "" {
		l.v.SetConfigFile(l.explicit)
	} else {
		l.v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		l.v.SetConfigType("yaml")
		for _, dir := range searchDirs {
			if strings.TrimSpace(dir) != "" {
				l.v.AddConfigPath(dir)
			}
		}
	}
	if err := l.v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) || l.explicit != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the path of the file that was read, if any.
func (l *Loader) ConfigFileUsed() string { return l.v.ConfigFileUsed() }

func (c Config) Validate() error {
	switch c.Format {
	case "json", "edn":
	default:
		return fmt.Errorf("invalid format %q (expected json or edn)", c.Format)
	}
	if c.Drag.ActivationDelay < 0 {
		return fmt.Errorf("invalid drag.activationDelay %s", c.Drag.ActivationDelay)
	}
	return nil
}

// UserConfigDir is the per-user fallback location for restack.yaml.
func UserConfigDir() string {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "restack")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "restack")
}
