package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	validator "gopkg.in/go-playground/validator.v9"

	"hivecadlanding/internal/logger"
)

// Settings is the typed view of the viper configuration.
type Settings struct {
	Owner          string        `validate:"required"`
	Repo           string        `validate:"required"`
	Token          string
	APIURL         string        `validate:"omitempty,url"`
	Addr           string        `validate:"required"`
	Refresh        time.Duration `validate:"min=0"`
	ResolveTimeout time.Duration `validate:"gt=0"`
	ContentPath    string
	LogLevel       string `validate:"oneof=debug info warn warning error"`
}

// Init wires the global viper instance. A missing config.yaml is fine; an
// unreadable or malformed one is an error.
func Init() error {
	v := viper.GetViper()
	configure(v, ".")
	setDefaults(v)

	err := readConfig(v)
	logger.Setup(os.Stderr, v.GetString("log.level"))
	if err != nil {
		return err
	}
	if f := v.ConfigFileUsed(); f != "" {
		logger.Log.Debug("loaded config", "file", f)
	}
	return nil
}

func configure(v *viper.Viper, dir string) {
	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("hivecad")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// readConfig reads config.yaml when present.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("repo.owner", "dafiiit")
	v.SetDefault("repo.name", "HiveCAD")
	v.SetDefault("github.token", "")
	v.SetDefault("github.api_url", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.refresh", time.Duration(0))
	v.SetDefault("resolve.timeout", 30*time.Second)
	v.SetDefault("content.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads the global viper instance into Settings.
func Load() (Settings, error) {
	return fromViper(viper.GetViper())
}

func fromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		Owner:          strings.TrimSpace(v.GetString("repo.owner")),
		Repo:           strings.TrimSpace(v.GetString("repo.name")),
		Token:          resolveToken(v.GetString("github.token")),
		APIURL:         strings.TrimSpace(v.GetString("github.api_url")),
		Addr:           v.GetString("http.addr"),
		Refresh:        v.GetDuration("http.refresh"),
		ResolveTimeout: v.GetDuration("resolve.timeout"),
		ContentPath:    v.GetString("content.path"),
		LogLevel:       strings.ToLower(v.GetString("log.level")),
	}

	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// resolveToken prefers an explicit token and falls back to GITHUB_TOKEN.
func resolveToken(explicit string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}
