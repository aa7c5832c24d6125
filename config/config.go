// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Steadyplay)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Steadyplay)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// StallDelay returns how long a playing stream may go without time progress before it counts as stalled.
func StallDelay() time.Duration {
	ms := viper.GetInt(key.ProviderStallDelay)
	if ms <= 0 {
		ms = Default[key.ProviderStallDelay].Value.(int)
	}
	return time.Duration(ms) * time.Millisecond
}

// NetworkTimeout returns the timeout applied to manifest and resolver requests.
func NetworkTimeout() time.Duration {
	seconds := viper.GetInt(key.NetworkTimeout)
	if seconds <= 0 {
		seconds = Default[key.NetworkTimeout].Value.(int)
	}
	return time.Duration(seconds) * time.Second
}

// Persist sets key to value and writes the configuration file.
func Persist(k string, value any) error {
	viper.Set(k, value)
	return Save()
}

// Save writes the configuration file, creating it when missing.
func Save() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}
