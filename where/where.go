// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "STEADYPLAY_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the STEADYPLAY_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Steadyplay))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Steadyplay))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Resolvers resolves the directory containing user Lua resolver scripts.
func Resolvers() string {
	return ensureDir(filepath.Join(Config(), "resolvers"))
}

// History resolves the resume position registry.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the registry of previously played targets.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Responses resolves the directory used to cache resolver HTTP responses.
func Responses() string {
	return ensureDir(filepath.Join(Cache(), "responses"))
}

// Temp resolves a volatile directory for transient artifacts such as player IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Steadyplay))
}
