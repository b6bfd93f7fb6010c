package cli

import (
	"os"
	"path/filepath"
)

// DefaultConfigFile is the config file name inside the config directory.
const DefaultConfigFile = "config.yaml"

// Paths locates an application's files under the user config and cache
// directories.
type Paths struct {
	// AppName is the application name
	AppName string

	// ConfigRoot is the user config directory, e.g. ~/.config
	ConfigRoot string

	// CacheRoot is the user cache directory, e.g. ~/.cache
	CacheRoot string
}

// NewPaths creates a Paths for the given app from os.UserConfigDir and
// os.UserCacheDir.
func NewPaths(appName string) (*Paths, error) {
	configRoot, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName:    appName,
		ConfigRoot: configRoot,
		CacheRoot:  cacheRoot,
	}, nil
}

// ConfigDir returns the app config directory (<config>/<app>)
func (p *Paths) ConfigDir() string {
	return filepath.Join(p.ConfigRoot, p.AppName)
}

// ConfigFile returns the config file path (<config>/<app>/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir(), DefaultConfigFile)
}

// CacheDir returns the app cache directory (<cache>/<app>)
func (p *Paths) CacheDir() string {
	return filepath.Join(p.CacheRoot, p.AppName)
}

// ModelDir returns the directory searched for model files (<cache>/<app>/models)
func (p *Paths) ModelDir() string {
	return filepath.Join(p.CacheDir(), "models")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func (p *Paths) EnsureConfigDir() error {
	return os.MkdirAll(p.ConfigDir(), 0755)
}

// EnsureModelDir creates the model directory if it doesn't exist
func (p *Paths) EnsureModelDir() error {
	return os.MkdirAll(p.ModelDir(), 0755)
}
