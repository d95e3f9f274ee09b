// Package config loads the demo gallery's YAML configuration and watches it
// for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/scalebutton/internal/model"
	"github.com/piwi3910/scalebutton/internal/project"
)

// Notifier surfaces configuration problems to the user.
type Notifier interface {
	Notify(title, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}

// CanonicalConfig provides access to the loaded configuration, as well as
// the loading and file watching logic for it.
type CanonicalConfig struct {
	logger             *zap.SugaredLogger
	notifier           Notifier
	stopWatcherChannel chan bool

	mu              sync.Mutex
	app             model.AppConfig
	reloadConsumers []chan bool

	userConfig *viper.Viper
}

const (
	userConfigFilename = "scalebutton.yaml"
	configType         = "yaml"

	configKeyPreset          = "preset"
	configKeySimulateHaptics = "simulate_haptics"
	configKeyPresetsPath     = "presets_path"
	configKeyTheme           = "theme"
)

// DefaultConfigPath returns ~/.scalebutton/scalebutton.yaml.
func DefaultConfigPath() string {
	return filepath.Join(project.DefaultConfigDir(), userConfigFilename)
}

// NewConfig creates a config instance reading from path. An empty path uses
// DefaultConfigPath. A nil notifier discards notifications.
func NewConfig(logger *zap.SugaredLogger, notifier Notifier, path string) *CanonicalConfig {
	logger = logger.Named("config")
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	defaults := model.DefaultAppConfig()

	userConfig := viper.New()
	userConfig.SetConfigType(configType)
	userConfig.SetConfigFile(path)

	userConfig.SetDefault(configKeyPreset, defaults.Preset)
	userConfig.SetDefault(configKeySimulateHaptics, defaults.SimulateHaptics)
	userConfig.SetDefault(configKeyPresetsPath, defaults.PresetsPath)
	userConfig.SetDefault(configKeyTheme, defaults.Theme)

	cc := &CanonicalConfig{
		app:                defaults,
		logger:             logger,
		notifier:           notifier,
		stopWatcherChannel: make(chan bool),
		reloadConsumers:    []chan bool{},
		userConfig:         userConfig,
	}

	logger.Debugw("Created config instance", "path", path)
	return cc
}

// Path returns the config file in use.
func (cc *CanonicalConfig) Path() string {
	return cc.userConfig.ConfigFileUsed()
}

// Load reads the config file. A missing file is not an error: the defaults
// stay in effect.
func (cc *CanonicalConfig) Load() error {
	path := cc.userConfig.ConfigFileUsed()
	cc.logger.Debugw("Loading config", "path", path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cc.logger.Infow("Config file not found, using defaults", "path", path)
		cc.populateFromViper()
		return nil
	}

	if err := cc.userConfig.ReadInConfig(); err != nil {
		cc.logger.Warnw("Viper failed to read user config", "error", err)

		if strings.Contains(err.Error(), "yaml") {
			cc.notifier.Notify("Invalid configuration!",
				fmt.Sprintf("Please make sure %s is in a valid YAML format.", filepath.Base(path)))
		} else {
			cc.notifier.Notify("Error loading configuration!", "Please check the logs for more details.")
		}

		return fmt.Errorf("read user config: %w", err)
	}

	cc.populateFromViper()

	app := cc.App()
	cc.logger.Infow("Loaded config successfully",
		"preset", app.Preset,
		"theme", app.Theme,
		"simulateHaptics", app.SimulateHaptics,
		"presetsPath", app.PresetsPath)

	return nil
}

// OverridePreset pins the preset above whatever the file says.
func (cc *CanonicalConfig) OverridePreset(name string) {
	cc.userConfig.Set(configKeyPreset, name)
}

// OverrideSimulateHaptics pins haptics simulation above whatever the file says.
func (cc *CanonicalConfig) OverrideSimulateHaptics(on bool) {
	cc.userConfig.Set(configKeySimulateHaptics, on)
}

// App returns a copy of the current configuration values. Safe to call while
// the watcher reloads.
func (cc *CanonicalConfig) App() model.AppConfig {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.app
}

// PresetsPath returns the configured presets file, or the default one.
func (cc *CanonicalConfig) PresetsPath() string {
	if p := cc.App().PresetsPath; p != "" {
		return p
	}
	return project.DefaultPresetsPath()
}

// SubscribeToChanges returns a channel that receives a value after every
// successful reload.
func (cc *CanonicalConfig) SubscribeToChanges() chan bool {
	c := make(chan bool, 1)
	cc.mu.Lock()
	cc.reloadConsumers = append(cc.reloadConsumers, c)
	cc.mu.Unlock()
	return c
}

// WatchConfigFileChanges starts watching the config file and reloads it when
// it is written. It blocks until StopWatchingConfigFile is called.
func (cc *CanonicalConfig) WatchConfigFileChanges() {
	cc.logger.Debugw("Starting to watch user config file for changes", "path", cc.userConfig.ConfigFileUsed())

	const (
		minTimeBetweenReloadAttempts = time.Millisecond * 500
		delayBetweenEventAndReload   = time.Millisecond * 50
	)

	lastAttemptedReload := time.Now()

	cc.userConfig.OnConfigChange(func(event fsnotify.Event) {
		if event.Op&fsnotify.Write != fsnotify.Write {
			return
		}
		now := time.Now()
		if !lastAttemptedReload.Add(minTimeBetweenReloadAttempts).Before(now) {
			return
		}
		cc.logger.Debugw("Config file modified, attempting reload", "event", event)
		<-time.After(delayBetweenEventAndReload)

		if err := cc.Load(); err != nil {
			cc.logger.Warnw("Failed to reload config file", "error", err)
		} else {
			cc.logger.Info("Reloaded config successfully")
			cc.notifier.Notify("Configuration reloaded!", "Your changes have been applied.")
			cc.onConfigReloaded()
		}

		lastAttemptedReload = now
	})
	cc.userConfig.WatchConfig()

	<-cc.stopWatcherChannel
	cc.logger.Debug("Stopping user config file watcher")
	cc.userConfig.OnConfigChange(func(fsnotify.Event) {})
}

// StopWatchingConfigFile signals the file watcher to stop.
func (cc *CanonicalConfig) StopWatchingConfigFile() {
	cc.stopWatcherChannel <- true
}

func (cc *CanonicalConfig) populateFromViper() {
	defaults := model.DefaultAppConfig()
	var app model.AppConfig

	app.Preset = strings.TrimSpace(cc.userConfig.GetString(configKeyPreset))
	if app.Preset == "" {
		cc.logger.Warnw("Empty preset specified, using default value",
			"key", configKeyPreset,
			"defaultValue", defaults.Preset)
		app.Preset = defaults.Preset
	}

	app.Theme = strings.ToLower(cc.userConfig.GetString(configKeyTheme))
	if !model.ValidTheme(app.Theme) {
		cc.logger.Warnw("Invalid theme specified, using default value",
			"key", configKeyTheme,
			"invalidValue", app.Theme,
			"defaultValue", defaults.Theme)
		app.Theme = defaults.Theme
	}

	app.SimulateHaptics = cc.userConfig.GetBool(configKeySimulateHaptics)
	app.PresetsPath = cc.userConfig.GetString(configKeyPresetsPath)

	cc.mu.Lock()
	cc.app = app
	cc.mu.Unlock()

	cc.logger.Debug("Populated config fields from viper")
}

func (cc *CanonicalConfig) onConfigReloaded() {
	cc.logger.Debug("Notifying consumers about configuration reload")
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, consumer := range cc.reloadConsumers {
		select {
		case consumer <- true:
		default:
		}
	}
}
