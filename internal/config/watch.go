package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads the config file whenever it changes on disk and invokes
// onChange with the freshly loaded (and normalized) configuration. This is
// how the running daemon picks up preference saves.
//
// The watch is on the file's directory, so it also catches the file being
// created for the first time after startup.
func Watch(path string, onChange func(*Config)) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Warn("config dir unavailable, live reload disabled", "path", path, "err", err)
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.OnConfigChange(func(_ fsnotify.Event) {
		slog.Info("config file changed, reloading", "path", path)
		onChange(Load(path))
	})
	v.WatchConfig()
}
