package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relentiousdragon/Mac-Clipper/internal/config"
	"github.com/relentiousdragon/Mac-Clipper/internal/logging"
)

// bindViper wires a command's flags into a viper instance backed by the
// well-known config file and CLIPPER_* env vars.
//
// Precedence (lowest → highest): defaults → config file → CLIPPER_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")

	// A missing or unreadable config file is not an error: defaults apply.
	_ = v.ReadInConfig()

	v.SetEnvPrefix("CLIPPER")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default info)")
	cmd.Flags().Bool("log-json", false, "force JSON log output even on a terminal")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (default "+config.Path()+")")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	logging.Setup(logging.ParseLevel(v.GetString("log-level")), v.GetBool("log-json"))
}
