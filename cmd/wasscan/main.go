// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the wasscan command line tool.
// It manages Security Center WAS scan configurations and can run a local
// sandbox server that answers the same REST calls.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/types"
	"github.com/lazycatapps/wasscan/pkg/sc"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the root command for the CLI application.
var rootCmd = &cobra.Command{
	Use:   "wasscan",
	Short: "wasscan - Manage Tenable Security Center WAS scans",
	Long: `Create, list, inspect, edit, delete and copy web application scan
configurations through the Security Center REST API.`,
	SilenceUsage: true,
}

// init registers global flags and environment variable bindings.
func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (YAML)")
	flags.String("url", "", "Security Center base URL (e.g., https://sc.example.com)")
	flags.String("access-key", "", "API access key")
	flags.String("secret-key", "", "API secret key")
	flags.Int("timeout", 60, "Request timeout in seconds")
	flags.Bool("insecure", false, "Skip TLS certificate verification")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("log-file", "", "Log file path (default: stderr)")
	flags.Int("log-max-size", 100, "Log file size in MB before rotation")
	flags.Int("log-max-backups", 3, "Rotated log files to keep")
	flags.Int("log-max-age", 28, "Days to keep rotated log files")

	viper.BindPFlags(flags)

	// Set environment variable prefix to "WASSCAN"
	viper.SetEnvPrefix("WASSCAN")
	viper.AutomaticEnv()
	// Replace hyphens with underscores in environment variable names
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.AddCommand(
		newCreateCmd(),
		newListCmd(),
		newDetailsCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newCopyCmd(),
		newSandboxCmd(),
	)
}

// initConfig reads the --config file when one is given.
func initConfig() {
	path := viper.GetString("config")
	if path == "" {
		return
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config file %s: %v\n", path, err)
		os.Exit(1)
	}
}

// loadConfig builds the configuration tree from flags, env and config file.
func loadConfig() *types.Config {
	return &types.Config{
		SC: types.SCConfig{
			URL:       viper.GetString("url"),
			AccessKey: viper.GetString("access-key"),
			SecretKey: viper.GetString("secret-key"),
			Timeout:   viper.GetInt("timeout"),
			Insecure:  viper.GetBool("insecure"),
		},
		Sandbox: types.SandboxConfig{
			Host:      viper.GetString("host"),
			Port:      viper.GetInt("port"),
			DataDir:   viper.GetString("data-dir"),
			AccessKey: viper.GetString("access-key"),
			SecretKey: viper.GetString("secret-key"),
		},
		CORS: types.CORSConfig{
			AllowedOrigins: viper.GetString("cors-allowed-origins"),
		},
		Log: types.LogConfig{
			Level:      viper.GetString("log-level"),
			Format:     viper.GetString("log-format"),
			FilePath:   viper.GetString("log-file"),
			MaxSize:    viper.GetInt("log-max-size"),
			MaxBackups: viper.GetInt("log-max-backups"),
			MaxAge:     viper.GetInt("log-max-age"),
			Compress:   true,
		},
	}
}

// newSecurityCenter creates the API client for cfg.
func newSecurityCenter(cfg *types.Config) (*sc.SecurityCenter, error) {
	log, err := logger.NewWithConfig(cfg.Log)
	if err != nil {
		return nil, err
	}
	return sc.New(sc.Config{
		URL:       cfg.SC.URL,
		AccessKey: cfg.SC.AccessKey,
		SecretKey: cfg.SC.SecretKey,
		Timeout:   time.Duration(cfg.SC.Timeout) * time.Second,
		Insecure:  cfg.SC.Insecure,
		UserAgent: cfg.SC.UserAgent,
		Logger:    log.WithField("component", "sc"),
	})
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// main is the application entry point.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
