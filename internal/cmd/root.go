// Package cmd implements the osukit command tree.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/osukit/osukit/internal/config"
	"github.com/osukit/osukit/internal/core"
	"github.com/osukit/osukit/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package via ldflags.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by the main package to set version information.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "osukit",
	Short: "osu! API client",
	Long: `osukit talks to the osu! v2 API from the command line.

Every request is paced by a shared rate limiter and checked against the
credential's OAuth scopes before it leaves the process.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/osukit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads the config file and OSUKIT_ environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if configDir := config.DefaultConfigDir(); configDir != "" {
			viper.AddConfigPath(configDir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OSUKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: could not read config file: %v\n", err)
		}
	}

	if err := observability.InitCLILogger(viper.GetString("logging.level"), verbose); err != nil {
		ExitWithCodeStderr(ExitConfigInvalid, "Failed to initialize logger", err)
	}

	if _, err := config.FromViper(viper.GetViper()); err != nil {
		ExitWithCode(ExitConfigInvalid, "Invalid configuration", err)
	}

	if verbose && viper.ConfigFileUsed() != "" {
		observability.Logger().Debug("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("api.base_url", core.DefaultBaseURL)
	viper.SetDefault("api.token_url", core.DefaultTokenURL)
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.user_agent", "osukit")

	// The osu! API asks clients to keep bursts at or below 60 per minute.
	viper.SetDefault("rate_limit.min_interval", "1s")
	viper.SetDefault("rate_limit.max_per_minute", 60)

	viper.SetDefault("store.driver", "libsql")
	viper.SetDefault("store.path", config.DefaultStorePath())
	viper.SetDefault("store.url", "")
	viper.SetDefault("store.auth_token", "")

	viper.SetDefault("cache.user_ttl", "5m")
	viper.SetDefault("cache.beatmap_ttl", "1h")

	viper.SetDefault("logging.level", "info")
}
