package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/osukit/osukit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rendered, err := renderConfig(config.Get())
		if err != nil {
			return err
		}
		cmd.Print(rendered)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// renderConfig serializes the effective configuration with secrets redacted.
func renderConfig(cfg *config.Config) (string, error) {
	doc := map[string]any{
		"api": map[string]any{
			"base_url":      cfg.API.BaseURL,
			"token_url":     cfg.API.TokenURL,
			"client_id":     cfg.API.ClientID,
			"client_secret": redact(cfg.API.ClientSecret),
			"timeout":       cfg.API.Timeout.String(),
			"user_agent":    cfg.API.UserAgent,
		},
		"rate_limit": map[string]any{
			"min_interval":   cfg.RateLimit.MinInterval.String(),
			"max_per_minute": cfg.RateLimit.MaxPerMinute,
		},
		"store": map[string]any{
			"driver":     cfg.Store.Driver,
			"path":       cfg.Store.Path,
			"url":        cfg.Store.URL,
			"auth_token": redact(cfg.Store.AuthToken),
		},
		"cache": map[string]any{
			"user_ttl":    cfg.Cache.UserTTL.String(),
			"beatmap_ttl": cfg.Cache.BeatmapTTL.String(),
		},
		"logging": map[string]any{
			"level": cfg.Logging.Level,
		},
	}

	payload, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(payload), nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[redacted]"
}
