package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osukit/osukit/internal/config"
	"github.com/osukit/osukit/internal/core/store"
)

var rateLimitCmd = &cobra.Command{
	Use:   "rate-limit",
	Short: "Manage persisted rate limit state",
}

func init() {
	rateLimitCmd.AddCommand(rateLimitListCmd)
	rateLimitCmd.AddCommand(rateLimitResetCmd)
	rootCmd.AddCommand(rateLimitCmd)
}

func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, config.Get().Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return st, nil
}
