package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	rateLimitResetAll bool
	rateLimitResetYes bool
)

var rateLimitResetCmd = &cobra.Command{
	Use:   "reset [host]",
	Short: "Reset stored rate limit state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := ""
		if len(args) == 1 {
			host = strings.TrimSpace(args[0])
		}

		if host == "" && !rateLimitResetAll {
			return errors.New("a host argument or --all is required")
		}
		if host != "" && rateLimitResetAll {
			return errors.New("a host argument and --all are mutually exclusive")
		}
		if rateLimitResetAll && !rateLimitResetYes {
			return errors.New("--all requires --yes")
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		if err := db.ResetRateLimit(cmd.Context(), host); err != nil {
			return err
		}

		if host == "" {
			cmd.Println("cleared all stored rate limit state")
		} else {
			cmd.Printf("cleared stored rate limit state for %s\n", host)
		}
		return nil
	},
}

func init() {
	rateLimitResetCmd.Flags().BoolVar(&rateLimitResetAll, "all", false, "Reset every stored host")
	rateLimitResetCmd.Flags().BoolVar(&rateLimitResetYes, "yes", false, "Confirm resetting all hosts")
}
