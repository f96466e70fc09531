package cmd

import (
	"github.com/spf13/cobra"

	"github.com/osukit/osukit/internal/output"
)

var rateLimitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rate limit state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		entries, err := db.ListRateLimits(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([]output.RateLimitRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, output.RateLimitRow{
				Host:        entry.Host,
				Requests:    entry.Requests,
				LastRequest: entry.LastRequest,
			})
		}

		if format == output.FormatJSON {
			rendered, err := output.FormatJSONValue(rows)
			if err != nil {
				return err
			}
			cmd.Println(rendered)
			return nil
		}

		if len(rows) == 0 {
			cmd.Println("(no stored rate limit state)")
			return nil
		}
		cmd.Println(output.FormatRateLimits(rows))
		return nil
	},
}

func init() {
	rateLimitListCmd.Flags().String("output", "table", "output format: table, json")
}
