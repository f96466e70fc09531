package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osukit/osukit/internal/core"
	"github.com/osukit/osukit/internal/output"
)

var userCmd = &cobra.Command{
	Use:   "user <id|username>",
	Short: "Look up an osu! user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)

	userCmd.Flags().String("mode", "", "ruleset to report statistics for (osu, taiko, fruits, mania)")
	userCmd.Flags().String("output", "table", "output format: table, json")
	userCmd.Flags().Bool("no-cache", false, "skip cache lookup")
}

func runUser(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("a user id or username is required")
	}

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close(ctx)

	cacheKey := name
	if mode != "" {
		cacheKey = name + "/" + mode
	}

	user, err := cachedLookup(ctx, session, "user", cacheKey, noCache, session.cfg.Cache.UserTTL,
		func(ctx context.Context) (*core.User, error) {
			return session.client.LookupUser(ctx, name, mode)
		})
	if err != nil {
		return err
	}

	return renderUser(cmd, format, user)
}

func renderUser(cmd *cobra.Command, format output.Format, user *core.User) error {
	if format == output.FormatJSON {
		rendered, err := output.FormatJSONValue(user)
		if err != nil {
			return err
		}
		cmd.Println(rendered)
		return nil
	}

	cmd.Println(output.FormatUser(user))
	return nil
}

func outputFormat(cmd *cobra.Command) (output.Format, error) {
	raw, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return output.ParseFormat(raw)
}
