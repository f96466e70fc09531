package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osukit/osukit/internal/core"
	"github.com/osukit/osukit/internal/output"
)

var beatmapCmd = &cobra.Command{
	Use:   "beatmap <id>",
	Short: "Look up a beatmap by id or checksum",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBeatmap,
}

func init() {
	rootCmd.AddCommand(beatmapCmd)

	beatmapCmd.Flags().String("checksum", "", "look up by beatmap MD5 checksum instead of id")
	beatmapCmd.Flags().String("output", "table", "output format: table, json")
	beatmapCmd.Flags().Bool("no-cache", false, "skip cache lookup")
}

func runBeatmap(cmd *cobra.Command, args []string) error {
	checksum, err := cmd.Flags().GetString("checksum")
	if err != nil {
		return err
	}

	var (
		id       int
		cacheKey string
	)
	switch {
	case checksum != "" && len(args) > 0:
		return fmt.Errorf("an id argument and --checksum are mutually exclusive")
	case checksum != "":
		cacheKey = "md5:" + checksum
	case len(args) == 1:
		id, err = strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("beatmap id must be a positive integer, got %q", args[0])
		}
		cacheKey = strconv.Itoa(id)
	default:
		return fmt.Errorf("a beatmap id or --checksum is required")
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

	beatmap, err := cachedLookup(ctx, session, "beatmap", cacheKey, noCache, session.cfg.Cache.BeatmapTTL,
		func(ctx context.Context) (*core.Beatmap, error) {
			if checksum != "" {
				return session.client.LookupBeatmapChecksum(ctx, checksum)
			}
			return session.client.LookupBeatmap(ctx, id)
		})
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		rendered, err := output.FormatJSONValue(beatmap)
		if err != nil {
			return err
		}
		cmd.Println(rendered)
		return nil
	}

	cmd.Println(output.FormatBeatmap(beatmap))
	return nil
}
