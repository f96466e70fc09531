package client

import (
	"context"
	"strconv"

	"github.com/osukit/osukit/internal/core"
)

// LookupBeatmap fetches a beatmap by id.
func (c *Client) LookupBeatmap(ctx context.Context, id int) (*core.Beatmap, error) {
	var result core.Beatmap
	if err := c.Get(ctx, core.BeatmapEndpoint(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LookupBeatmapChecksum resolves a beatmap by its MD5 checksum.
func (c *Client) LookupBeatmapChecksum(ctx context.Context, checksum string) (*core.Beatmap, error) {
	var result core.Beatmap
	if err := c.Get(ctx, core.BeatmapLookupEndpoint(), &result, WithQuery("checksum", checksum)); err != nil {
		return nil, err
	}
	return &result, nil
}

// LookupBeatmapset fetches a beatmapset by id, including its beatmaps.
func (c *Client) LookupBeatmapset(ctx context.Context, id int) (*core.Beatmapset, error) {
	var result core.Beatmapset
	if err := c.Get(ctx, core.BeatmapsetEndpoint(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Rankings fetches a page of the ranking listing for a ruleset.
func (c *Client) Rankings(ctx context.Context, mode, kind string, page int) (*core.Rankings, error) {
	opts := []RequestOption{}
	if page > 0 {
		opts = append(opts, WithQuery("cursor[page]", strconv.Itoa(page)))
	}

	var result core.Rankings
	if err := c.Get(ctx, core.RankingsEndpoint(mode, kind), &result, opts...); err != nil {
		return nil, err
	}
	return &result, nil
}
