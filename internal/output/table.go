package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/osukit/osukit/internal/core"
)

// FormatUser renders a user as an ASCII table.
func FormatUser(user *core.User) string {
	if user == nil {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"ID", user.ID})
	t.AppendRow(table.Row{"Username", user.Username})
	t.AppendRow(table.Row{"Country", user.CountryCode})
	t.AppendRow(table.Row{"Playmode", user.Playmode})
	t.AppendRow(table.Row{"Joined", user.JoinDate.Format(time.DateOnly)})
	t.AppendRow(table.Row{"Online", user.IsOnline})

	if stats := user.Statistics; stats != nil {
		t.AppendRow(table.Row{"PP", fmt.Sprintf("%.0f", stats.PP)})
		if stats.GlobalRank != nil {
			t.AppendRow(table.Row{"Global rank", fmt.Sprintf("#%d", *stats.GlobalRank)})
		}
		if stats.CountryRank != nil {
			t.AppendRow(table.Row{"Country rank", fmt.Sprintf("#%d", *stats.CountryRank)})
		}
		t.AppendRow(table.Row{"Accuracy", fmt.Sprintf("%.2f%%", stats.HitAccuracy)})
		t.AppendRow(table.Row{"Play count", stats.PlayCount})
		t.AppendRow(table.Row{"Level", fmt.Sprintf("%d (%d%%)", stats.Level.Current, stats.Level.Progress)})
	}

	return t.Render()
}

// FormatBeatmap renders a beatmap as an ASCII table.
func FormatBeatmap(beatmap *core.Beatmap) string {
	if beatmap == nil {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"ID", beatmap.ID})
	if set := beatmap.Beatmapset; set != nil {
		t.AppendRow(table.Row{"Title", fmt.Sprintf("%s - %s", set.Artist, set.Title)})
		t.AppendRow(table.Row{"Mapper", set.Creator})
	}
	t.AppendRow(table.Row{"Difficulty", beatmap.Version})
	t.AppendRow(table.Row{"Stars", fmt.Sprintf("%.2f", beatmap.DifficultyRating)})
	t.AppendRow(table.Row{"Mode", beatmap.Mode})
	t.AppendRow(table.Row{"Status", beatmap.Status})
	t.AppendRow(table.Row{"BPM", beatmap.BPM})
	t.AppendRow(table.Row{"Length", (time.Duration(beatmap.TotalLength) * time.Second).String()})
	t.AppendRow(table.Row{"Max combo", beatmap.MaxCombo})
	t.AppendRow(table.Row{"Playcount", beatmap.Playcount})

	return t.Render()
}

// FormatFriends renders a friend list as an ASCII table.
func FormatFriends(friends []core.User) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Username", "Country", "Online"})
	for _, friend := range friends {
		t.AppendRow(table.Row{friend.ID, friend.Username, friend.CountryCode, friend.IsOnline})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d friends", len(friends)), "", ""})
	return t.Render()
}

// FormatRateLimits renders persisted limiter rows as an ASCII table.
func FormatRateLimits(rows []RateLimitRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Host", "Requests in window", "Last request"})
	for _, row := range rows {
		last := "never"
		if !row.LastRequest.IsZero() {
			last = row.LastRequest.Format(time.RFC3339)
		}
		t.AppendRow(table.Row{row.Host, row.Requests, last})
	}
	return t.Render()
}

// RateLimitRow is one persisted limiter entry for rendering.
type RateLimitRow struct {
	Host        string    `json:"host"`
	Requests    int       `json:"requests"`
	LastRequest time.Time `json:"last_request"`
}
