package core

import "time"

// User is the subset of the osu! user payload the CLI renders.
type User struct {
	ID           int             `json:"id"`
	Username     string          `json:"username"`
	CountryCode  string          `json:"country_code"`
	IsOnline     bool            `json:"is_online"`
	IsSupporter  bool            `json:"is_supporter"`
	JoinDate     time.Time       `json:"join_date"`
	LastVisit    *time.Time      `json:"last_visit"`
	Playmode     string          `json:"playmode"`
	Statistics   *UserStatistics `json:"statistics,omitempty"`
	AvatarURL    string          `json:"avatar_url,omitempty"`
	ProfileOrder []string        `json:"profile_order,omitempty"`
}

// UserStatistics holds per-ruleset play statistics.
type UserStatistics struct {
	Level       Level   `json:"level"`
	PP          float64 `json:"pp"`
	GlobalRank  *int    `json:"global_rank"`
	CountryRank *int    `json:"country_rank"`
	RankedScore int64   `json:"ranked_score"`
	HitAccuracy float64 `json:"hit_accuracy"`
	PlayCount   int     `json:"play_count"`
	PlayTime    int     `json:"play_time"`
}

// Level is a user's level with progress toward the next one.
type Level struct {
	Current  int `json:"current"`
	Progress int `json:"progress"`
}

// Beatmap is the subset of the osu! beatmap payload the CLI renders.
type Beatmap struct {
	ID               int         `json:"id"`
	BeatmapsetID     int         `json:"beatmapset_id"`
	Mode             string      `json:"mode"`
	Status           string      `json:"status"`
	Version          string      `json:"version"`
	DifficultyRating float64     `json:"difficulty_rating"`
	TotalLength      int         `json:"total_length"`
	BPM              float64     `json:"bpm"`
	MaxCombo         int         `json:"max_combo"`
	Playcount        int         `json:"playcount"`
	Passcount        int         `json:"passcount"`
	URL              string      `json:"url"`
	Checksum         string      `json:"checksum,omitempty"`
	Beatmapset       *Beatmapset `json:"beatmapset,omitempty"`
}

// Beatmapset groups beatmaps under one mapped song.
type Beatmapset struct {
	ID       int       `json:"id"`
	Artist   string    `json:"artist"`
	Title    string    `json:"title"`
	Creator  string    `json:"creator"`
	Status   string    `json:"status"`
	Beatmaps []Beatmap `json:"beatmaps,omitempty"`
}

// Rankings is a page of the ranking listing.
type Rankings struct {
	Ranking []UserStatistics `json:"ranking"`
	Total   int              `json:"total"`
}
