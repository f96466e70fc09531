package core

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the osu! v2 API root every endpoint path is joined to.
const DefaultBaseURL = "https://osu.ppy.sh/api/v2"

// DefaultTokenURL is the OAuth token endpoint for the client credentials grant.
const DefaultTokenURL = "https://osu.ppy.sh/oauth/token"

// UserEndpoint targets a single user by id or username.
func UserEndpoint(user string) Endpoint {
	return Endpoint{
		Path:         "/users/" + url.PathEscape(strings.TrimSpace(user)),
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}

// UserModeEndpoint targets a single user's statistics for a specific ruleset.
func UserModeEndpoint(user, mode string) Endpoint {
	return Endpoint{
		Path:         fmt.Sprintf("/users/%s/%s", url.PathEscape(strings.TrimSpace(user)), url.PathEscape(mode)),
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}

// MeEndpoint targets the authenticated user.
func MeEndpoint() Endpoint {
	return Endpoint{
		Path:         "/me",
		RequiresAuth: true,
		Scopes:       Scopes{ScopeIdentify},
	}
}

// FriendsEndpoint targets the authenticated user's friend list.
func FriendsEndpoint() Endpoint {
	return Endpoint{
		Path:         "/friends",
		RequiresAuth: true,
		Scopes:       Scopes{ScopeFriendsRead},
	}
}

// BeatmapEndpoint targets a single beatmap by id.
func BeatmapEndpoint(id int) Endpoint {
	return Endpoint{
		Path:         fmt.Sprintf("/beatmaps/%d", id),
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}

// BeatmapLookupEndpoint resolves a beatmap by checksum, filename, or id
// passed as query parameters.
func BeatmapLookupEndpoint() Endpoint {
	return Endpoint{
		Path:         "/beatmaps/lookup",
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}

// BeatmapsetEndpoint targets a single beatmapset by id.
func BeatmapsetEndpoint(id int) Endpoint {
	return Endpoint{
		Path:         fmt.Sprintf("/beatmapsets/%d", id),
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}

// RankingsEndpoint targets the ranking listing for a ruleset.
func RankingsEndpoint(mode, kind string) Endpoint {
	return Endpoint{
		Path:         fmt.Sprintf("/rankings/%s/%s", url.PathEscape(mode), url.PathEscape(kind)),
		RequiresAuth: true,
		Scopes:       Scopes{ScopePublic},
	}
}
