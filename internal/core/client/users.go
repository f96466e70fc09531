package client

import (
	"context"
	"strings"

	"github.com/osukit/osukit/internal/core"
)

// LookupUser fetches a user by id or username, optionally for a specific
// ruleset.
func (c *Client) LookupUser(ctx context.Context, user, mode string) (*core.User, error) {
	endpoint := core.UserEndpoint(user)
	if strings.TrimSpace(mode) != "" {
		endpoint = core.UserModeEndpoint(user, mode)
	}

	var result core.User
	if err := c.Get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the authenticated user. Requires the identify scope.
func (c *Client) Me(ctx context.Context) (*core.User, error) {
	var result core.User
	if err := c.Get(ctx, core.MeEndpoint(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Friends fetches the authenticated user's friend list. Requires the
// friends.read scope.
func (c *Client) Friends(ctx context.Context) ([]core.User, error) {
	var result []core.User
	if err := c.Get(ctx, core.FriendsEndpoint(), &result); err != nil {
		return nil, err
	}
	return result, nil
}
