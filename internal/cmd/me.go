package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/osukit/osukit/internal/core/client"
	"github.com/osukit/osukit/internal/output"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Long: `Show the user the configured credential belongs to.

Requires a token with the identify scope. Client-credentials tokens only
carry the public scope, so this command needs a user-issued token.`,
	Args: cobra.NoArgs,
	RunE: runMe,
}

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List the authenticated user's friends",
	Args:  cobra.NoArgs,
	RunE:  runFriends,
}

func init() {
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(friendsCmd)

	meCmd.Flags().String("output", "table", "output format: table, json")
	friendsCmd.Flags().String("output", "table", "output format: table, json")
}

func runMe(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close(ctx)

	user, err := session.client.Me(ctx)
	if err != nil {
		return describeAuthError(err)
	}

	return renderUser(cmd, format, user)
}

func runFriends(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	session, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close(ctx)

	friends, err := session.client.Friends(ctx)
	if err != nil {
		return describeAuthError(err)
	}

	if format == output.FormatJSON {
		rendered, err := output.FormatJSONValue(friends)
		if err != nil {
			return err
		}
		cmd.Println(rendered)
		return nil
	}

	cmd.Println(output.FormatFriends(friends))
	return nil
}

// describeAuthError adds a hint for the two precondition failures a caller
// can fix themselves.
func describeAuthError(err error) error {
	var scopeErr *client.ScopeError
	if errors.As(err, &scopeErr) {
		return errors.Join(err, errors.New("hint: this operation needs a user-issued token; set api.client_secret to one granted the listed scope"))
	}

	var authErr *client.AuthRequiredError
	if errors.As(err, &authErr) {
		return errors.Join(err, errors.New("hint: set api.client_id and api.client_secret in the config or OSUKIT_API_CLIENT_ID / OSUKIT_API_CLIENT_SECRET"))
	}
	return err
}
