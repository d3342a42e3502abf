// Package cli wires the terminal frontend: every command stands up the
// database-backed store, the device store and the shared state container,
// runs one interaction, then flushes pending syncs before exiting.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/app"
	"github.com/sreddit/sreddit/internal/database"
	"github.com/sreddit/sreddit/internal/gateway"
	"github.com/sreddit/sreddit/internal/identity"
	"github.com/sreddit/sreddit/internal/localstore"
)

const appName = "sreddit"

// env is the assembled runtime one command invocation works against.
type env struct {
	app      *app.App
	identity *identity.Service
	local    *localstore.Store
	db       database.Service
}

func (e *env) close() {
	e.app.Close()
	_ = e.db.Close()
}

// resume restores a persisted sign-in session, if any, and points vote and
// bookmark attribution at the signed-in account.
func (e *env) resume(ctx context.Context) {
	token := e.local.SessionToken()
	if token == "" {
		return
	}
	user, err := e.identity.Resume(ctx, token)
	if err != nil {
		// Expired or revoked sessions degrade to the anonymous device id.
		_ = e.local.ClearSession()
		return
	}
	e.app.SetIdentity("user_" + user.UID)
}

func newEnv(dataDir string) (*env, error) {
	db, err := database.New()
	if err != nil {
		return nil, err
	}

	local, err := localstore.Open(dataDir)
	if err != nil {
		return nil, err
	}

	store := gateway.NewStore(db.GetDB())
	a, err := app.New(store, local)
	if err != nil {
		return nil, err
	}

	return &env{
		app:      a,
		identity: identity.NewService(db.GetDB()),
		local:    local,
		db:       db,
	}, nil
}

func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Scholarship community client",
		Long: `sreddit is a terminal client for the scholarship community: browse the
feed, share opportunities and experiences, vote, bookmark and discuss.

Posts can be submitted anonymously or under a pseudonym. Votes are
remembered on this device; bookmarks follow your account.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Device storage directory (defaults to the user config dir)")

	withEnv := func(run func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(dataDir)
			if err != nil {
				return err
			}
			defer e.close()
			ctx := cmd.Context()
			e.resume(ctx)
			return run(ctx, e, cmd, args)
		}
	}

	cmd.AddCommand(
		feedCmd(withEnv),
		watchCmd(withEnv),
		showCmd(withEnv),
		submitCmd(withEnv),
		commentCmd(withEnv),
		voteCmd(withEnv),
		bookmarkCmd(withEnv),
		bookmarksCmd(withEnv),
		hubsCmd(withEnv),
		seedCmd(withEnv),
		healthCmd(withEnv),
		signupCmd(withEnv),
		loginCmd(withEnv),
		logoutCmd(withEnv),
		resetPasswordCmd(withEnv),
		whoamiCmd(withEnv),
	)
	return cmd
}

// runner is the signature commands use to borrow an assembled environment.
type runner func(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error

func parsePostID(arg string) (uint, error) {
	var id uint
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}
