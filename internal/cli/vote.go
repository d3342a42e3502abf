package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/markdown"
)

func voteCmd(with runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote <post-id> <up|down>",
		Short: "Vote on a post",
		Long: `Vote on a post. Voting the same direction twice removes the vote;
voting the opposite direction flips it.`,
		Args: cobra.ExactArgs(2),
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			var direction int
			switch args[1] {
			case "up":
				direction = 1
			case "down":
				direction = -1
			default:
				return fmt.Errorf("vote direction must be up or down, got %q", args[1])
			}

			if err := e.app.Load(ctx); err != nil {
				return err
			}
			if err := e.app.VotePost(postID, direction); err != nil {
				return err
			}
			e.app.Flush()

			switch e.app.UserVote(postID) {
			case 1:
				fmt.Printf("Upvoted post #%d\n", postID)
			case -1:
				fmt.Printf("Downvoted post #%d\n", postID)
			default:
				fmt.Printf("Removed vote on post #%d\n", postID)
			}
			return nil
		}),
	}
	return cmd
}

func bookmarkCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <post-id>",
		Short: "Toggle a bookmark on a post",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			if err := e.app.Load(ctx); err != nil {
				return err
			}

			e.app.ToggleBookmark(postID)
			e.app.Flush()

			if e.app.IsBookmarked(postID) {
				fmt.Printf("Bookmarked post #%d\n", postID)
			} else {
				fmt.Printf("Removed bookmark on post #%d\n", postID)
			}
			return nil
		}),
	}
}

func bookmarksCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarked posts",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			if err := e.app.Load(ctx); err != nil {
				return err
			}

			saved := e.app.Bookmarks()
			if len(saved) == 0 {
				fmt.Println("No bookmarks yet.")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, p := range saved {
				fmt.Fprintf(w, "#%d\t%s\t%s in %s, %s\n",
					p.ID, p.Title, p.Type, p.Hub, markdown.RelativeTime(p.CreatedAt, now))
			}
			return w.Flush()
		}),
	}
}
