package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/feed"
	"github.com/sreddit/sreddit/internal/markdown"
)

func watchCmd(with runner) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the feed live until interrupted",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			if err := e.app.Load(ctx); err != nil {
				return err
			}
			if err := e.app.Subscribe(); err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			printTop := func() {
				entries := e.app.Feed(feed.SortHot, feed.FilterAll, "")
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
				now := time.Now()
				fmt.Printf("--- %s ---\n", now.Format("15:04:05"))
				for _, entry := range entries {
					fmt.Printf("%s #%d %s (%d comments, %s)\n",
						voteMarker(entry.UserVote, entry.Votes), entry.ID, entry.Title,
						entry.Comments, markdown.RelativeTime(entry.CreatedAt, now))
				}
			}

			printTop()
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-signalCtx.Done():
					fmt.Println("\nStopped watching.")
					return nil
				case <-ticker.C:
					printTop()
				}
			}
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Show at most n posts per refresh")
	return cmd
}
