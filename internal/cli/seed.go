package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/seed"
)

func seedCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty database with starter hubs and posts",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			stats, err := seed.Run(ctx, e.db.GetDB(), time.Now())
			if err != nil {
				return err
			}
			if stats.Skipped {
				fmt.Println("Database already has data, skipping seed.")
				return nil
			}
			fmt.Printf("Seeded %d hubs, %d posts, %d comments.\n", stats.Hubs, stats.Posts, stats.Comments)
			return nil
		}),
	}
}
