package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func healthCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backing store connection",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			stats := e.db.Health()
			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%s\n", k, stats[k])
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if stats["status"] != "up" {
				return fmt.Errorf("database is not healthy")
			}
			return nil
		}),
	}
}
