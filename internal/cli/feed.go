package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/feed"
	"github.com/sreddit/sreddit/internal/markdown"
	"github.com/sreddit/sreddit/internal/models"
)

func feedCmd(with runner) *cobra.Command {
	var (
		sortMode   string
		typeFilter string
		search     string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse the community feed",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			mode := feed.SortMode(sortMode)
			if !mode.Valid() {
				return fmt.Errorf("unknown sort mode %q (hot, new, top, unanswered)", sortMode)
			}
			filter := feed.TypeFilter(typeFilter)
			if filter != feed.FilterAll && !models.PostType(filter).Valid() {
				return fmt.Errorf("unknown post type %q", typeFilter)
			}

			if err := e.app.Load(ctx); err != nil {
				return err
			}

			entries := e.app.Feed(mode, filter, search)
			if len(entries) == 0 {
				fmt.Println("No posts match.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t#%d\t%s\t%s\n",
					voteMarker(entry.UserVote, entry.Votes), entry.ID, entry.Title, bookmarkMarker(e, entry.ID))
				meta := fmt.Sprintf("\t\t%s in %s by %s, %d comments, %s",
					entry.Type, entry.Hub, entry.Author, entry.Comments, markdown.RelativeTime(entry.CreatedAt, now))
				if entry.Scholarship != nil {
					meta += ", deadline " + markdown.Deadline(entry.Scholarship.Deadline, now)
				}
				fmt.Fprintln(w, meta)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().StringVar(&sortMode, "sort", string(feed.SortHot), "Sort mode: hot, new, top, unanswered")
	cmd.Flags().StringVar(&typeFilter, "type", string(feed.FilterAll), "Post type: all, question, scholarship, experience, discussion")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title, content, hub or tag")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n posts (0 = all)")
	return cmd
}

func showCmd(with runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a post with its comment thread",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			if err := e.app.Load(ctx); err != nil {
				return err
			}

			var post *models.Post
			for _, p := range e.app.Posts() {
				if p.ID == id {
					post = &p
					break
				}
			}
			if post == nil {
				return fmt.Errorf("post %d not found", id)
			}

			now := time.Now()
			fmt.Printf("%s #%d %s\n", voteMarker(e.app.UserVote(post.ID), post.Votes), post.ID, post.Title)
			fmt.Printf("%s in %s by %s, %s\n", post.Type, post.Hub, post.Author, markdown.RelativeTime(post.CreatedAt, now))
			if len(post.Tags) > 0 {
				fmt.Printf("tags: %s\n", strings.Join(post.Tags, ", "))
			}
			if s := post.Scholarship; s != nil {
				fmt.Printf("\n%s, %s (%s)\n", s.Provider, s.Country, s.Degree)
				fmt.Printf("deadline: %s [%s]\n", markdown.Deadline(s.Deadline, now), models.ClassifyDeadline(s.Deadline, now))
				if s.Eligibility != "" {
					fmt.Printf("eligibility: %s\n", s.Eligibility)
				}
				if s.URL != "" {
					fmt.Printf("apply: %s\n", s.URL)
				}
			}
			fmt.Printf("\n%s\n", markdown.RenderText(post.Content))

			nodes, err := e.app.Comments(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("\n%d comments\n", post.Comments)
			printComments(nodes, 0, now)
			return nil
		}),
	}
	return cmd
}

func hubsCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "hubs",
		Short: "List community hubs",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			if err := e.app.Load(ctx); err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, h := range e.app.Hubs() {
				fmt.Fprintf(w, "%s %s\t%d members\t%s\n", h.Icon, h.Name, h.Members, h.Description)
			}
			return w.Flush()
		}),
	}
}

func printComments(nodes []*models.CommentNode, depth int, now time.Time) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Printf("%s[%+d] %s, %s\n", indent, n.Votes, n.Author, markdown.RelativeTime(n.CreatedAt, now))
		for _, line := range strings.Split(markdown.RenderText(n.Content), "\n") {
			fmt.Printf("%s    %s\n", indent, line)
		}
		printComments(n.Replies, depth+1, now)
	}
}

// voteMarker renders the count with the identity's own vote highlighted.
func voteMarker(userVote, votes int) string {
	switch userVote {
	case 1:
		return fmt.Sprintf("[▲%d]", votes)
	case -1:
		return fmt.Sprintf("[▼%d]", votes)
	default:
		return fmt.Sprintf("[ %d]", votes)
	}
}

func bookmarkMarker(e *env, postID uint) string {
	if e.app.IsBookmarked(postID) {
		return "*"
	}
	return ""
}
