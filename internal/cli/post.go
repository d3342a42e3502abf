package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/models"
)

func submitCmd(with runner) *cobra.Command {
	var (
		postType  string
		title     string
		content   string
		hub       string
		tags      []string
		pseudonym string

		country     string
		degree      string
		deadline    string
		provider    string
		eligibility string
		url         string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Share a post with the community",
		Long: `Submit a question, scholarship, experience or discussion post.

Posts are anonymous by default. Pass --pseudonym to attach a persistent
pen name tied to this device's identity instead.`,
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			draft := models.PostDraft{
				Type:           models.PostType(postType),
				Title:          title,
				Content:        content,
				Hub:            hub,
				Tags:           tags,
				IsPseudonymous: pseudonym != "",
				Pseudonym:      pseudonym,
			}
			if draft.Type == models.TypeScholarship || country != "" || deadline != "" {
				s := &models.ScholarshipDraft{
					Country:     country,
					Degree:      degree,
					Provider:    provider,
					Eligibility: eligibility,
					URL:         url,
				}
				if deadline != "" {
					d, err := time.Parse("2006-01-02", deadline)
					if err != nil {
						return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD", deadline)
					}
					s.Deadline = d
				}
				draft.Scholarship = s
			}

			if err := e.app.Load(ctx); err != nil {
				return err
			}
			post, err := e.app.CreatePost(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Printf("Posted #%d %q to %s as %s\n", post.ID, post.Title, post.Hub, post.Author)
			return nil
		}),
	}

	cmd.Flags().StringVar(&postType, "type", string(models.TypeDiscussion), "Post type: question, scholarship, experience, discussion")
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&content, "content", "", "Post body (markdown)")
	cmd.Flags().StringVar(&hub, "hub", "", "Hub to post in")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVar(&pseudonym, "pseudonym", "", "Post under a pen name instead of anonymously")

	cmd.Flags().StringVar(&country, "country", "", "Scholarship: host country")
	cmd.Flags().StringVar(&degree, "degree", "", "Scholarship: degree level")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Scholarship: application deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&provider, "provider", "", "Scholarship: funding provider")
	cmd.Flags().StringVar(&eligibility, "eligibility", "", "Scholarship: who can apply")
	cmd.Flags().StringVar(&url, "url", "", "Scholarship: application link")
	return cmd
}

func commentCmd(with runner) *cobra.Command {
	var (
		content  string
		parentID uint
		author   string
	)

	cmd := &cobra.Command{
		Use:   "comment <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			if err := e.app.Load(ctx); err != nil {
				return err
			}

			draft := models.CommentDraft{
				PostID:  postID,
				Author:  author,
				Content: content,
			}
			if parentID != 0 {
				draft.ParentID = &parentID
			}

			comment, err := e.app.AddComment(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Printf("Comment %d added to post #%d as %s\n", comment.ID, postID, comment.Author)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&content, "content", "m", "", "Comment text")
	cmd.Flags().UintVar(&parentID, "reply-to", 0, "Parent comment id for a threaded reply")
	cmd.Flags().StringVar(&author, "as", "", "Display name (defaults to Anonymous)")
	return cmd
}
