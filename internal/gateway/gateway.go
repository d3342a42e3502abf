// Package gateway is the persistence boundary: thin operations mapping the
// app's domain actions onto the backing document store. Callers own all
// shared state; the gateway only returns results and never mutates the
// caller's containers.
package gateway

import (
	"context"

	"github.com/sreddit/sreddit/internal/models"
)

// Gateway is the persistence contract the rest of the app consumes.
type Gateway interface {
	// FetchPosts returns every post, newest first.
	FetchPosts(ctx context.Context) ([]models.Post, error)
	FetchHubs(ctx context.Context) ([]models.Hub, error)
	// FetchBookmarks returns the ids of the posts the user has saved.
	FetchBookmarks(ctx context.Context, userID string) ([]uint, error)

	// CreatePost stores a draft; the store assigns identifier, creation
	// time and zero vote/comment counters.
	CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error)

	// ApplyVote runs the vote toggle algebra remotely and atomically adjusts
	// the post's stored vote count by the same delta the client computed.
	ApplyVote(ctx context.Context, userID string, postID uint, direction int) (models.VoteResult, error)

	// ToggleBookmark flips membership and reports the new state.
	ToggleBookmark(ctx context.Context, userID string, postID uint) (bool, error)

	// FetchComments returns a post's comments, newest first; the caller
	// reconstructs the reply tree from the parent references.
	FetchComments(ctx context.Context, postID uint) ([]models.Comment, error)
	// CreateComment stores a comment and increments the owning post's
	// comment counter.
	CreateComment(ctx context.Context, draft models.CommentDraft) (models.Comment, error)

	// SubscribePosts pushes the full current post list whenever the backing
	// store changes, starting with the current snapshot. The returned
	// function cancels the subscription.
	SubscribePosts(callback func([]models.Post)) (func(), error)
}
