package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sreddit/sreddit/internal/models"
)

// VotePost applies a vote click optimistically: the overlay and the displayed
// count change immediately and the remote write happens in the background. On
// remote failure the pre-click state is restored silently, unless a newer
// click on the same post has already superseded this one.
func (a *App) VotePost(postID uint, direction int) error {
	if direction != 1 && direction != -1 {
		return &models.ValidationError{Field: "direction", Message: "vote direction must be 1 or -1"}
	}

	a.mu.Lock()
	prevVote := a.votes[postID]
	result := models.NextVote(prevVote, direction)
	a.votes[postID] = result.NewVote
	a.adjustVotesLocked(postID, result.VoteDiff)
	a.voteVersion[postID]++
	version := a.voteVersion[postID]
	userID := a.userID
	a.persistVotesLocked()
	a.mu.Unlock()

	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		// Deliberately not tied to any caller context: tearing down the UI
		// must not abort an in-flight vote write.
		_, err := a.gw.ApplyVote(context.Background(), userID, postID, direction)
		if err == nil {
			return
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.voteVersion[postID] != version {
			log.Printf("vote sync failed for post %d but a newer vote superseded it, revert skipped: %v", postID, err)
			return
		}
		a.votes[postID] = prevVote
		a.adjustVotesLocked(postID, -result.VoteDiff)
		a.persistVotesLocked()
		log.Printf("vote sync failed for post %d, reverted: %v", postID, err)
	}()
	return nil
}

// ToggleBookmark flips the saved state optimistically and reconciles with the
// store in the background, reverting silently on failure.
func (a *App) ToggleBookmark(postID uint) {
	a.mu.Lock()
	was := a.bookmarks[postID]
	if was {
		delete(a.bookmarks, postID)
	} else {
		a.bookmarks[postID] = true
	}
	a.bookmarkVersion[postID]++
	version := a.bookmarkVersion[postID]
	userID := a.userID
	a.mu.Unlock()

	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		_, err := a.gw.ToggleBookmark(context.Background(), userID, postID)
		if err == nil {
			return
		}

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.bookmarkVersion[postID] != version {
			log.Printf("bookmark sync failed for post %d but a newer toggle superseded it, revert skipped: %v", postID, err)
			return
		}
		if was {
			a.bookmarks[postID] = true
		} else {
			delete(a.bookmarks, postID)
		}
		log.Printf("bookmark sync failed for post %d, reverted: %v", postID, err)
	}()
}

// CreatePost submits a new post. Unlike votes and bookmarks this is not
// optimistic: the caller blocks on the remote write and sees the error. On
// success the stored post is prepended to the local list with a zero overlay.
func (a *App) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	a.resolveAuthor(&draft)
	if err := draft.Validate(); err != nil {
		return models.Post{}, err
	}

	post, err := a.gw.CreatePost(ctx, draft)
	if err != nil {
		return models.Post{}, err
	}

	a.mu.Lock()
	a.posts = append([]models.Post{post}, a.posts...)
	a.mu.Unlock()
	return post, nil
}

// resolveAuthor fills in the display name and author id from the draft's
// identity-disclosure choice: a pseudonym binds the post to this device's
// identity, full anonymity gets a throwaway id.
func (a *App) resolveAuthor(draft *models.PostDraft) {
	a.mu.Lock()
	userID := a.userID
	a.mu.Unlock()

	if draft.IsPseudonymous && draft.Pseudonym != "" {
		draft.Author = draft.Pseudonym
		draft.AuthorID = userID
		return
	}
	draft.Author = "Anonymous"
	draft.AuthorID = fmt.Sprintf("anon_%d", time.Now().UnixMilli())
}

// Comments fetches a post's comments as a threaded tree.
func (a *App) Comments(ctx context.Context, postID uint) ([]*models.CommentNode, error) {
	comments, err := a.gw.FetchComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return models.BuildCommentTree(comments), nil
}

// AddComment submits a comment and bumps the local comment counter so the
// feed reflects it before the next snapshot arrives.
func (a *App) AddComment(ctx context.Context, draft models.CommentDraft) (models.Comment, error) {
	a.mu.Lock()
	userID := a.userID
	a.mu.Unlock()

	if draft.Author == "" {
		draft.Author = "Anonymous"
	}
	if draft.AuthorID == "" {
		draft.AuthorID = userID
	}
	if err := draft.Validate(); err != nil {
		return models.Comment{}, err
	}

	comment, err := a.gw.CreateComment(ctx, draft)
	if err != nil {
		return models.Comment{}, err
	}

	a.mu.Lock()
	for i := range a.posts {
		if a.posts[i].ID == draft.PostID {
			a.posts[i].Comments++
			break
		}
	}
	a.mu.Unlock()
	return comment, nil
}

// adjustVotesLocked shifts a post's displayed vote count. Callers hold a.mu.
func (a *App) adjustVotesLocked(postID uint, diff int) {
	for i := range a.posts {
		if a.posts[i].ID == postID {
			a.posts[i].Votes += diff
			return
		}
	}
}

// persistVotesLocked writes the vote overlay to device storage synchronously,
// in the same breath as the in-memory update. Callers hold a.mu.
func (a *App) persistVotesLocked() {
	votes := make(map[uint]int, len(a.votes))
	for id, v := range a.votes {
		votes[id] = v
	}
	if err := a.local.SaveVotes(votes); err != nil {
		log.Printf("persisting vote cache failed: %v", err)
	}
}
