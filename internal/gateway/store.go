package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sreddit/sreddit/internal/cache"
	"github.com/sreddit/sreddit/internal/models"
)

const (
	hubCacheKey = "hubs"
	hubCacheTTL = time.Minute
)

// Store implements Gateway on top of the hosted Postgres document store.
type Store struct {
	db           *gorm.DB
	hubs         *cache.TTL[string, []models.Hub]
	pollInterval time.Duration
}

func NewStore(db *gorm.DB) *Store {
	// cache.New only fails on a non-positive size
	hubs, _ := cache.New[string, []models.Hub](8)
	return &Store{
		db:           db,
		hubs:         hubs,
		pollInterval: 5 * time.Second,
	}
}

// SetPollInterval adjusts how often the post subscription polls the store.
func (s *Store) SetPollInterval(d time.Duration) {
	if d > 0 {
		s.pollInterval = d
	}
}

func (s *Store) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Scholarship").
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, connErr("fetch posts", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (s *Store) FetchHubs(ctx context.Context) ([]models.Hub, error) {
	if hubs, ok := s.hubs.Get(hubCacheKey); ok {
		return hubs, nil
	}

	var hubs []models.Hub
	err := s.db.WithContext(ctx).Order("members desc").Find(&hubs).Error
	if err != nil {
		return nil, connErr("fetch hubs", err)
	}
	s.hubs.Set(hubCacheKey, hubs, hubCacheTTL)
	return hubs, nil
}

func (s *Store) FetchBookmarks(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, connErr("fetch bookmarks", err)
	}
	return ids, nil
}

func (s *Store) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	if err := draft.Validate(); err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		Type:         draft.Type,
		Title:        draft.Title,
		Content:      draft.Content,
		Hub:          draft.Hub,
		Author:       draft.Author,
		AuthorID:     draft.AuthorID,
		Tags:         draft.NormalizedTags(),
		IsUnanswered: draft.Type == models.TypeQuestion,
	}
	if draft.Scholarship != nil {
		post.Scholarship = &models.Scholarship{
			Country:     draft.Scholarship.Country,
			Degree:      draft.Scholarship.Degree,
			Deadline:    draft.Scholarship.Deadline.UTC(),
			Provider:    draft.Scholarship.Provider,
			Eligibility: draft.Scholarship.Eligibility,
			URL:         draft.Scholarship.URL,
		}
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return models.Post{}, mutErr("create post", err)
	}
	return post, nil
}

// ApplyVote runs the same toggle algebra the optimistic controller applies
// locally, inside one transaction, so client and store always agree on the
// delta: same direction clears, opposite switches, absent records.
func (s *Store) ApplyVote(ctx context.Context, userID string, postID uint, direction int) (models.VoteResult, error) {
	if direction != 1 && direction != -1 {
		return models.VoteResult{}, mutErr("vote", fmt.Errorf("direction must be -1 or 1, got %d", direction))
	}

	var result models.VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}

		current := 0
		var existing models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			current = existing.Vote
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		result = models.NextVote(current, direction)

		switch {
		case current != 0 && result.NewVote == 0:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case current != 0:
			existing.Vote = result.NewVote
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		default:
			vote := models.Vote{UserID: userID, PostID: postID, Vote: result.NewVote}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("votes", gorm.Expr("votes + ?", result.VoteDiff)).Error
	})
	if err != nil {
		return models.VoteResult{}, mutErr("vote", err)
	}
	return result, nil
}

func (s *Store) ToggleBookmark(ctx context.Context, userID string, postID uint) (bool, error) {
	var bookmarked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}

		var existing models.Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			bookmarked = false
			return tx.Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			bookmarked = true
			return tx.Create(&models.Bookmark{UserID: userID, PostID: postID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, mutErr("toggle bookmark", err)
	}
	return bookmarked, nil
}

func (s *Store) FetchComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, connErr("fetch comments", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (s *Store) CreateComment(ctx context.Context, draft models.CommentDraft) (models.Comment, error) {
	if err := draft.Validate(); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		PostID:   draft.PostID,
		ParentID: draft.ParentID,
		Author:   draft.Author,
		AuthorID: draft.AuthorID,
		Content:  draft.Content,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, draft.PostID).Error; err != nil {
			return err
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", draft.PostID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error
	})
	if err != nil {
		return models.Comment{}, mutErr("create comment", err)
	}
	return comment, nil
}
