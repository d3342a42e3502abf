// Package app owns all shared client state: the post list, the hub list and
// the current identity's vote/bookmark overlay. Every mutation is funneled
// through a named action on App so the optimistic apply-then-revert flow
// stays in one place.
package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sreddit/sreddit/internal/feed"
	"github.com/sreddit/sreddit/internal/gateway"
	"github.com/sreddit/sreddit/internal/localstore"
	"github.com/sreddit/sreddit/internal/models"
)

type App struct {
	gw    gateway.Gateway
	local *localstore.Store

	mu        sync.Mutex
	userID    string
	posts     []models.Post
	hubs      []models.Hub
	bookmarks map[uint]bool
	votes     map[uint]int

	// Monotonic per-post mutation counters. A failed remote sync only
	// reverts if no newer intent landed in the meantime; stale reverts are
	// discarded so the last user intent wins.
	voteVersion     map[uint]uint64
	bookmarkVersion map[uint]uint64

	pending     sync.WaitGroup
	unsubscribe func()
}

// New builds the state container for the identity persisted on this device.
func New(gw gateway.Gateway, local *localstore.Store) (*App, error) {
	userID, err := local.DeviceID()
	if err != nil {
		return nil, fmt.Errorf("resolving device identity: %w", err)
	}
	return &App{
		gw:              gw,
		local:           local,
		userID:          userID,
		bookmarks:       make(map[uint]bool),
		votes:           make(map[uint]int),
		voteVersion:     make(map[uint]uint64),
		bookmarkVersion: make(map[uint]uint64),
	}, nil
}

// SetIdentity switches which user votes and bookmarks are attributed to,
// e.g. after sign-in. The caller reloads to reseed the bookmark set.
func (a *App) SetIdentity(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if userID != "" {
		a.userID = userID
	}
}

func (a *App) UserID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID
}

// Load seeds the container: hubs, posts and bookmarks from the store in
// parallel, votes from device storage. Votes are deliberately device-local
// while bookmarks are fetched remotely; see the package docs on the cache
// asymmetry.
func (a *App) Load(ctx context.Context) error {
	userID := a.UserID()

	var (
		wg                          sync.WaitGroup
		posts                       []models.Post
		hubs                        []models.Hub
		bookmarkIDs                 []uint
		postsErr, hubsErr, marksErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		posts, postsErr = a.gw.FetchPosts(ctx)
	}()
	go func() {
		defer wg.Done()
		hubs, hubsErr = a.gw.FetchHubs(ctx)
	}()
	go func() {
		defer wg.Done()
		bookmarkIDs, marksErr = a.gw.FetchBookmarks(ctx, userID)
	}()
	wg.Wait()

	for _, err := range []error{postsErr, hubsErr, marksErr} {
		if err != nil {
			return err
		}
	}

	votes, err := a.local.LoadVotes()
	if err != nil {
		// Losing the persisted overlay is recoverable; start clean.
		log.Printf("loading vote cache failed, starting empty: %v", err)
		votes = make(map[uint]int)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.posts = posts
	a.hubs = hubs
	a.votes = votes
	a.bookmarks = make(map[uint]bool, len(bookmarkIDs))
	for _, id := range bookmarkIDs {
		a.bookmarks[id] = true
	}
	return nil
}

// Subscribe attaches the standing post-list subscription. Incoming snapshots
// are last-write-wins: they overwrite any in-flight optimistic adjustment at
// the moment they arrive.
func (a *App) Subscribe() error {
	unsub, err := a.gw.SubscribePosts(func(posts []models.Post) {
		a.mu.Lock()
		a.posts = posts
		a.mu.Unlock()
	})
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.unsubscribe = unsub
	a.mu.Unlock()
	return nil
}

// Close tears down the subscription and waits for in-flight syncs.
func (a *App) Close() {
	a.mu.Lock()
	unsub := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	a.pending.Wait()
}

// Flush blocks until every in-flight remote sync has settled. The UI never
// calls this; one-shot invocations and tests do.
func (a *App) Flush() {
	a.pending.Wait()
}

// Posts returns a snapshot of the raw post list.
func (a *App) Posts() []models.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Post, len(a.posts))
	copy(out, a.posts)
	return out
}

func (a *App) Hubs() []models.Hub {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Hub, len(a.hubs))
	copy(out, a.hubs)
	return out
}

// UserVote returns the overlay direction for a post, 0 when absent.
func (a *App) UserVote(postID uint) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.votes[postID]
}

func (a *App) IsBookmarked(postID uint) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bookmarks[postID]
}

// Bookmarks returns the saved posts in feed order.
func (a *App) Bookmarks() []models.Post {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.Post
	for _, p := range a.posts {
		if a.bookmarks[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Feed composes the displayable list from the current snapshot and overlay.
func (a *App) Feed(mode feed.SortMode, filter feed.TypeFilter, query string) []feed.Entry {
	a.mu.Lock()
	posts := make([]models.Post, len(a.posts))
	copy(posts, a.posts)
	overlay := make(map[uint]int, len(a.votes))
	for id, v := range a.votes {
		overlay[id] = v
	}
	a.mu.Unlock()
	return feed.Compose(posts, overlay, mode, filter, query, time.Now())
}
