package gateway

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sreddit/sreddit/internal/models"
)

// SubscribePosts stands in for the managed real-time API: a polling loop that
// pushes the full post list on every observed change, starting with the
// current snapshot. Poll failures are logged and retried on the next tick.
func (s *Store) SubscribePosts(callback func([]models.Post)) (func(), error) {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		var last []models.Post
		primed := false

		for {
			posts, err := s.FetchPosts(context.Background())
			if err != nil {
				log.Printf("post subscription poll failed: %v", err)
			} else if !primed || !postsEqual(last, posts) {
				primed = true
				last = posts
				callback(posts)
			}

			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { close(stop) })
	}
	return unsubscribe, nil
}

// postsEqual compares the fields a snapshot push cares about. Vote and
// comment counters are written with UpdateColumn, which skips UpdatedAt, so
// they are compared explicitly.
func postsEqual(a, b []models.Post) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Votes != b[i].Votes ||
			a[i].Comments != b[i].Comments ||
			!a[i].UpdatedAt.Equal(b[i].UpdatedAt) {
			return false
		}
	}
	return true
}
