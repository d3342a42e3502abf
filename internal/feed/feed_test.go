package feed

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreddit/sreddit/internal/models"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func post(id uint, votes int, age time.Duration) models.Post {
	return models.Post{
		ID:        id,
		Type:      models.TypeDiscussion,
		Title:     "post",
		Votes:     votes,
		CreatedAt: now.Add(-age),
	}
}

func ids(entries []Entry) []uint {
	out := make([]uint, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestComposeHot_RecencyBeatsAge(t *testing.T) {
	// Equal votes: the hour-old post must rank far above the two-day-old one.
	posts := []models.Post{
		post(1, 100, 48*time.Hour),
		post(2, 100, time.Hour),
	}

	entries := Compose(posts, nil, SortHot, FilterAll, "", now)
	assert.Equal(t, []uint{2, 1}, ids(entries))
}

func TestComposeHot_TiesKeepInputOrder(t *testing.T) {
	posts := []models.Post{
		post(1, 50, time.Hour),
		post(2, 50, time.Hour),
		post(3, 50, time.Hour),
	}

	entries := Compose(posts, nil, SortHot, FilterAll, "", now)
	assert.Equal(t, []uint{1, 2, 3}, ids(entries))
}

func TestComposeNew(t *testing.T) {
	posts := []models.Post{
		post(1, 500, 10*time.Hour),
		post(2, 1, time.Minute),
		post(3, 50, 5*time.Hour),
	}

	entries := Compose(posts, nil, SortNew, FilterAll, "", now)
	assert.Equal(t, []uint{2, 3, 1}, ids(entries))
}

func TestComposeTop(t *testing.T) {
	posts := []models.Post{
		post(1, 50, time.Hour),
		post(2, 500, 100*time.Hour),
		post(3, 100, time.Hour),
	}

	entries := Compose(posts, nil, SortTop, FilterAll, "", now)
	assert.Equal(t, []uint{2, 3, 1}, ids(entries))
}

func TestComposeUnanswered(t *testing.T) {
	flagged := post(1, 10, 2*time.Hour)
	flagged.Type = models.TypeQuestion
	flagged.IsUnanswered = true
	flagged.Comments = 4 // stays unanswered until explicitly cleared

	quiet := post(2, 10, time.Hour)
	quiet.Comments = 0

	answered := post(3, 10, time.Minute)
	answered.Comments = 12

	entries := Compose([]models.Post{flagged, quiet, answered}, nil, SortUnanswered, FilterAll, "", now)
	assert.Equal(t, []uint{2, 1}, ids(entries))
}

func TestComposeTypeFilter(t *testing.T) {
	q := post(1, 10, time.Hour)
	q.Type = models.TypeQuestion
	s := post(2, 10, time.Hour)
	s.Type = models.TypeScholarship

	entries := Compose([]models.Post{q, s}, nil, SortNew, TypeFilter(models.TypeScholarship), "", now)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ID)

	entries = Compose([]models.Post{q, s}, nil, SortNew, FilterAll, "", now)
	assert.Len(t, entries, 2)
}

func TestComposeSearch(t *testing.T) {
	a := post(1, 10, time.Hour)
	a.Title = "Fulbright Foreign Student Program"
	b := post(2, 10, time.Hour)
	b.Content = "The fulbright deadline is coming up."
	c := post(3, 10, time.Hour)
	c.Hub = "Graduate Studies"
	d := post(4, 10, time.Hour)
	d.Tags = pq.StringArray{"Full Ride", "USA"}

	posts := []models.Post{a, b, c, d}

	assert.Equal(t, []uint{1, 2}, ids(Compose(posts, nil, SortNew, FilterAll, "FULBRIGHT", now)))
	assert.Equal(t, []uint{3}, ids(Compose(posts, nil, SortNew, FilterAll, "graduate", now)))
	assert.Equal(t, []uint{4}, ids(Compose(posts, nil, SortNew, FilterAll, "full ride", now)))
	assert.Empty(t, Compose(posts, nil, SortNew, FilterAll, "nonexistent", now))
}

func TestComposeAttachesOverlay(t *testing.T) {
	posts := []models.Post{post(1, 10, time.Hour), post(2, 10, time.Hour)}
	overlay := map[uint]int{1: 1, 2: -1}

	entries := Compose(posts, overlay, SortNew, FilterAll, "", now)
	byID := map[uint]int{}
	for _, e := range entries {
		byID[e.ID] = e.UserVote
	}
	assert.Equal(t, 1, byID[1])
	assert.Equal(t, -1, byID[2])
}

func TestHotScore(t *testing.T) {
	// votes / (ageHours + 2)^1.5
	fresh := HotScore(100, now.Add(-time.Hour), now)
	stale := HotScore(100, now.Add(-48*time.Hour), now)
	assert.Greater(t, fresh, stale)

	// Zero votes score zero regardless of age.
	assert.Zero(t, HotScore(0, now.Add(-time.Hour), now))

	// Negative totals decay toward zero rather than growing.
	older := HotScore(-10, now.Add(-100*time.Hour), now)
	newer := HotScore(-10, now.Add(-time.Hour), now)
	assert.Greater(t, older, newer)
}

func TestSortModeValid(t *testing.T) {
	for _, m := range []SortMode{SortHot, SortNew, SortTop, SortUnanswered} {
		assert.True(t, m.Valid())
	}
	assert.False(t, SortMode("rising").Valid())
}
