// Package feed derives the displayable post list: vote overlay attached,
// search and type filters applied, then one of the four sort modes. The whole
// thing is a pure function of its inputs and is recomputed from scratch on
// every change.
package feed

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sreddit/sreddit/internal/models"
)

type SortMode string

const (
	SortHot        SortMode = "hot"
	SortNew        SortMode = "new"
	SortTop        SortMode = "top"
	SortUnanswered SortMode = "unanswered"
)

func (m SortMode) Valid() bool {
	switch m {
	case SortHot, SortNew, SortTop, SortUnanswered:
		return true
	}
	return false
}

// TypeFilter narrows the feed to one post type; FilterAll passes everything.
type TypeFilter string

const FilterAll TypeFilter = "all"

// Entry is a post with the current identity's vote direction layered on.
// The vote count itself already includes any optimistic adjustment; the
// overlay only drives highlight state.
type Entry struct {
	models.Post
	UserVote int `json:"user_vote"`
}

// Compose produces the ordered feed for rendering. Hot uses a decaying score
// of votes over age; ties keep input order (the sorts are stable).
func Compose(posts []models.Post, overlay map[uint]int, mode SortMode, filter TypeFilter, query string, now time.Time) []Entry {
	entries := make([]Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, Entry{Post: p, UserVote: overlay[p.ID]})
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		entries = filterEntries(entries, func(e Entry) bool { return matchesQuery(e.Post, q) })
	}
	if filter != "" && filter != FilterAll {
		entries = filterEntries(entries, func(e Entry) bool { return e.Type == models.PostType(filter) })
	}

	switch mode {
	case SortNew:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	case SortTop:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Votes > entries[j].Votes
		})
	case SortUnanswered:
		entries = filterEntries(entries, func(e Entry) bool {
			return e.IsUnanswered || e.Comments == 0
		})
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	default: // hot
		scores := make([]float64, len(entries))
		for i, e := range entries {
			scores[i] = HotScore(e.Votes, e.CreatedAt, now)
		}
		idx := make([]int, len(entries))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })
		ordered := make([]Entry, len(entries))
		for i, k := range idx {
			ordered[i] = entries[k]
		}
		entries = ordered
	}

	return entries
}

// HotScore favors recent, highly voted posts: votes / (ageHours + 2)^1.5.
func HotScore(votes int, createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	return float64(votes) / math.Pow(ageHours+2, 1.5)
}

func matchesQuery(p models.Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.Hub), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	out := entries[:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
