package models

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a client-side form problem, surfaced inline before
// any network call is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PostDraft carries the fields a user fills in before a post exists remotely.
// The server assigns the identifier, creation time and zero counters.
type PostDraft struct {
	Type           PostType `json:"type"`
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Hub            string   `json:"hub"`
	Tags           []string `json:"tags"`
	IsPseudonymous bool     `json:"is_pseudonymous"`
	Pseudonym      string   `json:"pseudonym"`

	// Resolved by the mutation controller from the identity-disclosure
	// choice before the draft reaches the store.
	Author   string `json:"author"`
	AuthorID string `json:"author_id"`

	Scholarship *ScholarshipDraft `json:"scholarship,omitempty"`
}

type ScholarshipDraft struct {
	Country     string    `json:"country"`
	Degree      string    `json:"degree"`
	Deadline    time.Time `json:"deadline"`
	Provider    string    `json:"provider"`
	Eligibility string    `json:"eligibility"`
	URL         string    `json:"url"`
}

func (d *PostDraft) Validate() error {
	if !d.Type.Valid() {
		return &ValidationError{Field: "type", Message: "must be question, scholarship, experience or discussion"}
	}
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if strings.TrimSpace(d.Hub) == "" {
		return &ValidationError{Field: "hub", Message: "hub is required"}
	}
	if d.IsPseudonymous && strings.TrimSpace(d.Pseudonym) == "" {
		return &ValidationError{Field: "pseudonym", Message: "pseudonym is required when posting pseudonymously"}
	}
	if d.Type == TypeScholarship {
		s := d.Scholarship
		if s == nil {
			return &ValidationError{Field: "scholarship", Message: "scholarship details are required"}
		}
		if strings.TrimSpace(s.Country) == "" {
			return &ValidationError{Field: "scholarship.country", Message: "country is required"}
		}
		if strings.TrimSpace(s.Provider) == "" {
			return &ValidationError{Field: "scholarship.provider", Message: "provider is required"}
		}
		if s.Deadline.IsZero() {
			return &ValidationError{Field: "scholarship.deadline", Message: "application deadline is required"}
		}
	}
	return nil
}

// NormalizedTags returns the draft's tags trimmed and de-duplicated,
// preserving first-seen order. A post never carries the same tag twice.
func (d *PostDraft) NormalizedTags() []string {
	seen := make(map[string]bool, len(d.Tags))
	out := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// CommentDraft carries a comment before the store assigns its identity.
type CommentDraft struct {
	PostID   uint   `json:"post_id"`
	ParentID *uint  `json:"parent_id,omitempty"`
	Author   string `json:"author"`
	AuthorID string `json:"author_id"`
	Content  string `json:"content"`
}

func (d *CommentDraft) Validate() error {
	if d.PostID == 0 {
		return &ValidationError{Field: "post_id", Message: "post is required"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &ValidationError{Field: "content", Message: "comment cannot be empty"}
	}
	return nil
}
