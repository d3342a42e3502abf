package models

import (
	"time"

	"github.com/lib/pq"
)

// PostType is the kind of content a post carries.
type PostType string

const (
	TypeQuestion    PostType = "question"
	TypeScholarship PostType = "scholarship"
	TypeExperience  PostType = "experience"
	TypeDiscussion  PostType = "discussion"
)

func (t PostType) Valid() bool {
	switch t {
	case TypeQuestion, TypeScholarship, TypeExperience, TypeDiscussion:
		return true
	}
	return false
}

type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Type         PostType       `gorm:"not null;index" json:"type"`
	Title        string         `gorm:"not null" json:"title"`
	Content      string         `gorm:"type:text" json:"content"`
	Hub          string         `gorm:"not null;index" json:"hub"`
	Author       string         `json:"author"`
	AuthorID     string         `gorm:"index" json:"author_id"`
	Votes        int            `gorm:"default:0" json:"votes"`
	Comments     int            `gorm:"default:0" json:"comments"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsUnanswered bool           `json:"is_unanswered"`
	Scholarship  *Scholarship   `json:"scholarship,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Scholarship is the optional sub-record attached to scholarship posts.
type Scholarship struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	PostID      uint      `gorm:"uniqueIndex" json:"-"`
	Country     string    `json:"country"`
	Degree      string    `json:"degree"`
	Deadline    time.Time `json:"deadline"`
	Provider    string    `json:"provider"`
	Eligibility string    `json:"eligibility"`
	URL         string    `json:"url"`
}

// DeadlineStatus classifies how close a scholarship deadline is.
type DeadlineStatus string

const (
	DeadlineExpired DeadlineStatus = "expired"
	DeadlineUrgent  DeadlineStatus = "urgent" // 3 days or less
	DeadlineSoon    DeadlineStatus = "soon"   // 14 days or less
	DeadlineOpen    DeadlineStatus = "open"
)

// ClassifyDeadline buckets a deadline relative to now. Whole days are
// truncated, so a deadline exactly 3 days out is still "urgent" and one
// exactly 14 days out is still "soon".
func ClassifyDeadline(deadline, now time.Time) DeadlineStatus {
	if deadline.Before(now) {
		return DeadlineExpired
	}
	days := int(deadline.Sub(now).Hours() / 24)
	switch {
	case days <= 3:
		return DeadlineUrgent
	case days <= 14:
		return DeadlineSoon
	default:
		return DeadlineOpen
	}
}
