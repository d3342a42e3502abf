package models

import "time"

// Vote model - tracks individual user votes on posts. One logical vote per
// (user, post) pair, enforced by the unique index.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	Vote      int       `gorm:"not null" json:"vote"` // -1 or 1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteResult is what a vote mutation settles on: the direction now recorded
// for the user and the delta applied to the post's vote count.
type VoteResult struct {
	NewVote  int `json:"new_vote"`
	VoteDiff int `json:"vote_diff"`
}

// NextVote computes the vote toggle algebra shared by the optimistic
// controller and the store, so both sides arrive at the same delta:
// same direction again clears the vote, the opposite direction switches it
// (delta of two), and no prior vote records it as new.
func NextVote(current, direction int) VoteResult {
	switch {
	case current == direction:
		return VoteResult{NewVote: 0, VoteDiff: -direction}
	case current != 0:
		return VoteResult{NewVote: direction, VoteDiff: direction * 2}
	default:
		return VoteResult{NewVote: direction, VoteDiff: direction}
	}
}

// Bookmark model - existence marks a post as saved by a user.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index;uniqueIndex:idx_bookmarks_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_bookmarks_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
