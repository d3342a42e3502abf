package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"` // nil = top-level
	Author    string    `json:"author"`
	AuthorID  string    `gorm:"index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Votes     int       `gorm:"default:0" json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment with its resolved replies.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree reconstructs the reply tree from flat parent references.
// Input order is preserved among siblings. A comment whose parent is missing
// from the input is dropped rather than promoted, matching how the post view
// has always rendered partial snapshots.
func BuildCommentTree(comments []Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c}
	}

	var roots []*CommentNode
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
			}
			continue
		}
		roots = append(roots, node)
	}
	return roots
}
