package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func TestBuildCommentTree(t *testing.T) {
	comments := []Comment{
		{ID: 1, Content: "first root"},
		{ID: 2, Content: "second root"},
		{ID: 3, ParentID: ptr(1), Content: "reply to first"},
		{ID: 4, ParentID: ptr(3), Content: "nested reply"},
		{ID: 5, ParentID: ptr(1), Content: "another reply to first"},
	}

	roots := BuildCommentTree(comments)
	require.Len(t, roots, 2)

	assert.Equal(t, uint(1), roots[0].ID)
	assert.Equal(t, uint(2), roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, uint(3), roots[0].Replies[0].ID)
	assert.Equal(t, uint(5), roots[0].Replies[1].ID)

	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(4), roots[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTree_DropsOrphans(t *testing.T) {
	comments := []Comment{
		{ID: 1, Content: "root"},
		{ID: 2, ParentID: ptr(99), Content: "parent not in snapshot"},
	}

	roots := BuildCommentTree(comments)
	require.Len(t, roots, 1)
	assert.Equal(t, uint(1), roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildCommentTree_PreservesInputOrder(t *testing.T) {
	// The store returns newest first; replies still attach even though they
	// arrive before their parent in the slice.
	comments := []Comment{
		{ID: 4, ParentID: ptr(1), Content: "newest reply"},
		{ID: 3, ParentID: ptr(1), Content: "older reply"},
		{ID: 1, Content: "root"},
	}

	roots := BuildCommentTree(comments)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, uint(4), roots[0].Replies[0].ID)
	assert.Equal(t, uint(3), roots[0].Replies[1].ID)
}
