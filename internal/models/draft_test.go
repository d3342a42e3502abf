package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() PostDraft {
	return PostDraft{
		Type:    TypeDiscussion,
		Title:   "Best countries for funded PhDs?",
		Content: "Let's compare funding packages.",
		Hub:     "Graduate Studies",
	}
}

func TestPostDraftValidate(t *testing.T) {
	t.Run("valid discussion", func(t *testing.T) {
		d := validDraft()
		assert.NoError(t, d.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		d := validDraft()
		d.Title = "   "
		err := d.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("missing hub", func(t *testing.T) {
		d := validDraft()
		d.Hub = ""
		var verr *ValidationError
		require.ErrorAs(t, d.Validate(), &verr)
		assert.Equal(t, "hub", verr.Field)
	})

	t.Run("bad type", func(t *testing.T) {
		d := validDraft()
		d.Type = "rant"
		var verr *ValidationError
		require.ErrorAs(t, d.Validate(), &verr)
		assert.Equal(t, "type", verr.Field)
	})

	t.Run("pseudonymous without pseudonym", func(t *testing.T) {
		d := validDraft()
		d.IsPseudonymous = true
		var verr *ValidationError
		require.ErrorAs(t, d.Validate(), &verr)
		assert.Equal(t, "pseudonym", verr.Field)
	})

	t.Run("scholarship needs details", func(t *testing.T) {
		d := validDraft()
		d.Type = TypeScholarship
		var verr *ValidationError
		require.ErrorAs(t, d.Validate(), &verr)
		assert.Equal(t, "scholarship", verr.Field)
	})

	t.Run("scholarship needs deadline", func(t *testing.T) {
		d := validDraft()
		d.Type = TypeScholarship
		d.Scholarship = &ScholarshipDraft{Country: "Germany", Provider: "DAAD"}
		var verr *ValidationError
		require.ErrorAs(t, d.Validate(), &verr)
		assert.Equal(t, "scholarship.deadline", verr.Field)
	})

	t.Run("complete scholarship", func(t *testing.T) {
		d := validDraft()
		d.Type = TypeScholarship
		d.Scholarship = &ScholarshipDraft{
			Country:  "Germany",
			Provider: "DAAD",
			Deadline: time.Now().AddDate(0, 1, 0),
		}
		assert.NoError(t, d.Validate())
	})
}

func TestNormalizedTags(t *testing.T) {
	d := validDraft()
	d.Tags = []string{" STEM ", "stem", "", "Full Ride", "Europe", "full ride"}
	assert.Equal(t, []string{"STEM", "Full Ride", "Europe"}, d.NormalizedTags())
}

func TestCommentDraftValidate(t *testing.T) {
	d := CommentDraft{PostID: 1, Content: "nice find"}
	assert.NoError(t, d.Validate())

	d.Content = "  "
	var verr *ValidationError
	require.ErrorAs(t, d.Validate(), &verr)
	assert.Equal(t, "content", verr.Field)

	d = CommentDraft{Content: "orphaned"}
	require.ErrorAs(t, d.Validate(), &verr)
	assert.Equal(t, "post_id", verr.Field)
}
