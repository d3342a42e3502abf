package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sreddit/sreddit/internal/database"
	"github.com/sreddit/sreddit/internal/models"
)

// testDB starts a throwaway Postgres and migrates the schema. Skips when no
// container runtime is available.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sreddit_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Skipf("starting postgres container: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func scholarshipDraft(title string) models.PostDraft {
	return models.PostDraft{
		Type:     models.TypeScholarship,
		Title:    title,
		Content:  "Full funding available.",
		Hub:      "Graduate Studies",
		Author:   "Anonymous",
		AuthorID: "anon_test",
		Tags:     []string{"Full Ride", "Europe"},
		Scholarship: &models.ScholarshipDraft{
			Country:  "Germany",
			Degree:   "Masters",
			Deadline: time.Now().AddDate(0, 1, 0),
			Provider: "DAAD",
		},
	}
}

func TestNewStoreIsReadyWithoutSideEffects(t *testing.T) {
	store := NewStore(nil)
	require.NotNil(t, store)
	assert.NotNil(t, store.hubs)
	assert.Equal(t, 5*time.Second, store.pollInterval)
}

func TestStoreCreateAndFetchPosts(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	first, err := store.CreatePost(ctx, scholarshipDraft("older"))
	require.NoError(t, err)

	question := models.PostDraft{
		Type:     models.TypeQuestion,
		Title:    "newer",
		Content:  "How do I apply?",
		Hub:      "Graduate Studies",
		Author:   "Anonymous",
		AuthorID: "anon_test",
	}
	second, err := store.CreatePost(ctx, question)
	require.NoError(t, err)
	assert.True(t, second.IsUnanswered, "questions start unanswered")

	posts, err := store.FetchPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Newest first.
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	// Scholarship sub-record comes back with the post.
	require.NotNil(t, posts[1].Scholarship)
	assert.Equal(t, "DAAD", posts[1].Scholarship.Provider)
	assert.Equal(t, []string{"Full Ride", "Europe"}, []string(posts[1].Tags))
}

func TestStoreCreatePostRejectsInvalidDraft(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)

	_, err := store.CreatePost(context.Background(), models.PostDraft{Type: models.TypeQuestion})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	posts, err := store.FetchPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestStoreApplyVoteToggleAlgebra(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, scholarshipDraft("votable"))
	require.NoError(t, err)

	votesFor := func(id uint) int {
		var p models.Post
		require.NoError(t, db.First(&p, id).Error)
		return p.Votes
	}

	// First up.
	res, err := store.ApplyVote(ctx, "user_a", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VoteResult{NewVote: 1, VoteDiff: 1}, res)
	assert.Equal(t, 1, votesFor(post.ID))

	// Same direction clears.
	res, err = store.ApplyVote(ctx, "user_a", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VoteResult{NewVote: 0, VoteDiff: -1}, res)
	assert.Equal(t, 0, votesFor(post.ID))

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("user_id = ?", "user_a").Count(&count).Error)
	assert.Zero(t, count, "cleared votes leave no record")

	// Down, then flip to up swings by two.
	_, err = store.ApplyVote(ctx, "user_a", post.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, votesFor(post.ID))

	res, err = store.ApplyVote(ctx, "user_a", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VoteResult{NewVote: 1, VoteDiff: 2}, res)
	assert.Equal(t, 1, votesFor(post.ID))

	// A second user's vote stacks on the same counter.
	_, err = store.ApplyVote(ctx, "user_b", post.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, votesFor(post.ID))
}

func TestStoreApplyVoteUnknownPost(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)

	_, err := store.ApplyVote(context.Background(), "user_a", 9999, 1)
	var merr *MutationError
	assert.ErrorAs(t, err, &merr)
}

func TestStoreToggleBookmark(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, scholarshipDraft("saveable"))
	require.NoError(t, err)

	on, err := store.ToggleBookmark(ctx, "user_a", post.ID)
	require.NoError(t, err)
	assert.True(t, on)

	ids, err := store.FetchBookmarks(ctx, "user_a")
	require.NoError(t, err)
	assert.Equal(t, []uint{post.ID}, ids)

	// Another user's bookmarks are separate.
	other, err := store.FetchBookmarks(ctx, "user_b")
	require.NoError(t, err)
	assert.Empty(t, other)

	off, err := store.ToggleBookmark(ctx, "user_a", post.ID)
	require.NoError(t, err)
	assert.False(t, off)

	ids, err = store.FetchBookmarks(ctx, "user_a")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStoreComments(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, scholarshipDraft("discussable"))
	require.NoError(t, err)

	parent, err := store.CreateComment(ctx, models.CommentDraft{
		PostID:   post.ID,
		Author:   "ScholarMentor",
		AuthorID: "user_1",
		Content:  "Strong proposal matters most.",
	})
	require.NoError(t, err)

	_, err = store.CreateComment(ctx, models.CommentDraft{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Author:   "Anonymous",
		AuthorID: "anon_1",
		Content:  "Any examples?",
	})
	require.NoError(t, err)

	comments, err := store.FetchComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	tree := models.BuildCommentTree(comments)
	require.Len(t, tree, 1)
	assert.Equal(t, parent.ID, tree[0].ID)
	require.Len(t, tree[0].Replies, 1)

	// Comment counter moved with the writes.
	var p models.Post
	require.NoError(t, db.First(&p, post.ID).Error)
	assert.Equal(t, 2, p.Comments)
}

func TestStoreSubscribePostsPushesChanges(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	store.SetPollInterval(50 * time.Millisecond)
	ctx := context.Background()

	post, err := store.CreatePost(ctx, scholarshipDraft("watched"))
	require.NoError(t, err)

	snapshots := make(chan []models.Post, 8)
	unsubscribe, err := store.SubscribePosts(func(posts []models.Post) {
		snapshots <- posts
	})
	require.NoError(t, err)
	defer unsubscribe()

	// Initial snapshot arrives without any change.
	select {
	case posts := <-snapshots:
		require.Len(t, posts, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	// A vote changes the counter and triggers a push.
	_, err = store.ApplyVote(ctx, "user_a", post.ID, 1)
	require.NoError(t, err)

	select {
	case posts := <-snapshots:
		require.Len(t, posts, 1)
		assert.Equal(t, 1, posts[0].Votes)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after vote")
	}

	// Unsubscribe is idempotent.
	unsubscribe()
	unsubscribe()
}

func TestStoreFetchHubsUsesCache(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Hub{Name: "Graduate Studies", Icon: "🎓", Members: 12400}).Error)

	hubs, err := store.FetchHubs(ctx)
	require.NoError(t, err)
	require.Len(t, hubs, 1)

	// A write bypassing the cache is invisible until the TTL lapses.
	require.NoError(t, db.Create(&models.Hub{Name: "Resources", Icon: "📁", Members: 7600}).Error)
	cached, err := store.FetchHubs(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}
