package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namishh/bubble/models"
)

func seedUser(t *testing.T, users UserStore, name string) *models.User {
	t.Helper()
	user, err := users.Create(name, name+"@example.com", "hash")
	require.NoError(t, err)
	return user
}

func TestPostStoreCreateGetUpdateDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	owner := seedUser(t, users, "alice")

	post, err := posts.Create("First", "hello", owner.ID)
	require.NoError(t, err)
	require.NotZero(t, post.ID)

	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, owner.ID, got.UserID)

	require.NoError(t, posts.Update(got, "Renamed", "still hello"))
	got, err = posts.Get(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "still hello", got.Content)

	require.NoError(t, posts.Delete(got))
	_, err = posts.Get(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostStoreGetMissing(t *testing.T) {
	posts := NewPostStore(newTestDB(t))

	_, err := posts.Get(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostStorePagination(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	owner := seedUser(t, users, "alice")
	other := seedUser(t, users, "bob")

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 10; i++ {
		post, err := posts.Create(fmt.Sprintf("post-%d", i), "content", owner.ID)
		require.NoError(t, err)
		// Spread creation times so recency ordering is unambiguous.
		require.NoError(t, db.Model(post).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	_, err := posts.Create("intruder", "content", other.ID)
	require.NoError(t, err)

	page1, pagination, err := posts.ListByOwner(owner.ID, 1, 4)
	require.NoError(t, err)
	require.Len(t, page1, 4)
	assert.Equal(t, "post-10", page1[0].Title)
	assert.Equal(t, "post-7", page1[3].Title)
	assert.Equal(t, 10, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasNext())
	assert.False(t, pagination.HasPrev())

	page3, pagination, err := posts.ListByOwner(owner.ID, 3, 4)
	require.NoError(t, err)
	require.Len(t, page3, 2)
	assert.Equal(t, "post-2", page3[0].Title)
	assert.Equal(t, "post-1", page3[1].Title)
	assert.False(t, pagination.HasNext())

	// Out of range pages are empty, not errors.
	page4, _, err := posts.ListByOwner(owner.ID, 4, 4)
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestPostStoreListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	_, err := posts.Create("mine", "content", alice.ID)
	require.NoError(t, err)
	_, err = posts.Create("theirs", "content", bob.ID)
	require.NoError(t, err)

	listed, pagination, err := posts.ListByOwner(alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "mine", listed[0].Title)
	assert.Equal(t, 1, pagination.Total)
}

func TestPostStoreBadPageDefaults(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	posts := NewPostStore(db)
	owner := seedUser(t, users, "alice")

	_, err := posts.Create("only", "content", owner.ID)
	require.NoError(t, err)

	listed, pagination, err := posts.ListByOwner(owner.ID, 0, -1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, pagination.Page)
}
