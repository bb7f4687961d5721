package repository

import (
	"fmt"
	"testing"
	"time"

	"pulse/internal/model"
	"pulse/pkg/config"
	"pulse/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Test Setup ---

func setupTestDB(t *testing.T) *gorm.DB {
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if err := db.InitDB(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanupTables(t)
	t.Cleanup(func() { cleanupTables(t) })

	return db.DB
}

// cleanupTables empties every table, children first.
func cleanupTables(t *testing.T) {
	for _, m := range []interface{}{
		&model.Comment{},
		&model.Follow{},
		&model.Post{},
		&model.Group{},
		&model.User{},
	} {
		if err := db.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error; err != nil {
			t.Logf("Warning: failed to cleanup table for %T: %v", m, err)
		}
	}
}

func createTestUser(t *testing.T, userRepo *UserRepository, username string) *model.User {
	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "testpassword",
	}
	err := userRepo.Create(user)
	require.NoError(t, err, "Failed to create test user %s", username)
	require.True(t, user.ID > 0)
	return user
}

func createTestGroup(t *testing.T, groupRepo *GroupRepository, slug string) *model.Group {
	group := &model.Group{
		Title:       "Group " + slug,
		Description: "test group",
		Slug:        slug,
	}
	err := groupRepo.Create(group)
	require.NoError(t, err, "Failed to create test group %s", slug)
	return group
}

func createTestPost(t *testing.T, postRepo *PostRepository, authorID uint, text string, groupID *uint) *model.Post {
	post := &model.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
	}
	err := postRepo.Create(post)
	require.NoError(t, err, "Failed to create test post")
	require.True(t, post.ID > 0)
	return post
}

// --- Tests ---

func TestPostRepository_Create(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "postauthor")
	post := createTestPost(t, postRepo, author.ID, "hello world", nil)

	found, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hello world", found.Text)
	assert.Equal(t, author.ID, found.AuthorID)
	assert.Nil(t, found.GroupID)
	assert.Equal(t, author.Username, found.Author.Username)
	assert.False(t, found.PubDate.IsZero(), "PubDate should be set on create")
}

func TestPostRepository_FindAll_Ordering(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "orderauthor")

	// Explicit pub dates, inserted out of order.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	texts := []struct {
		text   string
		offset time.Duration
	}{
		{"oldest", 0},
		{"newest", 2 * time.Hour},
		{"middle", time.Hour},
	}
	for _, p := range texts {
		post := &model.Post{
			Text:     p.text,
			AuthorID: author.ID,
			PubDate:  base.Add(p.offset),
		}
		require.NoError(t, postRepo.Create(post))
	}

	posts, err := postRepo.FindAll()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Text)
	assert.Equal(t, "middle", posts[1].Text)
	assert.Equal(t, "oldest", posts[2].Text)
}

func TestPostRepository_FindByAuthorAndID(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "owner")
	other := createTestUser(t, userRepo, "other")
	post := createTestPost(t, postRepo, author.ID, "mine", nil)

	found, err := postRepo.FindByAuthorAndID(author.ID, post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.ID, found.ID)

	// The same post id under a different author is not found.
	mismatch, err := postRepo.FindByAuthorAndID(other.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, mismatch)

	missing, err := postRepo.FindByAuthorAndID(author.ID, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepository_FindByGroup(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	groupRepo := NewGroupRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "groupauthor")
	group := createTestGroup(t, groupRepo, "gruppa")
	otherGroup := createTestGroup(t, groupRepo, "drugaja")

	inGroup := createTestPost(t, postRepo, author.ID, "тестовая публикация", &group.ID)
	createTestPost(t, postRepo, author.ID, "elsewhere", &otherGroup.ID)
	createTestPost(t, postRepo, author.ID, "ungrouped", nil)

	posts, err := postRepo.FindByGroup(group.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, inGroup.ID, posts[0].ID)
	assert.Equal(t, "тестовая публикация", posts[0].Text)
}

func TestPostRepository_GroupDeleteNullsReference(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	groupRepo := NewGroupRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "demo")
	group := createTestGroup(t, groupRepo, "gruppa")
	post := createTestPost(t, postRepo, author.ID, "тестовая публикация", &group.ID)

	require.NoError(t, groupRepo.Delete(group.ID))

	// The post survives with a nulled group reference.
	found, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.GroupID)
	assert.Equal(t, "тестовая публикация", found.Text)
}

func TestPostRepository_UserDeleteCascades(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	postRepo := NewPostRepository(database)
	commentRepo := NewCommentRepository(database)

	author := createTestUser(t, userRepo, "doomed")
	commenter := createTestUser(t, userRepo, "commenter")
	post := createTestPost(t, postRepo, author.ID, "will vanish", nil)

	comment := &model.Comment{PostID: post.ID, AuthorID: commenter.ID, Text: "me too"}
	require.NoError(t, commentRepo.Create(comment))

	require.NoError(t, userRepo.Delete(author.ID))

	found, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "deleting the author should delete the post")

	comments, err := commentRepo.FindByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments, "comments should cascade with the post")
}

func TestPostRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	userRepo := NewUserRepository(database)
	groupRepo := NewGroupRepository(database)
	postRepo := NewPostRepository(database)

	author := createTestUser(t, userRepo, "editor")
	group := createTestGroup(t, groupRepo, "edits")
	post := createTestPost(t, postRepo, author.ID, "before", nil)
	originalPubDate := post.PubDate

	post.Text = "after"
	post.GroupID = &group.ID
	require.NoError(t, postRepo.Update(post))

	count, err := postRepo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "update must not create a new row")

	found, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "after", found.Text)
	require.NotNil(t, found.GroupID)
	assert.Equal(t, group.ID, *found.GroupID)
	assert.WithinDuration(t, originalPubDate, found.PubDate, time.Second)
}
