package content

import (
	"encoding/json"
	"testing"
	"time"

	"socialdb/pkg/models"
	"socialdb/pkg/store"
)

func newEmptyStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()
	blob := store.NewMemory()
	if err := blob.Set(StorageKey, []byte(`{"posts":[]}`)); err != nil {
		t.Fatalf("preload blob: %v", err)
	}
	s, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, blob
}

// newStoreWithPosts writes the given posts as the stored state and
// loads a store over them, so tests control timestamps and order.
func newStoreWithPosts(t *testing.T, posts []models.Post) *Store {
	t.Helper()
	blob := store.NewMemory()
	b, err := json.Marshal(persisted{Posts: posts})
	if err != nil {
		t.Fatalf("marshal posts: %v", err)
	}
	if err := blob.Set(StorageKey, b); err != nil {
		t.Fatalf("preload blob: %v", err)
	}
	s, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestCreatePostPrepends(t *testing.T) {
	s, _ := newEmptyStore(t)
	first, err := s.CreatePost("1", "first", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	second, err := s.CreatePost("1", "second", "http://example.com/x.png")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	posts := s.PostsByUser("1")
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts; got %d", len(posts))
	}
	if posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Fatalf("storage order must be newest-created-first: %v", posts)
	}
	if posts[0].Image != "http://example.com/x.png" {
		t.Fatalf("image not kept: %q", posts[0].Image)
	}
	if len(posts[0].Likes) != 0 || len(posts[0].Comments) != 0 {
		t.Fatalf("new post must start with empty likes and comments")
	}
}

func TestLikeIsIdempotent(t *testing.T) {
	s, _ := newEmptyStore(t)
	p, _ := s.CreatePost("1", "hello", "")
	for i := 0; i < 2; i++ {
		if err := s.LikePost(p.ID, "2"); err != nil {
			t.Fatalf("LikePost: %v", err)
		}
	}
	got, _ := s.GetPost(p.ID)
	if len(got.Likes) != 1 || got.Likes[0] != "2" {
		t.Fatalf("liking twice must equal liking once; likes=%v", got.Likes)
	}
}

func TestUnlikeNonLikerIsNoop(t *testing.T) {
	s, _ := newEmptyStore(t)
	p, _ := s.CreatePost("1", "hello", "")
	if err := s.LikePost(p.ID, "2"); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if err := s.UnlikePost(p.ID, "3"); err != nil {
		t.Fatalf("UnlikePost non-liker: %v", err)
	}
	got, _ := s.GetPost(p.ID)
	if len(got.Likes) != 1 || got.Likes[0] != "2" {
		t.Fatalf("unliking a non-liker must not change likes; got %v", got.Likes)
	}
	if err := s.UnlikePost(p.ID, "2"); err != nil {
		t.Fatalf("UnlikePost: %v", err)
	}
	got, _ = s.GetPost(p.ID)
	if len(got.Likes) != 0 {
		t.Fatalf("expected empty likes; got %v", got.Likes)
	}
	// absent post is a silent no-op too
	if err := s.UnlikePost("missing", "2"); err != nil {
		t.Fatalf("UnlikePost absent post: %v", err)
	}
}

func TestFeedSortsByCreatedAtRegardlessOfStorageOrder(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	// storage order deliberately scrambled
	s := newStoreWithPosts(t, []models.Post{
		{ID: "a", AuthorID: "1", Content: "middle", CreatedAt: t2},
		{ID: "b", AuthorID: "1", Content: "newest", CreatedAt: t3},
		{ID: "c", AuthorID: "1", Content: "oldest", CreatedAt: t1},
	})
	feed := s.FeedPosts()
	want := []models.PostID{"b", "a", "c"}
	for i, id := range want {
		if feed[i].ID != id {
			t.Fatalf("feed[%d] = %s; want %s", i, feed[i].ID, id)
		}
	}
}

func TestFeedStableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := newStoreWithPosts(t, []models.Post{
		{ID: "x", AuthorID: "1", CreatedAt: ts},
		{ID: "y", AuthorID: "1", CreatedAt: ts},
	})
	feed := s.FeedPosts()
	if feed[0].ID != "x" || feed[1].ID != "y" {
		t.Fatalf("equal timestamps must keep storage order; got %s,%s", feed[0].ID, feed[1].ID)
	}
}

func TestCommentLifecycle(t *testing.T) {
	s, _ := newEmptyStore(t)
	p, _ := s.CreatePost("1", "hello", "")
	c1, err := s.AddComment(p.ID, "2", "first")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	c2, err := s.AddComment(p.ID, "3", "second")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	got, _ := s.GetPost(p.ID)
	if len(got.Comments) != 2 || got.Comments[0].ID != c1.ID || got.Comments[1].ID != c2.ID {
		t.Fatalf("comments must keep insertion order; got %v", got.Comments)
	}
	if got.Comments[0].PostID != p.ID {
		t.Fatalf("comment back-reference wrong: %s", got.Comments[0].PostID)
	}
	if err := s.DeleteComment(p.ID, c1.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	got, _ = s.GetPost(p.ID)
	if len(got.Comments) != 1 || got.Comments[0].ID != c2.ID {
		t.Fatalf("expected only second comment; got %v", got.Comments)
	}
	// deleting a missing comment is a silent no-op
	if err := s.DeleteComment(p.ID, "nope"); err != nil {
		t.Fatalf("DeleteComment absent: %v", err)
	}
}

func TestCommentsNewestFirst(t *testing.T) {
	ts := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	p := models.Post{Comments: []models.Comment{
		{ID: "c1", CreatedAt: ts},
		{ID: "c2", CreatedAt: ts.Add(time.Minute)},
	}}
	disp := CommentsNewestFirst(p)
	if disp[0].ID != "c2" || disp[1].ID != "c1" {
		t.Fatalf("display order must be newest first; got %v", disp)
	}
	// storage order untouched
	if p.Comments[0].ID != "c1" {
		t.Fatalf("CommentsNewestFirst must not mutate the post")
	}
}

func TestDeletePostCascades(t *testing.T) {
	s, _ := newEmptyStore(t)
	p, _ := s.CreatePost("1", "doomed", "")
	if _, err := s.AddComment(p.ID, "2", "a comment"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	keep, _ := s.CreatePost("2", "kept", "")
	if err := s.DeletePost(p.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, ok := s.GetPost(p.ID); ok {
		t.Fatalf("deleted post still present")
	}
	if got := s.PostsByUser("1"); len(got) != 0 {
		t.Fatalf("PostsByUser still lists deleted post: %v", got)
	}
	feed := s.FeedPosts()
	if len(feed) != 1 || feed[0].ID != keep.ID {
		t.Fatalf("feed must only hold the kept post; got %v", feed)
	}
	// deleting again is a silent no-op
	if err := s.DeletePost(p.ID); err != nil {
		t.Fatalf("DeletePost absent: %v", err)
	}
}

func TestSeededScenario(t *testing.T) {
	// fresh blob seeds the sample posts and users 1..3 exist upstream
	blob := store.NewMemory()
	s, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	p, err := s.CreatePost("1", "hello", "")
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if err := s.LikePost(p.ID, "2"); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	feed := s.FeedPosts()
	if feed[0].ID != p.ID {
		t.Fatalf("new post must lead the feed; got %s", feed[0].ID)
	}
	if feed[0].AuthorID != "1" {
		t.Fatalf("author = %s; want 1", feed[0].AuthorID)
	}
	if len(feed[0].Likes) != 1 || feed[0].Likes[0] != "2" {
		t.Fatalf("likes = %v; want [2]", feed[0].Likes)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	s, blob := newEmptyStore(t)
	p, _ := s.CreatePost("1", "persisted", "")
	if err := s.LikePost(p.ID, "2"); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	reloaded, err := NewStore(blob)
	if err != nil {
		t.Fatalf("NewStore reload: %v", err)
	}
	got, ok := reloaded.GetPost(p.ID)
	if !ok {
		t.Fatalf("post lost across reload")
	}
	if got.Content != "persisted" || len(got.Likes) != 1 {
		t.Fatalf("state diverged across reload: %+v", got)
	}
}
