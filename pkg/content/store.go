// Package content owns posts, their nested comments and like sets.
// Author ids are plain references into the identity store; nothing is
// enforced at write time.
package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"socialdb/pkg/logger"
	"socialdb/pkg/models"
	"socialdb/pkg/seed"
	"socialdb/pkg/store"
	"socialdb/pkg/telemetry"
	"socialdb/pkg/utils"
)

// StorageKey is the blob key the full content state lives under.
const StorageKey = "post-storage"

// Store holds posts newest-created-first by construction: CreatePost
// prepends. FeedPosts still sorts by timestamp so the feed order holds
// even for state written with older timestamps.
type Store struct {
	mu    sync.RWMutex
	blob  store.Blob
	posts []models.Post
}

type persisted struct {
	Posts []models.Post `json:"posts"`
}

// NewStore loads content state from blob, seeding sample posts on
// first run (absent blob).
func NewStore(blob store.Blob) (*Store, error) {
	s := &Store{blob: blob}
	raw, ok, err := blob.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", StorageKey, err)
	}
	if !ok {
		s.posts = seed.Posts(time.Now().UTC())
		if err := s.persist("seed"); err != nil {
			return nil, err
		}
		logger.Info("content_seeded", "posts", len(s.posts))
		return s, nil
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	s.posts = p.Posts
	return s, nil
}

func (s *Store) persist(op string) error {
	b, err := json.Marshal(persisted{Posts: s.posts})
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.blob.Set(StorageKey, b); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	telemetry.Mutation("content", op)
	return nil
}

// CreatePost prepends a new post. Content emptiness is the caller's
// check; image may be empty.
func (s *Store) CreatePost(authorID models.UserID, content, image string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Post{
		ID:        models.PostID(utils.GenPostID()),
		AuthorID:  authorID,
		Content:   content,
		Image:     image,
		Likes:     []models.UserID{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	s.posts = append([]models.Post{p}, s.posts...)
	if err := s.persist("create_post"); err != nil {
		return models.Post{}, err
	}
	logger.Info("post_created", "post", string(p.ID), "author", string(authorID))
	return clonePost(p), nil
}

// DeletePost removes a post and, because comments are nested in it, all
// of its comments in the same write. No-op when absent. Restricting
// deletion to the author is the caller's job.
func (s *Store) DeletePost(postID models.PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0:0]
	for _, p := range s.posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(s.posts) {
		return nil
	}
	s.posts = kept
	if err := s.persist("delete_post"); err != nil {
		return err
	}
	logger.Info("post_deleted", "post", string(postID))
	return nil
}

// LikePost adds userID to the post's like set. Liking an already-liked
// post is a silent no-op; likes never hold duplicates.
func (s *Store) LikePost(postID models.PostID, userID models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].LikedBy(userID) {
			return nil
		}
		s.posts[i].Likes = append(s.posts[i].Likes, userID)
		return s.persist("like_post")
	}
	return nil
}

// UnlikePost removes userID from the post's like set. Unliking a
// non-liker is a silent no-op.
func (s *Store) UnlikePost(postID models.PostID, userID models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if !s.posts[i].LikedBy(userID) {
			return nil
		}
		likes := s.posts[i].Likes[:0:0]
		for _, id := range s.posts[i].Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		s.posts[i].Likes = likes
		return s.persist("unlike_post")
	}
	return nil
}

// AddComment appends a comment to the post's collection, preserving
// insertion order in storage. No-op when the post is absent.
func (s *Store) AddComment(postID models.PostID, authorID models.UserID, content string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		c := models.Comment{
			ID:        models.CommentID(utils.GenCommentID()),
			PostID:    postID,
			AuthorID:  authorID,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		}
		s.posts[i].Comments = append(s.posts[i].Comments, c)
		if err := s.persist("add_comment"); err != nil {
			return models.Comment{}, err
		}
		logger.Info("comment_added", "post", string(postID), "comment", string(c.ID))
		return c, nil
	}
	return models.Comment{}, nil
}

// DeleteComment removes one comment from one post. No-op when either is
// absent. Restricting deletion to the comment author is the caller's
// job.
func (s *Store) DeleteComment(postID models.PostID, commentID models.CommentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		kept := s.posts[i].Comments[:0:0]
		for _, c := range s.posts[i].Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(s.posts[i].Comments) {
			return nil
		}
		s.posts[i].Comments = kept
		return s.persist("delete_comment")
	}
	return nil
}

// GetPost returns one post by id.
func (s *Store) GetPost(postID models.PostID) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == postID {
			return clonePost(p), true
		}
	}
	return models.Post{}, false
}

// PostsByUser filters posts by author, preserving storage order
// (newest-created-first).
func (s *Store) PostsByUser(userID models.UserID) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.AuthorID == userID {
			out = append(out, clonePost(p))
		}
	}
	return out
}

// FeedPosts returns all posts sorted by CreatedAt descending. The sort
// is stable so equal timestamps keep storage order. Recomputed on every
// call; the feed is never cached.
func (s *Store) FeedPosts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CommentsNewestFirst returns a post's comments in display order
// (CreatedAt descending); storage keeps insertion order.
func CommentsNewestFirst(p models.Post) []models.Comment {
	out := append([]models.Comment(nil), p.Comments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// clonePost copies the post with its slices so callers cannot reach
// back into store state.
func clonePost(p models.Post) models.Post {
	p.Likes = append([]models.UserID(nil), p.Likes...)
	p.Comments = append([]models.Comment(nil), p.Comments...)
	return p
}
