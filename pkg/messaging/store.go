// Package messaging owns the flat direct-message log and derives
// per-counterpart conversation summaries from it on every query.
package messaging

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

// StorageKey is the blob key the full message log lives under.
const StorageKey = "message-storage"

type Store struct {
	mu       sync.RWMutex
	blob     store.Blob
	messages []models.Message
}

type persisted struct {
	Messages []models.Message `json:"messages"`
}

// NewStore loads the message log from blob, seeding a sample exchange
// on first run (absent blob).
func NewStore(blob store.Blob) (*Store, error) {
	s := &Store{blob: blob}
	raw, ok, err := blob.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", StorageKey, err)
	}
	if !ok {
		s.messages = seed.Messages(time.Now().UTC())
		if err := s.persist("seed"); err != nil {
			return nil, err
		}
		logger.Info("messaging_seeded", "messages", len(s.messages))
		return s, nil
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	s.messages = p.Messages
	return s, nil
}

func (s *Store) persist(op string) error {
	b, err := json.Marshal(persisted{Messages: s.messages})
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.blob.Set(StorageKey, b); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	telemetry.Mutation("messaging", op)
	return nil
}

// SendMessage appends a message with a fresh id and timestamp, unread.
// Content emptiness is the caller's check. Sender and receiver are
// directional roles, not symmetric.
func (s *Store) SendMessage(senderID, receiverID models.UserID, content string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.Message{
		ID:         models.MessageID(utils.GenMessageID()),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
		Read:       false,
	}
	s.messages = append(s.messages, m)
	if err := s.persist("send_message"); err != nil {
		return models.Message{}, err
	}
	logger.Info("message_sent", "message", string(m.ID), "sender", string(senderID), "receiver", string(receiverID))
	return m, nil
}

// Conversation returns every message whose unordered {sender, receiver}
// pair equals {a, b}, oldest first. A transcript reads top-down, which
// is the opposite of the feed's ordering.
func (s *Store) Conversation(a, b models.UserID) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Conversations groups all messages touching viewer by counterpart.
// LastMessage is the max-CreatedAt message of each group; UnreadCount
// counts unread messages addressed to the viewer. Entries sort by
// LastMessage.CreatedAt descending, tie-broken by counterpart id
// ascending so the order is deterministic.
func (s *Store) Conversations(viewer models.UserID) []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := map[models.UserID]*models.Conversation{}
	for _, m := range s.messages {
		var other models.UserID
		switch viewer {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}
		g, ok := groups[other]
		if !ok {
			g = &models.Conversation{CounterpartID: other}
			groups[other] = g
		}
		// on equal timestamps the later log entry wins
		if g.LastMessage == nil || !m.CreatedAt.Before(g.LastMessage.CreatedAt) {
			mm := m
			g.LastMessage = &mm
		}
		if m.ReceiverID == viewer && !m.Read {
			g.UnreadCount++
		}
	}

	out := make([]models.Conversation, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessage, out[j].LastMessage
		switch {
		case a == nil && b == nil:
		case a == nil || b == nil:
			return b == nil
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.After(b.CreatedAt)
		}
		return out[i].CounterpartID < out[j].CounterpartID
	})
	return out
}

// MarkAsRead flips Read on every currently-unread message from senderID
// to receiverID. Directional and idempotent; the reverse direction is
// untouched.
func (s *Store) MarkAsRead(senderID, receiverID models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for i := range s.messages {
		m := &s.messages[i]
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist("mark_as_read")
}

// DeleteMessage removes one message by id; no-op when absent.
func (s *Store) DeleteMessage(messageID models.MessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0:0]
	for _, m := range s.messages {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(s.messages) {
		return nil
	}
	s.messages = kept
	if err := s.persist("delete_message"); err != nil {
		return err
	}
	logger.Info("message_deleted", "message", string(messageID))
	return nil
}
