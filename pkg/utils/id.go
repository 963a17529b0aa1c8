package utils

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq uint64

// genID builds "<prefix>-<unix_nano>-<seq>". The timestamp prefix keeps
// IDs creation-ordered; the atomic sequence disambiguates IDs minted in
// the same nanosecond.
func genID(prefix string) string {
	n := time.Now().UTC().UnixNano()
	s := atomic.AddUint64(&idSeq, 1)
	return fmt.Sprintf("%s-%d-%d", prefix, n, s)
}

// GenUserID generates a unique user ID.
func GenUserID() string { return genID("u") }

// GenPostID generates a unique post ID.
func GenPostID() string { return genID("p") }

// GenCommentID generates a unique comment ID.
func GenCommentID() string { return genID("c") }

// GenMessageID generates a unique message ID.
func GenMessageID() string { return genID("m") }
