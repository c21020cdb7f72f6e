package schedule

import (
	"time"

	"github.com/letieu/hive-promoter/internal/content"
)

// ScheduledPost is one queue entry. Posted entries stay in the queue as
// an audit trail; PostedAt is set exactly when Posted flips to true.
type ScheduledPost struct {
	ID            string         `json:"id"`
	Content       *content.Tweet `json:"content"`
	ScheduledTime time.Time      `json:"scheduled_time"`
	Posted        bool           `json:"posted"`
	PostedAt      *time.Time     `json:"posted_at,omitempty"`
	ExternalIDs   []string       `json:"external_ids,omitempty"`
}

// Queue holds scheduled posts in order. The in-memory implementation is
// the only one shipped; the interface exists so a durable store can be
// substituted without touching scheduler control logic.
type Queue interface {
	Enqueue(post *ScheduledPost)
	// PeekNext returns the earliest unposted entry, or nil.
	PeekNext() *ScheduledPost
	MarkPosted(id string, externalIDs []string, at time.Time)
	// Snapshot returns the full ordered queue, posted entries included.
	Snapshot() []*ScheduledPost
	// Pending counts unposted entries.
	Pending() int
}

// MemoryQueue is the in-memory Queue. Contents are lost on restart — an
// accepted limitation, not a defect.
type MemoryQueue struct {
	posts []*ScheduledPost
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(post *ScheduledPost) {
	q.posts = append(q.posts, post)
}

func (q *MemoryQueue) PeekNext() *ScheduledPost {
	var next *ScheduledPost
	for _, p := range q.posts {
		if p.Posted {
			continue
		}
		if next == nil || p.ScheduledTime.Before(next.ScheduledTime) {
			next = p
		}
	}
	return next
}

func (q *MemoryQueue) MarkPosted(id string, externalIDs []string, at time.Time) {
	for _, p := range q.posts {
		if p.ID == id {
			p.Posted = true
			p.PostedAt = &at
			p.ExternalIDs = externalIDs
			return
		}
	}
}

func (q *MemoryQueue) Snapshot() []*ScheduledPost {
	out := make([]*ScheduledPost, len(q.posts))
	copy(out, q.posts)
	return out
}

func (q *MemoryQueue) Pending() int {
	n := 0
	for _, p := range q.posts {
		if !p.Posted {
			n++
		}
	}
	return n
}
