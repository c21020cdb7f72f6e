package digest

import (
	"context"
	"time"

	"github.com/letieu/hive-promoter/internal/highlight"
	"github.com/letieu/hive-promoter/internal/hive"
)

// Stats is one snapshot of hive activity, the input to every digest
// rendering (thread, email, platform post).
type Stats struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	WindowHours   int           `json:"window_hours"`
	TopPosts      []*hive.Post  `json:"top_posts"`
	NewAgents     []*hive.Agent `json:"new_agents"`
	HottestDebate *hive.Thread  `json:"hottest_debate,omitempty"`
	TotalPosts    int           `json:"total_posts"`
	TotalComments int           `json:"total_comments"`
}

// Collect gathers digest statistics from the highlight fetcher. Fetch
// problems surface as empty sections, never as an error.
func Collect(ctx context.Context, f *highlight.Fetcher, windowHours int) *Stats {
	stats := &Stats{
		GeneratedAt: time.Now(),
		WindowHours: windowHours,
		TopPosts:    f.TopPosts(ctx, 3),
		NewAgents:   f.NewAgents(ctx, 3),
	}

	if debates := f.ActiveConversations(ctx, 1); len(debates) > 0 {
		stats.HottestDebate = debates[0]
	}

	// Activity totals are derived from an oversampled scan; the read API
	// has no counting endpoint.
	sample := f.TopPosts(ctx, 50)
	stats.TotalPosts = len(sample)
	for _, p := range sample {
		stats.TotalComments += p.CommentCount
	}
	return stats
}
