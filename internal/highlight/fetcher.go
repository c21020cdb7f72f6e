package highlight

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/letieu/hive-promoter/internal/hive"
)

// API is the read surface of TheHive the fetcher depends on.
type API interface {
	Posts(ctx context.Context, since time.Time, limit int, sort string) ([]*hive.Post, error)
	Comments(ctx context.Context, postID string) ([]*hive.Comment, error)
	Agents(ctx context.Context, since time.Time, limit int, sort string) ([]*hive.Agent, error)
}

// Thresholds is the curation policy: how far back to look and what counts
// as hot or debate-worthy.
type Thresholds struct {
	RecencyWindow     time.Duration
	HotThreshold      int
	DebateMinComments int
}

// Fetcher pulls recent activity and classifies it into highlights. Every
// fetch failure degrades to an empty result; callers treat empty as
// "nothing right now".
type Fetcher struct {
	api API
	thr Thresholds
	log *logrus.Entry
	now func() time.Time
}

func NewFetcher(api API, thr Thresholds, log *logrus.Entry) *Fetcher {
	return &Fetcher{api: api, thr: thr, log: log, now: time.Now}
}

// TopPosts returns recent posts ranked descending by engagement, at most
// limit of them.
func (f *Fetcher) TopPosts(ctx context.Context, limit int) []*hive.Post {
	since := f.now().Add(-f.thr.RecencyWindow)
	posts, err := f.api.Posts(ctx, since, limit, "top")
	if err != nil {
		f.log.WithError(err).Warn("fetch top posts failed")
		return nil
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Engagement() > posts[j].Engagement()
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts
}

// ActiveConversations scans an oversampled top-post set for posts with
// enough comments to count as a debate, pulls each one's comments, and
// returns the threads sorted by total engagement.
func (f *Fetcher) ActiveConversations(ctx context.Context, limit int) []*hive.Thread {
	candidates := f.TopPosts(ctx, limit*5)

	var threads []*hive.Thread
	for _, post := range candidates {
		if post.CommentCount < f.thr.DebateMinComments {
			continue
		}

		comments, err := f.api.Comments(ctx, post.ID)
		if err != nil {
			f.log.WithError(err).WithField("post_id", post.ID).Warn("fetch comments failed")
			continue
		}
		threads = append(threads, hive.NewThread(post, comments))
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].TotalEngagement > threads[j].TotalEngagement
	})
	if len(threads) > limit {
		threads = threads[:limit]
	}
	return threads
}

// NewAgents returns the most recently registered agents inside the
// recency window.
func (f *Fetcher) NewAgents(ctx context.Context, limit int) []*hive.Agent {
	since := f.now().Add(-f.thr.RecencyWindow)
	agents, err := f.api.Agents(ctx, since, limit, "new")
	if err != nil {
		f.log.WithError(err).Warn("fetch new agents failed")
		return nil
	}
	if len(agents) > limit {
		agents = agents[:limit]
	}
	return agents
}

// All merges the three highlight feeds client-side: hot takes, debates,
// and new agents. New agents have no history, so their score is zero.
func (f *Fetcher) All(ctx context.Context) []Highlight {
	var highlights []Highlight

	for _, post := range f.TopPosts(ctx, 10) {
		if post.Engagement() < f.thr.HotThreshold {
			continue
		}
		highlights = append(highlights, Highlight{
			Kind:            KindHotTake,
			EngagementScore: float64(post.Engagement()),
			Post:            post,
		})
	}

	for _, thread := range f.ActiveConversations(ctx, 3) {
		highlights = append(highlights, Highlight{
			Kind:            KindDebate,
			EngagementScore: float64(thread.TotalEngagement),
			Thread:          thread,
		})
	}

	for _, agent := range f.NewAgents(ctx, 3) {
		highlights = append(highlights, Highlight{
			Kind:  KindNewAgent,
			Agent: agent,
		})
	}

	return highlights
}
