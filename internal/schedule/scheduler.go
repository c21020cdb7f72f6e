package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/letieu/hive-promoter/internal/content"
)

const (
	tickInterval   = 30 * time.Second
	statusInterval = 10 * time.Minute
)

// Poster dispatches one tweet, returning the external ids produced.
// Failures surface as an empty result, never an error, so the loop can
// simply try again on a later tick.
type Poster interface {
	Post(ctx context.Context, tweet *content.Tweet) []string
}

// Generator produces content for auto-posting.
type Generator interface {
	Random(ctx context.Context) *content.Tweet
}

// Options is the scheduling policy.
type Options struct {
	// PostTimes are the fixed local times of day ("HH:MM") posts go out.
	PostTimes []string
	// MaxPostsPerDay caps dispatches per local day.
	MaxPostsPerDay int
	// AutoPost generates a tweet when the queue runs dry.
	AutoPost bool
}

// Status is an advisory snapshot of the queue.
type Status struct {
	QueueLength int              `json:"queue_length"`
	PostsToday  int              `json:"posts_today"`
	NextPost    *time.Time       `json:"next_post,omitempty"`
	Queue       []*ScheduledPost `json:"queue"`
}

// Scheduler drives the post queue: it assigns cadence slots on enqueue
// and runs the timer loop that hands due entries to the poster. It is
// the queue's only mutator; no locking is needed.
type Scheduler struct {
	queue  Queue
	poster Poster
	gen    Generator
	opts   Options
	log    *logrus.Entry

	now func() time.Time // injectable clock

	slots        []int // minutes of day, sorted
	lastAssigned time.Time
	postsToday   int
	countday     time.Time // midnight anchor for postsToday
}

func NewScheduler(queue Queue, poster Poster, gen Generator, opts Options, log *logrus.Entry) *Scheduler {
	s := &Scheduler{
		queue:  queue,
		poster: poster,
		gen:    gen,
		opts:   opts,
		log:    log,
		now:    time.Now,
	}
	for _, t := range opts.PostTimes {
		parsed, err := time.Parse("15:04", t)
		if err != nil {
			// Config validation rejects bad entries before we get here.
			continue
		}
		s.slots = append(s.slots, parsed.Hour()*60+parsed.Minute())
	}
	sort.Ints(s.slots)
	return s
}

// QueueContent assigns the next free cadence slot and enqueues the
// tweet, returning the new entry's id.
func (s *Scheduler) QueueContent(tweet *content.Tweet) string {
	post := &ScheduledPost{
		ID:            uuid.NewString(),
		Content:       tweet,
		ScheduledTime: s.nextSlot(),
	}
	s.queue.Enqueue(post)

	s.log.WithFields(logrus.Fields{
		"id":        post.ID,
		"scheduled": post.ScheduledTime.Format(time.RFC3339),
		"kind":      tweet.Kind,
	}).Info("queued content")
	return post.ID
}

// nextSlot finds the earliest configured time of day strictly after both
// now and the last assigned slot, rolling into following days as needed.
func (s *Scheduler) nextSlot() time.Time {
	base := s.now()
	if s.lastAssigned.After(base) {
		base = s.lastAssigned
	}

	for day := 0; ; day++ {
		midnight := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location()).
			AddDate(0, 0, day)
		for _, m := range s.slots {
			slot := midnight.Add(time.Duration(m) * time.Minute)
			if slot.After(base) {
				s.lastAssigned = slot
				return slot
			}
		}
	}
}

// Status reports queue state. Advisory only: the status ticker and CLI
// read it while the scheduler keeps mutating.
func (s *Scheduler) Status() Status {
	st := Status{
		QueueLength: s.queue.Pending(),
		PostsToday:  s.postsToday,
		Queue:       s.queue.Snapshot(),
	}
	if next := s.queue.PeekNext(); next != nil {
		t := next.ScheduledTime
		st.NextPost = &t
	}
	return st
}

// PostNow dispatches a tweet immediately, bypassing the queue but still
// counting toward the daily cap.
func (s *Scheduler) PostNow(ctx context.Context, tweet *content.Tweet) []string {
	s.rollover()
	ids := s.poster.Post(ctx, tweet)
	if len(ids) > 0 {
		s.postsToday++
	}
	return ids
}

// Run drives the cooperative poll loop until ctx is cancelled. One tick
// at a time; the queue has exactly one mutator.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.WithFields(logrus.Fields{
		"post_times":  s.opts.PostTimes,
		"max_per_day": s.opts.MaxPostsPerDay,
		"auto_post":   s.opts.AutoPost,
	}).Info("scheduler started")

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	status := time.NewTicker(statusInterval)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		case <-status.C:
			st := s.Status()
			s.log.WithFields(logrus.Fields{
				"pending":     st.QueueLength,
				"posts_today": st.PostsToday,
			}).Info("queue status")
		}
	}
}

// tick runs one scheduling cycle: reset the daily counter on rollover,
// top the queue up when auto-posting, and dispatch the head entry if it
// is due and the cap allows.
func (s *Scheduler) tick(ctx context.Context) {
	s.rollover()

	if s.opts.AutoPost && s.queue.PeekNext() == nil && s.gen != nil {
		s.QueueContent(s.gen.Random(ctx))
	}

	head := s.queue.PeekNext()
	if head == nil || head.ScheduledTime.After(s.now()) {
		return
	}
	if s.postsToday >= s.opts.MaxPostsPerDay {
		s.log.WithField("posts_today", s.postsToday).Debug("daily cap reached, holding queue")
		return
	}

	ids := s.poster.Post(ctx, head.Content)
	if len(ids) == 0 {
		s.log.WithField("id", head.ID).Warn("dispatch produced no ids, will retry on a later tick")
		return
	}

	now := s.now()
	s.queue.MarkPosted(head.ID, ids, now)
	s.postsToday++
	s.log.WithFields(logrus.Fields{
		"id":           head.ID,
		"external_ids": ids,
		"posts_today":  s.postsToday,
	}).Info("posted")
}

// rollover resets the daily counter at local-day boundaries.
func (s *Scheduler) rollover() {
	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !day.Equal(s.countday) {
		s.countday = day
		s.postsToday = 0
	}
}
