package poster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letieu/hive-promoter/internal/content"
	"github.com/letieu/hive-promoter/internal/logging"
)

type stubBroadcaster struct {
	calls   int
	failAt  int // 1-based part index to fail on, 0 = never
	replies []string
}

func (b *stubBroadcaster) Send(ctx context.Context, text string, inReplyTo string) (string, error) {
	b.calls++
	if b.failAt != 0 && b.calls == b.failAt {
		return "", errors.New("rate limited")
	}
	b.replies = append(b.replies, inReplyTo)
	return fmt.Sprintf("ext-%d", b.calls), nil
}

type stubRecorder struct {
	records int
	lastIDs []string
}

func (r *stubRecorder) Record(id, kind, text string, externalIDs []string, postedAt time.Time) error {
	r.records++
	r.lastIDs = externalIDs
	return nil
}

func thread(parts ...string) *content.Tweet {
	return &content.Tweet{Text: parts[0], Kind: content.KindThread, Parts: parts}
}

func TestDryRunThreadMakesNoNetworkCalls(t *testing.T) {
	b := &stubBroadcaster{}
	p := New(b, nil, true, logging.NewWithComponent("error", "poster-test"))

	ids := p.Post(context.Background(), thread("part 0", "part 1", "part 2"))

	require.Len(t, ids, 3, "dry run reports a synthetic id per part")
	assert.Equal(t, 0, b.calls, "dry run must not touch the network")
	for _, id := range ids {
		assert.True(t, strings.HasPrefix(id, "dry-"))
	}
}

func TestThreadChainsReplies(t *testing.T) {
	b := &stubBroadcaster{}
	p := New(b, nil, false, logging.NewWithComponent("error", "poster-test"))

	ids := p.Post(context.Background(), thread("part 0", "part 1", "part 2"))

	require.Equal(t, []string{"ext-1", "ext-2", "ext-3"}, ids)
	// Part 0 is a root post; each later part replies to its predecessor.
	assert.Equal(t, []string{"", "ext-1", "ext-2"}, b.replies)
}

func TestChainAbortsOnFailure(t *testing.T) {
	b := &stubBroadcaster{failAt: 2}
	p := New(b, nil, false, logging.NewWithComponent("error", "poster-test"))

	ids := p.Post(context.Background(), thread("part 0", "part 1", "part 2"))

	assert.Equal(t, []string{"ext-1"}, ids, "only ids posted before the failure")
	assert.Equal(t, 2, b.calls, "remaining parts are not attempted")
}

func TestSingleFailureYieldsEmpty(t *testing.T) {
	b := &stubBroadcaster{failAt: 1}
	p := New(b, nil, false, logging.NewWithComponent("error", "poster-test"))

	ids := p.Post(context.Background(), &content.Tweet{Text: "hello", Kind: content.KindSingle})
	assert.Empty(t, ids)
}

func TestSuccessfulDispatchIsRecorded(t *testing.T) {
	rec := &stubRecorder{}
	p := New(&stubBroadcaster{}, rec, false, logging.NewWithComponent("error", "poster-test"))

	ids := p.Post(context.Background(), &content.Tweet{Text: "hello", Kind: content.KindSingle})
	require.Len(t, ids, 1)
	assert.Equal(t, 1, rec.records)
	assert.Equal(t, ids, rec.lastIDs)
}

func TestFailedDispatchIsNotRecorded(t *testing.T) {
	rec := &stubRecorder{}
	p := New(&stubBroadcaster{failAt: 1}, rec, false, logging.NewWithComponent("error", "poster-test"))

	p.Post(context.Background(), &content.Tweet{Text: "hello", Kind: content.KindSingle})
	assert.Equal(t, 0, rec.records)
}
