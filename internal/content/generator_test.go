package content

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letieu/hive-promoter/internal/highlight"
	"github.com/letieu/hive-promoter/internal/hive"
	"github.com/letieu/hive-promoter/internal/logging"
	"github.com/letieu/hive-promoter/internal/textfit"
)

type stubSource struct {
	highlights []highlight.Highlight
}

func (s *stubSource) All(ctx context.Context) []highlight.Highlight {
	return s.highlights
}

func testGenerator(source HighlightSource, seed int64) *Generator {
	return NewGenerator(source,
		Weights{HotTake: 1.5, Debate: 1.3, NewAgent: 0.8, Default: 1.0},
		"@TheHiveSocial",
		rand.New(rand.NewSource(seed)),
		logging.NewWithComponent("error", "generator-test"))
}

func sampleHighlights() []highlight.Highlight {
	post := &hive.Post{
		ID: "p1", AuthorName: "Drone7", Title: "Agents deserve weekends too",
		Upvotes: 40, CommentCount: 12, URL: "https://hive.example/posts/p1",
	}
	thread := hive.NewThread(
		&hive.Post{ID: "p2", AuthorName: "QueenBee", Title: "Is alignment a social problem?",
			Upvotes: 10, CommentCount: 22, URL: "https://hive.example/posts/p2"},
		[]*hive.Comment{{ID: "c1", Upvotes: 5}},
	)
	agent := &hive.Agent{ID: "a1", Name: "Newcomer", Description: "A polite research assistant."}

	return []highlight.Highlight{
		{Kind: highlight.KindHotTake, EngagementScore: 52, Post: post},
		{Kind: highlight.KindDebate, EngagementScore: 37, Thread: thread},
		{Kind: highlight.KindNewAgent, EngagementScore: 0, Agent: agent},
	}
}

func TestRandomNeverReturnsNilWithHighlights(t *testing.T) {
	source := &stubSource{highlights: sampleHighlights()}
	for seed := int64(0); seed < 50; seed++ {
		tweet := testGenerator(source, seed).Random(context.Background())
		require.NotNil(t, tweet)
		assert.NotEmpty(t, tweet.Text)
		assert.True(t, textfit.Valid(tweet.Text), "seed %d produced oversized text", seed)
	}
}

func TestRandomFallsBackToCTAOnEmpty(t *testing.T) {
	tweet := testGenerator(&stubSource{}, 1).Random(context.Background())
	require.NotNil(t, tweet)
	assert.Equal(t, KindSingle, tweet.Kind)
	assert.Contains(t, tweet.Text, "TheHive")
	assert.Empty(t, tweet.SourceURL)
}

func TestZeroTotalWeightDegradesToUniform(t *testing.T) {
	// Only new agents: every weighted score is zero.
	source := &stubSource{highlights: []highlight.Highlight{
		{Kind: highlight.KindNewAgent, Agent: &hive.Agent{Name: "Solo"}},
	}}
	tweet := testGenerator(source, 7).Random(context.Background())
	require.NotNil(t, tweet)
	assert.Contains(t, tweet.Text, "Solo")
}

func TestRenderHotTakeCarriesSourceURL(t *testing.T) {
	hs := sampleHighlights()
	tweet := testGenerator(&stubSource{}, 3).Render(hs[0])

	assert.Equal(t, KindSingle, tweet.Kind)
	assert.Equal(t, "https://hive.example/posts/p1", tweet.SourceURL)
	assert.Contains(t, tweet.Text, tweet.SourceURL)
	assert.Contains(t, tweet.Text, "@TheHiveSocial")
	assert.NotEmpty(t, tweet.Hashtags)
	assert.LessOrEqual(t, len(tweet.Hashtags), 2)
}

func TestRenderTruncatesLongExcerpts(t *testing.T) {
	post := &hive.Post{
		ID: "p1", AuthorName: "Rambler",
		Title:   strings.Repeat("very long take ", 60),
		Upvotes: 30, URL: "https://hive.example/posts/p1",
	}
	tweet := testGenerator(&stubSource{}, 3).Render(highlight.Highlight{
		Kind: highlight.KindHotTake, EngagementScore: 30, Post: post,
	})

	assert.True(t, textfit.Valid(tweet.Text))
	assert.Contains(t, tweet.Text, post.URL, "source URL survives fitting")
}

func TestWeeklyDigestShape(t *testing.T) {
	var posts []*hive.Post
	for i := 0; i < 8; i++ {
		posts = append(posts, &hive.Post{
			ID:         fmt.Sprintf("p%d", i),
			AuthorName: fmt.Sprintf("agent%d", i),
			Title:      fmt.Sprintf("post number %d", i),
			Upvotes:    10 - i,
			URL:        fmt.Sprintf("https://hive.example/posts/p%d", i),
		})
	}

	tweet := testGenerator(&stubSource{}, 5).WeeklyDigest(posts)
	require.Equal(t, KindThread, tweet.Kind)

	// Intro + capped five entries + closing CTA.
	require.Len(t, tweet.Parts, 7)
	assert.Equal(t, tweet.Parts[0], tweet.Text)
	for i, part := range tweet.Parts {
		assert.True(t, textfit.Valid(part), "part %d exceeds budget", i)
	}
	assert.Contains(t, tweet.Parts[1], "post number 0")
	assert.Contains(t, tweet.Parts[len(tweet.Parts)-1], "@TheHiveSocial")
}
