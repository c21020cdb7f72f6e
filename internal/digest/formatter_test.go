package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letieu/hive-promoter/internal/hive"
	"github.com/letieu/hive-promoter/internal/logging"
	"github.com/letieu/hive-promoter/internal/textfit"
)

func testFormatter() *Formatter {
	return NewFormatter("https://hive.example", "@TheHiveSocial",
		logging.NewWithComponent("error", "formatter-test"))
}

func sampleStats() *Stats {
	posts := []*hive.Post{
		{ID: "p1", AuthorName: "Drone7", Title: "Agents deserve weekends too", Upvotes: 40, CommentCount: 12, URL: "https://hive.example/posts/p1"},
		{ID: "p2", AuthorName: "QueenBee", Title: "Is alignment a social problem?", Upvotes: 25, CommentCount: 9, URL: "https://hive.example/posts/p2"},
		{ID: "p3", AuthorName: "Forager", Title: "My first week in the hive", Upvotes: 11, CommentCount: 2, URL: "https://hive.example/posts/p3"},
	}
	debate := hive.NewThread(posts[1], []*hive.Comment{{ID: "c1", Upvotes: 6}})

	return &Stats{
		GeneratedAt: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
		WindowHours: 24,
		TopPosts:    posts,
		NewAgents: []*hive.Agent{
			{ID: "a1", Name: "Newcomer", Description: "A polite research assistant."},
			{ID: "a2", Name: "Sentinel"},
		},
		HottestDebate: debate,
		TotalPosts:    42,
		TotalComments: 117,
	}
}

func TestThreadHasSixPartsWithDebate(t *testing.T) {
	parts := testFormatter().Thread(sampleStats())

	// Intro, top posts, new agents, debate, stats summary, CTA.
	require.Len(t, parts, 6)
	for i, part := range parts {
		assert.True(t, textfit.Valid(part), "part %d exceeds budget (len %d)", i, textfit.Length(part))
	}
	assert.Contains(t, parts[1], "Drone7")
	assert.Contains(t, parts[2], "Newcomer")
	assert.Contains(t, parts[3], "alignment")
	assert.Contains(t, parts[4], "42 posts")
	assert.Contains(t, parts[5], "@TheHiveSocial")
}

func TestThreadHasFivePartsWithoutDebate(t *testing.T) {
	stats := sampleStats()
	stats.HottestDebate = nil

	parts := testFormatter().Thread(stats)
	require.Len(t, parts, 5)
}

func TestTopPostsTweetFitsLongTitles(t *testing.T) {
	posts := []*hive.Post{
		{ID: "p1", AuthorName: "Rambler", Title: strings.Repeat("extremely verbose title ", 30), Upvotes: 99, CommentCount: 50, URL: "https://hive.example/posts/p1"},
		{ID: "p2", AuthorName: "Terse", Title: strings.Repeat("another endless take ", 30), Upvotes: 12, CommentCount: 3, URL: "https://hive.example/posts/p2"},
		{ID: "p3", AuthorName: "Wordy", Title: strings.Repeat("walls of words ", 30), Upvotes: 5, CommentCount: 1, URL: "https://hive.example/posts/p3"},
	}

	tweet := testFormatter().TopPostsTweet(posts)
	assert.True(t, textfit.Valid(tweet), "top posts tweet exceeds budget (len %d)", textfit.Length(tweet))
	assert.Contains(t, tweet, "Rambler")
	assert.Contains(t, tweet, "Wordy")
	assert.Contains(t, tweet, "https://hive.example")
}

func TestTopPostsTweetEmpty(t *testing.T) {
	tweet := testFormatter().TopPostsTweet(nil)
	assert.True(t, textfit.Valid(tweet))
	assert.Contains(t, tweet, "quiet")
}

func TestEmailRendersHTML(t *testing.T) {
	html, err := testFormatter().Email(sampleStats())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "Agents deserve weekends too")
	assert.Contains(t, html, "Newcomer")
	assert.Contains(t, html, "42 posts")
}

func TestPlatformRendersMarkdown(t *testing.T) {
	md, err := testFormatter().Platform(sampleStats())
	require.NoError(t, err)

	assert.Contains(t, md, "# 🐝 TheHive digest")
	assert.Contains(t, md, "[Agents deserve weekends too](https://hive.example/posts/p1)")
	assert.Contains(t, md, "**Newcomer**")
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts, err := testFormatter().WriteArtifacts(dir, sampleStats())
	require.NoError(t, err)

	for _, path := range []string{artifacts.ThreadPath, artifacts.EmailPath, artifacts.PlatformPath, artifacts.StatsPath} {
		assert.FileExists(t, path)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hive-digest-2026-08-31", Slugify("Hive Digest 2026-08-31"))
	assert.Equal(t, "a-b-c", Slugify("  A/B:C!  "))
}
