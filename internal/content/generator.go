package content

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/letieu/hive-promoter/internal/highlight"
	"github.com/letieu/hive-promoter/internal/hive"
	"github.com/letieu/hive-promoter/internal/textfit"
)

const (
	excerptLen       = 120
	digestMaxEntries = 5
)

// HighlightSource yields the current highlight candidates.
type HighlightSource interface {
	All(ctx context.Context) []highlight.Highlight
}

// Weights are the category multipliers applied to engagement scores
// during weighted selection. Tuning policy, not law.
type Weights struct {
	HotTake  float64
	Debate   float64
	NewAgent float64
	Default  float64
}

// Generator renders highlights into platform-ready tweets. The random
// source is injected so tests can force category and variant selection.
type Generator struct {
	source  HighlightSource
	weights Weights
	mention string
	rng     *rand.Rand
	log     *logrus.Entry
}

func NewGenerator(source HighlightSource, weights Weights, mention string, rng *rand.Rand, log *logrus.Entry) *Generator {
	return &Generator{
		source:  source,
		weights: weights,
		mention: mention,
		rng:     rng,
		log:     log,
	}
}

// Random picks one highlight by weighted sampling and renders it. With no
// highlights available it falls back to a generic CTA, so it always
// returns content.
func (g *Generator) Random(ctx context.Context) *Tweet {
	highlights := g.source.All(ctx)
	if len(highlights) == 0 {
		g.log.Info("no highlights available, falling back to CTA")
		return g.FallbackCTA()
	}

	return g.Render(g.pickWeighted(highlights))
}

// pickWeighted draws one highlight with probability proportional to
// engagementScore × category multiplier. A zero total weight (e.g. only
// new agents) degrades to a uniform draw.
func (g *Generator) pickWeighted(highlights []highlight.Highlight) highlight.Highlight {
	total := 0.0
	for _, h := range highlights {
		total += h.EngagementScore * g.multiplier(h.Kind)
	}
	if total <= 0 {
		return highlights[g.rng.Intn(len(highlights))]
	}

	r := g.rng.Float64() * total
	for _, h := range highlights {
		r -= h.EngagementScore * g.multiplier(h.Kind)
		if r <= 0 {
			return h
		}
	}
	return highlights[len(highlights)-1]
}

func (g *Generator) multiplier(kind highlight.Kind) float64 {
	switch kind {
	case highlight.KindHotTake:
		return g.weights.HotTake
	case highlight.KindDebate:
		return g.weights.Debate
	case highlight.KindNewAgent:
		return g.weights.NewAgent
	default:
		return g.weights.Default
	}
}

// Render dispatches to the category renderer.
func (g *Generator) Render(h highlight.Highlight) *Tweet {
	switch h.Kind {
	case highlight.KindHotTake:
		return g.hotTake(h.Post)
	case highlight.KindDebate:
		return g.debate(h.Thread)
	case highlight.KindNewAgent:
		return g.newAgent(h.Agent)
	case highlight.KindDigest:
		return g.WeeklyDigest(h.Posts)
	default:
		return g.FallbackCTA()
	}
}

func (g *Generator) hotTake(post *hive.Post) *Tweet {
	body := fmt.Sprintf(g.pick(hotTakeVariants), post.AuthorName, textfit.Excerpt(postText(post), excerptLen))
	tags := g.pickHashtags()
	return g.single(body, tags, post.URL)
}

func (g *Generator) debate(thread *hive.Thread) *Tweet {
	post := thread.Post
	body := fmt.Sprintf(g.pick(debateVariants), post.CommentCount, textfit.Excerpt(postText(post), excerptLen))
	tags := g.pickHashtags()
	return g.single(body, tags, post.URL)
}

func (g *Generator) newAgent(agent *hive.Agent) *Tweet {
	about := textfit.Excerpt(agent.Description, excerptLen)
	if about == "" {
		about = "No bio yet. Watch this space."
	}
	body := fmt.Sprintf(g.pick(newAgentVariants), agent.Name, about)
	tags := g.pickHashtags()
	return g.single(body, tags, "")
}

// FallbackCTA is the answer when the hive is quiet.
func (g *Generator) FallbackCTA() *Tweet {
	return g.single(g.pick(ctaVariants), []string{"#TheHive", "#AIAgents"}, "")
}

// WeeklyDigest renders the distinguished multi-part thread: an intro, one
// part per top post (capped), and a closing CTA.
func (g *Generator) WeeklyDigest(posts []*hive.Post) *Tweet {
	if len(posts) > digestMaxEntries {
		posts = posts[:digestMaxEntries]
	}

	parts := []string{textfit.Fit(g.pick(digestIntroVariants))}
	for i, post := range posts {
		entry := fmt.Sprintf("%d. \"%s\" — %s (⬆ %d · 💬 %d)\n%s",
			i+1, textfit.Excerpt(postText(post), excerptLen), post.AuthorName,
			post.Upvotes, post.CommentCount, post.URL)
		parts = append(parts, textfit.Fit(entry))
	}
	parts = append(parts, textfit.Fit(digestClosing+" "+g.mention))

	srcURL := ""
	if len(posts) > 0 {
		srcURL = posts[0].URL
	}
	return &Tweet{
		Text:      parts[0],
		Kind:      KindThread,
		Parts:     parts,
		Hashtags:  []string{"#TheHive"},
		Mentions:  []string{g.mention},
		SourceURL: srcURL,
	}
}

func (g *Generator) single(body string, tags []string, sourceURL string) *Tweet {
	text := body + "\n\n" + strings.Join(tags, " ") + " " + g.mention
	if sourceURL != "" {
		text += "\n" + sourceURL
	}
	return &Tweet{
		Text:      textfit.Fit(text),
		Kind:      KindSingle,
		Hashtags:  tags,
		Mentions:  []string{g.mention},
		SourceURL: sourceURL,
	}
}

// pick selects one variant uniformly at random.
func (g *Generator) pick(variants []string) string {
	return variants[g.rng.Intn(len(variants))]
}

// pickHashtags attaches one or two hashtags from the pool.
func (g *Generator) pickHashtags() []string {
	first := g.rng.Intn(len(hashtagPool))
	tags := []string{hashtagPool[first]}
	if g.rng.Intn(2) == 1 {
		second := g.rng.Intn(len(hashtagPool))
		if second != first {
			tags = append(tags, hashtagPool[second])
		}
	}
	return tags
}

func postText(post *hive.Post) string {
	if post.Title != "" {
		return post.Title
	}
	return post.Content
}
