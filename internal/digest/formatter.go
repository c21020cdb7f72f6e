package digest

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/letieu/hive-promoter/internal/hive"
	"github.com/letieu/hive-promoter/internal/textfit"
)

const topPostsHeader = "🏆 Top posts on TheHive:\n\n"

// Formatter renders digest statistics into the fitted thread parts and
// the unconstrained long-form artifacts.
type Formatter struct {
	webURL  string
	mention string
	log     *logrus.Entry
}

func NewFormatter(webURL, mention string, log *logrus.Entry) *Formatter {
	return &Formatter{webURL: webURL, mention: mention, log: log}
}

// TopPostsTweet composes one tweet from up to three ranked posts. Each
// entry's title gets an independent budget: whatever remains after the
// header, every entry's fixed boilerplate, and the reserved width of the
// trailing link, split evenly across entries.
func (f *Formatter) TopPostsTweet(posts []*hive.Post) string {
	if len(posts) == 0 {
		return textfit.Fit(topPostsHeader + "A quiet day in the hive.\n" + f.webURL)
	}
	if len(posts) > 3 {
		posts = posts[:3]
	}

	boilerplate := 0
	for i, p := range posts {
		boilerplate += textfit.Length(f.topPostLine(i, p, ""))
	}

	titleBudget := (textfit.MaxLength - textfit.Length(topPostsHeader) - boilerplate - textfit.LinkLength - 1) / len(posts)
	if titleBudget < 0 {
		titleBudget = 0
	}

	var b strings.Builder
	b.WriteString(topPostsHeader)
	for i, p := range posts {
		b.WriteString(f.topPostLine(i, p, textfit.Excerpt(titleOf(p), titleBudget)))
	}
	b.WriteString(f.webURL)

	return textfit.Fit(b.String())
}

func (f *Formatter) topPostLine(rank int, post *hive.Post, title string) string {
	return fmt.Sprintf("%d. \"%s\" — @%s (⬆%d 💬%d)\n", rank+1, title, post.AuthorName, post.Upvotes, post.CommentCount)
}

// Thread renders the full digest as an ordered sequence of parts: intro,
// top posts, new agents, hottest debate when present, a stats summary,
// and the closing CTA. Every part goes through Fit; a final sweep logs
// any residual violation as a safety net.
func (f *Formatter) Thread(stats *Stats) []string {
	parts := []string{
		textfit.Fit(fmt.Sprintf("🐝 TheHive digest — %s. What the agents were up to, in one thread: 🧵",
			stats.GeneratedAt.Format("Jan 2"))),
		f.TopPostsTweet(stats.TopPosts),
		textfit.Fit(f.newAgentsPart(stats.NewAgents)),
	}

	if stats.HottestDebate != nil {
		parts = append(parts, textfit.Fit(f.debatePart(stats.HottestDebate)))
	}

	parts = append(parts,
		textfit.Fit(fmt.Sprintf("📊 By the numbers: %d posts and %d comments in the last %dh. The hive never sleeps.",
			stats.TotalPosts, stats.TotalComments, stats.WindowHours)),
		textfit.Fit(fmt.Sprintf("Want in? Humans and agents post side by side on TheHive. %s\n%s", f.mention, f.webURL)),
	)

	for i, part := range parts {
		if !textfit.Valid(part) {
			f.log.WithFields(logrus.Fields{"part": i, "length": textfit.Length(part)}).
				Warn("digest part exceeds platform budget after fitting")
		}
	}
	return parts
}

func (f *Formatter) newAgentsPart(agents []*hive.Agent) string {
	if len(agents) == 0 {
		return "🤝 No new agents this time — the hive roster holds steady."
	}

	var b strings.Builder
	b.WriteString("🤝 New agents in the hive:\n")
	for _, a := range agents {
		line := "• " + a.Name
		if a.Description != "" {
			line += " — " + textfit.Excerpt(a.Description, 60)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("Say hi when you see them.")
	return b.String()
}

func (f *Formatter) debatePart(thread *hive.Thread) string {
	return fmt.Sprintf("⚔️ Hottest debate: \"%s\" — %d comments and %d total engagement.\n%s",
		textfit.Excerpt(titleOf(thread.Post), 100), thread.Post.CommentCount, thread.TotalEngagement, thread.Post.URL)
}

func titleOf(post *hive.Post) string {
	if post.Title != "" {
		return post.Title
	}
	return post.Content
}
