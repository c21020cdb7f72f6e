// Package textfit enforces the broadcast platform's character budget.
//
// The platform does not count raw characters: every URL collapses to a
// fixed-width shortened link, and length is measured in Unicode code
// points. Both rules are reproduced here so generated text never has to
// be rejected downstream.
package textfit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLength is the per-post character budget.
	MaxLength = 280
	// LinkLength is the fixed width every URL counts as after the
	// platform's link shortener rewrites it.
	LinkLength = 23

	ellipsis = "..."
	// readableCutoff: a sentence or newline cut is only taken when it
	// lands in the final 30% of the budget, so a fitted post does not
	// end absurdly early.
	readableCutoff = 0.7
)

var urlRe = regexp.MustCompile(`https?://\S+`)

// slot stands in for one extracted URL while text is being truncated.
// U+FFFC is the object replacement character and cannot occur in posts.
const slot = '￼'

// Length returns the platform-counted length of text: code points, with
// each URL counted as LinkLength.
func Length(text string) int {
	n := 0
	last := 0
	for _, m := range urlRe.FindAllStringIndex(text, -1) {
		n += utf8.RuneCountInString(text[last:m[0]]) + LinkLength
		last = m[1]
	}
	return n + utf8.RuneCountInString(text[last:])
}

// Valid reports whether text fits the platform budget.
func Valid(text string) bool {
	return Length(text) <= MaxLength
}

// Fit returns text unchanged when it already fits, otherwise a truncated
// version that does. URLs are never cut or altered: each one is lifted
// out, its shortened width reserved against the budget, and the original
// URL put back in order after the surrounding text has been trimmed.
// The trim prefers the last sentence terminator or newline when that cut
// keeps most of the budget in use; otherwise it cuts hard and appends an
// ellipsis.
func Fit(text string) string {
	if Valid(text) {
		return text
	}

	urls := urlRe.FindAllString(text, -1)
	segments := urlRe.Split(text, -1)

	budget := MaxLength - LinkLength*len(urls)
	if budget < 0 {
		budget = 0
	}

	body := []rune(strings.Join(segments, string(slot)))
	kept := truncateBody(body, budget)

	var b strings.Builder
	next := 0
	for _, r := range kept {
		if r == slot {
			b.WriteString(urls[next])
			next++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// truncateBody trims body to at most budget countable runes. Slot runes
// are free (their width is already reserved) and are always kept so no
// URL is dropped.
func truncateBody(body []rune, budget int) []rune {
	// Widest prefix that fits without an ellipsis.
	prefixEnd := len(body)
	counted := 0
	for i, r := range body {
		if r == slot {
			continue
		}
		if counted == budget {
			prefixEnd = i
			break
		}
		counted++
	}
	if prefixEnd == len(body) {
		return body
	}

	// Prefer a sentence or newline cut inside the readable tail of the
	// budget.
	if cut, ok := sentenceCut(body, prefixEnd, budget); ok {
		return keepWithSlots(body, cut)
	}

	// Hard cut, reserving room for the ellipsis.
	hardBudget := budget - utf8.RuneCountInString(ellipsis)
	if hardBudget < 0 {
		hardBudget = 0
	}
	end := 0
	counted = 0
	for i, r := range body {
		if r == slot {
			continue
		}
		if counted == hardBudget {
			break
		}
		counted++
		end = i + 1
	}
	out := append([]rune{}, body[:end]...)
	out = append(out, []rune(ellipsis)...)
	for _, r := range body[end:] {
		if r == slot {
			out = append(out, r)
		}
	}
	return out
}

// sentenceCut looks backwards from prefixEnd for a sentence terminator
// or newline whose position uses at least readableCutoff of the budget.
func sentenceCut(body []rune, prefixEnd, budget int) (int, bool) {
	minKeep := int(float64(budget) * readableCutoff)
	counted := 0
	cut := -1
	for i := 0; i < prefixEnd; i++ {
		r := body[i]
		if r == slot {
			continue
		}
		counted++
		switch r {
		case '.', '!', '?', '\n':
			if counted >= minKeep {
				cut = i + 1
			}
		}
	}
	if cut < 0 {
		return 0, false
	}
	return cut, true
}

// keepWithSlots keeps body[:cut] plus every slot after the cut.
func keepWithSlots(body []rune, cut int) []rune {
	out := append([]rune{}, body[:cut]...)
	for _, r := range body[cut:] {
		if r == slot {
			out = append(out, r)
		}
	}
	return out
}

// Excerpt shortens free text to at most max code points for embedding in
// a template, appending an ellipsis when anything was removed. It never
// measures platform width; use Fit for final artifacts.
func Excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := max - utf8.RuneCountInString(ellipsis)
	if cut < 0 {
		cut = 0
	}
	return strings.TrimSpace(string(runes[:cut])) + ellipsis
}
