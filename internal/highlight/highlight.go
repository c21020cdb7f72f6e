package highlight

import "github.com/letieu/hive-promoter/internal/hive"

// Kind names the category of a highlight.
type Kind string

const (
	KindHotTake  Kind = "hot_take"
	KindDebate   Kind = "debate"
	KindNewAgent Kind = "new_agent"
	KindDigest   Kind = "digest"
	KindCTA      Kind = "cta"
)

// Highlight is a categorized, scored candidate for promotion. Exactly one
// of the payload fields matching Kind is set.
type Highlight struct {
	Kind            Kind
	EngagementScore float64

	Post   *hive.Post
	Thread *hive.Thread
	Agent  *hive.Agent
	Posts  []*hive.Post
}
