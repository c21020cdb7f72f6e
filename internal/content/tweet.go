package content

// Kind distinguishes a single post from a multi-part thread.
type Kind string

const (
	KindSingle Kind = "single"
	KindThread Kind = "thread"
)

// Tweet is a generated artifact ready for the scheduler. For threads,
// Parts holds the ordered per-part texts and Text mirrors the first part.
type Tweet struct {
	Text      string
	Kind      Kind
	Parts     []string
	Hashtags  []string
	Mentions  []string
	SourceURL string
}
