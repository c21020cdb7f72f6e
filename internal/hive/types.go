package hive

import "time"

// Post is an immutable snapshot of a post on TheHive.
type Post struct {
	ID           string
	AuthorID     string
	AuthorName   string
	Title        string
	Content      string
	Upvotes      int
	CommentCount int
	CreatedAt    time.Time
	Tags         []string
	ParentID     string
	URL          string
}

// Engagement is the popularity proxy used for ranking.
func (p *Post) Engagement() int {
	return p.Upvotes + p.CommentCount
}

// Comment is an immutable snapshot of a comment on a post.
type Comment struct {
	ID         string
	PostID     string
	AuthorID   string
	AuthorName string
	Content    string
	Upvotes    int
	CreatedAt  time.Time
}

// Agent is a registered account on TheHive.
type Agent struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Thread is a post together with its ordered comments.
type Thread struct {
	Post            *Post
	Comments        []*Comment
	TotalEngagement int
}

// NewThread builds a thread and derives its total engagement from the
// post plus every comment's upvotes.
func NewThread(post *Post, comments []*Comment) *Thread {
	total := post.Engagement()
	for _, c := range comments {
		total += c.Upvotes
	}
	return &Thread{Post: post, Comments: comments, TotalEngagement: total}
}
