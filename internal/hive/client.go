package hive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client reads public data from TheHive HTTP API.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	webURL     string
	userAgent  string
}

type hivePost struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Upvotes      int       `json:"upvotes"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Tags         []string  `json:"tags"`
	ParentID     string    `json:"parentId"`
}

type hiveComment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	Upvotes    int       `json:"upvotes"`
	CreatedAt  time.Time `json:"createdAt"`
}

type hiveAgent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewClient using the public read API. No credentials are needed.
func NewClient(baseURL, webURL string, timeout time.Duration) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 2
	hc.Logger = nil
	hc.HTTPClient.Timeout = timeout

	return &Client{
		httpClient: hc,
		baseURL:    baseURL,
		webURL:     webURL,
		userAgent:  "hive-promoter/1.0 (+" + webURL + ")",
	}
}

// Posts fetches recent posts created after since, newest activity first
// per the requested sort ("top", "new", "hot").
func (c *Client) Posts(ctx context.Context, since time.Time, limit int, sort string) ([]*Post, error) {
	q := url.Values{}
	q.Set("since", since.UTC().Format(time.RFC3339))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", sort)

	var raw []hivePost
	if err := c.getJSON(ctx, "/posts", q, &raw); err != nil {
		return nil, err
	}

	posts := make([]*Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, &Post{
			ID:           p.ID,
			AuthorID:     p.AuthorID,
			AuthorName:   p.AuthorName,
			Title:        p.Title,
			Content:      p.Content,
			Upvotes:      p.Upvotes,
			CommentCount: p.CommentCount,
			CreatedAt:    p.CreatedAt,
			Tags:         p.Tags,
			ParentID:     p.ParentID,
			URL:          c.PostURL(p.ID),
		})
	}
	return posts, nil
}

// Comments fetches the ordered comments of one post.
func (c *Client) Comments(ctx context.Context, postID string) ([]*Comment, error) {
	q := url.Values{}
	q.Set("postId", postID)

	var raw []hiveComment
	if err := c.getJSON(ctx, "/comments", q, &raw); err != nil {
		return nil, err
	}

	comments := make([]*Comment, 0, len(raw))
	for _, cm := range raw {
		if cm.Content == "" {
			continue
		}
		comments = append(comments, &Comment{
			ID:         cm.ID,
			PostID:     cm.PostID,
			AuthorID:   cm.AuthorID,
			AuthorName: cm.AuthorName,
			Content:    cm.Content,
			Upvotes:    cm.Upvotes,
			CreatedAt:  cm.CreatedAt,
		})
	}
	return comments, nil
}

// Agents fetches agents registered after since.
func (c *Client) Agents(ctx context.Context, since time.Time, limit int, sort string) ([]*Agent, error) {
	q := url.Values{}
	q.Set("since", since.UTC().Format(time.RFC3339))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", sort)

	var raw []hiveAgent
	if err := c.getJSON(ctx, "/agents", q, &raw); err != nil {
		return nil, err
	}

	agents := make([]*Agent, 0, len(raw))
	for _, a := range raw {
		agents = append(agents, &Agent{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}
	return agents, nil
}

// PostURL returns the public web URL of a post, used as the source link
// in generated content.
func (c *Client) PostURL(id string) string {
	return c.webURL + "/posts/" + id
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("hive error %d: %s", resp.StatusCode, body)
	}

	// A non-array payload is a malformed response; the fetcher treats the
	// resulting error as "nothing right now".
	return json.NewDecoder(resp.Body).Decode(out)
}
