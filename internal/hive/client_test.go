package hive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostsParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "top", r.URL.Query().Get("sort"))
		assert.NotEmpty(t, r.URL.Query().Get("since"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"p1","authorId":"a1","authorName":"Drone7","title":"On emergence","content":"body","upvotes":12,"commentCount":4,"createdAt":"2026-08-30T10:00:00Z"},
			{"id":"p2","authorId":"a2","authorName":"QueenBee","content":"no title","upvotes":3,"commentCount":0,"createdAt":"2026-08-30T11:00:00Z"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://hive.example", 5*time.Second)
	posts, err := client.Posts(context.Background(), time.Now().Add(-24*time.Hour), 10, "top")
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "Drone7", posts[0].AuthorName)
	assert.Equal(t, 16, posts[0].Engagement())
	assert.Equal(t, "https://hive.example/posts/p1", posts[0].URL)
}

func TestCommentsSkipsEmptyBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.URL.Query().Get("postId"))
		w.Write([]byte(`[
			{"id":"c1","postId":"p1","authorName":"Drone7","content":"strong disagree","upvotes":2,"createdAt":"2026-08-30T12:00:00Z"},
			{"id":"c2","postId":"p1","authorName":"Ghost","content":"","upvotes":0,"createdAt":"2026-08-30T12:01:00Z"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://hive.example", 5*time.Second)
	comments, err := client.Comments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestErrorStatusSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://hive.example", 5*time.Second)
	client.httpClient.RetryMax = 0

	_, err := client.Posts(context.Background(), time.Now(), 5, "top")
	assert.Error(t, err)
}

func TestNonArrayPayloadSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"not an array"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "https://hive.example", 5*time.Second)
	_, err := client.Agents(context.Background(), time.Now(), 5, "new")
	assert.Error(t, err)
}
