package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// XClient is the concrete broadcaster against the X v2 post endpoint.
// Credentials, rate limits, and retries belong to the platform; this
// client only translates one Send call into one request.
type XClient struct {
	httpClient  *http.Client
	apiURL      string
	bearerToken string
}

type xPostRequest struct {
	Text  string `json:"text"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

type xPostResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func NewXClient(apiURL, bearerToken string, timeout time.Duration) *XClient {
	return &XClient{
		httpClient:  &http.Client{Timeout: timeout},
		apiURL:      apiURL,
		bearerToken: bearerToken,
	}
}

func (c *XClient) Send(ctx context.Context, text string, inReplyTo string) (string, error) {
	body := xPostRequest{Text: text}
	if inReplyTo != "" {
		body.Reply = &struct {
			InReplyToTweetID string `json:"in_reply_to_tweet_id"`
		}{InReplyToTweetID: inReplyTo}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/tweets", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("broadcast error %d: %s", resp.StatusCode, msg)
	}

	var parsed xPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("broadcast response missing id")
	}
	return parsed.Data.ID, nil
}
