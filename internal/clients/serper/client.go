package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/yungbote/capstone-backend/internal/logger"
)

const defaultBaseURL = "https://google.serper.dev"

// Result is one organic web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client runs a web search and returns up to a handful of organic results.
// A missing API key or any transport/decoding failure yields an empty result
// set, never an error: verification degrades to "unverified" instead of
// failing the request.
type Client interface {
	Search(ctx context.Context, query string) []Result
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	clientLog := log.With("client", "SerperClient")
	apiKey := os.Getenv("SERPER_API_KEY")
	if apiKey == "" {
		clientLog.Warn("SERPER_API_KEY not set, web search verification disabled")
	}
	baseURL := os.Getenv("SERPER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		log:        clientLog,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

func (c *client) Search(ctx context.Context, query string) []Result {
	if c.apiKey == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchRequest{Q: query, Num: 5}); err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", &buf)
	if err != nil {
		return nil
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Search request failed", "query", query, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Search returned non-OK status", "query", query, "status", resp.StatusCode)
		return nil
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("Search response decode failed", "query", query, "error", err)
		return nil
	}
	return out.Organic
}
