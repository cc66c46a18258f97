// Package uploadsvc talks to the upload microservice that authorizes channels
// and publishes videos on their behalf.
package uploadsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tubescout/pkg/httputil"
)

const defaultTimeout = 60 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	api     *httputil.Client
}

// NewClient returns a client for the service at baseURL. A non-empty token is
// sent as a bearer token on every call.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	httpClient := &http.Client{Timeout: defaultTimeout}
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}))
		httpClient.Timeout = defaultTimeout
	}
	return newClient(baseURL, httpClient)
}

func newClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		api:     httputil.NewClient(httpClient),
	}
}

type AuthorizeResponse struct {
	AuthURL string `json:"auth_url"`
}

// Authorize asks the service for a consent link for the channel hint.
func (c *Client) Authorize(ctx context.Context, channelHint string) (string, error) {
	u := c.baseURL + "/authorize"
	if channelHint != "" {
		u += "?" + url.Values{"channel": {channelHint}}.Encode()
	}

	var resp AuthorizeResponse
	if err := c.api.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return "", fmt.Errorf("authorize: %w", err)
	}
	if resp.AuthURL == "" {
		return "", errors.New("authorize: empty auth_url in response")
	}
	return resp.AuthURL, nil
}

type Channel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type channelsResponse struct {
	Channels []Channel `json:"channels"`
}

func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	data, err := c.api.DoRaw(ctx, http.MethodGet, c.baseURL+"/channels", nil)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	// The service answers with either a bare array or {"channels": [...]}.
	var list []Channel
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped channelsResponse
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("list channels: failed to decode response: %w", err)
	}
	return wrapped.Channels, nil
}

type UploadTarget struct {
	UploadURL   string `json:"upload_url"`
	StoragePath string `json:"storage_path"`
}

type uploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// UploadURL requests a signed target for a file of the given name.
func (c *Client) UploadURL(ctx context.Context, fileName, contentType string) (*UploadTarget, error) {
	var target UploadTarget
	req := uploadURLRequest{FileName: fileName, ContentType: contentType}
	if err := c.api.Do(ctx, http.MethodPost, c.baseURL+"/upload-url", req, &target); err != nil {
		return nil, fmt.Errorf("request upload url: %w", err)
	}
	return &target, nil
}

type Metadata struct {
	ChannelID   string   `json:"channel_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Privacy     string   `json:"privacy"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"category_id"`
	StoragePath string   `json:"storage_path"`
}

// Publish finalizes an upload and returns the service's JSON response as is.
func (c *Client) Publish(ctx context.Context, meta Metadata) (json.RawMessage, error) {
	data, err := c.api.DoRaw(ctx, http.MethodPost, c.baseURL+"/publish", meta)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	return json.RawMessage(data), nil
}

// PutFile streams the file at path to a signed upload target.
func (c *Client) PutFile(ctx context.Context, target, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, f)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = info.Size()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Signed targets carry their own credentials.
	resp, err := (&http.Client{Timeout: c.http.Timeout}).Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload file: %w", &httputil.StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}
	return nil
}
