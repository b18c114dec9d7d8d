package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"rollcall/internal/config"
	"rollcall/internal/logging"
)

const (
	participantsPageSize = 300
	defaultRetryAfter    = 30 * time.Second
)

// Client provides access to the Zoom reporting API.
type Client struct {
	baseURL      string
	authURL      string
	accountID    string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient constructs a reporting API client from config credentials.
func NewClient(cfg config.Zoom, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		authURL:      cfg.AuthURL,
		accountID:    cfg.AccountID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logging.NewComponentLogger(logger, "zoom"),
	}
}

// GetMeetingDetails fetches the meeting report for one meeting id.
func (c *Client) GetMeetingDetails(ctx context.Context, meetingID string) (*MeetingDetails, error) {
	var details MeetingDetails
	path := fmt.Sprintf("/report/meetings/%s", url.PathEscape(meetingID))
	if err := c.get(ctx, path, nil, "meeting "+meetingID, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetPastOccurrences lists the past instances of a recurring meeting.
func (c *Client) GetPastOccurrences(ctx context.Context, meetingID string) ([]Occurrence, error) {
	var parsed occurrencesResponse
	path := fmt.Sprintf("/past_meetings/%s/instances", url.PathEscape(meetingID))
	if err := c.get(ctx, path, nil, "meeting "+meetingID, &parsed); err != nil {
		return nil, err
	}
	return parsed.Meetings, nil
}

// GetParticipantsPage fetches one page of the participant report for an
// occurrence. Pass an empty pageToken for the first page; the returned page
// carries the token for the next one, empty when exhausted.
func (c *Client) GetParticipantsPage(ctx context.Context, occurrenceID, pageToken string) (*ParticipantsPage, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(participantsPageSize))
	if pageToken != "" {
		query.Set("next_page_token", pageToken)
	}

	var page ParticipantsPage
	path := fmt.Sprintf("/report/meetings/%s/participants", escapeOccurrenceID(occurrenceID))
	if err := c.get(ctx, path, query, "occurrence "+occurrenceID, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// escapeOccurrenceID encodes an occurrence UUID for use in a URL path. UUIDs
// containing a slash must be encoded twice or the report endpoints 404; the
// identifier stored locally is never altered.
func escapeOccurrenceID(id string) string {
	if strings.Contains(id, "/") {
		return url.QueryEscape(url.QueryEscape(id))
	}
	return url.PathEscape(id)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, resource string, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", logging.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &ThrottleError{Resource: resource, RetryAfter: retryAfter(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("api request failed",
			logging.String("path", path),
			logging.Int(logging.FieldStatus, resp.StatusCode))
		return &StatusError{Status: resp.StatusCode, Resource: resource}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", resource, err)
	}
	return nil
}

func retryAfter(resp *http.Response) time.Duration {
	if value := resp.Header.Get("Retry-After"); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryAfter
}

// token returns a valid access token, requesting a fresh one from the OAuth
// endpoint when the cached token is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	tokenURL := fmt.Sprintf("%s?grant_type=account_credentials&account_id=%s",
		c.authURL, url.QueryEscape(c.accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Status: resp.StatusCode, Resource: "oauth token"}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.accessToken = parsed.AccessToken
	expiry := time.Duration(parsed.ExpiresIn) * time.Second
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	c.tokenExpiry = time.Now().Add(expiry)
	c.logger.Debug("obtained access token", logging.Int("expires_in", parsed.ExpiresIn))

	return c.accessToken, nil
}
