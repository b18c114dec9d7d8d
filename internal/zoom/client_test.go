package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"rollcall/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})
	mux.Handle("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient(config.Zoom{
		AccountID:    "acct",
		ClientID:     "client",
		ClientSecret: "secret",
		BaseURL:      server.URL,
		AuthURL:      server.URL + "/oauth/token",
	}, nil)
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestGetMeetingDetails(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		if r.URL.Path != "/report/meetings/123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"topic": "standup"})
	}))

	details, err := client.GetMeetingDetails(context.Background(), "123")
	if err != nil {
		t.Fatalf("GetMeetingDetails: %v", err)
	}
	if details.Topic != "standup" {
		t.Errorf("Topic = %q", details.Topic)
	}
}

func TestGetPastOccurrences(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/past_meetings/123/instances" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meetings": []map[string]string{
				{"uuid": "occ-1", "start_time": "2020-05-17T10:00:00Z"},
				{"uuid": "occ-2", "start_time": "2020-05-18T10:00:00Z"},
			},
		})
	}))

	occurrences, err := client.GetPastOccurrences(context.Background(), "123")
	if err != nil {
		t.Fatalf("GetPastOccurrences: %v", err)
	}
	if len(occurrences) != 2 || occurrences[0].UUID != "occ-1" {
		t.Errorf("occurrences = %+v", occurrences)
	}
}

func TestGetParticipantsPagePaging(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := map[string]any{
			"participants": []map[string]string{{"id": "s1", "name": "Ann", "user_email": ""}},
		}
		if r.URL.Query().Get("next_page_token") == "" {
			page["next_page_token"] = "tok-2"
		}
		if got := r.URL.Query().Get("page_size"); got != "300" {
			t.Errorf("page_size = %q", got)
		}
		_ = json.NewEncoder(w).Encode(page)
	}))

	first, err := client.GetParticipantsPage(context.Background(), "occ-1", "")
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if first.NextPageToken != "tok-2" {
		t.Errorf("NextPageToken = %q", first.NextPageToken)
	}

	second, err := client.GetParticipantsPage(context.Background(), "occ-1", first.NextPageToken)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if second.NextPageToken != "" {
		t.Errorf("expected final page, got token %q", second.NextPageToken)
	}
}

func TestGetParticipantsPageEscapesSlashes(t *testing.T) {
	var gotURI string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		_ = json.NewEncoder(w).Encode(map[string]any{"participants": []any{}})
	}))

	occurrenceID := "ab/cd==" // uuids beginning with or containing a slash need double encoding
	if _, err := client.GetParticipantsPage(context.Background(), occurrenceID, ""); err != nil {
		t.Fatalf("GetParticipantsPage: %v", err)
	}

	wantSegment := url.QueryEscape(url.QueryEscape(occurrenceID))
	if want := "/report/meetings/" + wantSegment + "/participants"; len(gotURI) < len(want) || gotURI[:len(want)] != want {
		t.Errorf("request URI = %q, want prefix %q", gotURI, want)
	}
}

func TestStatusErrorCarriesIdentifier(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetMeetingDetails(context.Background(), "123")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusNotFound || statusErr.Resource != "meeting 123" {
		t.Errorf("StatusError = %+v", statusErr)
	}
}

func TestThrottleErrorRetryAfter(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.GetParticipantsPage(context.Background(), "occ-1", "")
	if !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}
	var throttle *ThrottleError
	if !errors.As(err, &throttle) {
		t.Fatalf("expected ThrottleError, got %v", err)
	}
	if throttle.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %s", throttle.RetryAfter)
	}
}

func TestTokenFetchedOnce(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(map[string]any{"topic": "t"})
	}))

	for i := 0; i < 3; i++ {
		if _, err := client.GetMeetingDetails(context.Background(), "123"); err != nil {
			t.Fatalf("GetMeetingDetails: %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("api calls = %d", calls)
	}
	if client.accessToken != "test-token" {
		t.Errorf("cached token = %q", client.accessToken)
	}
}
