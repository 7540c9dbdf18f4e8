package plants

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIURL)
	}

	u, err = parseBaseURL("https://plants.example.com:8443/app?v=17#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_FetchTodaySendsAuthAndDecodes(t *testing.T) {
	t.Parallel()

	var gotToken, gotUserAgent, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Telegram-InitData")
		gotUserAgent = r.Header.Get("User-Agent")
		gotMethod = r.Method
		if r.URL.Path != todayPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":1,"name":"Monstera","norm_days":7,"last_watered_at":"2026-10-12T08:00:00+00:00","days_since_last_watering":7,"due_in_days":0,"status":"due"},
			{"id":2,"name":"Cactus","norm_days":null,"last_watered_at":null,"days_since_last_watering":null,"due_in_days":null,"status":"unknown"},
			{"id":3,"name":"Fern","status":"wilting"}
		]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithToken("", "query_id=abc&hash=ff"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.FetchToday(ctx)
	if err != nil {
		t.Fatalf("FetchToday returned error: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("method = %q, want GET", gotMethod)
	}
	if gotToken != "query_id=abc&hash=ff" {
		t.Fatalf("auth header = %q, want token", gotToken)
	}
	if !strings.HasPrefix(gotUserAgent, "plantbuddy/") {
		t.Fatalf("User-Agent = %q, want plantbuddy/*", gotUserAgent)
	}
	if len(items) != 3 {
		t.Fatalf("FetchToday items = %d, want 3", len(items))
	}
	first := items[0]
	if first.ID != 1 || first.Name != "Monstera" || first.Status != StatusDue {
		t.Fatalf("first item = %#v, want id=1 Monstera due", first)
	}
	if first.NormDays == nil || *first.NormDays != 7 || first.DueInDays == nil || *first.DueInDays != 0 {
		t.Fatalf("first item numeric fields not decoded: %#v", first)
	}
	if first.ParsedLastWatered().IsZero() {
		t.Fatalf("ParsedLastWatered should parse %q", *first.LastWateredAt)
	}
	if items[1].NormDays != nil || items[1].LastWateredAt != nil || items[1].DueInDays != nil {
		t.Fatalf("null fields should decode to nil: %#v", items[1])
	}
	if items[2].Status != StatusUnknown {
		t.Fatalf("unrecognised status = %q, want unknown", items[2].Status)
	}
}

func TestClient_FetchTodayCustomHeaderAndNoToken(t *testing.T) {
	t.Parallel()

	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithToken("Authorization", "Bearer xyz"))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchToday(context.Background()); err != nil {
		t.Fatalf("FetchToday returned error: %v", err)
	}
	if headers.Get("Authorization") != "Bearer xyz" {
		t.Fatalf("Authorization = %q, want Bearer xyz", headers.Get("Authorization"))
	}

	anon, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := anon.FetchToday(context.Background()); err != nil {
		t.Fatalf("FetchToday returned error: %v", err)
	}
	if _, ok := headers["X-Telegram-Initdata"]; ok {
		t.Fatalf("auth header sent without a token: %v", headers)
	}
}

func TestClient_FetchTodayLenientBodies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty", "", 0},
		{"not json", "<html>oops</html>", 0},
		{"items missing", `{"ok":true}`, 0},
		{"items null", `{"items":null}`, 0},
		{"items not a list", `{"items":"nope"}`, 0},
		{"bare array", `[{"id":5,"name":"Ivy","status":"ok"}]`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			items, err := c.FetchToday(context.Background())
			if err != nil {
				t.Fatalf("FetchToday returned error: %v", err)
			}
			if len(items) != tc.want {
				t.Fatalf("FetchToday items = %d, want %d", len(items), tc.want)
			}
		})
	}
}

func TestClient_MarkWateredPostsIDs(t *testing.T) {
	t.Parallel()

	var got WaterRequest
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != waterPath {
			http.NotFound(w, r)
			return
		}
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_ = json.NewEncoder(w).Encode(WaterResult{OK: true, Updated: len(got.PlantIDs)})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	res, err := c.MarkWatered(context.Background(), []int64{3, 1, 2})
	if err != nil {
		t.Fatalf("MarkWatered returned error: %v", err)
	}
	if !res.OK || res.Updated != 3 {
		t.Fatalf("MarkWatered result = %#v, want ok updated=3", res)
	}
	if len(got.PlantIDs) != 3 || got.PlantIDs[0] != 3 {
		t.Fatalf("server received %#v, want [3 1 2]", got.PlantIDs)
	}
	if contentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", contentType)
	}
}

func TestClient_MarkWateredRejectsEmpty(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.MarkWatered(context.Background(), nil); !errors.Is(err, ErrNoPlants) {
		t.Fatalf("MarkWatered error = %v, want ErrNoPlants", err)
	}
}

func TestClient_MarkWateredInvalidBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.MarkWatered(context.Background(), []int64{1})
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("MarkWatered error = %v, want *RequestError", err)
	}
	if rerr.Error() != "Invalid response from server" {
		t.Fatalf("message = %q, want invalid response", rerr.Error())
	}
}

func TestClient_ErrorMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail string", http.StatusUnauthorized, `{"detail":"initData expired"}`, "initData expired"},
		{"message field", http.StatusBadRequest, `{"message":"plant_ids must be a list"}`, "plant_ids must be a list"},
		{"detail wins over message", http.StatusBadRequest, `{"detail":"first","message":"second"}`, "first"},
		{"detail not a string", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body"]}]}`, "HTTP 422"},
		{"empty detail", http.StatusInternalServerError, `{"detail":"  "}`, "HTTP 500"},
		{"plain text body", http.StatusInternalServerError, "Internal Server Error", "HTTP 500"},
		{"no body", http.StatusBadGateway, "", "HTTP 502"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.FetchToday(context.Background())
			var rerr *RequestError
			if !errors.As(err, &rerr) {
				t.Fatalf("FetchToday error = %v, want *RequestError", err)
			}
			if rerr.StatusCode != tc.status {
				t.Fatalf("StatusCode = %d, want %d", rerr.StatusCode, tc.status)
			}
			if got := rerr.Error(); got != tc.want {
				t.Fatalf("message = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchToday(context.Background())
	var rerr *RequestError
	if !errors.As(err, &rerr) {
		t.Fatalf("FetchToday error = %v, want *RequestError", err)
	}
	if rerr.StatusCode != 0 {
		t.Fatalf("StatusCode = %d, want 0 for transport failure", rerr.StatusCode)
	}
	if strings.TrimSpace(rerr.Error()) == "" {
		t.Fatalf("transport failure should carry a message")
	}
}

func TestMessage_Fallbacks(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q, want empty", got)
	}
	if got := Message(&RequestError{}); got != FallbackMessage {
		t.Fatalf("Message(empty RequestError) = %q, want %q", got, FallbackMessage)
	}
	if got := Message(errors.New("  ")); got != FallbackMessage {
		t.Fatalf("Message(blank) = %q, want %q", got, FallbackMessage)
	}
	if got := Message(errors.New("HTTP 500")); got != "HTTP 500" {
		t.Fatalf("Message = %q, want HTTP 500", got)
	}
}
