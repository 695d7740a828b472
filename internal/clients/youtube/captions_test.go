package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

const sampleTrack = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="4.2" dur="2.0">second &amp; third</text>
  <text start="0.0" dur="4.2">first cue</text>
  <text start="9.9" dur="1.0">   </text>
</transcript>`

func TestParseTimedText(t *testing.T) {
	captions, err := parseTimedText([]byte(sampleTrack))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captions) != 2 {
		t.Fatalf("captions: want=2 got=%d", len(captions))
	}
	if captions[0].Text != "first cue" || captions[0].Start != 0.0 {
		t.Fatalf("first caption out of order: %+v", captions[0])
	}
	if captions[1].Text != "second & third" {
		t.Fatalf("entity not unescaped: %q", captions[1].Text)
	}
}

func TestFetchNoCaptions(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "404",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := &captionsClient{
				log:        testLogger(t),
				baseURL:    srv.URL,
				language:   "en",
				httpClient: &http.Client{Timeout: 5 * time.Second},
			}
			_, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
			if !errors.Is(err, ErrNoCaptions) {
				t.Fatalf("expected ErrNoCaptions, got %v", err)
			}
		})
	}
}

func TestFetchRetriesTransientStatus(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleTrack))
	}))
	defer srv.Close()

	c := &captionsClient{
		log:        testLogger(t),
		baseURL:    srv.URL,
		language:   "en",
		maxRetries: 2,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	captions, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captions) != 2 {
		t.Fatalf("captions: want=2 got=%d", len(captions))
	}
	if hits != 2 {
		t.Fatalf("hits: want=2 got=%d", hits)
	}
}

func TestFetchTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("v"); got != "dQw4w9WgXcQ" {
			t.Errorf("video id: want=%q got=%q", "dQw4w9WgXcQ", got)
		}
		w.Write([]byte(sampleTrack))
	}))
	defer srv.Close()

	c := &captionsClient{
		log:        testLogger(t),
		baseURL:    srv.URL,
		language:   "en",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	captions, err := c.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captions) != 2 {
		t.Fatalf("captions: want=2 got=%d", len(captions))
	}
}
