package youtube

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	"github.com/yungbote/videosage-backend/internal/pkg/httpx"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// ErrNoCaptions means the video exists but exposes no caption track.
var ErrNoCaptions = errors.New("no caption track available")

type Caption struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Captions fetches the caption track of a hosted video, ordered by
// start time.
type Captions interface {
	Fetch(ctx context.Context, videoID string) ([]Caption, error)
}

type captionsClient struct {
	log        *logger.Logger
	baseURL    string
	language   string
	maxRetries int
	httpClient *http.Client
}

func NewCaptions(log *logger.Logger) Captions {
	return &captionsClient{
		log:        log.With("service", "youtube.Captions"),
		baseURL:    "https://video.google.com/timedtext",
		language:   "en",
		maxRetries: 3,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *captionsClient) Fetch(ctx context.Context, videoID string) ([]Caption, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	delay := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("Retrying caption fetch", "video_id", videoID, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(httpx.JitterSleep(delay)):
			}
			delay *= 2
		}

		captions, retryAfter, err := c.fetchOnce(ctx, videoID)
		if err == nil {
			return captions, nil
		}
		if retryAfter < 0 {
			return nil, err
		}
		if retryAfter > delay {
			delay = retryAfter
		}
		lastErr = err
	}
	return nil, lastErr
}

// fetchOnce performs one request. retryAfter < 0 means the failure is
// terminal; otherwise it is the minimum wait before the next attempt.
func (c *captionsClient) fetchOnce(ctx context.Context, videoID string) ([]Caption, time.Duration, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, -1, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if httpx.IsRetryableError(err) {
			return nil, 0, fmt.Errorf("fetch captions: %w", err)
		}
		return nil, -1, fmt.Errorf("fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, -1, ErrNoCaptions
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("fetch captions: http %d", resp.StatusCode)
		if httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return nil, httpx.RetryAfterDuration(resp, 0, 30*time.Second), err
		}
		return nil, -1, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read caption body: %w", err)
	}
	// The endpoint answers 200 with an empty body when no track exists.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, -1, ErrNoCaptions
	}

	captions, err := parseTimedText(body)
	if err != nil {
		return nil, -1, err
	}
	if len(captions) == 0 {
		return nil, -1, ErrNoCaptions
	}
	return captions, -1, nil
}

type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextCue `xml:"text"`
}

type timedTextCue struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

func parseTimedText(body []byte) ([]Caption, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse caption track: %w", err)
	}

	out := make([]Caption, 0, len(doc.Texts))
	for _, cue := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(cue.Body))
		if text == "" {
			continue
		}
		out = append(out, Caption{Text: text, Start: cue.Start, Duration: cue.Dur})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}
