package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the canonical 11-character video identifier
// from any of the common YouTube URL shapes: watch URLs (with or
// without extra playlist/timestamp parameters), youtu.be short links,
// /shorts/, /embed/, /live/ and /v/ paths. A bare video id passes
// through unchanged. Anything else is an error, never a silently wrong
// id.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		id := firstPathSegment(u.Path)
		return validateID(id, raw)
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
	default:
		return "", fmt.Errorf("not a youtube url: %q", raw)
	}

	if id := u.Query().Get("v"); id != "" {
		return validateID(id, raw)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) >= 2 {
		switch segs[0] {
		case "shorts", "embed", "live", "v":
			return validateID(segs[1], raw)
		}
	}

	return "", fmt.Errorf("no video id in url: %q", raw)
}

func firstPathSegment(path string) string {
	return strings.SplitN(strings.Trim(path, "/"), "/", 2)[0]
}

func validateID(id, raw string) (string, error) {
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("malformed video id %q in url %q", id, raw)
	}
	return id, nil
}
