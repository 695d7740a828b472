package youtube

import "testing"

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "watch url", raw: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url with playlist", raw: "https://youtube.com/watch?v=dQw4w9WgXcQ&list=PLx&index=2", want: "dQw4w9WgXcQ"},
		{name: "short link", raw: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link with timestamp", raw: "https://youtu.be/dQw4w9WgXcQ?t=42", want: "dQw4w9WgXcQ"},
		{name: "shorts path", raw: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed path", raw: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "live path", raw: "https://www.youtube.com/live/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "mobile host", raw: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "no scheme", raw: "youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare id", raw: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "empty", raw: "", wantErr: true},
		{name: "not youtube", raw: "https://vimeo.com/123456", wantErr: true},
		{name: "watch without v", raw: "https://www.youtube.com/watch?list=PLx", wantErr: true},
		{name: "malformed id", raw: "https://www.youtube.com/watch?v=tooshort", wantErr: true},
		{name: "channel path", raw: "https://www.youtube.com/@somechannel", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVideoID(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("id: want=%q got=%q", tc.want, got)
			}
		})
	}
}
