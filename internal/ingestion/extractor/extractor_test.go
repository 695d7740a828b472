package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/videosage-backend/internal/clients/youtube"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

type fakeSpeech struct {
	transcript string
	err        error
}

func (f *fakeSpeech) TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return f.transcript, f.err
}
func (f *fakeSpeech) Close() error { return nil }

type fakeCaptions struct {
	captions []youtube.Caption
	err      error
}

func (f *fakeCaptions) Fetch(ctx context.Context, videoID string) ([]youtube.Caption, error) {
	return f.captions, f.err
}

type fakeDocument struct {
	pages []string
	err   error
}

func (f *fakeDocument) ExtractPages(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	return f.pages, f.err
}
func (f *fakeDocument) Close() error { return nil }

type fakeVision struct {
	text string
	err  error
}

func (f *fakeVision) DetectText(ctx context.Context, img []byte) (string, error) {
	return f.text, f.err
}
func (f *fakeVision) Close() error { return nil }

type fixtures struct {
	speech   *fakeSpeech
	captions *fakeCaptions
	document *fakeDocument
	vision   *fakeVision
}

func testExtractor(t *testing.T, f fixtures) *Extractor {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	if f.speech == nil {
		f.speech = &fakeSpeech{}
	}
	if f.captions == nil {
		f.captions = &fakeCaptions{}
	}
	if f.document == nil {
		f.document = &fakeDocument{}
	}
	if f.vision == nil {
		f.vision = &fakeVision{}
	}
	return New(log, f.speech, f.captions, f.document, f.vision)
}

func tempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.bin")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestExtractYouTube(t *testing.T) {
	e := testExtractor(t, fixtures{captions: &fakeCaptions{
		captions: []youtube.Caption{
			{Text: "a", Start: 0},
			{Text: "b", Start: 1},
			{Text: "c", Start: 2},
		},
	}})

	res, err := e.Extract(context.Background(), KindYouTube, Source{URL: "https://youtu.be/dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "a b c" {
		t.Fatalf("transcript: want=%q got=%q", "a b c", res.Text)
	}
	if res.Metadata["video_id"] != "dQw4w9WgXcQ" {
		t.Fatalf("metadata video_id: got=%v", res.Metadata["video_id"])
	}
}

func TestExtractYouTubeBadURL(t *testing.T) {
	e := testExtractor(t, fixtures{})

	_, err := e.Extract(context.Background(), KindYouTube, Source{URL: "https://example.com/v=nope"})
	if KindOf(err) != KindUnreachableSource {
		t.Fatalf("expected unreachable source, got %v", err)
	}
}

func TestExtractYouTubeNoCaptions(t *testing.T) {
	e := testExtractor(t, fixtures{captions: &fakeCaptions{err: youtube.ErrNoCaptions}})

	_, err := e.Extract(context.Background(), KindYouTube, Source{URL: "https://youtu.be/dQw4w9WgXcQ"})
	if KindOf(err) != KindUnreachableSource {
		t.Fatalf("expected unreachable source, got %v", err)
	}
}

func TestExtractPDF(t *testing.T) {
	e := testExtractor(t, fixtures{document: &fakeDocument{pages: []string{"Hello ", "", "World"}}})
	path := tempFile(t, []byte("%PDF-1.4"))

	res, err := e.Extract(context.Background(), KindPDF, Source{FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Hello World" {
		t.Fatalf("text: want=%q got=%q", "Hello World", res.Text)
	}
	if res.Metadata["page_count"] != 3 {
		t.Fatalf("page_count: got=%v", res.Metadata["page_count"])
	}
}

func TestExtractPDFNoText(t *testing.T) {
	e := testExtractor(t, fixtures{document: &fakeDocument{pages: []string{"", "  ", ""}}})
	path := tempFile(t, []byte("%PDF-1.4"))

	_, err := e.Extract(context.Background(), KindPDF, Source{FilePath: path})
	if KindOf(err) != KindEmptyResult {
		t.Fatalf("expected empty result, got %v", err)
	}
}

func TestExtractVideo(t *testing.T) {
	e := testExtractor(t, fixtures{speech: &fakeSpeech{transcript: "spoken words"}})
	path := tempFile(t, []byte("fake media"))

	res, err := e.Extract(context.Background(), KindVideo, Source{FilePath: path, MimeType: "video/mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "spoken words" {
		t.Fatalf("transcript: got=%q", res.Text)
	}
}

func TestExtractVideoMissingFile(t *testing.T) {
	e := testExtractor(t, fixtures{})

	_, err := e.Extract(context.Background(), KindVideo, Source{FilePath: filepath.Join(t.TempDir(), "absent.mp4")})
	if KindOf(err) != KindUnreachableSource {
		t.Fatalf("expected unreachable source, got %v", err)
	}
}

func TestExtractImage(t *testing.T) {
	e := testExtractor(t, fixtures{vision: &fakeVision{text: "OCR OUTPUT\nwith a typpo"}})
	path := tempFile(t, []byte{0x89, 'P', 'N', 'G'})

	res, err := e.Extract(context.Background(), KindImage, Source{FilePath: path, MimeType: "image/png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// OCR output stays verbatim.
	if res.Text != "OCR OUTPUT\nwith a typpo" {
		t.Fatalf("text: got=%q", res.Text)
	}
}

func TestExtractImageNoText(t *testing.T) {
	e := testExtractor(t, fixtures{vision: &fakeVision{text: "  \n"}})
	path := tempFile(t, []byte{0x89, 'P', 'N', 'G'})

	_, err := e.Extract(context.Background(), KindImage, Source{FilePath: path, MimeType: "image/png"})
	if KindOf(err) != KindEmptyResult {
		t.Fatalf("expected empty result, got %v", err)
	}
}

func TestExtractProviderFailure(t *testing.T) {
	e := testExtractor(t, fixtures{vision: &fakeVision{err: fmt.Errorf("quota exhausted")}})
	path := tempFile(t, []byte{0x89, 'P', 'N', 'G'})

	_, err := e.Extract(context.Background(), KindImage, Source{FilePath: path, MimeType: "image/png"})
	if KindOf(err) != KindUnreachableSource {
		t.Fatalf("expected unreachable source, got %v", err)
	}
}

func TestParseSourceKind(t *testing.T) {
	if _, err := ParseSourceKind("podcast"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	kind, err := ParseSourceKind(" PDF ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != KindPDF {
		t.Fatalf("kind: want=%q got=%q", KindPDF, kind)
	}
}
