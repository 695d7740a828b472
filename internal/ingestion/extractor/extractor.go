package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/videosage-backend/internal/clients/gcp"
	"github.com/yungbote/videosage-backend/internal/clients/youtube"
	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// SourceKind is the type tag distinguishing the ingestion paths.
type SourceKind string

const (
	KindVideo   SourceKind = "video"   // uploaded audio/video file
	KindYouTube SourceKind = "youtube" // hosted video by URL
	KindPDF     SourceKind = "pdf"     // paginated document
	KindImage   SourceKind = "image"   // raster image
)

func ParseSourceKind(s string) (SourceKind, error) {
	switch SourceKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindVideo:
		return KindVideo, nil
	case KindYouTube:
		return KindYouTube, nil
	case KindPDF:
		return KindPDF, nil
	case KindImage:
		return KindImage, nil
	default:
		return "", fmt.Errorf("unknown source kind %q", s)
	}
}

// Source is one raw input. Uploaded kinds carry FilePath (a scoped temp
// file owned by the caller); the hosted-video kind carries URL.
type Source struct {
	URL      string
	FilePath string
	MimeType string
}

// Result is the normalized plain-text representation of a source plus
// source-specific metadata destined for the content payload.
type Result struct {
	Text     string
	Metadata map[string]any
}

// Extractor normalizes heterogeneous inputs into plain text. The
// provider handles are injected; their lifecycle belongs to the hosting
// application.
type Extractor struct {
	log      *logger.Logger
	speech   gcp.Speech
	captions youtube.Captions
	document gcp.Document
	vision   gcp.Vision
}

func New(log *logger.Logger, speech gcp.Speech, captions youtube.Captions, document gcp.Document, vision gcp.Vision) *Extractor {
	return &Extractor{
		log:      log.With("service", "Extractor"),
		speech:   speech,
		captions: captions,
		document: document,
		vision:   vision,
	}
}

func (e *Extractor) Extract(ctx context.Context, kind SourceKind, src Source) (*Result, error) {
	ctx = ctxutil.Default(ctx)

	switch kind {
	case KindVideo:
		return e.extractVideo(ctx, src)
	case KindYouTube:
		return e.extractYouTube(ctx, src)
	case KindPDF:
		return e.extractPDF(ctx, src)
	case KindImage:
		return e.extractImage(ctx, src)
	default:
		return nil, errorf(KindUnsupportedFormat, "unknown source kind %q", kind)
	}
}

func (e *Extractor) extractVideo(ctx context.Context, src Source) (*Result, error) {
	data, err := os.ReadFile(src.FilePath)
	if err != nil {
		return nil, newError(KindUnreachableSource, fmt.Errorf("read upload: %w", err))
	}

	transcript, err := e.speech.TranscribeAudioBytes(ctx, data, src.MimeType)
	if err != nil {
		return nil, newError(KindUnreachableSource, err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, errorf(KindEmptyResult, "no speech recognized")
	}

	return &Result{
		Text: transcript,
		Metadata: map[string]any{
			"mime":       src.MimeType,
			"size_bytes": len(data),
		},
	}, nil
}

func (e *Extractor) extractYouTube(ctx context.Context, src Source) (*Result, error) {
	videoID, err := youtube.ParseVideoID(src.URL)
	if err != nil {
		return nil, newError(KindUnreachableSource, err)
	}

	captions, err := e.captions.Fetch(ctx, videoID)
	if err != nil {
		return nil, newError(KindUnreachableSource, err)
	}

	// Caption segments in temporal order, joined with single spaces.
	parts := make([]string, 0, len(captions))
	for _, c := range captions {
		parts = append(parts, c.Text)
	}
	transcript := strings.Join(parts, " ")
	if strings.TrimSpace(transcript) == "" {
		return nil, errorf(KindEmptyResult, "caption track is empty")
	}

	return &Result{
		Text: transcript,
		Metadata: map[string]any{
			"source_url": src.URL,
			"video_id":   videoID,
			"captions":   len(captions),
		},
	}, nil
}

func (e *Extractor) extractPDF(ctx context.Context, src Source) (*Result, error) {
	data, err := os.ReadFile(src.FilePath)
	if err != nil {
		return nil, newError(KindUnreachableSource, fmt.Errorf("read upload: %w", err))
	}

	mime := src.MimeType
	if mime == "" {
		mime = "application/pdf"
	}
	pages, err := e.document.ExtractPages(ctx, data, mime)
	if err != nil {
		return nil, newError(KindUnreachableSource, err)
	}

	// Pages concatenate in document order; a textless page contributes
	// an empty string, not an error.
	text := strings.Join(pages, "")
	if strings.TrimSpace(text) == "" {
		return nil, errorf(KindEmptyResult, "document has no extractable text")
	}

	return &Result{
		Text: text,
		Metadata: map[string]any{
			"mime":       mime,
			"page_count": len(pages),
			"size_bytes": len(data),
		},
	}, nil
}

func (e *Extractor) extractImage(ctx context.Context, src Source) (*Result, error) {
	data, err := os.ReadFile(src.FilePath)
	if err != nil {
		return nil, newError(KindUnreachableSource, fmt.Errorf("read upload: %w", err))
	}

	text, err := e.vision.DetectText(ctx, data)
	if err != nil {
		return nil, newError(KindUnreachableSource, err)
	}
	// OCR output is kept verbatim; no spellcheck or cleanup.
	if strings.TrimSpace(text) == "" {
		return nil, errorf(KindEmptyResult, "no text recognized in image")
	}

	return &Result{
		Text: text,
		Metadata: map[string]any{
			"mime":       src.MimeType,
			"size_bytes": len(data),
		},
	}, nil
}
