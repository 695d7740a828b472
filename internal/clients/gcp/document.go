package gcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	documentaipb "cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// Document extracts text from a paginated document, one string per page
// in document order. Pages with no text come back as empty strings.
type Document interface {
	ExtractPages(ctx context.Context, data []byte, mimeType string) ([]string, error)
	Close() error
}

type documentService struct {
	log    *logger.Logger
	client *documentai.DocumentProcessorClient

	processorName string
	maxRetries    int
}

func NewDocument(log *logger.Logger) (Document, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Document")

	projectID := strings.TrimSpace(os.Getenv("DOCUMENTAI_PROJECT_ID"))
	processorID := strings.TrimSpace(os.Getenv("DOCUMENTAI_PROCESSOR_ID"))
	location := strings.TrimSpace(os.Getenv("DOCUMENTAI_LOCATION"))
	if location == "" {
		location = "us"
	}
	if projectID == "" || processorID == "" {
		return nil, fmt.Errorf("DOCUMENTAI_PROJECT_ID and DOCUMENTAI_PROCESSOR_ID required")
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	opts := append([]option.ClientOption{option.WithEndpoint(endpoint)}, ClientOptionsFromEnv()...)

	ctx := context.Background()
	c, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documentai client: %w", err)
	}

	slog.Info("Document AI initialized", "endpoint", endpoint)
	return &documentService{
		log:           slog,
		client:        c,
		processorName: fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID),
		maxRetries:    4,
	}, nil
}

func (s *documentService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *documentService) ExtractPages(ctx context.Context, data []byte, mimeType string) ([]string, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if len(data) == 0 {
		return nil, nil
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "application/pdf"
	}

	req := &documentaipb.ProcessRequest{
		Name: s.processorName,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	}

	var resp *documentaipb.ProcessResponse
	err := retry(s.maxRetries, func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var callErr error
		resp, callErr = s.client.ProcessDocument(ctx, req)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("documentai process: %w", err)
	}
	if resp == nil || resp.Document == nil {
		return nil, nil
	}

	return pageTexts(resp.Document), nil
}

// pageTexts slices the document's full text by each page's layout text
// anchor. A page without an anchor contributes an empty string.
func pageTexts(doc *documentaipb.Document) []string {
	full := doc.Text
	pages := make([]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		if p == nil || p.Layout == nil || p.Layout.TextAnchor == nil {
			pages = append(pages, "")
			continue
		}
		var b strings.Builder
		for _, seg := range p.Layout.TextAnchor.TextSegments {
			if seg == nil {
				continue
			}
			start, end := int(seg.StartIndex), int(seg.EndIndex)
			if start < 0 || end > len(full) || start >= end {
				continue
			}
			b.WriteString(full[start:end])
		}
		pages = append(pages, b.String())
	}
	return pages
}
