package gcp

import (
	"context"
	"fmt"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/yungbote/videosage-backend/internal/pkg/ctxutil"
	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// Vision runs optical character recognition over a raster image and
// returns the recognized text verbatim.
type Vision interface {
	DetectText(ctx context.Context, img []byte) (string, error)
	Close() error
}

type visionService struct {
	log        *logger.Logger
	client     *vision.ImageAnnotatorClient
	maxRetries int
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Vision")

	ctx := context.Background()
	c, err := vision.NewImageAnnotatorClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &visionService{
		log:        slog,
		client:     c,
		maxRetries: 4,
	}, nil
}

func (s *visionService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *visionService) DetectText(ctx context.Context, img []byte) (string, error) {
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if len(img) == 0 {
		return "", nil
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	var resp *visionpb.BatchAnnotateImagesResponse
	err := retry(s.maxRetries, func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var callErr error
		resp, callErr = s.client.BatchAnnotateImages(ctx, req)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	if r0.FullTextAnnotation == nil {
		return "", nil
	}
	return r0.FullTextAnnotation.Text, nil
}
