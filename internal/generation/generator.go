package generation

import (
	"context"
	"errors"
	"strings"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

// Completer is the slice of the LLM client the generator needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Generator struct {
	llm Completer
	log *logger.Logger
}

func NewGenerator(llm Completer, baseLog *logger.Logger) *Generator {
	return &Generator{llm: llm, log: baseLog.With("component", "generator")}
}

// Generate produces the artifact payload for a cacheable kind. The
// returned value is one of *SummaryData, *QuizData, *FlashcardData or
// *MindmapData. Chat goes through Chat instead.
func (g *Generator) Generate(ctx context.Context, kind Kind, sourceText string) (any, error) {
	system, err := systemPromptFor(kind)
	if err != nil {
		return nil, newError(KindBackendFailure, err)
	}

	raw, err := g.complete(ctx, kind, system, userPrompt(sourceText))
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindSummary:
		return &SummaryData{Summary: strings.TrimSpace(raw)}, nil
	case KindQuiz:
		return parseQuiz(raw)
	case KindFlashcard:
		return parseFlashcards(raw)
	case KindMindmap:
		return parseMindmap(raw)
	default:
		return nil, errorf(KindBackendFailure, "kind %q has no payload decoder", kind)
	}
}

// Chat answers one question against the source text. Turns are never
// persisted; the caller supplies whatever history it wants replayed.
func (g *Generator) Chat(ctx context.Context, sourceText, message string, history []Turn) (*Turn, error) {
	raw, err := g.complete(ctx, KindChat, chatSystemPrompt, chatUserPrompt(sourceText, history, message))
	if err != nil {
		return nil, err
	}
	response := strings.TrimSpace(raw)
	if response == "" {
		return nil, errorf(KindBackendFailure, "backend returned an empty response")
	}
	return &Turn{Message: message, Response: response}, nil
}

func (g *Generator) complete(ctx context.Context, kind Kind, system, user string) (string, error) {
	raw, err := g.llm.Complete(ctx, system, user)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.log.Warn("generation timed out", "kind", kind)
			return "", newError(KindTimeout, err)
		}
		g.log.Error("generation backend failed", "kind", kind, "error", err)
		return "", newError(KindBackendFailure, err)
	}
	return raw, nil
}
