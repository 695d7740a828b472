package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yungbote/videosage-backend/internal/pkg/logger"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int

	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testGenerator(t *testing.T, llm Completer) *Generator {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewGenerator(llm, log)
}

func TestGenerateSummary(t *testing.T) {
	llm := &fakeCompleter{response: "  A tidy summary of the text.  \n"}
	g := testGenerator(t, llm)

	payload, err := g.Generate(context.Background(), KindSummary, "source text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, ok := payload.(*SummaryData)
	if !ok {
		t.Fatalf("payload type: got=%T", payload)
	}
	if summary.Summary != "A tidy summary of the text." {
		t.Fatalf("summary not trimmed: %q", summary.Summary)
	}
	if !strings.Contains(llm.lastUser, "source text") {
		t.Fatalf("source text missing from prompt: %q", llm.lastUser)
	}
}

func TestGenerateQuizUnparseable(t *testing.T) {
	llm := &fakeCompleter{response: "Sorry, I cannot produce a quiz."}
	g := testGenerator(t, llm)

	_, err := g.Generate(context.Background(), KindQuiz, "source text")
	if KindOf(err) != KindUnparseableOutput {
		t.Fatalf("expected unparseable output, got %v", err)
	}
}

func TestGenerateBackendFailure(t *testing.T) {
	llm := &fakeCompleter{err: fmt.Errorf("connection refused")}
	g := testGenerator(t, llm)

	_, err := g.Generate(context.Background(), KindSummary, "source text")
	if KindOf(err) != KindBackendFailure {
		t.Fatalf("expected backend failure, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	llm := &fakeCompleter{err: fmt.Errorf("call failed: %w", context.DeadlineExceeded)}
	g := testGenerator(t, llm)

	_, err := g.Generate(context.Background(), KindSummary, "source text")
	if KindOf(err) != KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
}

func TestGenerateChatKindRejected(t *testing.T) {
	llm := &fakeCompleter{response: "hi"}
	g := testGenerator(t, llm)

	if _, err := g.Generate(context.Background(), KindChat, "source text"); err == nil {
		t.Fatal("expected error for chat kind via Generate")
	}
	if llm.calls != 0 {
		t.Fatalf("backend should not be called, got %d calls", llm.calls)
	}
}

func TestChat(t *testing.T) {
	llm := &fakeCompleter{response: "The sky is blue."}
	g := testGenerator(t, llm)

	history := []Turn{{Message: "Hello", Response: "Hi there."}}
	turn, err := g.Chat(context.Background(), "source text", "What color is the sky?", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if turn.Message != "What color is the sky?" || turn.Response != "The sky is blue." {
		t.Fatalf("turn: %+v", turn)
	}
	if !strings.Contains(llm.lastUser, "User: Hello") || !strings.Contains(llm.lastUser, "Assistant: Hi there.") {
		t.Fatalf("history missing from prompt: %q", llm.lastUser)
	}
	if !strings.Contains(llm.lastUser, "source text") {
		t.Fatalf("source text missing from prompt: %q", llm.lastUser)
	}
}

func TestChatEmptyResponse(t *testing.T) {
	llm := &fakeCompleter{response: "   "}
	g := testGenerator(t, llm)

	_, err := g.Chat(context.Background(), "source text", "anything", nil)
	if KindOf(err) != KindBackendFailure {
		t.Fatalf("expected backend failure, got %v", err)
	}
}
