package generation

import (
	"fmt"
	"strings"
)

// Kind is the type tag distinguishing derived artifacts.
type Kind string

const (
	KindSummary   Kind = "summary"
	KindQuiz      Kind = "quiz"
	KindFlashcard Kind = "flashcard"
	KindMindmap   Kind = "mindmap"
	KindChat      Kind = "chat"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindSummary:
		return KindSummary, nil
	case KindQuiz:
		return KindQuiz, nil
	case KindFlashcard:
		return KindFlashcard, nil
	case KindMindmap:
		return KindMindmap, nil
	case KindChat:
		return KindChat, nil
	default:
		return "", fmt.Errorf("unknown artifact kind %q", s)
	}
}

// Cached reports whether at most one persisted generation may exist per
// content for this kind. Chat turns are never persisted.
func (k Kind) Cached() bool {
	return k != KindChat
}

type SummaryData struct {
	Summary string `json:"summary"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type QuizData struct {
	Questions []QuizQuestion `json:"questions"`
}

type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type FlashcardData struct {
	Cards []Flashcard `json:"cards"`
}

type MindmapNode struct {
	Title    string        `json:"title"`
	Children []MindmapNode `json:"children,omitempty"`
}

type MindmapData struct {
	Root MindmapNode `json:"root"`
}

// Turn is a single chat exchange grounded in a content's transcript.
type Turn struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}
