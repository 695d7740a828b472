package generation

import (
	"strings"
	"testing"
)

const validQuiz = `Q1. What color is the sky?
A) Green
B) Blue
C) Red
D) Yellow
Q2. How many legs does a spider have?
A) Six
B) Four
C) Eight
D) Ten

Answer Key:
1. B
2. C`

func TestParseQuiz(t *testing.T) {
	quiz, err := parseQuiz(validQuiz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions: want=2 got=%d", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Question != "What color is the sky?" {
		t.Fatalf("question text: got=%q", q.Question)
	}
	if len(q.Options) != 4 || q.Options[1] != "Blue" {
		t.Fatalf("options: got=%v", q.Options)
	}
	if q.Answer != "B" {
		t.Fatalf("answer: want=B got=%q", q.Answer)
	}
	if quiz.Questions[1].Answer != "C" {
		t.Fatalf("second answer: want=C got=%q", quiz.Questions[1].Answer)
	}
}

func TestParseQuizViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "missing answer key", raw: "Q1. A question?\nA) a\nB) b\nC) c\nD) d"},
		{name: "three options", raw: "Q1. A question?\nA) a\nB) b\nC) c\nAnswer Key:\n1. A"},
		{name: "five options", raw: "Q1. A question?\nA) a\nB) b\nC) c\nD) d\nA) extra\nAnswer Key:\n1. A"},
		{name: "unanswered question", raw: validQuiz + "\nQ9. Orphan?\nA) a\nB) b\nC) c\nD) d"},
		{name: "commentary line", raw: "Here are your questions!\n" + validQuiz},
		{name: "option before question", raw: "A) dangling\n" + validQuiz},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseQuiz(tc.raw); KindOf(err) != KindUnparseableOutput {
				t.Fatalf("expected unparseable output, got %v", err)
			}
		})
	}
}

func TestParseFlashcards(t *testing.T) {
	raw := `Photosynthesis :: The process plants use to turn light into energy.

Mitochondria :: The organelle that produces ATP.`
	cards, err := parseFlashcards(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards.Cards) != 2 {
		t.Fatalf("cards: want=2 got=%d", len(cards.Cards))
	}
	if cards.Cards[0].Term != "Photosynthesis" {
		t.Fatalf("term: got=%q", cards.Cards[0].Term)
	}
	if !strings.HasPrefix(cards.Cards[1].Definition, "The organelle") {
		t.Fatalf("definition: got=%q", cards.Cards[1].Definition)
	}
}

func TestParseFlashcardsViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "\n\n"},
		{name: "no separator", raw: "just a sentence about nothing"},
		{name: "empty term", raw: " :: a definition with no term"},
		{name: "empty definition", raw: "a term :: "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseFlashcards(tc.raw); KindOf(err) != KindUnparseableOutput {
				t.Fatalf("expected unparseable output, got %v", err)
			}
		})
	}
}

func TestParseMindmap(t *testing.T) {
	raw := `- Biology
  - Cells
    - Organelles
    - Membranes
  - Genetics
    - DNA`
	m, err := parseMindmap(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Root.Title != "Biology" {
		t.Fatalf("root: got=%q", m.Root.Title)
	}
	if len(m.Root.Children) != 2 {
		t.Fatalf("themes: want=2 got=%d", len(m.Root.Children))
	}
	cells := m.Root.Children[0]
	if cells.Title != "Cells" || len(cells.Children) != 2 {
		t.Fatalf("cells subtree: %+v", cells)
	}
	genetics := m.Root.Children[1]
	if genetics.Title != "Genetics" || len(genetics.Children) != 1 || genetics.Children[0].Title != "DNA" {
		t.Fatalf("genetics subtree: %+v", genetics)
	}
}

func TestParseMindmapViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "two roots", raw: "- First\n- Second"},
		{name: "skipped level", raw: "- Root\n    - Too deep"},
		{name: "nested before root", raw: "  - Orphan"},
		{name: "not a dash item", raw: "Root without dash"},
		{name: "odd indent", raw: "- Root\n - Child"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseMindmap(tc.raw); KindOf(err) != KindUnparseableOutput {
				t.Fatalf("expected unparseable output, got %v", err)
			}
		})
	}
}
