package generation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	questionLine  = regexp.MustCompile(`^Q(\d+)[.):]\s*(.+)$`)
	optionLine    = regexp.MustCompile(`^([A-D])[.)]\s*(.+)$`)
	answerLine    = regexp.MustCompile(`^(\d+)[.):]\s*([A-D])\b`)
	answerKeyHead = regexp.MustCompile(`(?i)^answer\s*key\s*:?\s*$`)
)

// parseQuiz decodes the question/option/answer-key layout the quiz
// prompt mandates. Any deviation is an unparseable-output error, never
// a silent partial result.
func parseQuiz(raw string) (*QuizData, error) {
	lines := strings.Split(raw, "\n")

	type pending struct {
		number  int
		text    string
		options []string
	}
	var questions []pending
	answers := map[int]string{}
	inKey := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if answerKeyHead.MatchString(line) {
			inKey = true
			continue
		}
		if inKey {
			m := answerLine.FindStringSubmatch(line)
			if m == nil {
				return nil, errorf(KindUnparseableOutput, "bad answer key line %q", line)
			}
			n, _ := strconv.Atoi(m[1])
			answers[n] = m[2]
			continue
		}
		if m := questionLine.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			questions = append(questions, pending{number: n, text: strings.TrimSpace(m[2])})
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			if len(questions) == 0 {
				return nil, errorf(KindUnparseableOutput, "option line %q before any question", line)
			}
			q := &questions[len(questions)-1]
			q.options = append(q.options, strings.TrimSpace(m[2]))
			continue
		}
		return nil, errorf(KindUnparseableOutput, "unrecognized line %q", line)
	}

	if len(questions) == 0 {
		return nil, errorf(KindUnparseableOutput, "no questions found")
	}

	out := &QuizData{Questions: make([]QuizQuestion, 0, len(questions))}
	for _, q := range questions {
		if len(q.options) != 4 {
			return nil, errorf(KindUnparseableOutput, "question %d has %d options, want 4", q.number, len(q.options))
		}
		ans, ok := answers[q.number]
		if !ok {
			return nil, errorf(KindUnparseableOutput, "question %d missing from answer key", q.number)
		}
		out.Questions = append(out.Questions, QuizQuestion{
			Question: q.text,
			Options:  q.options,
			Answer:   ans,
		})
	}
	return out, nil
}

const flashcardSeparator = "::"

// parseFlashcards decodes one "term :: definition" record per line.
func parseFlashcards(raw string) (*FlashcardData, error) {
	out := &FlashcardData{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, flashcardSeparator, 2)
		if len(parts) != 2 {
			return nil, errorf(KindUnparseableOutput, "line %q has no %q separator", line, flashcardSeparator)
		}
		term := strings.TrimSpace(parts[0])
		def := strings.TrimSpace(parts[1])
		if term == "" || def == "" {
			return nil, errorf(KindUnparseableOutput, "line %q has an empty term or definition", line)
		}
		out.Cards = append(out.Cards, Flashcard{Term: term, Definition: def})
	}
	if len(out.Cards) == 0 {
		return nil, errorf(KindUnparseableOutput, "no flashcards found")
	}
	return out, nil
}

type outlineNode struct {
	title    string
	children []*outlineNode
}

func (n *outlineNode) toMindmap() MindmapNode {
	out := MindmapNode{Title: n.title}
	for _, c := range n.children {
		out.Children = append(out.Children, c.toMindmap())
	}
	return out
}

// parseMindmap decodes the dash-outline contract: exactly one root at
// depth zero, two spaces of indentation per level, children nesting at
// most one level below their parent.
func parseMindmap(raw string) (*MindmapData, error) {
	var root *outlineNode
	// stack[d] is the most recent node seen at depth d.
	var stack []*outlineNode

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if indent%2 != 0 {
			return nil, errorf(KindUnparseableOutput, "odd indentation in line %q", line)
		}
		depth := indent / 2

		body := strings.TrimSpace(line)
		if !strings.HasPrefix(body, "- ") {
			return nil, errorf(KindUnparseableOutput, "line %q is not a dash item", line)
		}
		title := strings.TrimSpace(strings.TrimPrefix(body, "- "))
		if title == "" {
			return nil, errorf(KindUnparseableOutput, "empty node title in line %q", line)
		}

		node := &outlineNode{title: title}
		switch {
		case depth == 0:
			if root != nil {
				return nil, errorf(KindUnparseableOutput, "multiple root nodes (%q and %q)", root.title, title)
			}
			root = node
			stack = []*outlineNode{root}
		case root == nil:
			return nil, errorf(KindUnparseableOutput, "nested line %q before the root", line)
		case depth > len(stack):
			return nil, errorf(KindUnparseableOutput, "line %q skips a nesting level", line)
		default:
			parent := stack[depth-1]
			parent.children = append(parent.children, node)
			stack = append(stack[:depth], node)
		}
	}

	if root == nil {
		return nil, errorf(KindUnparseableOutput, "no nodes found")
	}
	return &MindmapData{Root: root.toMindmap()}, nil
}
