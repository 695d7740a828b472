package generation

import (
	"fmt"
	"strings"
)

// Each artifact kind has one fixed prompt. The system half states the
// structural contract the parser depends on; the user half carries the
// source text verbatim. Parsers in parse.go fail loudly when the
// contract is violated.

const summarySystemPrompt = `You are a summarizer. Create a detailed and concise summary of the provided text.
Capture the key points, main ideas, and essential takeaways. Structure the summary as:
an introduction of the topic, the main points discussed, the key takeaways, supporting
details worth keeping, and a brief conclusion. Write plain prose for a general audience,
150-300 words depending on the depth of the content. Do not use markdown markers,
asterisks, or headings, and do not open with phrases like "this text is" - start
explaining the content directly. Output the summary text and nothing else.`

const quizSystemPrompt = `You are a question generator. Based on the provided text, generate 6 to 8
multiple-choice questions that test comprehension of its key points, main ideas and
details. Mix factual, conceptual and application-based questions, distributed evenly
across the text, with a balance of easy, moderate and challenging questions. The
correct option must be distinguishable only by its content, never by position or
phrasing.

Output format - follow it exactly, with no commentary before or after:
Q1. <question text>
A) <option>
B) <option>
C) <option>
D) <option>

Repeat for each question, numbering sequentially. After the last question output a
line reading exactly "Answer Key:" followed by one line per question in the form
"1. B". Every question must have exactly four options and exactly one answer key
entry.`

const flashcardSystemPrompt = `You are a flashcard author. From the provided text, produce 8 to 15 flashcards
covering its most important terms, concepts and facts.

Output format - follow it exactly, with no commentary before or after: one card per
line in the form
<term> :: <definition>
The term is a short phrase; the definition is one or two sentences. Use " :: " as the
only separator and never use it inside a term or definition. Output nothing but card
lines.`

const mindmapSystemPrompt = `You are a mindmap builder. From the provided text, produce a hierarchical outline
of its topics: one root node naming the overall subject, main themes as its children,
and supporting details nested below, at most four levels deep.

Output format - follow it exactly, with no commentary before or after: one node per
line as a dash-prefixed title, indented with two spaces per depth level:
- <root subject>
  - <theme>
    - <detail>
There must be exactly one root line at depth zero, and each line may only be nested
one level deeper than the line before it.`

const chatSystemPrompt = `You are a study assistant. Answer the user's question using ONLY the provided source
text. If the source text does not contain the answer, say so plainly instead of
guessing. Keep answers concise and factual. Do not mention that you were given a
transcript; just answer.`

func userPrompt(sourceText string) string {
	return "Here is the input text:\n\n" + sourceText
}

// chatUserPrompt embeds the source text, the prior turns oldest-first,
// and the new message.
func chatUserPrompt(sourceText string, history []Turn, message string) string {
	var b strings.Builder
	b.WriteString("Source text:\n\n")
	b.WriteString(sourceText)
	if len(history) > 0 {
		b.WriteString("\n\nConversation so far:\n")
		for _, t := range history {
			fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.Message, t.Response)
		}
	}
	b.WriteString("\nUser: ")
	b.WriteString(message)
	return b.String()
}

func systemPromptFor(kind Kind) (string, error) {
	switch kind {
	case KindSummary:
		return summarySystemPrompt, nil
	case KindQuiz:
		return quizSystemPrompt, nil
	case KindFlashcard:
		return flashcardSystemPrompt, nil
	case KindMindmap:
		return mindmapSystemPrompt, nil
	default:
		return "", fmt.Errorf("no prompt template for kind %q", kind)
	}
}
