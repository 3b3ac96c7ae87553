package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write practice questions for the Microsoft Azure Administrator (AZ-104) certification exam.

Rules:
- Every question is multiple choice with exactly 4 options and exactly one correct answer.
- correctAnswerIndex is the 0-based position of the correct option.
- Distractors must be plausible Azure services, settings or commands, not jokes.
- The explanation says why the correct answer is right and, briefly, why the others are wrong.
- Use plain text. No markdown.
- Do not repeat any question from the "avoid repeating" list.`

// buildUserMessage constructs the user message for a batch request.
func buildUserMessage(req Request, maxAvoid int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert on the Microsoft Azure AZ-104 exam. Generate %d multiple-choice questions.", req.Count)
	switch {
	case req.Topic != "" && req.Group != "" && req.Topic != req.Group:
		fmt.Fprintf(&b, " The questions should focus specifically on the sub-topic of %q within the main category of %q.", req.Topic, req.Group)
	case req.Topic != "":
		fmt.Fprintf(&b, " The questions should focus specifically on the topic of %q.", req.Topic)
	case req.Group != "":
		fmt.Fprintf(&b, " The questions should focus specifically on the topic of %q.", req.Group)
	default:
		b.WriteString(" The questions should cover a range of topics from the AZ-104 syllabus, including identity, governance, storage, compute, and virtual networking.")
	}
	b.WriteString(" Ensure the questions are challenging and relevant to the exam.")
	b.WriteString(" Each question must have exactly 4 options.")

	if avoid := buildAvoid(req.Avoid, maxAvoid); avoid != "" {
		b.WriteString("\n\nAvoid repeating these recently asked questions:\n")
		b.WriteString(avoid)
	}

	return b.String()
}
