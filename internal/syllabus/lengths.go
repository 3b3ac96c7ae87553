package syllabus

// Question counts.
const (
	// PracticeLength is the default size of an ad-hoc practice quiz.
	PracticeLength = 10

	// ExamMin, ExamMax and ExamStep bound the selectable exam length.
	ExamMin  = 10
	ExamMax  = 60
	ExamStep = 10

	// SecondsPerQuestion is the exam time budget per question.
	SecondsPerQuestion = 90
)

// ExamLengths returns the selectable exam lengths in ascending order.
func ExamLengths() []int {
	var out []int
	for n := ExamMin; n <= ExamMax; n += ExamStep {
		out = append(out, n)
	}
	return out
}

// ValidExamLength reports whether n is a selectable exam length.
func ValidExamLength(n int) bool {
	return n >= ExamMin && n <= ExamMax && (n-ExamMin)%ExamStep == 0
}

// StepExamLength moves n by delta steps, clamped to the valid range.
func StepExamLength(n, delta int) int {
	n += delta * ExamStep
	switch {
	case n < ExamMin:
		return ExamMin
	case n > ExamMax:
		return ExamMax
	}
	return n
}
