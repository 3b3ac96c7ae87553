package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/az104/internal/llm"
	"github.com/abhisek/az104/internal/questiongen"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/store"
	"github.com/abhisek/az104/internal/syllabus"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a batch and take it on stdin (no database)",
	Long: `Generate questions and answer them in the plain terminal.

This is a stateless tool: nothing is saved and no statistics are kept.
Useful for judging question quality and trying out providers.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Domain or sub-topic to focus on (default: all topics)")
	previewCmd.Flags().String("group", "", "Domain the topic belongs to")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Bool("exam", false, "Exam mode: no feedback, timed")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	group, _ := cmd.Flags().GetString("group")
	count, _ := cmd.Flags().GetInt("count")
	exam, _ := cmd.Flags().GetBool("exam")

	if count < 1 {
		return fmt.Errorf("invalid --count %d", count)
	}
	scope, err := syllabus.Resolve(topic, group)
	if err != nil {
		return err
	}

	mode := quiz.ModePractice
	if exam {
		mode = quiz.ModeExam
	}
	kind := quiz.KindQuick
	if !scope.IsAll() {
		kind = quiz.KindTopic
	}

	ctx := llm.WithPurpose(cmd.Context(), llm.PurposePreview)
	logger := textLogger(os.Stderr)

	// No database: events are dropped.
	provider, _, err := llm.NewProviderFromEnv(ctx, store.NopEventRepo{}, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig(), logger)

	fmt.Printf("Scope: %s (%s)\n", scope.Label(), mode)
	fmt.Printf("Generating %d questions...\n\n", count)

	qs, err := gen.Generate(ctx, questiongen.Request{Topic: scope.Topic, Group: scope.Group, Count: count})
	if err != nil {
		return err
	}

	a := quiz.New(quiz.Config{Mode: mode, Kind: kind, Scope: scope, Count: count})
	if err := a.Load(qs, time.Now()); err != nil {
		return err
	}
	if exam {
		fmt.Printf("Time limit: %s\n\n", quiz.FormatClock(a.Remaining()))
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	var tick <-chan time.Time
	if exam {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		tick = ticker.C
	}

	shown := -1
	for a.Phase() == quiz.PhaseInProgress {
		if a.Index() != shown {
			shown = a.Index()
			printQuestion(a)
		}

		select {
		case <-tick:
			if a.Tick(time.Now()) {
				fmt.Println("\n\033[31mTime's up!\033[0m")
			}
		case line, ok := <-lines:
			if !ok {
				fmt.Println("\n(input closed)")
				a.Abandon()
				continue
			}
			selected, valid := parseChoice(line)
			if !valid {
				fmt.Print("Answer with 1-4 or A-D: ")
				continue
			}
			out, err := a.Submit(selected, time.Now())
			if err != nil {
				fmt.Printf("(%v)\nYour answer: ", err)
				continue
			}
			if mode == quiz.ModePractice {
				printFeedback(out.Answer)
				if _, err := a.Advance(time.Now()); err != nil {
					return err
				}
			}
		}
	}

	res, ok := a.Result()
	if !ok {
		return nil
	}
	fmt.Printf("── Summary: %d/%d correct (%d%%) ──\n", res.Score, res.Total, res.Percent())
	fmt.Println(stats.BandFor(res.Percent()).Feedback())
	if res.TimedOut {
		fmt.Printf("%d question(s) were left unanswered.\n", res.Unanswered())
	}
	if exam {
		fmt.Println()
		for i, ans := range res.Answers {
			mark := "\033[32m✓\033[0m"
			if !ans.Correct {
				mark = "\033[31m✗\033[0m"
			}
			fmt.Printf("%s %d. %s\n   Correct answer: %s\n", mark, i+1, ans.Question.Text, ans.Question.CorrectOption())
		}
	}
	return nil
}

func printQuestion(a *quiz.Attempt) {
	q, ok := a.Current()
	if !ok {
		return
	}
	header := fmt.Sprintf("── Question %d/%d", a.Index()+1, a.Total())
	if a.TimerActive() {
		header += "  [" + quiz.FormatClock(a.Remaining()) + "]"
	}
	fmt.Println(header + " ──")
	fmt.Println(q.Text)
	for j, opt := range q.Options {
		fmt.Printf("  %c) %s\n", 'A'+j, opt)
	}
	fmt.Print("\nYour answer: ")
}

func printFeedback(ans quiz.Answer) {
	if ans.Correct {
		fmt.Println("\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Printf("\033[31m✗ Incorrect.\033[0m The correct answer is: %s\n", ans.Question.CorrectOption())
	}
	if ans.Question.Explanation != "" {
		fmt.Printf("Explanation: %s\n", ans.Question.Explanation)
	}
	fmt.Println()
}

// parseChoice accepts 1-4 or A-D.
func parseChoice(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, false
	}
	switch c := s[0]; {
	case c >= '1' && c < '1'+quiz.OptionCount:
		return int(c - '1'), true
	case c >= 'a' && c < 'a'+quiz.OptionCount:
		return int(c - 'a'), true
	}
	return 0, false
}
