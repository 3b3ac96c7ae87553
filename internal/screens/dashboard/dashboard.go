// Package dashboard is the home screen after sign-in.
package dashboard

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/daily"
	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

// DashboardScreen shows the study overview and the main menu.
type DashboardScreen struct {
	ctrl *session.Controller
	menu components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard for the signed-in user.
func New(ctrl *session.Controller) *DashboardScreen {
	s := &DashboardScreen{ctrl: ctrl}

	dailyDetail := fmt.Sprintf("%d questions, once a day", daily.QuestionCount)
	if !ctrl.DailyAvailable() {
		dailyDetail = "completed today"
	}

	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Daily Challenge", Detail: dailyDetail, Action: func() tea.Cmd {
			return screen.Start(session.StartRequest{Mode: quiz.ModePractice, Kind: quiz.KindDaily})
		}},
		{Label: "Practice", Detail: "instant feedback", Action: s.navigate(session.DisplayPracticeSetup)},
		{Label: "Exam", Detail: "timed, scored at the end", Action: s.navigate(session.DisplayExamSetup)},
		{Label: "Account", Action: s.navigate(session.DisplayAccount)},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *DashboardScreen) navigate(d session.Display) func() tea.Cmd {
	return func() tea.Cmd {
		_ = s.ctrl.Navigate(d)
		return nil
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	st := s.ctrl.Stats()

	var b strings.Builder
	if u, ok := s.ctrl.User(); ok {
		b.WriteString(theme.Title.Width(width).Render("Welcome back, " + u.Name))
		b.WriteString("\n")
	}
	b.WriteString(theme.Subtitle.Width(width).Render("Here's your AZ-104 study overview."))
	b.WriteString("\n\n")

	if msg := s.ctrl.Message(); msg != "" {
		b.WriteString(layout.Center(width, theme.Notice.Render(msg)))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, components.TitledCard("Overall Performance", overall(st), cw)))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, components.TitledCard("Performance by Topic", byTopic(st, cw-6), cw)))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, components.Card(s.menu.View(), cw)))
	return b.String()
}

func overall(st stats.UserStats) string {
	pct, ok := st.Accuracy()
	if !ok {
		return theme.Dim.Render("Complete a quiz to see your stats here!")
	}
	return fmt.Sprintf("%s   %s",
		theme.Performance(pct).Render(fmt.Sprintf("%d%%", pct)),
		theme.Dim.Render(fmt.Sprintf("%d correct of %d answered", st.TotalCorrect, st.TotalAnswered)),
	)
}

func byTopic(st stats.UserStats, width int) string {
	names := make([]string, 0, len(st.TopicStats))
	for name, ts := range st.TopicStats {
		if ts.TotalAnswered > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return theme.Dim.Render("Complete a topic-focused quiz to see your breakdown here.")
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		ts := st.TopicStats[name]
		pct, _ := ts.Accuracy()
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Body.Render(name))
		b.WriteString("  ")
		b.WriteString(theme.Performance(pct).Render(fmt.Sprintf("%d%%", pct)))
		b.WriteString(theme.Dim.Render(fmt.Sprintf("  (%d questions)", ts.TotalAnswered)))
		b.WriteString("\n")
		bar := components.NewProgressBar("", float64(pct)/100, false, width)
		bar.Fill = theme.Performance(pct).GetForeground()
		b.WriteString(bar.View())
	}
	return b.String()
}
