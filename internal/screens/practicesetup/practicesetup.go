// Package practicesetup lets the user pick the scope of a practice quiz.
package practicesetup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/az104/internal/quiz"
	"github.com/abhisek/az104/internal/screen"
	"github.com/abhisek/az104/internal/session"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/syllabus"
	"github.com/abhisek/az104/internal/ui/components"
	"github.com/abhisek/az104/internal/ui/layout"
	"github.com/abhisek/az104/internal/ui/theme"
)

type rowKind int

const (
	rowQuick rowKind = iota
	rowDomain
	rowScope
)

type row struct {
	kind   rowKind
	label  string
	domain int
	scope  syllabus.Scope
}

// PracticeSetupScreen is an accordion of domains with a quick-quiz row on
// top. At most one domain is expanded.
type PracticeSetupScreen struct {
	ctrl     *session.Controller
	domains  []syllabus.Domain
	expanded int
	cursor   int
}

var _ screen.Screen = (*PracticeSetupScreen)(nil)
var _ screen.Hinter = (*PracticeSetupScreen)(nil)

// New creates the practice setup screen with every domain collapsed.
func New(ctrl *session.Controller) *PracticeSetupScreen {
	return &PracticeSetupScreen{
		ctrl:     ctrl,
		domains:  syllabus.Domains(),
		expanded: -1,
	}
}

func (s *PracticeSetupScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeSetupScreen) Title() string {
	return "Practice"
}

func (s *PracticeSetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Expand / Start"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *PracticeSetupScreen) rows() []row {
	out := []row{{kind: rowQuick, label: fmt.Sprintf("Quick Quiz (%d questions, all topics)", syllabus.PracticeLength)}}
	for i, d := range s.domains {
		out = append(out, row{kind: rowDomain, label: d.Name, domain: i})
		if i != s.expanded {
			continue
		}
		out = append(out, row{kind: rowScope, label: "All " + d.Name, domain: i, scope: syllabus.ForDomain(d.Name)})
		for _, sub := range d.SubTopics {
			out = append(out, row{kind: rowScope, label: sub, domain: i, scope: syllabus.ForSubTopic(d.Name, sub)})
		}
	}
	return out
}

func (s *PracticeSetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	rows := s.rows()
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(rows)-1 {
			s.cursor++
		}
	case "esc":
		_ = s.ctrl.Navigate(session.DisplayDashboard)
	case "enter", " ", "space":
		return s, s.activate(rows[s.cursor])
	}
	return s, nil
}

func (s *PracticeSetupScreen) activate(r row) tea.Cmd {
	switch r.kind {
	case rowQuick:
		return screen.Start(session.StartRequest{Mode: quiz.ModePractice, Kind: quiz.KindQuick})
	case rowDomain:
		if s.expanded == r.domain {
			s.expanded = -1
		} else {
			s.expanded = r.domain
		}
		s.cursor = s.indexOfDomain(r.domain)
		return nil
	default:
		return screen.Start(session.StartRequest{Mode: quiz.ModePractice, Kind: quiz.KindTopic, Scope: r.scope})
	}
}

func (s *PracticeSetupScreen) indexOfDomain(i int) int {
	for j, r := range s.rows() {
		if r.kind == rowDomain && r.domain == i {
			return j
		}
	}
	return 0
}

func (s *PracticeSetupScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	st := s.ctrl.Stats()

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Practice Mode"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Get instant feedback after every question."))
	b.WriteString("\n\n")

	if msg := s.ctrl.Message(); msg != "" {
		b.WriteString(layout.Center(width, theme.Notice.Render(msg)))
		b.WriteString("\n\n")
	}

	var list strings.Builder
	for i, r := range s.rows() {
		list.WriteString(s.renderRow(r, i == s.cursor, st))
		list.WriteString("\n")
	}
	b.WriteString(layout.Center(width, components.Card(list.String(), cw)))
	return b.String()
}

func (s *PracticeSetupScreen) renderRow(r row, selected bool, st stats.UserStats) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	style := theme.Unselected
	if selected {
		style = theme.Selected
	}

	switch r.kind {
	case rowDomain:
		arrow := "▶"
		if r.domain == s.expanded {
			arrow = "▼"
		}
		line := style.Render(prefix + arrow + " " + r.label)
		if ts, ok := st.TopicStats[r.label]; ok {
			if pct, ok := ts.Accuracy(); ok {
				return line + "  " + theme.Performance(pct).Render(fmt.Sprintf("%d%%", pct)) +
					theme.Dim.Render(fmt.Sprintf(" accuracy (%d questions)", ts.TotalAnswered))
			}
		}
		return line + "  " + theme.Dim.Render("Practice to see your stats!")
	case rowScope:
		return style.Render("    " + prefix + r.label)
	default:
		return style.Render(prefix + r.label)
	}
}
