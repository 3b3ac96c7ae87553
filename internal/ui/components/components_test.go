package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var chosen string
	pick := func(name string) func() tea.Cmd {
		return func() tea.Cmd { chosen = name; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: pick("B")},
		{Label: "C", Disabled: true},
		{Label: "D", Action: pick("D")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Fatalf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Fatalf("down at bottom moved to %d", m.Selected)
	}
	m, _ = m.Update(key("enter"))
	if chosen != "D" {
		t.Fatalf("enter chose %q, want D", chosen)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Fatalf("after up = %d, want 1", m.Selected)
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Practice", Detail: "10 questions"}, {Label: "Exam"}})
	v := m.View()
	if !strings.Contains(v, "▸ Practice") {
		t.Errorf("selected marker missing:\n%s", v)
	}
	if !strings.Contains(v, "10 questions") {
		t.Errorf("detail missing:\n%s", v)
	}
}

func TestMultiChoiceDigitSubmits(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})
	m, _ = m.Update(key("3"))
	if !m.Submitted || m.ChosenIndex != 2 {
		t.Fatalf("submitted=%v chosen=%d, want true 2", m.Submitted, m.ChosenIndex)
	}

	// Further keys are ignored until Reset.
	m, _ = m.Update(key("1"))
	if m.ChosenIndex != 2 {
		t.Fatalf("chosen changed to %d after submit", m.ChosenIndex)
	}
	m.Reset()
	if m.Submitted || m.ChosenIndex != -1 {
		t.Fatal("Reset did not clear the submission")
	}
}

func TestMultiChoiceOutOfRangeDigit(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, _ = m.Update(key("4"))
	if m.Submitted {
		t.Fatal("digit beyond the option count submitted")
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c", "d"})
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("enter"))
	if m.ChosenIndex != 1 {
		t.Fatalf("chosen = %d, want 1", m.ChosenIndex)
	}
}

func TestMultiChoiceReveal(t *testing.T) {
	m := NewMultiChoice([]string{"Basic", "Standard", "Premium", "Free"})
	m.Reveal(1, 3)
	v := m.View(80)
	if strings.Contains(v, "▸") {
		t.Error("cursor shown after reveal")
	}
	for _, want := range []string{"A)", "B)", "Standard", "Free"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressBarClamps(t *testing.T) {
	over := NewProgressBar("", 1.5, false, 20).View()
	full := NewProgressBar("", 1.0, false, 20).View()
	if over != full {
		t.Error("percent above 1 not clamped")
	}
	if !strings.Contains(NewProgressBar("Q", 0.5, true, 30).View(), "50%") {
		t.Error("percent label missing")
	}
}
