package session

// Display is the screen the presentation layer should show.
type Display string

const (
	DisplayLogin         Display = "login"
	DisplayDashboard     Display = "dashboard"
	DisplayPracticeSetup Display = "practice-setup"
	DisplayExamSetup     Display = "exam-setup"
	DisplayAccount       Display = "account"
	DisplayLoading       Display = "loading"
	DisplayQuestion      Display = "question"
	DisplayResults       Display = "results"
)

// Navigable reports whether d may be reached through Navigate.
func (d Display) Navigable() bool {
	switch d {
	case DisplayDashboard, DisplayPracticeSetup, DisplayExamSetup, DisplayAccount:
		return true
	}
	return false
}
