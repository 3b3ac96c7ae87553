package stats

// Band classifies a percentage for display.
type Band int

const (
	BandLow       Band = iota // below 50%
	BandFair                  // 50% to 79%
	BandExcellent             // 80% and above
)

// BandFor returns the band for a percentage.
func BandFor(pct int) Band {
	switch {
	case pct >= 80:
		return BandExcellent
	case pct >= 50:
		return BandFair
	default:
		return BandLow
	}
}

// Feedback returns the message shown on the results screen.
func (b Band) Feedback() string {
	switch b {
	case BandExcellent:
		return "Excellent! You're well on your way to mastering AZ-104 concepts."
	case BandFair:
		return "Good effort! Keep studying the areas you missed."
	default:
		return "Don't give up! Review the explanations and try again. Practice makes perfect."
	}
}

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandExcellent:
		return "excellent"
	case BandFair:
		return "fair"
	default:
		return "low"
	}
}
