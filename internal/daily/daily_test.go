package daily

import (
	"testing"
	"time"
)

func TestIsEligible(t *testing.T) {
	today := Date{2026, time.March, 14}
	yesterday := Date{2026, time.March, 13}

	if IsEligible(today, today) {
		t.Error("IsEligible(today, today) = true, want false")
	}
	if !IsEligible(yesterday, today) {
		t.Error("IsEligible(yesterday, today) = false, want true")
	}
	if !IsEligible(Date{}, today) {
		t.Error("IsEligible(absent, today) = false, want true")
	}
	if !IsEligible(Date{2025, time.March, 14}, today) {
		t.Error("same day in a different year should be eligible")
	}
}

func TestOn_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)
	if On(morning, time.UTC) != On(night, time.UTC) {
		t.Error("expected the same calendar day")
	}
}

func TestOn_UsesReferenceZone(t *testing.T) {
	// 23:30 UTC is already the next day in UTC+2.
	ts := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	east := time.FixedZone("UTC+2", 2*60*60)

	if got := On(ts, time.UTC); got != (Date{2026, time.March, 14}) {
		t.Errorf("UTC day = %v", got)
	}
	if got := On(ts, east); got != (Date{2026, time.March, 15}) {
		t.Errorf("UTC+2 day = %v", got)
	}
	if got := On(ts, nil); got != On(ts, time.UTC) {
		t.Errorf("nil location should mean UTC, got %v", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2026-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{2026, time.January, 5}) {
		t.Errorf("Parse = %+v", d)
	}
	if d.String() != "2026-01-05" {
		t.Errorf("String = %q", d.String())
	}

	zero, err := Parse("")
	if err != nil || !zero.IsZero() {
		t.Errorf("Parse(\"\") = %v, %v; want zero date", zero, err)
	}
	if zero.String() != "" {
		t.Errorf("zero String = %q, want empty", zero.String())
	}

	if _, err := Parse("14/03/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestGate(t *testing.T) {
	var g Gate
	today := Date{2026, time.March, 14}
	if !g.Eligible(today) {
		t.Fatal("fresh gate should be eligible")
	}
	g.MarkCompleted(today)
	if g.Eligible(today) {
		t.Error("gate should be closed after completion")
	}
	if !g.Eligible(Date{2026, time.March, 15}) {
		t.Error("gate should reopen the next day")
	}
}
