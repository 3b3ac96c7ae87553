// Package stats folds answer outcomes into lifetime and per-topic totals.
package stats

import "math"

// TopicStat holds the running totals for a single syllabus topic.
type TopicStat struct {
	TotalCorrect  int `json:"totalCorrect"`
	TotalAnswered int `json:"totalAnswered"`
}

// UserStats is the lifetime statistics snapshot for one user.
type UserStats struct {
	TotalCorrect  int                  `json:"totalCorrect"`
	TotalAnswered int                  `json:"totalAnswered"`
	TopicStats    map[string]TopicStat `json:"topicStats"`
}

// New returns an empty snapshot.
func New() UserStats {
	return UserStats{TopicStats: make(map[string]TopicStat)}
}

// Clone returns a deep copy of s.
func (s UserStats) Clone() UserStats {
	out := UserStats{
		TotalCorrect:  s.TotalCorrect,
		TotalAnswered: s.TotalAnswered,
		TopicStats:    make(map[string]TopicStat, len(s.TopicStats)),
	}
	for name, ts := range s.TopicStats {
		out.TopicStats[name] = ts
	}
	return out
}

// Normalize repairs snapshots written by older versions or edited by hand:
// a missing topic map becomes empty, negative counters become zero and
// correct counts are capped at the answered count.
func (s UserStats) Normalize() UserStats {
	out := s.Clone()
	out.TotalAnswered, out.TotalCorrect = clamp(out.TotalAnswered, out.TotalCorrect)
	for name, ts := range out.TopicStats {
		ts.TotalAnswered, ts.TotalCorrect = clamp(ts.TotalAnswered, ts.TotalCorrect)
		out.TopicStats[name] = ts
	}
	return out
}

func clamp(answered, correct int) (int, int) {
	answered = max(answered, 0)
	correct = min(max(correct, 0), answered)
	return answered, correct
}

// Fold applies one answer outcome and returns the new snapshot. The global
// counters always move. The topic entry moves only when topic is non-empty;
// an empty topic means the answer came from an unscoped attempt.
func Fold(s UserStats, correct bool, topic string) UserStats {
	out := s.Clone()
	out.TotalAnswered++
	if correct {
		out.TotalCorrect++
	}
	if topic == "" {
		return out
	}
	ts := out.TopicStats[topic]
	ts.TotalAnswered++
	if correct {
		ts.TotalCorrect++
	}
	out.TopicStats[topic] = ts
	return out
}

// FoldExam applies the single bulk update made when an exam completes.
// Topic totals are never touched.
func FoldExam(s UserStats, correct, total int) UserStats {
	out := s.Clone()
	out.TotalCorrect += max(correct, 0)
	out.TotalAnswered += max(total, 0)
	return out
}

// Percent returns round(100*correct/answered). ok is false when nothing has
// been answered yet.
func Percent(correct, answered int) (pct int, ok bool) {
	if answered <= 0 {
		return 0, false
	}
	return int(math.Floor(float64(correct)*100/float64(answered) + 0.5)), true
}

// Accuracy returns the global percentage for s.
func (s UserStats) Accuracy() (int, bool) {
	return Percent(s.TotalCorrect, s.TotalAnswered)
}

// Accuracy returns the percentage for one topic.
func (ts TopicStat) Accuracy() (int, bool) {
	return Percent(ts.TotalCorrect, ts.TotalAnswered)
}
