package account

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/az104/internal/daily"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/store"
)

// DefaultNamespace prefixes every key this package writes.
const DefaultNamespace = "az104"

// Repo reads and writes user records through a KV store. Keys follow
// "<ns>_user" for the active identity and "<ns>_user_<id>_stats" /
// "<ns>_user_<id>_lastDaily" for per-user data.
type Repo struct {
	kv store.KVRepo
	ns string
}

// NewRepo returns a Repo. An empty namespace means DefaultNamespace.
func NewRepo(kv store.KVRepo, namespace string) *Repo {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Repo{kv: kv, ns: namespace}
}

// UserKey is the key of the active identity.
func (r *Repo) UserKey() string { return r.ns + "_user" }

// StatsKey is the key of a user's statistics snapshot.
func (r *Repo) StatsKey(userID string) string { return r.ns + "_user_" + userID + "_stats" }

// LastDailyKey is the key of a user's last daily completion date.
func (r *Repo) LastDailyKey(userID string) string { return r.ns + "_user_" + userID + "_lastDaily" }

// ActiveUser returns the stored identity, or nil when nobody is signed in.
func (r *Repo) ActiveUser(ctx context.Context) (*User, error) {
	raw, ok, err := r.kv.Get(ctx, r.UserKey())
	if err != nil || !ok {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// SetActiveUser stores u as the signed-in identity.
func (r *Repo) SetActiveUser(ctx context.Context, u User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return r.kv.Put(ctx, r.UserKey(), raw)
}

// ClearActiveUser signs out. Per-user data is kept.
func (r *Repo) ClearActiveUser(ctx context.Context) error {
	return r.kv.Delete(ctx, r.UserKey())
}

// LoadStats returns the user's statistics, or an empty snapshot if none are
// stored.
func (r *Repo) LoadStats(ctx context.Context, userID string) (stats.UserStats, error) {
	raw, ok, err := r.kv.Get(ctx, r.StatsKey(userID))
	if err != nil {
		return stats.New(), err
	}
	if !ok {
		return stats.New(), nil
	}
	var s stats.UserStats
	if err := json.Unmarshal(raw, &s); err != nil {
		return stats.New(), fmt.Errorf("decode stats: %w", err)
	}
	return s.Normalize(), nil
}

// SaveStats replaces the user's statistics.
func (r *Repo) SaveStats(ctx context.Context, userID string, s stats.UserStats) error {
	if s.TopicStats == nil {
		s.TopicStats = map[string]stats.TopicStat{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return r.kv.Put(ctx, r.StatsKey(userID), raw)
}

// LoadLastDaily returns the last daily completion date; the zero Date when
// none is stored.
func (r *Repo) LoadLastDaily(ctx context.Context, userID string) (daily.Date, error) {
	raw, ok, err := r.kv.Get(ctx, r.LastDailyKey(userID))
	if err != nil || !ok {
		return daily.Date{}, err
	}
	return daily.Parse(strings.Trim(strings.TrimSpace(string(raw)), `"`))
}

// SaveLastDaily stores d as YYYY-MM-DD.
func (r *Repo) SaveLastDaily(ctx context.Context, userID string, d daily.Date) error {
	if d.IsZero() {
		return r.kv.Delete(ctx, r.LastDailyKey(userID))
	}
	return r.kv.Put(ctx, r.LastDailyKey(userID), []byte(d.String()))
}

// Reset deletes the user's statistics and daily date.
func (r *Repo) Reset(ctx context.Context, userID string) error {
	if err := r.kv.Delete(ctx, r.StatsKey(userID)); err != nil {
		return err
	}
	return r.kv.Delete(ctx, r.LastDailyKey(userID))
}
