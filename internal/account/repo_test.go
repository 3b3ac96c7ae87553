package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/az104/internal/daily"
	"github.com/abhisek/az104/internal/stats"
	"github.com/abhisek/az104/internal/store"
)

func TestAuthenticate(t *testing.T) {
	u := Authenticate(Credentials{})
	assert.Equal(t, DefaultName, u.Name)
	assert.Equal(t, DefaultEmail, u.Email)
	assert.NotEmpty(t, u.ID)

	same := Authenticate(Credentials{Name: "Someone Else", Email: "LEARNER@example.com "})
	assert.Equal(t, u.ID, same.ID, "ID should depend only on the e-mail, case-insensitively")

	other := Authenticate(Credentials{Email: "ops@contoso.com"})
	assert.NotEqual(t, u.ID, other.ID)
}

func TestRepo_Keys(t *testing.T) {
	r := NewRepo(store.NewMemoryKV(), "")
	assert.Equal(t, "az104_user", r.UserKey())
	assert.Equal(t, "az104_user_42_stats", r.StatsKey("42"))
	assert.Equal(t, "az104_user_42_lastDaily", r.LastDailyKey("42"))

	r = NewRepo(store.NewMemoryKV(), "test")
	assert.Equal(t, "test_user", r.UserKey())
}

func TestRepo_ActiveUser(t *testing.T) {
	ctx := context.Background()
	r := NewRepo(store.NewMemoryKV(), "")

	u, err := r.ActiveUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	want := Authenticate(Credentials{Name: "Ada", Email: "ada@contoso.com"})
	require.NoError(t, r.SetActiveUser(ctx, want))

	got, err := r.ActiveUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, r.ClearActiveUser(ctx))
	got, err = r.ActiveUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepo_StatsRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	r := NewRepo(kv, "")

	empty, err := r.LoadStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalAnswered)
	assert.NotNil(t, empty.TopicStats)

	s := stats.Fold(stats.New(), true, "Implement and manage storage")
	require.NoError(t, r.SaveStats(ctx, "u1", s))

	raw, ok, _ := kv.Get(ctx, "az104_user_u1_stats")
	require.True(t, ok)
	assert.JSONEq(t, `{"totalCorrect":1,"totalAnswered":1,"topicStats":{"Implement and manage storage":{"totalCorrect":1,"totalAnswered":1}}}`, string(raw))

	got, err := r.LoadStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestRepo_LoadStatsWithoutTopicMap(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Put(ctx, "az104_user_u1_stats", []byte(`{"totalCorrect":3,"totalAnswered":4}`))

	got, err := NewRepo(kv, "").LoadStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalCorrect)
	assert.NotNil(t, got.TopicStats)
}

func TestRepo_LoadStatsCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Put(ctx, "az104_user_u1_stats", []byte(`not json`))

	got, err := NewRepo(kv, "").LoadStats(ctx, "u1")
	assert.Error(t, err)
	assert.Equal(t, 0, got.TotalAnswered)
}

func TestRepo_LastDaily(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	r := NewRepo(kv, "")

	d, err := r.LoadLastDaily(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	today := daily.Date{Year: 2026, Month: time.March, Day: 14}
	require.NoError(t, r.SaveLastDaily(ctx, "u1", today))
	raw, _, _ := kv.Get(ctx, "az104_user_u1_lastDaily")
	assert.Equal(t, "2026-03-14", string(raw))

	d, err = r.LoadLastDaily(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, today, d)

	require.NoError(t, r.Reset(ctx, "u1"))
	d, _ = r.LoadLastDaily(ctx, "u1")
	assert.True(t, d.IsZero())
}
