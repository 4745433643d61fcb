package prefs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trililingo/trililingo-api/internal/domain"
)

// fakePrefsStore keeps the prefs blob in memory.
type fakePrefsStore struct {
	prefs   domain.UserPrefs
	getErr  error
	saveErr error
	saves   int
}

func (f *fakePrefsStore) Get(ctx context.Context) (domain.UserPrefs, error) {
	if f.getErr != nil {
		return domain.UserPrefs{}, f.getErr
	}
	return f.prefs, nil
}

func (f *fakePrefsStore) Save(ctx context.Context, p domain.UserPrefs) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.prefs = p
	f.saves++
	return nil
}

func fixedNow(t time.Time) func() int64 {
	return func() int64 { return t.UnixMilli() }
}

func TestAddXPAccumulates(t *testing.T) {
	t.Parallel()

	store := &fakePrefsStore{}
	svc := NewService(store, fixedNow(time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)), nil)

	require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 25))
	require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 13))

	assert.Equal(t, int64(38), store.prefs.TotalXP)
}

func TestStreakTransitions(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2024, 6, d, 15, 0, 0, 0, time.UTC)
	}

	t.Run("first study starts at one", func(t *testing.T) {
		t.Parallel()
		store := &fakePrefsStore{}
		svc := NewService(store, fixedNow(day(10)), nil)

		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))
		assert.Equal(t, 1, store.prefs.StreakCount)
	})

	t.Run("same day keeps streak", func(t *testing.T) {
		t.Parallel()
		store := &fakePrefsStore{}
		svc := NewService(store, fixedNow(day(10)), nil)

		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))
		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))
		assert.Equal(t, 1, store.prefs.StreakCount)
	})

	t.Run("consecutive day grows streak", func(t *testing.T) {
		t.Parallel()
		store := &fakePrefsStore{}

		svc := NewService(store, fixedNow(day(10)), nil)
		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))

		svc = NewService(store, fixedNow(day(11)), nil)
		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))
		assert.Equal(t, 2, store.prefs.StreakCount)
	})

	t.Run("gap resets streak to one", func(t *testing.T) {
		t.Parallel()
		store := &fakePrefsStore{}

		svc := NewService(store, fixedNow(day(10)), nil)
		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))

		svc = NewService(store, fixedNow(day(14)), nil)
		require.NoError(t, svc.AddXPAndUpdateStreak(context.Background(), 10))
		assert.Equal(t, 1, store.prefs.StreakCount)
	})
}

func TestSetDailySelectionDeduplicates(t *testing.T) {
	t.Parallel()

	store := &fakePrefsStore{}
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	svc := NewService(store, fixedNow(now), nil)

	ids := []string{"a", "b", "a", "c", "b"}
	require.NoError(t, svc.SetDailySelection(context.Background(), "JA", "HIRAGANA", true, ids))

	sel, err := svc.GetDailySelection(context.Background(), "JA", "HIRAGANA")
	require.NoError(t, err)
	assert.True(t, sel.Enabled)
	assert.Equal(t, []string{"a", "b", "c"}, sel.ItemIDs)
	assert.Equal(t, now.UnixMilli(), sel.UpdatedAtMs)
}

func TestGetDailySelectionMissingPairIsZero(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakePrefsStore{}, fixedNow(time.Now()), nil)

	sel, err := svc.GetDailySelection(context.Background(), "ZH", "HANZI")
	require.NoError(t, err)
	assert.False(t, sel.Enabled)
	assert.Empty(t, sel.ItemIDs)
}

func TestClearDailySelection(t *testing.T) {
	t.Parallel()

	store := &fakePrefsStore{}
	svc := NewService(store, fixedNow(time.Now()), nil)

	require.NoError(t, svc.SetDailySelection(context.Background(), "JA", "HIRAGANA", true, []string{"a"}))
	require.NoError(t, svc.ClearDailySelection(context.Background(), "JA", "HIRAGANA"))

	sel, err := svc.GetDailySelection(context.Background(), "JA", "HIRAGANA")
	require.NoError(t, err)
	assert.Empty(t, sel.ItemIDs)
}

func TestSetActiveLanguage(t *testing.T) {
	t.Parallel()

	store := &fakePrefsStore{}
	svc := NewService(store, fixedNow(time.Now()), nil)

	require.NoError(t, svc.SetActiveLanguage(context.Background(), "ZH"))
	assert.Equal(t, "ZH", store.prefs.ActiveLanguage)
}

func TestUpdatePropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("disk gone")
	svc := NewService(&fakePrefsStore{getErr: loadErr}, fixedNow(time.Now()), nil)

	err := svc.AddXPAndUpdateStreak(context.Background(), 10)
	assert.ErrorIs(t, err, loadErr)
}
