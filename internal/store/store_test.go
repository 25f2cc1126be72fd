package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-bot/internal/model"
	"planner-bot/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner_db.json")
	s, err := store.Open(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, path := openStore(t)
	assert.Empty(t, s.UserIDs())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file should be created before the first access")
}

func TestOpenMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner_db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := store.Open(path)
	require.Error(t, err)
}

func TestOpenBadUserKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner_db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not-a-number": {"tasks": [], "notes": [], "categories": [], "settings": {"notifications": true, "timezone": 0}}}`), 0o644))

	_, err := store.Open(path)
	require.Error(t, err)
}

func TestGetOrCreateSeedsDefaultsAndPersists(t *testing.T) {
	s, path := openStore(t)

	err := s.View(42, func(rec *model.UserRecord) {
		assert.Equal(t, model.DefaultCategories, rec.Categories)
		assert.True(t, rec.Settings.Notifications)
		assert.Zero(t, rec.Settings.Timezone)
		assert.Empty(t, rec.Tasks)
		assert.Empty(t, rec.Notes)
	})
	require.NoError(t, err)

	// Creation alone must already be on disk.
	reopened, err := store.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, reopened.UserIDs())
}

func TestRoundTrip(t *testing.T) {
	s, path := openStore(t)

	created := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	done := created.Add(2 * time.Hour)
	category := "Работа"

	err := s.Update(7, func(rec *model.UserRecord) error {
		rec.AddTask(model.Task{Title: "Купить молоко", CreatedAt: created, Category: &category})
		task := rec.AddTask(model.Task{Title: "Позвонить врачу", CreatedAt: created})
		task.Completed = true
		task.CompletedAt = &done
		rec.AddNote(model.Note{Text: "мысль на вечер", CreatedAt: created})
		rec.Settings.Timezone = 3
		return nil
	})
	require.NoError(t, err)

	reopened, err := store.Open(path)
	require.NoError(t, err)

	err = reopened.View(7, func(rec *model.UserRecord) {
		require.Len(t, rec.Tasks, 2)

		first := rec.Tasks[0]
		assert.Equal(t, "Купить молоко", first.Title)
		assert.True(t, first.CreatedAt.Equal(created))
		assert.False(t, first.Completed)
		assert.Nil(t, first.CompletedAt)
		assert.Nil(t, first.Time)
		require.NotNil(t, first.Category)
		assert.Equal(t, "Работа", *first.Category)

		second := rec.Tasks[1]
		assert.True(t, second.Completed)
		require.NotNil(t, second.CompletedAt)
		assert.True(t, second.CompletedAt.Equal(done))
		assert.Nil(t, second.Category)

		require.Len(t, rec.Notes, 1)
		assert.Equal(t, "мысль на вечер", rec.Notes[0].Text)
		assert.True(t, rec.Notes[0].CreatedAt.Equal(created))

		assert.Equal(t, model.DefaultCategories, rec.Categories)
		assert.Equal(t, 3, rec.Settings.Timezone)
		assert.True(t, rec.Settings.Notifications)
	})
	require.NoError(t, err)
}

func TestLoadAssignsSequentialIDs(t *testing.T) {
	s, path := openStore(t)

	err := s.Update(1, func(rec *model.UserRecord) error {
		rec.AddTask(model.Task{Title: "один", CreatedAt: time.Now()})
		rec.AddTask(model.Task{Title: "два", CreatedAt: time.Now()})
		return nil
	})
	require.NoError(t, err)

	reopened, err := store.Open(path)
	require.NoError(t, err)

	err = reopened.View(1, func(rec *model.UserRecord) {
		require.Len(t, rec.Tasks, 2)
		assert.Equal(t, 1, rec.Tasks[0].ID)
		assert.Equal(t, 2, rec.Tasks[1].ID)

		// A fresh record keeps counting past the loaded ids.
		added := rec.AddTask(model.Task{Title: "три", CreatedAt: time.Now()})
		assert.Equal(t, 3, added.ID)
	})
	require.NoError(t, err)
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	s, path := openStore(t)

	require.NoError(t, s.Update(5, func(rec *model.UserRecord) error {
		rec.AddTask(model.Task{Title: "будет сохранена", CreatedAt: time.Now()})
		return nil
	}))

	failed := assert.AnError
	err := s.Update(5, func(rec *model.UserRecord) error {
		rec.Tasks = nil
		return failed
	})
	require.ErrorIs(t, err, failed)

	// On-disk state is from the last successful update.
	reopened, err := store.Open(path)
	require.NoError(t, err)
	err = reopened.View(5, func(rec *model.UserRecord) {
		assert.Len(t, rec.Tasks, 1)
	})
	require.NoError(t, err)
}
