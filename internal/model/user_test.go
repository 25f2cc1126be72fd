package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-bot/internal/model"
)

func TestActiveTasksKeepInsertionOrder(t *testing.T) {
	rec := model.NewUserRecord()
	rec.AddTask(model.Task{Title: "первая", CreatedAt: time.Now()})
	mid := rec.AddTask(model.Task{Title: "вторая", CreatedAt: time.Now()})
	rec.AddTask(model.Task{Title: "третья", CreatedAt: time.Now()})
	mid.Completed = true

	active := rec.ActiveTasks()
	require.Len(t, active, 2)
	assert.Equal(t, "первая", active[0].Title)
	assert.Equal(t, "третья", active[1].Title)
	assert.Equal(t, 1, rec.CompletedCount())
}

func TestTasksByCategoryIncludesNoCategoryBucket(t *testing.T) {
	rec := model.NewUserRecord()
	work := "Работа"
	rec.AddTask(model.Task{Title: "с категорией", CreatedAt: time.Now(), Category: &work})
	rec.AddTask(model.Task{Title: "без категории", CreatedAt: time.Now()})

	tagged := rec.TasksByCategory("Работа")
	require.Len(t, tagged, 1)
	assert.Equal(t, "с категорией", tagged[0].Title)

	untagged := rec.TasksByCategory("")
	require.Len(t, untagged, 1)
	assert.Equal(t, "без категории", untagged[0].Title)
}

func TestRemoveTaskKeepsRemainingIDs(t *testing.T) {
	rec := model.NewUserRecord()
	first := rec.AddTask(model.Task{Title: "первая", CreatedAt: time.Now()})
	second := rec.AddTask(model.Task{Title: "вторая", CreatedAt: time.Now()})

	require.True(t, rec.RemoveTask(first.ID))
	assert.Nil(t, rec.TaskByID(first.ID))

	// The survivor keeps its id and a new task does not reuse the freed one.
	require.NotNil(t, rec.TaskByID(second.ID))
	third := rec.AddTask(model.Task{Title: "третья", CreatedAt: time.Now()})
	assert.Equal(t, 3, third.ID)
}

func TestStatisticsFirstSeenCategoryOrder(t *testing.T) {
	rec := model.NewUserRecord()
	home := "Дом"
	work := "Работа"
	rec.AddTask(model.Task{Title: "a", CreatedAt: time.Now(), Category: &home})
	rec.AddTask(model.Task{Title: "b", CreatedAt: time.Now(), Category: &work})
	rec.AddTask(model.Task{Title: "c", CreatedAt: time.Now(), Category: &home})
	rec.AddTask(model.Task{Title: "d", CreatedAt: time.Now()})

	stats := rec.Statistics(time.Now())
	require.Len(t, stats.Categories, 3)
	assert.Equal(t, "Дом", stats.Categories[0].Name)
	assert.Equal(t, 2, stats.Categories[0].Total)
	assert.Equal(t, "Работа", stats.Categories[1].Name)
	assert.Equal(t, "", stats.Categories[2].Name)
}

func TestSameDay(t *testing.T) {
	ref := time.Date(2026, 8, 27, 23, 30, 0, 0, time.UTC)
	assert.True(t, model.SameDay(time.Date(2026, 8, 27, 0, 1, 0, 0, time.UTC), ref))
	assert.False(t, model.SameDay(time.Date(2026, 8, 28, 0, 1, 0, 0, time.UTC), ref))

	// Comparison happens in the reference location.
	plus3 := time.FixedZone("UTC+3", 3*3600)
	late := time.Date(2026, 8, 28, 1, 0, 0, 0, plus3) // still the 27th in UTC
	assert.True(t, model.SameDay(late, ref))
}
