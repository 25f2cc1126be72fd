package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-bot/internal/service"
	"planner-bot/internal/store"
)

func TestSummarySkipsUsersWithNotificationsOff(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "planner_db.json"))
	require.NoError(t, err)
	planner := service.NewPlanner(s)
	reports := service.NewReportService(s)

	_, err = planner.AddTask(userID, "Полить цветы", nil, time.Now())
	require.NoError(t, err)

	text, enabled, err := reports.Summary(userID, time.Now())
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Contains(t, text, "Полить цветы")

	_, err = planner.ToggleNotifications(userID)
	require.NoError(t, err)

	_, enabled, err = reports.Summary(userID, time.Now())
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSummaryWithoutOpenTasks(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "planner_db.json"))
	require.NoError(t, err)
	reports := service.NewReportService(s)

	text, enabled, err := reports.Summary(userID, time.Now())
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Contains(t, text, "нет открытых задач")
}
