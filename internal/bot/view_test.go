package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-bot/internal/model"
)

func TestMainMenuHasSixOptions(t *testing.T) {
	kb := mainMenuKeyboard()
	assert.Len(t, kb.InlineKeyboard, 6)
}

func TestTimezoneKeyboardGrid(t *testing.T) {
	kb := timezoneKeyboard()

	// 25 offsets in rows of three plus the back row.
	require.Len(t, kb.InlineKeyboard, 10)
	total := 0
	for _, row := range kb.InlineKeyboard[:9] {
		total += len(row)
		assert.LessOrEqual(t, len(row), 3)
	}
	assert.Equal(t, 25, total)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "UTC-12", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "tz_-12", *first.CallbackData)

	moscow := kb.InlineKeyboard[5][0]
	assert.Equal(t, "UTC+3 (МСК)", moscow.Text)

	back := kb.InlineKeyboard[9][0]
	require.NotNil(t, back.CallbackData)
	assert.Equal(t, cbSettings, *back.CallbackData)
}

func TestTasksKeyboardCapsAtTen(t *testing.T) {
	rec := model.NewUserRecord()
	for i := 0; i < 12; i++ {
		rec.AddTask(model.Task{Title: "задача", CreatedAt: time.Now()})
	}

	kb := tasksKeyboard(rec)
	// 10 task buttons + clear-completed + back.
	assert.Len(t, kb.InlineKeyboard, 12)
}

func TestNotesKeyboardCapsAtTen(t *testing.T) {
	rec := model.NewUserRecord()
	for i := 0; i < 15; i++ {
		rec.AddNote(model.Note{Text: "заметка", CreatedAt: time.Now()})
	}

	kb := notesKeyboard(rec)
	// 10 note buttons + add + back.
	assert.Len(t, kb.InlineKeyboard, 12)
}

func TestCategoryPickerInjectsNoCategoryOption(t *testing.T) {
	rec := model.NewUserRecord()
	kb := categoryPickerKeyboard(rec, cbNewCatPrefix)

	// Pseudo-option, five defaults, cancel.
	require.Len(t, kb.InlineKeyboard, 7)

	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "❌ "+noCategory, first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, cbNewCatPrefix+noCategory, *first.CallbackData)

	second := kb.InlineKeyboard[1][0]
	require.NotNil(t, second.CallbackData)
	assert.Equal(t, cbNewCatPrefix+"Работа", *second.CallbackData)
}

func TestCategoriesKeyboardShowsActiveCounts(t *testing.T) {
	rec := model.NewUserRecord()
	work := "Работа"
	rec.AddTask(model.Task{Title: "открытая", CreatedAt: time.Now(), Category: &work})
	done := rec.AddTask(model.Task{Title: "закрытая", CreatedAt: time.Now(), Category: &work})
	done.Completed = true

	kb := categoriesKeyboard(rec)
	assert.Equal(t, "Работа (1)", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, cbDelCatPrefix+"Работа", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestNotePreviewTruncation(t *testing.T) {
	exact := strings.Repeat("а", 40)
	assert.Equal(t, exact, notePreview(exact))

	long := strings.Repeat("б", 41)
	got := notePreview(long)
	assert.Equal(t, strings.Repeat("б", 40)+"...", got)
}

func TestTaskListText(t *testing.T) {
	assert.Contains(t, taskListText(nil, "Ваши задачи"), "Задач пока нет")

	category := "Работа"
	open := &model.Task{Title: "отчёт", CreatedAt: time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC), Category: &category}
	closed := &model.Task{Title: "сделана", CreatedAt: time.Now(), Completed: true}

	text := taskListText([]*model.Task{open, closed}, "Ваши задачи")
	assert.Contains(t, text, "отчёт")
	assert.Contains(t, text, "🏷 Работа")
	assert.Contains(t, text, "создано: 27.08")
	assert.NotContains(t, text, "сделана")
	assert.Contains(t, text, "✅ Выполнено: 1")
}

func TestStatisticsText(t *testing.T) {
	empty := statisticsText(model.Stats{})
	assert.Contains(t, empty, "Всего задач: 0")
	assert.NotContains(t, empty, "Процент выполнения")

	stats := model.Stats{
		Total:          4,
		Completed:      3,
		Active:         1,
		TodayCreated:   2,
		TodayCompleted: 1,
		Categories: []model.CategoryStat{
			{Name: "Работа", Total: 3, Completed: 2},
			{Name: "", Total: 1, Completed: 1},
		},
	}
	text := statisticsText(stats)
	assert.Contains(t, text, "Процент выполнения: 75.0%")
	assert.Contains(t, text, "• Работа: 2/3")
	assert.Contains(t, text, "• "+noCategory+": 1/1")
}

func TestTaskDetailText(t *testing.T) {
	task := &model.Task{Title: "отчёт", CreatedAt: time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC)}
	text := taskDetailText(task)
	assert.Contains(t, text, "Время: не указано")
	assert.Contains(t, text, "Категория: не указана")
	assert.Contains(t, text, "27.08.2026 09:30")
}
