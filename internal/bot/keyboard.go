package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"planner-bot/internal/model"
)

const (
	cbMainMenu       = "main_menu"
	cbAddTask        = "add_task"
	cbViewTasks      = "view_tasks"
	cbClearCompleted = "clear_completed"
	cbStatistics     = "statistics"
	cbCategories     = "categories"
	cbAddCategory    = "add_category"
	cbNotesMenu      = "notes_menu"
	cbAddNote        = "add_note"
	cbSettings       = "settings"
	cbToggleNotify   = "toggle_notifications"
	cbChangeTimezone = "change_timezone"

	cbTaskPrefix      = "task_"
	cbCompletePrefix  = "complete_"
	cbEditPrefix      = "edit_"
	cbEditTitlePrefix = "edit_title_"
	cbEditCatPrefix   = "edit_cat_"
	cbDeletePrefix    = "delete_"
	cbNewCatPrefix    = "newcat_"
	cbPickCatPrefix   = "editcat_"
	cbFilterPrefix    = "filter_"
	cbDelCatPrefix    = "delcat_"
	cbNotePrefix      = "note_"
	cbDelNotePrefix   = "delnote_"
	cbTzPrefix        = "tz_"
)

// noCategory is both the button label and the prefix argument for the
// "no category" pseudo-option of the pickers.
const noCategory = "Без категории"

// listButtonCap limits how many tasks or notes get their own button.
const listButtonCap = 10

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➕ Добавить задачу", cbAddTask)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📋 Мои задачи", cbViewTasks)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📝 Заметки", cbNotesMenu)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", cbStatistics)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🗂 Категории", cbCategories)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", cbSettings)),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(buttonRow("◀️ Назад", cbMainMenu))
}

func cancelKeyboard(label, target string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(buttonRow(label, target))
}

func buttonRow(label, target string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, target))
}

func tasksKeyboard(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	active := rec.ActiveTasks()
	if len(active) > listButtonCap {
		active = active[:listButtonCap]
	}
	for _, task := range active {
		label := "🔴 "
		if task.Time != nil {
			label += *task.Time + " - "
		}
		label += truncateRunes(task.Title, 30)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbTaskPrefix, task.ID))))
	}

	rows = append(rows, buttonRow("🗑 Очистить выполненные", cbClearCompleted))
	rows = append(rows, buttonRow("◀️ Назад", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func taskDetailKeyboard(taskID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		buttonRow("✅ Выполнить", fmt.Sprintf("%s%d", cbCompletePrefix, taskID)),
		buttonRow("✏️ Изменить", fmt.Sprintf("%s%d", cbEditPrefix, taskID)),
		buttonRow("🗑 Удалить", fmt.Sprintf("%s%d", cbDeletePrefix, taskID)),
		buttonRow("◀️ К задачам", cbViewTasks),
	)
}

func editKeyboard(taskID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		buttonRow("📝 Изменить название", fmt.Sprintf("%s%d", cbEditTitlePrefix, taskID)),
		buttonRow("🏷 Изменить категорию", fmt.Sprintf("%s%d", cbEditCatPrefix, taskID)),
		buttonRow("◀️ Назад к задаче", fmt.Sprintf("%s%d", cbTaskPrefix, taskID)),
	)
}

// categoryPickerKeyboard lists the "no category" pseudo-option plus every
// user category. prefix is cbNewCatPrefix or cbPickCatPrefix depending on
// the flow the selection belongs to.
func categoryPickerKeyboard(rec *model.UserRecord, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, buttonRow("❌ "+noCategory, prefix+noCategory))
	for _, cat := range rec.Categories {
		rows = append(rows, buttonRow("🏷 "+cat, prefix+cat))
	}
	rows = append(rows, buttonRow("◀️ Отмена", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoriesKeyboard(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, cat := range rec.Categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s (%d)", cat, rec.ActiveCountInCategory(cat)), cbFilterPrefix+cat),
			tgbotapi.NewInlineKeyboardButtonData("🗑", cbDelCatPrefix+cat),
		))
	}

	rows = append(rows, buttonRow("➕ Добавить категорию", cbAddCategory))
	rows = append(rows, buttonRow("◀️ Назад", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func notesKeyboard(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	notes := rec.Notes
	if len(notes) > listButtonCap {
		notes = notes[:listButtonCap]
	}
	for _, note := range notes {
		rows = append(rows, buttonRow("📄 "+notePreview(note.Text), fmt.Sprintf("%s%d", cbNotePrefix, note.ID)))
	}

	rows = append(rows, buttonRow("➕ Добавить заметку", cbAddNote))
	rows = append(rows, buttonRow("◀️ Назад", cbMainMenu))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func noteDetailKeyboard(noteID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		buttonRow("🗑 Удалить заметку", fmt.Sprintf("%s%d", cbDelNotePrefix, noteID)),
		buttonRow("◀️ К заметкам", cbNotesMenu),
	)
}

func settingsKeyboard(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
	toggle := "🔔 Включить уведомления"
	if rec.Settings.Notifications {
		toggle = "🔔 Выключить уведомления"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		buttonRow(toggle, cbToggleNotify),
		buttonRow("🌍 Изменить часовой пояс", cbChangeTimezone),
		buttonRow("◀️ Назад", cbMainMenu),
	)
}

// timezoneKeyboard is a fixed grid of the 25 offsets UTC-12..UTC+12,
// three per row.
func timezoneKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for tz := -12; tz <= 12; tz++ {
		label := fmt.Sprintf("UTC%+d", tz)
		if tz == 3 {
			label += " (МСК)"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbTzPrefix, tz)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, buttonRow("◀️ Назад", cbSettings))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
