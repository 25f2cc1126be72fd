package bot

import (
	"errors"
	"fmt"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"planner-bot/internal/model"
	"planner-bot/internal/service"
)

// handleCallback routes a button press. Exact identifiers are matched
// first, then the prefix_argument family; the longer edit_ prefixes must be
// checked before the bare one. An unknown button gets a "not found" toast.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := cb.Data

	switch data {
	case cbMainMenu:
		b.clearSession(userID)
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "🏠 Главное меню\n\nВыбери действие:", mainMenuKeyboard())
	case cbAddTask:
		b.setSession(userID, dialogState{stage: stageTaskTitle})
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "📝 Введите название задачи:", backKeyboard())
	case cbViewTasks:
		b.answer(cb.ID, "")
		return b.showTaskList(userID, chatID, messageID)
	case cbClearCompleted:
		removed, err := b.planner.ClearCompleted(userID)
		if err != nil {
			return err
		}
		log.Printf("[info] cleared %d completed tasks user=%d", removed, userID)
		b.answer(cb.ID, fmt.Sprintf("🗑 Удалено %d выполненных задач", removed))
		return b.showTaskList(userID, chatID, messageID)
	case cbStatistics:
		stats, err := b.planner.Statistics(userID, time.Now())
		if err != nil {
			return err
		}
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, statisticsText(stats), backKeyboard())
	case cbCategories:
		b.answer(cb.ID, "")
		return b.showCategories(userID, chatID, messageID)
	case cbAddCategory:
		b.setSession(userID, dialogState{stage: stageCategoryName})
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "🏷 Введите название новой категории:", cancelKeyboard("◀️ Отмена", cbCategories))
	case cbNotesMenu:
		b.answer(cb.ID, "")
		return b.showNotes(userID, chatID, messageID)
	case cbAddNote:
		b.setSession(userID, dialogState{stage: stageNoteText})
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "📝 Введите текст заметки:", cancelKeyboard("◀️ Отмена", cbNotesMenu))
	case cbSettings:
		b.answer(cb.ID, "")
		return b.showSettings(userID, chatID, messageID)
	case cbToggleNotify:
		if _, err := b.planner.ToggleNotifications(userID); err != nil {
			return err
		}
		b.answer(cb.ID, "")
		return b.showSettings(userID, chatID, messageID)
	case cbChangeTimezone:
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "🌍 <b>Выбор часового пояса</b>\n\nВыберите ваш часовой пояс:", timezoneKeyboard())
	}

	switch {
	case strings.HasPrefix(data, cbEditTitlePrefix):
		taskID, err := parseID(data, cbEditTitlePrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		b.setSession(userID, dialogState{stage: stageEditTitle, taskID: taskID})
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "📝 Введите новое название задачи:",
			cancelKeyboard("◀️ Отмена", fmt.Sprintf("%s%d", cbTaskPrefix, taskID)))
	case strings.HasPrefix(data, cbEditCatPrefix):
		taskID, err := parseID(data, cbEditCatPrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		b.setSession(userID, dialogState{stage: stageEditCategory, taskID: taskID})
		kb, err := b.buildKeyboard(userID, func(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
			return categoryPickerKeyboard(rec, cbPickCatPrefix)
		})
		if err != nil {
			return err
		}
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "🏷 Выберите новую категорию:", kb)
	case strings.HasPrefix(data, cbEditPrefix):
		taskID, err := parseID(data, cbEditPrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		b.answer(cb.ID, "")
		return b.editView(chatID, messageID, "✏️ <b>Изменение задачи</b>\n\nВыберите, что хотите изменить:", editKeyboard(taskID))
	case strings.HasPrefix(data, cbNewCatPrefix):
		return b.finishTaskCreation(cb, strings.TrimPrefix(data, cbNewCatPrefix))
	case strings.HasPrefix(data, cbPickCatPrefix):
		return b.finishRecategorize(cb, strings.TrimPrefix(data, cbPickCatPrefix))
	case strings.HasPrefix(data, cbTaskPrefix):
		taskID, err := parseID(data, cbTaskPrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		return b.showTaskDetail(cb, taskID)
	case strings.HasPrefix(data, cbCompletePrefix):
		taskID, err := parseID(data, cbCompletePrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		task, err := b.planner.CompleteTask(userID, taskID, time.Now())
		if errors.Is(err, service.ErrNotFound) {
			b.answer(cb.ID, "Задача не найдена")
			return b.showTaskList(userID, chatID, messageID)
		}
		if err != nil {
			return err
		}
		log.Printf("[info] task completed id=%d user=%d", task.ID, userID)
		b.answer(cb.ID, "✅ Задача выполнена!")
		return b.showTaskList(userID, chatID, messageID)
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID, err := parseID(data, cbDeletePrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		task, err := b.planner.DeleteTask(userID, taskID)
		if errors.Is(err, service.ErrNotFound) {
			b.answer(cb.ID, "Задача не найдена")
			return b.showTaskList(userID, chatID, messageID)
		}
		if err != nil {
			return err
		}
		log.Printf("[info] task deleted id=%d user=%d", task.ID, userID)
		b.answer(cb.ID, fmt.Sprintf("🗑 Удалено: %s", truncateRunes(task.Title, 40)))
		return b.showTaskList(userID, chatID, messageID)
	case strings.HasPrefix(data, cbFilterPrefix):
		return b.showCategoryFilter(cb, strings.TrimPrefix(data, cbFilterPrefix))
	case strings.HasPrefix(data, cbDelCatPrefix):
		name := strings.TrimPrefix(data, cbDelCatPrefix)
		err := b.planner.DeleteCategory(userID, name)
		if errors.Is(err, service.ErrNotFound) {
			b.answer(cb.ID, "Категория не найдена")
			return b.showCategories(userID, chatID, messageID)
		}
		if err != nil {
			return err
		}
		log.Printf("[info] category deleted user=%d", userID)
		b.answer(cb.ID, fmt.Sprintf("🗑 Категория '%s' удалена", truncateRunes(name, 40)))
		return b.showCategories(userID, chatID, messageID)
	case strings.HasPrefix(data, cbDelNotePrefix):
		noteID, err := parseID(data, cbDelNotePrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		err = b.planner.DeleteNote(userID, noteID)
		if errors.Is(err, service.ErrNotFound) {
			b.answer(cb.ID, "Заметка не найдена")
			return b.showNotes(userID, chatID, messageID)
		}
		if err != nil {
			return err
		}
		log.Printf("[info] note deleted id=%d user=%d", noteID, userID)
		b.answer(cb.ID, "🗑 Заметка удалена")
		return b.showNotes(userID, chatID, messageID)
	case strings.HasPrefix(data, cbNotePrefix):
		noteID, err := parseID(data, cbNotePrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		return b.showNoteDetail(cb, noteID)
	case strings.HasPrefix(data, cbTzPrefix):
		offset, err := parseID(data, cbTzPrefix)
		if err != nil {
			b.answer(cb.ID, "Кнопка не распознана")
			return nil
		}
		if err := b.planner.SetTimezone(userID, offset); err != nil {
			if errors.Is(err, service.ErrBadTimezone) {
				b.answer(cb.ID, "Кнопка не распознана")
				return nil
			}
			return err
		}
		b.answer(cb.ID, fmt.Sprintf("✅ Часовой пояс установлен: UTC%+d", offset))
		return b.showSettings(userID, chatID, messageID)
	default:
		b.answer(cb.ID, "Кнопка не распознана")
		return nil
	}
}

// finishTaskCreation commits the collected title with the picked category.
// The button is only meaningful while the session awaits a category pick.
func (b *Bot) finishTaskCreation(cb *tgbotapi.CallbackQuery, picked string) error {
	userID := cb.From.ID
	state := b.getSession(userID)
	if state.stage != stageTaskCategory {
		b.answer(cb.ID, "Действие недоступно")
		return nil
	}

	category := pickedCategory(picked)
	task, err := b.planner.AddTask(userID, state.title, category, time.Now())
	if err != nil {
		b.clearSession(userID)
		if errors.Is(err, service.ErrNotFound) {
			b.answer(cb.ID, "Категория не найдена")
			return nil
		}
		return err
	}
	b.clearSession(userID)
	log.Printf("[info] task created id=%d user=%d", task.ID, userID)

	text := fmt.Sprintf("✅ Задача добавлена!\n\n%s", html.EscapeString(task.Title))
	if task.Category != nil {
		text += fmt.Sprintf(" (🏷 %s)", html.EscapeString(*task.Category))
	}
	b.answer(cb.ID, "")
	return b.editView(cb.Message.Chat.ID, cb.Message.MessageID, text, mainMenuKeyboard())
}

// finishRecategorize commits a category pick of the edit flow.
func (b *Bot) finishRecategorize(cb *tgbotapi.CallbackQuery, picked string) error {
	userID := cb.From.ID
	state := b.getSession(userID)
	if state.stage != stageEditCategory {
		b.answer(cb.ID, "Действие недоступно")
		return nil
	}
	b.clearSession(userID)

	category := pickedCategory(picked)
	task, err := b.planner.RecategorizeTask(userID, state.taskID, category)
	if errors.Is(err, service.ErrNotFound) {
		b.answer(cb.ID, "Задача не найдена")
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("[info] task recategorized id=%d user=%d", task.ID, userID)

	label := noCategory
	if task.Category != nil {
		label = *task.Category
	}
	b.answer(cb.ID, "")
	return b.editView(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("✅ Категория изменена на: %s", html.EscapeString(label)), editKeyboard(task.ID))
}

func (b *Bot) showTaskList(userID, chatID int64, messageID int) error {
	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)
	err := b.store.View(userID, func(rec *model.UserRecord) {
		all := make([]*model.Task, 0, len(rec.Tasks))
		for i := range rec.Tasks {
			all = append(all, &rec.Tasks[i])
		}
		text = taskListText(all, "Ваши задачи")
		kb = tasksKeyboard(rec)
	})
	if err != nil {
		return err
	}
	return b.editView(chatID, messageID, text, kb)
}

func (b *Bot) showTaskDetail(cb *tgbotapi.CallbackQuery, taskID int) error {
	var task *model.Task
	err := b.store.View(cb.From.ID, func(rec *model.UserRecord) {
		if found := rec.TaskByID(taskID); found != nil && !found.Completed {
			copied := *found
			task = &copied
		}
	})
	if err != nil {
		return err
	}
	if task == nil {
		b.answer(cb.ID, "Задача не найдена")
		return nil
	}
	b.answer(cb.ID, "")
	return b.editView(cb.Message.Chat.ID, cb.Message.MessageID, taskDetailText(task), taskDetailKeyboard(task.ID))
}

func (b *Bot) showCategoryFilter(cb *tgbotapi.CallbackQuery, name string) error {
	match := name
	if match == noCategory {
		match = ""
	}

	var text string
	err := b.store.View(cb.From.ID, func(rec *model.UserRecord) {
		text = taskListText(rec.TasksByCategory(match), "Категория: "+name)
	})
	if err != nil {
		return err
	}
	b.answer(cb.ID, "")
	return b.editView(cb.Message.Chat.ID, cb.Message.MessageID, text, backKeyboard())
}

func (b *Bot) showCategories(userID, chatID int64, messageID int) error {
	kb, err := b.buildKeyboard(userID, categoriesKeyboard)
	if err != nil {
		return err
	}
	return b.editView(chatID, messageID, categoriesText(), kb)
}

func (b *Bot) showNotes(userID, chatID int64, messageID int) error {
	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)
	err := b.store.View(userID, func(rec *model.UserRecord) {
		text = notesMenuText(rec)
		kb = notesKeyboard(rec)
	})
	if err != nil {
		return err
	}
	return b.editView(chatID, messageID, text, kb)
}

func (b *Bot) showNoteDetail(cb *tgbotapi.CallbackQuery, noteID int) error {
	var note *model.Note
	err := b.store.View(cb.From.ID, func(rec *model.UserRecord) {
		if found := rec.NoteByID(noteID); found != nil {
			copied := *found
			note = &copied
		}
	})
	if err != nil {
		return err
	}
	if note == nil {
		b.answer(cb.ID, "Заметка не найдена")
		return nil
	}
	b.answer(cb.ID, "")
	return b.editView(cb.Message.Chat.ID, cb.Message.MessageID, noteDetailText(note), noteDetailKeyboard(note.ID))
}

func (b *Bot) showSettings(userID, chatID int64, messageID int) error {
	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)
	err := b.store.View(userID, func(rec *model.UserRecord) {
		text = settingsText(rec)
		kb = settingsKeyboard(rec)
	})
	if err != nil {
		return err
	}
	return b.editView(chatID, messageID, text, kb)
}

// pickedCategory maps the picker argument to a category reference,
// nil for the "no category" pseudo-option.
func pickedCategory(picked string) *string {
	if picked == noCategory {
		return nil
	}
	return &picked
}

func parseID(data, prefix string) (int, error) {
	value, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return 0, err
	}
	return value, nil
}
