package bot

import (
	"fmt"
	"html"
	"strings"

	"planner-bot/internal/model"
)

func greetingText(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "друг"
	}
	return fmt.Sprintf(
		"👋 Привет, %s!\n\nЯ помогу тебе организовать твой день.\nВыбери действие из меню ниже:",
		html.EscapeString(name),
	)
}

// taskListText renders the active tasks of the given list and a footer with
// the completed count. The filter view passes a category slice, the main
// list passes every task.
func taskListText(tasks []*model.Task, title string) string {
	if len(tasks) == 0 {
		return fmt.Sprintf("📋 %s\n\nЗадач пока нет.", html.EscapeString(title))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>%s</b>\n\n", html.EscapeString(title)))

	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
			continue
		}

		var markers string
		if task.Time != nil {
			markers += fmt.Sprintf("⏰ %s | ", html.EscapeString(*task.Time))
		}
		if task.Category != nil {
			markers += fmt.Sprintf("🏷 %s | ", html.EscapeString(*task.Category))
		}

		b.WriteString(fmt.Sprintf("▪️ %s\n", html.EscapeString(task.Title)))
		b.WriteString(fmt.Sprintf("   %sсоздано: %s\n\n", markers, task.CreatedAt.Format("02.01")))
	}

	if completed > 0 {
		b.WriteString(fmt.Sprintf("\n✅ Выполнено: %d", completed))
	}

	return strings.TrimRight(b.String(), "\n")
}

func taskDetailText(task *model.Task) string {
	timeHint := "не указано"
	if task.Time != nil {
		timeHint = html.EscapeString(*task.Time)
	}
	category := "не указана"
	if task.Category != nil {
		category = html.EscapeString(*task.Category)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📌 <b>%s</b>\n\n", html.EscapeString(task.Title)))
	b.WriteString(fmt.Sprintf("⏰ Время: %s\n", timeHint))
	b.WriteString(fmt.Sprintf("🏷 Категория: %s\n", category))
	b.WriteString(fmt.Sprintf("📅 Создано: %s\n", task.CreatedAt.Format("02.01.2006 15:04")))
	return b.String()
}

func statisticsText(stats model.Stats) string {
	var b strings.Builder
	b.WriteString("📊 <b>Статистика</b>\n\n")
	b.WriteString(fmt.Sprintf("📌 Всего задач: %d\n", stats.Total))
	b.WriteString(fmt.Sprintf("✅ Выполнено: %d\n", stats.Completed))
	b.WriteString(fmt.Sprintf("🔴 Активных: %d\n\n", stats.Active))

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		b.WriteString(fmt.Sprintf("📈 Процент выполнения: %.1f%%\n\n", rate))
	}

	b.WriteString("📅 Сегодня:\n")
	b.WriteString(fmt.Sprintf("   Создано: %d\n", stats.TodayCreated))
	b.WriteString(fmt.Sprintf("   Выполнено: %d\n", stats.TodayCompleted))

	if len(stats.Categories) > 0 {
		b.WriteString("\n📊 По категориям:\n")
		for _, cat := range stats.Categories {
			name := cat.Name
			if name == "" {
				name = noCategory
			}
			b.WriteString(fmt.Sprintf("   • %s: %d/%d\n", html.EscapeString(name), cat.Completed, cat.Total))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func notesMenuText(rec *model.UserRecord) string {
	if len(rec.Notes) == 0 {
		return "📝 <b>Заметки</b>\n\nЗаметок пока нет."
	}
	return "📝 <b>Заметки</b>\n\nНажмите на заметку, чтобы открыть её полностью:"
}

func noteDetailText(note *model.Note) string {
	return fmt.Sprintf(
		"📄 <b>Заметка</b>\n\n%s\n\n📅 Создано: %s",
		html.EscapeString(note.Text),
		note.CreatedAt.Format("02.01.2006 15:04"),
	)
}

func settingsText(rec *model.UserRecord) string {
	notifications := "Выкл"
	if rec.Settings.Notifications {
		notifications = "Вкл"
	}
	return fmt.Sprintf(
		"⚙️ <b>Настройки</b>\n\n🔔 Уведомления: %s\n🌍 Часовой пояс: UTC%+d",
		notifications, rec.Settings.Timezone,
	)
}

func categoriesText() string {
	return "🗂 <b>Категории задач</b>\n\nУправляйте категориями:"
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// notePreview shortens a note to its first 40 runes for button labels.
func notePreview(text string) string {
	runes := []rune(text)
	if len(runes) > 40 {
		return string(runes[:40]) + "..."
	}
	return text
}
