package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	"planner-bot/internal/model"
	"planner-bot/internal/store"
)

// ReportService builds human-readable summaries for periodic notifications.
type ReportService struct {
	store *store.Store
}

func NewReportService(s *store.Store) *ReportService {
	return &ReportService{store: s}
}

// Summary renders the user's open tasks for a periodic report. The second
// return value is false when the user has notifications switched off and
// no report should be sent.
func (r *ReportService) Summary(userID int64, now time.Time) (string, bool, error) {
	var (
		text    string
		enabled bool
	)
	err := r.store.View(userID, func(rec *model.UserRecord) {
		enabled = rec.Settings.Notifications
		if enabled {
			text = buildSummary(rec, now)
		}
	})
	if err != nil {
		return "", false, err
	}
	return text, enabled, nil
}

func buildSummary(rec *model.UserRecord, now time.Time) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Сводка по задачам</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	active := rec.ActiveTasks()
	if len(active) == 0 {
		builder.WriteString("— нет открытых задач, так держать!")
		return strings.TrimSpace(builder.String())
	}

	builder.WriteString("🔥 <b>Открытые задачи</b>\n")
	for _, task := range active {
		builder.WriteString(fmt.Sprintf("▪️ %s", html.EscapeString(strings.TrimSpace(task.Title))))
		if task.Category != nil {
			builder.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(*task.Category)))
		}
		builder.WriteByte('\n')
	}

	if completed := rec.CompletedCount(); completed > 0 {
		builder.WriteString(fmt.Sprintf("\n✅ Выполнено всего: %d", completed))
	}

	return strings.TrimSpace(builder.String())
}
