package model

import "time"

// CategoryStat is one row of the per-category breakdown. Name is empty for
// the "no category" bucket.
type CategoryStat struct {
	Name      string
	Total     int
	Completed int
}

// Stats aggregates task counters for one user.
type Stats struct {
	Total          int
	Completed      int
	Active         int
	TodayCreated   int
	TodayCompleted int
	// Categories are listed in first-seen order over the task list.
	Categories []CategoryStat
}

// Statistics walks the task list once and builds the counters. "Today" is
// the calendar day of now.
func (u *UserRecord) Statistics(now time.Time) Stats {
	stats := Stats{Total: len(u.Tasks)}
	index := make(map[string]int)

	for i := range u.Tasks {
		task := &u.Tasks[i]
		if task.Completed {
			stats.Completed++
		}
		if SameDay(task.CreatedAt, now) {
			stats.TodayCreated++
			if task.Completed {
				stats.TodayCompleted++
			}
		}

		name := task.CategoryName()
		pos, seen := index[name]
		if !seen {
			pos = len(stats.Categories)
			index[name] = pos
			stats.Categories = append(stats.Categories, CategoryStat{Name: name})
		}
		stats.Categories[pos].Total++
		if task.Completed {
			stats.Categories[pos].Completed++
		}
	}

	stats.Active = stats.Total - stats.Completed
	return stats
}
