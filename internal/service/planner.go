package service

import (
	"errors"
	"strings"
	"time"

	"planner-bot/internal/model"
	"planner-bot/internal/store"
)

var (
	// ErrNotFound is returned when an id no longer resolves to a record,
	// typically a tap on a stale menu.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateCategory is returned on an attempt to add an existing category.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrEmptyText rejects blank titles, notes and category names.
	ErrEmptyText = errors.New("text must not be empty")
	// ErrBadTimezone rejects UTC offsets outside -12..12.
	ErrBadTimezone = errors.New("timezone offset out of range")
)

// Planner wraps every mutating operation over the store.
type Planner struct {
	store *store.Store
}

func NewPlanner(s *store.Store) *Planner {
	return &Planner{store: s}
}

// AddTask creates an open task. A category, when given, must exist in the
// user's category set.
func (p *Planner) AddTask(userID int64, title string, category *string, now time.Time) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyText
	}

	var created model.Task
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		if category != nil && !rec.HasCategory(*category) {
			return ErrNotFound
		}
		created = *rec.AddTask(model.Task{
			Title:     title,
			CreatedAt: now,
			Category:  category,
		})
		return nil
	})
	return created, err
}

// CompleteTask marks an open task as done, setting the completion time.
// Completed tasks no longer appear in the active view, so a second tap
// resolves to ErrNotFound.
func (p *Planner) CompleteTask(userID int64, taskID int, now time.Time) (model.Task, error) {
	var completed model.Task
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		task := rec.TaskByID(taskID)
		if task == nil || task.Completed {
			return ErrNotFound
		}
		task.Completed = true
		task.CompletedAt = &now
		completed = *task
		return nil
	})
	return completed, err
}

// RenameTask replaces the title of an open task.
func (p *Planner) RenameTask(userID int64, taskID int, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyText
	}

	var renamed model.Task
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		task := rec.TaskByID(taskID)
		if task == nil || task.Completed {
			return ErrNotFound
		}
		task.Title = title
		renamed = *task
		return nil
	})
	return renamed, err
}

// RecategorizeTask moves an open task to another category, or clears it
// when category is nil.
func (p *Planner) RecategorizeTask(userID int64, taskID int, category *string) (model.Task, error) {
	var updated model.Task
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		if category != nil && !rec.HasCategory(*category) {
			return ErrNotFound
		}
		task := rec.TaskByID(taskID)
		if task == nil || task.Completed {
			return ErrNotFound
		}
		task.Category = category
		updated = *task
		return nil
	})
	return updated, err
}

// DeleteTask removes a task completely and returns its last state.
func (p *Planner) DeleteTask(userID int64, taskID int) (model.Task, error) {
	var deleted model.Task
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		task := rec.TaskByID(taskID)
		if task == nil {
			return ErrNotFound
		}
		deleted = *task
		rec.RemoveTask(taskID)
		return nil
	})
	return deleted, err
}

// ClearCompleted drops every completed task and reports how many were removed.
func (p *Planner) ClearCompleted(userID int64) (int, error) {
	removed := 0
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		kept := rec.Tasks[:0]
		for _, task := range rec.Tasks {
			if task.Completed {
				removed++
				continue
			}
			kept = append(kept, task)
		}
		rec.Tasks = kept
		return nil
	})
	return removed, err
}

// AddNote stores a new note.
func (p *Planner) AddNote(userID int64, text string, now time.Time) (model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Note{}, ErrEmptyText
	}

	var created model.Note
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		created = *rec.AddNote(model.Note{Text: text, CreatedAt: now})
		return nil
	})
	return created, err
}

// DeleteNote removes a note by id.
func (p *Planner) DeleteNote(userID int64, noteID int) error {
	return p.store.Update(userID, func(rec *model.UserRecord) error {
		if !rec.RemoveNote(noteID) {
			return ErrNotFound
		}
		return nil
	})
}

// AddCategory appends a user-defined category. Duplicates are rejected.
func (p *Planner) AddCategory(userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyText
	}

	return p.store.Update(userID, func(rec *model.UserRecord) error {
		if rec.HasCategory(name) {
			return ErrDuplicateCategory
		}
		rec.Categories = append(rec.Categories, name)
		return nil
	})
}

// DeleteCategory removes a category and clears the reference on every task
// that held it. The tasks themselves stay.
func (p *Planner) DeleteCategory(userID int64, name string) error {
	return p.store.Update(userID, func(rec *model.UserRecord) error {
		kept := rec.Categories[:0]
		found := false
		for _, cat := range rec.Categories {
			if cat == name {
				found = true
				continue
			}
			kept = append(kept, cat)
		}
		if !found {
			return ErrNotFound
		}
		rec.Categories = kept

		for i := range rec.Tasks {
			if rec.Tasks[i].Category != nil && *rec.Tasks[i].Category == name {
				rec.Tasks[i].Category = nil
			}
		}
		return nil
	})
}

// ToggleNotifications flips the notifications flag and returns the new value.
func (p *Planner) ToggleNotifications(userID int64) (bool, error) {
	var enabled bool
	err := p.store.Update(userID, func(rec *model.UserRecord) error {
		rec.Settings.Notifications = !rec.Settings.Notifications
		enabled = rec.Settings.Notifications
		return nil
	})
	return enabled, err
}

// SetTimezone stores the UTC offset in hours.
func (p *Planner) SetTimezone(userID int64, offset int) error {
	if offset < -12 || offset > 12 {
		return ErrBadTimezone
	}
	return p.store.Update(userID, func(rec *model.UserRecord) error {
		rec.Settings.Timezone = offset
		return nil
	})
}

// Statistics aggregates task counters for the user.
func (p *Planner) Statistics(userID int64, now time.Time) (model.Stats, error) {
	var stats model.Stats
	err := p.store.View(userID, func(rec *model.UserRecord) {
		stats = rec.Statistics(now)
	})
	return stats, err
}
