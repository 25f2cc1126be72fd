package model

import "time"

// Settings keeps per-user preferences.
type Settings struct {
	Notifications bool `json:"notifications"`
	// Timezone is the UTC offset in hours, -12..12.
	Timezone int `json:"timezone"`
}

// UserRecord holds everything the planner knows about one user.
type UserRecord struct {
	Tasks      []Task   `json:"tasks"`
	Notes      []Note   `json:"notes"`
	Categories []string `json:"categories"`
	Settings   Settings `json:"settings"`

	nextTaskID int
	nextNoteID int
}

// DefaultCategories seed every freshly created record.
var DefaultCategories = []string{"Работа", "Личное", "Учёба", "Здоровье", "Покупки"}

// NewUserRecord builds a record with default categories and settings.
func NewUserRecord() *UserRecord {
	rec := &UserRecord{
		Tasks:      []Task{},
		Notes:      []Note{},
		Categories: append([]string(nil), DefaultCategories...),
		Settings:   Settings{Notifications: true, Timezone: 0},
	}
	rec.AssignIDs()
	return rec
}

// AssignIDs numbers tasks and notes in array order and primes the counters.
// Called once after a record is loaded from disk.
func (u *UserRecord) AssignIDs() {
	for i := range u.Tasks {
		u.Tasks[i].ID = i + 1
	}
	for i := range u.Notes {
		u.Notes[i].ID = i + 1
	}
	u.nextTaskID = len(u.Tasks) + 1
	u.nextNoteID = len(u.Notes) + 1
}

// AddTask appends a task with the next free id and returns a pointer to it.
func (u *UserRecord) AddTask(task Task) *Task {
	task.ID = u.nextTaskID
	u.nextTaskID++
	u.Tasks = append(u.Tasks, task)
	return &u.Tasks[len(u.Tasks)-1]
}

// AddNote appends a note with the next free id and returns a pointer to it.
func (u *UserRecord) AddNote(note Note) *Note {
	note.ID = u.nextNoteID
	u.nextNoteID++
	u.Notes = append(u.Notes, note)
	return &u.Notes[len(u.Notes)-1]
}

// TaskByID finds a task by its runtime id, nil when it is gone.
func (u *UserRecord) TaskByID(id int) *Task {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			return &u.Tasks[i]
		}
	}
	return nil
}

// NoteByID finds a note by its runtime id, nil when it is gone.
func (u *UserRecord) NoteByID(id int) *Note {
	for i := range u.Notes {
		if u.Notes[i].ID == id {
			return &u.Notes[i]
		}
	}
	return nil
}

// RemoveTask deletes the task with the given id, keeping insertion order.
func (u *UserRecord) RemoveTask(id int) bool {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			u.Tasks = append(u.Tasks[:i], u.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveNote deletes the note with the given id, keeping insertion order.
func (u *UserRecord) RemoveNote(id int) bool {
	for i := range u.Notes {
		if u.Notes[i].ID == id {
			u.Notes = append(u.Notes[:i], u.Notes[i+1:]...)
			return true
		}
	}
	return false
}

// ActiveTasks returns pointers to open tasks in insertion order.
func (u *UserRecord) ActiveTasks() []*Task {
	var active []*Task
	for i := range u.Tasks {
		if !u.Tasks[i].Completed {
			active = append(active, &u.Tasks[i])
		}
	}
	return active
}

// CompletedCount counts closed tasks.
func (u *UserRecord) CompletedCount() int {
	count := 0
	for i := range u.Tasks {
		if u.Tasks[i].Completed {
			count++
		}
	}
	return count
}

// TasksByCategory returns tasks whose category exactly matches name.
// Empty name selects the "no category" bucket.
func (u *UserRecord) TasksByCategory(name string) []*Task {
	var matched []*Task
	for i := range u.Tasks {
		if u.Tasks[i].CategoryName() == name {
			matched = append(matched, &u.Tasks[i])
		}
	}
	return matched
}

// HasCategory reports whether name is in the user's category set.
func (u *UserRecord) HasCategory(name string) bool {
	for _, cat := range u.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// ActiveCountInCategory counts open tasks tagged with the given category.
func (u *UserRecord) ActiveCountInCategory(name string) int {
	count := 0
	for i := range u.Tasks {
		if !u.Tasks[i].Completed && u.Tasks[i].CategoryName() == name {
			count++
		}
	}
	return count
}

// SameDay reports whether t and ref fall on the same calendar day in ref's
// location. Statistics deliberately use the process-local day, not the
// user's stored timezone offset.
func SameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
