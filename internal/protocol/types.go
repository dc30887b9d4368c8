package protocol

import "sort"

// Priority of a protocol task. Used by status surfaces to pick alert levels.
type Priority string

const (
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Task is one immutable protocol table entry: what has to happen on a given
// day of the cycle. Descriptions are multi-line operator checklists and go
// verbatim into the generated calendar/to-do bodies.
type Task struct {
	Title         string
	Description   string
	Category      string
	Phase         string // flower phase or veg stage tag
	Priority      Priority
	DurationHours int
}

// Table maps a 1-based day number to its task. Not every day has a task.
type Table map[int]Task

// Days returns the table's day numbers in ascending order.
func (t Table) Days() []int {
	days := make([]int, 0, len(t))
	for d := range t {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Next returns the first entry whose day is >= day, scanning forward.
// ok is false when the protocol has no remaining tasks.
func (t Table) Next(day int) (taskDay int, task Task, ok bool) {
	for _, d := range t.Days() {
		if d >= day {
			return d, t[d], true
		}
	}
	return 0, Task{}, false
}
