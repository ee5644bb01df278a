package api

import "time"

// Event is a single performance listing.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Venue       string   `json:"venue"`
	City        string   `json:"city"`
	Date        string   `json:"date"` // YYYY-MM-DD
	StartTime   string   `json:"startTime,omitempty"`
	MinPrice    int      `json:"minPrice"`
	SoldOut     bool     `json:"soldOut"`
	Cast        []string `json:"cast,omitempty"`
	Description string   `json:"description,omitempty"` // Markdown
	Tickets     []Ticket `json:"tickets,omitempty"`
}

// Ticket is one listed ticket for an event.
type Ticket struct {
	Seat      string `json:"seat"`
	Price     int    `json:"price"`
	Available bool   `json:"available"`
}

// CoCastResult lists events in which all requested performers appear.
type CoCastResult struct {
	Names  []string `json:"names"`
	Events []Event  `json:"events"`
}

// HeatmapDay is the number of events on one calendar day.
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// User is the signed-in user's profile.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Subscription is a user's alert on an event.
type Subscription struct {
	EventID   string    `json:"eventId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskStatus is the state of an async backend task.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskRunning TaskStatus = "running"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

// Finished reports whether the task reached a terminal state.
func (s TaskStatus) Finished() bool {
	return s == TaskDone || s == TaskFailed
}

// Task is an async backend job, such as a ticket refresh.
type Task struct {
	ID       string     `json:"id"`
	Status   TaskStatus `json:"status"`
	Progress int        `json:"progress,omitempty"`
	Error    string     `json:"error,omitempty"`
}
