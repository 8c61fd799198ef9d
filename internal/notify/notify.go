package notify

import (
	"sync"
	"time"
)

// Level is the severity of a notice
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Info    Level = "info"
	Warning Level = "warning"
)

// Notice is a transient message for the user
type Notice struct {
	Level   Level     `json:"level"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier accepts notices
type Notifier interface {
	Notify(n Notice)
}

// Queue buffers notices until the browser drains them.
// When full, the oldest notice is dropped.
type Queue struct {
	mu      sync.Mutex
	notices []Notice
	max     int
}

// NewQueue creates a queue holding at most max notices
func NewQueue(max int) *Queue {
	if max <= 0 {
		max = 20
	}
	return &Queue{max: max}
}

// Notify appends n, stamping it when At is zero
func (q *Queue) Notify(n Notice) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notices = append(q.notices, n)
	if over := len(q.notices) - q.max; over > 0 {
		q.notices = q.notices[over:]
	}
}

// Drain returns and removes every pending notice
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// Len returns the number of pending notices
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.notices)
}

func Successf(title, message string) Notice {
	return Notice{Level: Success, Title: title, Message: message}
}

func Errorf(title, message string) Notice {
	return Notice{Level: Error, Title: title, Message: message}
}

func Infof(title, message string) Notice {
	return Notice{Level: Info, Title: title, Message: message}
}

// Discard drops every notice
type Discard struct{}

func (Discard) Notify(Notice) {}
