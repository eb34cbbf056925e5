package sim

import (
	"fmt"
	"io"
	"sync"

	"github.com/udisondev/battlestats/internal/host"
)

// ConsoleUI writes message boxes and toasts to w.
type ConsoleUI struct {
	mu sync.Mutex
	w  io.Writer
}

var _ host.UI = (*ConsoleUI)(nil)

// NewConsoleUI creates a console UI.
func NewConsoleUI(w io.Writer) *ConsoleUI {
	return &ConsoleUI{w: w}
}

// MessageBox prints text framed as a modal.
func (u *ConsoleUI) MessageBox(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "+---------------- message ----------------+\n%s\n+-----------------------------------------+\n", text)
}

// Notification prints a one-line toast.
func (u *ConsoleUI) Notification(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "[toast] %s\n", text)
}

// RecordingUI keeps every message for inspection.
type RecordingUI struct {
	mu            sync.Mutex
	messages      []string
	notifications []string
}

var _ host.UI = (*RecordingUI)(nil)

// MessageBox records text.
func (u *RecordingUI) MessageBox(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = append(u.messages, text)
}

// Notification records text.
func (u *RecordingUI) Notification(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notifications = append(u.notifications, text)
}

// Messages returns recorded message boxes.
func (u *RecordingUI) Messages() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.messages...)
}

// Notifications returns recorded toasts.
func (u *RecordingUI) Notifications() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.notifications...)
}
