// Package notify defines the toast/notification capability the state layer
// reports through. The display side is an external collaborator; the core
// only calls Notify with a kind and a message.
package notify

import (
	"log"

	"github.com/harshala334/virtual-office/internal/utils"
)

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notifier receives user-facing notifications from the state layer
type Notifier interface {
	Notify(kind Kind, message string)
}

// LogNotifier writes notifications to the standard logger. It is the
// default collaborator when no UI is attached.
type LogNotifier struct{}

// Notify implements Notifier
func (LogNotifier) Notify(kind Kind, message string) {
	log.Printf("[%s] %s", kind, utils.SanitizeLogString(message))
}

// Func adapts a function to the Notifier interface
type Func func(kind Kind, message string)

// Notify implements Notifier
func (f Func) Notify(kind Kind, message string) {
	f(kind, message)
}
