// Package notice carries the advisory messages the catalog emits when an
// operation is refused or an identity field changes. Notices are meant for
// humans and logs; callers should not parse Message.
package notice

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindDuplicateISBN  Kind = "duplicate_isbn"
	KindInvalidEmail   Kind = "invalid_email"
	KindDuplicateEmail Kind = "duplicate_email"
	KindUnknownReader  Kind = "unknown_reader"
	KindISBNChanged    Kind = "isbn_changed"
	KindEmailChanged   Kind = "email_changed"
)

// Refusal reports whether the kind describes an aborted operation rather
// than a completed change.
func (k Kind) Refusal() bool {
	switch k {
	case KindDuplicateISBN, KindInvalidEmail, KindDuplicateEmail, KindUnknownReader:
		return true
	default:
		return false
	}
}

type Notice struct {
	ID      uuid.UUID         `json:"id"`
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	At      time.Time         `json:"at"`
}

type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Discard drops every notice.
var Discard Notifier = NotifierFunc(func(Notice) {})

// Emit builds a notice and hands it to n. A nil n is treated as Discard.
func Emit(n Notifier, kind Kind, message string, attrs map[string]string) {
	if n == nil {
		return
	}
	n.Notify(Notice{
		ID:      uuid.New(),
		Kind:    kind,
		Message: message,
		Attrs:   attrs,
		At:      time.Now().UTC(),
	})
}

type multi []Notifier

func (m multi) Notify(n Notice) {
	for _, next := range m {
		if next != nil {
			next.Notify(n)
		}
	}
}

// Multi fans a notice out to every notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}
