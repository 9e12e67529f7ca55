// Package notify collects operator-facing notes produced during a run.
//
// Every operation returns the notifications it produced as a List; callers
// join them with Append. Nothing is shared between operations.
package notify

import (
	"fmt"
	"strings"
)

// Kind classifies a notification.
type Kind string

// Notification kinds.
const (
	KindManualChange    Kind = "manual_change"    // A platform edit was detected and kept
	KindUnknownField    Kind = "unknown_field"    // A configured compare field does not exist
	KindNoBaseline      Kind = "no_baseline"      // No previous export to compare against
	KindAssumedBaseline Kind = "assumed_baseline" // The previous export was chosen by guessing
	KindTruncated       Kind = "truncated"        // An overlong field was shortened
	KindPlatform        Kind = "platform"         // The platform snapshot was unavailable
	KindInfo            Kind = "info"
)

// Notification is a single note for the operator.
type Notification struct {
	Kind        Kind   `json:"kind" yaml:"kind"`
	OrderNumber string `json:"order_number,omitempty" yaml:"order_number,omitempty"`
	Message     string `json:"message" yaml:"message"`
}

// String returns the message.
func (n Notification) String() string {
	return n.Message
}

// New creates a notification with a formatted message.
func New(kind Kind, orderNumber, format string, args ...any) Notification {
	return Notification{Kind: kind, OrderNumber: orderNumber, Message: fmt.Sprintf(format, args...)}
}

// List is an ordered collection of notifications.
type List []Notification

// Add returns l with a new notification appended.
func (l List) Add(kind Kind, orderNumber, format string, args ...any) List {
	return append(l, New(kind, orderNumber, format, args...))
}

// Append returns l followed by all notifications of others.
func (l List) Append(others ...List) List {
	for _, o := range others {
		l = append(l, o...)
	}
	return l
}

// OfKind returns the notifications of the given kind.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, n := range l {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Messages returns the plain messages in order.
func (l List) Messages() []string {
	msgs := make([]string, len(l))
	for i, n := range l {
		msgs[i] = n.Message
	}
	return msgs
}

// String renders the list as a bulleted block.
func (l List) String() string {
	var sb strings.Builder
	for i, n := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(n.Message)
	}
	return sb.String()
}
