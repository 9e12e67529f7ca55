// Package alerts provides a structured system for status notifications.
package alerts

import (
	"fmt"
	"io"
	"time"

	"github.com/agentstation/foodsync/pkg/notify"
)

// Alert represents a status notification shown to the operator.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// FromNotification converts a run notification into an alert. Kinds that
// need a decision by the ordering team become warnings.
func FromNotification(n notify.Notification) *Alert {
	level := LevelInfo
	switch n.Kind {
	case notify.KindManualChange, notify.KindAssumedBaseline, notify.KindPlatform, notify.KindUnknownField:
		level = LevelWarning
	}
	a := New(level, n.Message)
	if n.OrderNumber != "" {
		a.Details = append(a.Details, "article "+n.OrderNumber)
	}
	return a
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer handles alert output to different formats and destinations.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that writes plain lines to an io.Writer.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}

// WriteAll writes the alerts in order, stopping at the first error.
func WriteAll(w Writer, alerts ...*Alert) error {
	for _, a := range alerts {
		if err := w.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}
