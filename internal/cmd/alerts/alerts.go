// Package alerts prints status notices, such as cache fallbacks and
// partial snapshots, next to command output.
package alerts

import (
	"fmt"
	"io"
	"time"
)

// Alert is a single notice.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates an alert stamped with the current time.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message, Timestamp: time.Now()}
}

// NewError creates an error alert.
func NewError(message string) *Alert { return New(LevelError, message) }

// NewWarning creates a warning alert.
func NewWarning(message string) *Alert { return New(LevelWarning, message) }

// NewInfo creates an info alert.
func NewInfo(message string) *Alert { return New(LevelInfo, message) }

// NewSuccess creates a success alert.
func NewSuccess(message string) *Alert { return New(LevelSuccess, message) }

// WithError attaches the cause.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails appends detail lines.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String renders "icon message" with ": cause" appended when set.
func (a *Alert) String() string {
	if a.Err == nil {
		return a.Level.Icon() + " " + a.Message
	}
	return fmt.Sprintf("%s %s: %v", a.Level.Icon(), a.Message, a.Err)
}

// Writer emits alerts.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(*Alert) error

// WriteAlert calls f.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter drops every alert. Used under --quiet.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo writes one plain line per alert to w.
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(alert *Alert) error {
		_, err := fmt.Fprintln(w, alert.String())
		return err
	})
}
