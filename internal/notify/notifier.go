// Package notify defines the outcome-notification contract used by the
// session manager and the product store. Notifications are fire-and-forget:
// implementations must not block and must never fail the calling operation.
package notify

import (
	"context"
	"fmt"
	"io"

	"stocktrack/internal/logging"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notifier receives operation outcomes.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(severity Severity, message string)

func (f Func) Notify(severity Severity, message string) {
	f(severity, message)
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Notify(Severity, string) {}

// Console writes notifications to w with a short severity marker, the CLI
// analogue of a toast popup.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(severity Severity, message string) {
	marker := "i"
	switch severity {
	case SeveritySuccess:
		marker = "ok"
	case SeverityError:
		marker = "!!"
	}
	_, _ = fmt.Fprintf(c.w, "[%s] %s\n", marker, message)
}

// LogNotifier forwards notifications to a structured logger.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(severity Severity, message string) {
	ctx := context.Background()
	if severity == SeverityError {
		n.log.Error(ctx, message, "severity", severity)
		return
	}
	n.log.Info(ctx, message, "severity", severity)
}
