package provisioning

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-logr/logr"
)

// Observer defines the interface for structured observability of console operations.
type Observer interface {
	// Printf logs a free-form line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured orchestrator event.
type Event struct {
	Type      EventType         // Type of event
	Operation string            // Operation name (e.g., "select", "create")
	Message   string            // Human-readable message
	Resource  string            // Blueprint, host or cluster name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of orchestrator event.
type EventType string

const (
	// EventOperationStarted indicates an operation has started.
	EventOperationStarted EventType = "operation.started"
	// EventOperationCompleted indicates an operation completed successfully.
	EventOperationCompleted EventType = "operation.completed"
	// EventOperationFailed indicates an operation failed.
	EventOperationFailed EventType = "operation.failed"

	// EventBlueprintNotFound indicates the selected blueprint does not exist.
	EventBlueprintNotFound EventType = "blueprint.not_found"
	// EventAssignmentRejected indicates an assignment failed validation.
	EventAssignmentRejected EventType = "assignment.rejected"

	// EventRollbackStarted indicates a compensating delete was issued.
	EventRollbackStarted EventType = "rollback.started"
	// EventRollbackCompleted indicates the compensating delete succeeded.
	EventRollbackCompleted EventType = "rollback.completed"
	// EventRollbackFailed indicates the compensating delete failed.
	EventRollbackFailed EventType = "rollback.failed"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log           logr.Logger
	contextFields map[string]string
}

// NewLogObserver creates an observer writing to log.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{
		log:           log,
		contextFields: make(map[string]string),
	}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...any) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []any{"event", string(event.Type)}
	if event.Operation != "" {
		kv = append(kv, "operation", event.Operation)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}

	fields := make(map[string]string, len(o.contextFields)+len(event.Fields))
	maps.Copy(fields, o.contextFields)
	maps.Copy(fields, event.Fields)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		kv = append(kv, k, fields[k])
	}

	o.log.Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	maps.Copy(newFields, o.contextFields)
	maps.Copy(newFields, fields)

	return &LogObserver{
		log:           o.log,
		contextFields: newFields,
	}
}

// logOperationStart logs an operation start event.
func logOperationStart(observer Observer, op, resource string) {
	observer.Event(Event{
		Type:      EventOperationStarted,
		Operation: op,
		Resource:  resource,
		Message:   "starting",
	})
}

// logOperationComplete logs an operation completion event.
func logOperationComplete(observer Observer, op, resource string, duration time.Duration) {
	observer.Event(Event{
		Type:      EventOperationCompleted,
		Operation: op,
		Resource:  resource,
		Message:   fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// logOperationFailed logs an operation failure event.
func logOperationFailed(observer Observer, op, resource string, err error) {
	observer.Event(Event{
		Type:      EventOperationFailed,
		Operation: op,
		Resource:  resource,
		Message:   fmt.Sprintf("failed: %v", err),
	})
}
