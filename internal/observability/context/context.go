// Package context carries request-scoped identifiers used in log entries.
package context

import (
	"context"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	OperationKey ContextKey = "operation"
	ComponentKey ContextKey = "component"
	// InputKey names the file or stream being rendered
	InputKey     ContextKey = "input"
	RequestIDKey ContextKey = "request_id"
)

const unknown = "unknown"

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// WithComponent adds a component name to the context.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, ComponentKey, component)
}

// WithInput records the input being rendered, such as a path or "-" for stdin.
func WithInput(ctx context.Context, input string) context.Context {
	return context.WithValue(ctx, InputKey, input)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func stringValue(ctx context.Context, key ContextKey, fallback string) string {
	if ctx == nil {
		return fallback
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v
	}
	return fallback
}

// GetOperation returns the operation name or "unknown".
func GetOperation(ctx context.Context) string {
	return stringValue(ctx, OperationKey, unknown)
}

// GetComponent returns the component name or "unknown".
func GetComponent(ctx context.Context) string {
	return stringValue(ctx, ComponentKey, unknown)
}

func GetInput(ctx context.Context) string {
	return stringValue(ctx, InputKey, "")
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, RequestIDKey, "")
}

// ExtractContextFields returns the identifiers set on ctx as key-value pairs
// ready to pass to a logger.
func ExtractContextFields(ctx context.Context) []any {
	var fields []any

	if op := GetOperation(ctx); op != unknown {
		fields = append(fields, string(OperationKey), op)
	}
	if comp := GetComponent(ctx); comp != unknown {
		fields = append(fields, string(ComponentKey), comp)
	}
	if input := GetInput(ctx); input != "" {
		fields = append(fields, string(InputKey), input)
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, string(RequestIDKey), id)
	}

	return fields
}

// NewOperationContext creates a root context for a named operation.
func NewOperationContext(operation string) context.Context {
	return WithOperation(context.Background(), operation)
}

// NewComponentContext creates a root context for an operation of a component.
func NewComponentContext(operation, component string) context.Context {
	return WithComponent(NewOperationContext(operation), component)
}
