package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	correlationHeader = "X-Correlation-ID"
	requestIDHeader   = "X-Request-ID"
	correlationLocal  = "correlation_id"
)

type correlationKey struct{}

// CorrelationID tags every request with a correlation identifier, reusing the caller's when one is sent.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := firstHeader(c, correlationHeader, requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(correlationHeader, id)
		c.SetUserContext(ContextWithCorrelation(c.UserContext(), id))

		return c.Next()
	}
}

func firstHeader(c *fiber.Ctx, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(c.Get(name)); value != "" {
			return value
		}
	}
	return ""
}

// CorrelationIDFromContext extracts the correlation identifier from context, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

// ContextWithCorrelation attaches the correlation identifier to the provided context.
func ContextWithCorrelation(ctx context.Context, correlationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, correlationID)
}

// RequestLogger derives a logger carrying the correlation and board identifiers of the request.
func RequestLogger(c *fiber.Ctx, base zerolog.Logger) zerolog.Logger {
	fields := base.With()
	if id := GetCorrelationID(c); id != "" {
		fields = fields.Str("correlation_id", id)
	}
	if c != nil {
		if boardID := c.Params("boardID"); boardID != "" {
			fields = fields.Str("board_id", boardID)
		}
	}
	return fields.Logger()
}
