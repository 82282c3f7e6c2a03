package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/utils"
)

// RateLimit throttles mutating requests per mounted board, falling back to the client IP.
func RateLimit(identifier string, max int, window time.Duration, logger zerolog.Logger) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			key := boardIDFromPath(c.Path())
			if key == "" {
				key = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, key)
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn().
				Str("correlation_id", GetCorrelationID(c)).
				Str("limiter", identifier).
				Str("path", c.Path()).
				Msg("rate limit reached")
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many requests")
		},
	})
}

func boardIDFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "boards" {
			return segments[i+1]
		}
	}
	return ""
}
