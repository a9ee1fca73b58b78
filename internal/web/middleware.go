package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/web/transport"
)

func (s *Service) setupMiddleware() {
	s.router.Use(
		requestIDMiddleware(),
		gin.LoggerWithWriter(log.Logger, "/health", "/metrics"),
		recoveryMiddleware(),
	)
}

// RequestIDHeader carries the request id; a client supplied value is kept.
const RequestIDHeader = "X-Request-ID"

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// recoveryMiddleware turns a panic into a 500.
func recoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Str("request_id", c.GetString("request_id")).Msg("panic recovered")
				transport.InternalServerError(c, "服务器内部发生错误。")
			}
		}()
		c.Next()
	}
}
