package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
)

const principalKey = "principal"

// TokenVerifier turns a bearer token into the calling principal.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func Authenticate(verifier TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(c, log, domain.NewUnauthenticated("missing bearer token"))
			return
		}

		p, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func principal(c *gin.Context) domain.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(domain.Principal)
	return principal
}
