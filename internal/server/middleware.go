package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/saletrack/internal/observability/context"
)

const contextUsernameKey = "username"

// AuthRequired validates HTTP Basic credentials against the user store.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || strings.TrimSpace(username) == "" {
			c.Header("WWW-Authenticate", `Basic realm="saletrack"`)
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authsvc.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="saletrack"`)
			AbortWithError(c, err)
			return
		}

		c.Set(contextUsernameKey, user.Username)
		c.Request = c.Request.WithContext(obscontext.WithActor(c.Request.Context(), user.Username))
		c.Next()
	}
}
