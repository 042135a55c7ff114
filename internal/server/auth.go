package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/saletrack/internal/auth/domain"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": user})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit, err := s.loginLimiter.Allow(c.Request.Context(), req.Username, c.ClientIP())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !limit.Allowed {
		if limit.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limit.RetryAfter.Seconds()))))
		}
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	user, err := s.authsvc.Authenticate(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
