package handlers

import (
	"time"

	"github.com/minhvu-dev/crm-backend/internal/auth"
)

type Handler struct {
	Auth    *AuthHandler
	started time.Time
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc),
		started: time.Now(),
	}
}
