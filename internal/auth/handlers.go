package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tourbooking/internal/api"
	"tourbooking/pkg/config"
	"tourbooking/pkg/session"
)

type Handlers struct {
	Cfg config.Config
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if h.Cfg.Staff.Password == "" {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "staff login is not configured")
		return
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(h.Cfg.Staff.Email))) != 1 ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Cfg.Staff.Password)) != 1 {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials")
		return
	}

	now := time.Now()
	ttl := time.Duration(h.Cfg.Staff.SessionTTLMinutes) * time.Minute
	token, err := session.Issue(h.Cfg.Staff.JWTSecret, email, ttl, now)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to issue session token")
		return
	}

	api.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: now.Add(ttl)})
}
