package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expensed/internal/auth"
	"expensed/internal/core"
	"expensed/internal/services"
	"expensed/internal/store"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentialsRequest{}, err
	}
	req.Username = sanitizeInput(req.Username)
	req.Email = sanitizeInput(req.Email)
	return req, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		writeJSONError(w, http.StatusBadRequest, "username already taken")
		return
	case errors.Is(err, store.ErrDuplicateEmail):
		writeJSONError(w, http.StatusBadRequest, "email already registered")
		return
	case errors.Is(err, core.ErrEmptyUsername), errors.Is(err, core.ErrEmptyEmail):
		writeJSONError(w, http.StatusBadRequest, "username and email are required")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Registration failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, "registration failed")
		return
	}

	// Log the fresh account straight in.
	s.setSessionCookie(w, s.sessions.Start(account.ID))
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := s.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrBadCredentials) {
		writeJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.setSessionCookie(w, s.sessions.Start(account.ID))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleCurrentUser returns the authenticated account's public profile.
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.ByID(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "Account lookup failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"username": account.Username,
		"email":    account.Email,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		s.sessions.End(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
