package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth handles GET /health and GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"has_session": s.broker.Client().HasSession(),
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// handleLogin handles GET /api/login: redirects the browser to the broker's
// login page. The broker redirects back with a request_token after auth.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.broker.Client().LoginURL(), http.StatusFound)
}

// handleSessionCallback handles GET /api/session/callback?request_token=...:
// exchanges the request token for an access token and installs the session.
func (s *Server) handleSessionCallback(w http.ResponseWriter, r *http.Request) {
	requestToken := r.URL.Query().Get("request_token")
	if requestToken == "" {
		http.Error(w, "request_token is required", http.StatusBadRequest)
		return
	}

	session, err := s.broker.Client().GenerateSession(requestToken)
	if err != nil {
		s.log.Error().Err(err).Msg("Session exchange failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "session initialized",
		"user_id": session.UserID,
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
