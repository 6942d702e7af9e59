package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"household-planner/internal/auth"
)

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := s.authSvc.SignIn(r.Context(), req.Email); err != nil {
		writeUpstreamError(w, "sign in", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	session, err := s.authSvc.Verify(r.Context(), req.Token)
	if err != nil {
		writeUpstreamError(w, "verify login", err)
		return
	}
	if session == nil {
		writeError(w, http.StatusBadRequest, "invalid or expired login token")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	if err := s.authSvc.SignOut(r.Context(), id); err != nil {
		writeUpstreamError(w, "sign out", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.authSvc.CurrentUser(r.Context(), sessionID(r))
	if err != nil {
		writeUpstreamError(w, "resolve session", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string `json:"name"`
		HouseholdName *string `json:"householdName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.authSvc.UpdateProfile(r.Context(), sessionID(r), auth.ProfileUpdate{
		Name:          req.Name,
		HouseholdName: req.HouseholdName,
	})
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		writeUpstreamError(w, "update profile", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
