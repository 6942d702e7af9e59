package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"household-planner/internal/auth"
	"household-planner/internal/dish"
	"household-planner/internal/invite"
	"household-planner/internal/notify"
	"household-planner/internal/plan"
	"household-planner/internal/suggest"
)

// Server wires the REST API over the application services.
type Server struct {
	dishes    *dish.Repository
	importer  *dish.Importer
	plans     *plan.Synchronizer
	authSvc   *auth.Service
	suggester suggest.Suggester
	invites   *invite.Dispatcher
	notifier  notify.Notifier
}

// New creates a new Server.
func New(
	dishes *dish.Repository,
	importer *dish.Importer,
	plans *plan.Synchronizer,
	authSvc *auth.Service,
	suggester suggest.Suggester,
	invites *invite.Dispatcher,
	notifier notify.Notifier,
) *Server {
	return &Server{
		dishes:    dishes,
		importer:  importer,
		plans:     plans,
		authSvc:   authSvc,
		suggester: suggester,
		invites:   invites,
		notifier:  notifier,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/dishes", s.handleListDishes)
	mux.HandleFunc("POST /api/dishes", s.handleCreateDish)
	mux.HandleFunc("POST /api/dishes/import", s.handleImportDish)
	mux.HandleFunc("GET /api/dishes/{id}", s.handleGetDish)
	mux.HandleFunc("PUT /api/dishes/{id}", s.handleUpdateDish)
	mux.HandleFunc("DELETE /api/dishes/{id}", s.handleDeleteDish)

	mux.HandleFunc("GET /api/plans", s.handleListPlans)
	mux.HandleFunc("POST /api/plans", s.handleCreatePlan)
	mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	mux.HandleFunc("PATCH /api/plans/{id}", s.handleUpdatePlan)
	mux.HandleFunc("DELETE /api/plans/{id}", s.handleDeletePlan)
	mux.HandleFunc("POST /api/plans/{id}/days/{date}/dishes", s.handleAssignDish)
	mux.HandleFunc("DELETE /api/plans/{id}/days/{date}/dishes/{dishID}", s.handleRemoveDish)

	mux.HandleFunc("GET /api/suggestions", s.handleSuggest)

	mux.Handle("/api/invite", s.invites)

	mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/auth/verify", s.handleVerify)
	mux.HandleFunc("POST /api/auth/signout", s.handleSignOut)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("PATCH /api/auth/profile", s.handleUpdateProfile)

	return mux
}

// sessionID pulls the session id from the Authorization header.
func sessionID(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUpstreamError logs the underlying failure and reports a generic
// message to the caller.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s failed: %v", op, err)
	writeError(w, http.StatusInternalServerError, "something went wrong")
}
