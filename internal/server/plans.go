package server

import (
	"encoding/json"
	"net/http"
	"time"

	"household-planner/internal/plan"
)

func (s *Server) handleListPlans(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.plans.Plans())
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		NumberOfDays int    `json:"numberOfDays"`
		StartDate    string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		var err error
		startDate, err = time.Parse(plan.DateLayout, req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
	}

	p, err := s.plans.Create(r.Context(), req.NumberOfDays, startDate, req.Name)
	if err != nil {
		writeUpstreamError(w, "create plan", err)
		return
	}

	s.notifier.PlanCreated(p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	p := s.plans.GetByID(r.PathValue("id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string              `json:"name"`
		Days []plan.DayAssignment `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.plans.Update(r.Context(), r.PathValue("id"), plan.Update{Name: req.Name, Days: req.Days})
	if err != nil {
		writeUpstreamError(w, "update plan", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	found, err := s.plans.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, "delete plan", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DishID string `json:"dishId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DishID == "" {
		writeError(w, http.StatusBadRequest, "dishId is required")
		return
	}

	ok, err := s.plans.AssignDish(r.Context(), r.PathValue("id"), r.PathValue("date"), req.DishID)
	if err != nil {
		writeUpstreamError(w, "assign dish", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "plan or day not found")
		return
	}
	writeJSON(w, http.StatusOK, s.plans.GetByID(r.PathValue("id")))
}

func (s *Server) handleRemoveDish(w http.ResponseWriter, r *http.Request) {
	ok, err := s.plans.RemoveDish(r.Context(), r.PathValue("id"), r.PathValue("date"), r.PathValue("dishID"))
	if err != nil {
		writeUpstreamError(w, "remove dish", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "plan, day, or dish not found")
		return
	}
	writeJSON(w, http.StatusOK, s.plans.GetByID(r.PathValue("id")))
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var exclude []string
	planID := r.URL.Query().Get("planId")
	date := r.URL.Query().Get("date")
	if planID != "" && date != "" {
		if p := s.plans.GetByID(planID); p != nil {
			for _, day := range p.Days {
				if day.Date == date {
					exclude = day.DishIDs
					break
				}
			}
		}
	}

	sug, err := s.suggester.Suggest(r.Context(), exclude)
	if err != nil {
		writeUpstreamError(w, "suggest", err)
		return
	}
	writeJSON(w, http.StatusOK, sug)
}
