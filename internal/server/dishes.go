package server

import (
	"encoding/json"
	"net/http"

	"household-planner/internal/dish"
)

type dishRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) handleListDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := s.dishes.List(r.Context())
	if err != nil {
		writeUpstreamError(w, "list dishes", err)
		return
	}
	if dishes == nil {
		dishes = []dish.Dish{}
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (s *Server) handleCreateDish(w http.ResponseWriter, r *http.Request) {
	var req dishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	dishType := dish.Type(req.Type)
	if !dishType.Valid() {
		writeError(w, http.StatusBadRequest, "type must be entree, side, or other")
		return
	}

	d, err := s.dishes.Create(r.Context(), req.Name, dishType)
	if err != nil {
		writeUpstreamError(w, "create dish", err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleImportDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	d, err := s.importer.ImportFromURL(r.Context(), req.URL)
	if err != nil {
		writeUpstreamError(w, "import dish", err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDish(w http.ResponseWriter, r *http.Request) {
	d, err := s.dishes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, "get dish", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dish not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name *string `json:"name"`
		Type *string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	upd := dish.Update{Name: req.Name}
	if req.Type != nil {
		dishType := dish.Type(*req.Type)
		if !dishType.Valid() {
			writeError(w, http.StatusBadRequest, "type must be entree, side, or other")
			return
		}
		upd.Type = &dishType
	}

	d, err := s.dishes.Update(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeUpstreamError(w, "update dish", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dish not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDish(w http.ResponseWriter, r *http.Request) {
	found, err := s.dishes.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, "delete dish", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "dish not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
