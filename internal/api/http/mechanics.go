package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autocheck-dev/autocheck/internal/audit"
	"github.com/autocheck-dev/autocheck/internal/mechanic"
)

func mechanicError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mechanic.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, mechanic.ErrPhoneTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// GET /mechanics?active=true
func ListMechanicsHandler(store *mechanic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"
		list, err := store.List(r.Context(), activeOnly)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []mechanic.Mechanic{}
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// POST /mechanics  { "name": "...", "phone": "...", "pin": "1234" }
func CreateMechanicHandler(store *mechanic.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
			PIN   string `json:"pin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		m, err := store.Create(r.Context(), req.Name, req.Phone, req.PIN)
		if err != nil {
			mechanicError(w, err)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), audit.EventMechanicCreated, m.ID,
				map[string]string{"name": m.Name}); err != nil {
				log.Printf("audit append: %v", err)
			}
		}
		respondJSON(w, http.StatusCreated, m)
	}
}

// PUT /mechanics/{mechanicID}  { "name": "...", "phone": "..." }
func UpdateMechanicHandler(store *mechanic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		m, err := store.Update(r.Context(), chi.URLParam(r, "mechanicID"), req.Name, req.Phone)
		if err != nil {
			mechanicError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

// POST /mechanics/{mechanicID}/pin  { "pin": "1234" }
func SetMechanicPINHandler(store *mechanic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PIN string `json:"pin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.SetPIN(r.Context(), chi.URLParam(r, "mechanicID"), req.PIN); err != nil {
			mechanicError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// POST /mechanics/{mechanicID}/active  { "active": false }
func SetMechanicActiveHandler(store *mechanic.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "mechanicID")
		var req struct {
			Active bool `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.SetActive(r.Context(), id, req.Active); err != nil {
			mechanicError(w, err)
			return
		}
		if events != nil && !req.Active {
			if err := events.Append(r.Context(), audit.EventMechanicDeactivated, id, nil); err != nil {
				log.Printf("audit append: %v", err)
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
