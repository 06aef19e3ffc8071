package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autocheck-dev/autocheck/internal/audit"
	auth "github.com/autocheck-dev/autocheck/internal/auth/middleware"
	"github.com/autocheck-dev/autocheck/internal/checklist"
	"github.com/autocheck-dev/autocheck/internal/inspection"
	"github.com/autocheck-dev/autocheck/internal/notify"
	"github.com/autocheck-dev/autocheck/internal/session"
)

// stepResponse is what every wizard mutation returns: the session
// state plus, while in progress, the question to show next.
type stepResponse struct {
	SessionID string          `json:"session_id"`
	State     checklist.State `json:"state"`
	Step      *checklist.Step `json:"step,omitempty"`
	Done      bool            `json:"done,omitempty"`
}

func wizardState(w *session.Wizard) stepResponse {
	resp := stepResponse{SessionID: w.ID, State: w.Sess.State()}
	if step, ok := w.Sess.Current(); ok {
		resp.Step = &step
	}
	resp.Done = resp.State == checklist.StateComplete
	return resp
}

// POST /wizard/start  { "checklist_id": "checkup" }
func StartWizardHandler(reg *checklist.Registry, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ChecklistID string `json:"checklist_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		cl, ok := reg.Get(req.ChecklistID)
		if !ok {
			http.Error(w, "checklist not found", http.StatusNotFound)
			return
		}
		wiz := mgr.Start(cl, auth.SubjectFromContext(r.Context()))
		respondJSON(w, http.StatusCreated, wizardState(wiz))
	}
}

func loadWizard(mgr *session.Manager, w http.ResponseWriter, r *http.Request) (*session.Wizard, bool) {
	wiz, err := mgr.Get(chi.URLParam(r, "sessionID"), auth.SubjectFromContext(r.Context()))
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, session.ErrNotOwner) {
			status = http.StatusForbidden
		}
		http.Error(w, err.Error(), status)
		return nil, false
	}
	return wiz, true
}

// POST /wizard/{sessionID}/begin  { "car_number": "...", "mileage": 84000 }
func BeginWizardHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		var req struct {
			CarNumber string `json:"car_number"`
			Mileage   int    `json:"mileage"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		wiz.Mu.Lock()
		defer wiz.Mu.Unlock()
		err := wiz.Sess.Begin(checklist.Context{
			MechanicID:   wiz.MechanicID,
			MechanicName: auth.NameFromContext(r.Context()),
			CarNumber:    req.CarNumber,
			Mileage:      req.Mileage,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, wizardState(wiz))
	}
}

// GET /wizard/{sessionID}
func WizardStateHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		wiz.Mu.Lock()
		defer wiz.Mu.Unlock()
		respondJSON(w, http.StatusOK, wizardState(wiz))
	}
}

// POST /wizard/{sessionID}/next  { answer fields }
// A gate rejection comes back as 422 with the failing question and reason.
func NextWizardHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		var draft checklist.Answer
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		wiz.Mu.Lock()
		defer wiz.Mu.Unlock()
		_, _, err := wiz.Sess.Next(draft)
		if err != nil {
			var verr *checklist.ValidationError
			if errors.As(err, &verr) {
				respondJSON(w, http.StatusUnprocessableEntity, verr)
				return
			}
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		respondJSON(w, http.StatusOK, wizardState(wiz))
	}
}

// POST /wizard/{sessionID}/back
func BackWizardHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		wiz.Mu.Lock()
		res, err := wiz.Sess.Back()
		wiz.Mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if res.Cancelled {
			mgr.Remove(wiz.ID)
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// POST /wizard/{sessionID}/cancel
func CancelWizardHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		wiz.Mu.Lock()
		err := wiz.Sess.Cancel()
		wiz.Mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		mgr.Remove(wiz.ID)
		respondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

// POST /wizard/{sessionID}/submit persists the completed inspection.
// If persistence fails the session is kept so the client can retry.
func SubmitWizardHandler(mgr *session.Manager, store inspection.Store,
	events *audit.EventRepo, hook *notify.Webhook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wiz, ok := loadWizard(mgr, w, r)
		if !ok {
			return
		}
		wiz.Mu.Lock()
		defer wiz.Mu.Unlock()

		if wiz.Report == nil {
			rep, err := wiz.Sess.Report()
			if err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			wiz.Report = &rep
		}

		rec := inspection.FromReport(*wiz.Report)
		// photos are keyed by session id, so the record reuses it
		rec.ID = wiz.ID
		if err := store.Put(r.Context(), rec); err != nil {
			http.Error(w, "save inspection: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), audit.EventInspectionSubmitted, rec.ID,
				map[string]any{"car_number": rec.CarNumber, "mechanic_id": rec.MechanicID}); err != nil {
				log.Printf("audit append: %v", err)
			}
		}
		delivered := false
		if hook.Enabled() {
			if err := hook.InspectionCompleted(r.Context(), rec); err != nil {
				log.Printf("webhook delivery: %v", err)
			} else {
				delivered = true
			}
		}
		mgr.Remove(wiz.ID)
		respondJSON(w, http.StatusCreated, map[string]any{
			"inspection":        rec,
			"webhook_delivered": delivered,
		})
	}
}
