package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/autocheck-dev/autocheck/internal/audit"
	auth "github.com/autocheck-dev/autocheck/internal/auth/middleware"
	"github.com/autocheck-dev/autocheck/internal/inspection"
	"github.com/autocheck-dev/autocheck/internal/rbac"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

// GET /inspections?mechanic_id=&checklist_id=&car_number=&from=&to=&limit=&offset=
// Mechanics only ever see their own records regardless of filters.
func ListInspectionsHandler(store inspection.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := inspection.ListOpts{
			MechanicID:  strings.TrimSpace(q.Get("mechanic_id")),
			ChecklistID: strings.TrimSpace(q.Get("checklist_id")),
			CarNumber:   strings.ToUpper(strings.TrimSpace(q.Get("car_number"))),
			From:        parseInt64Default(q.Get("from"), 0),
			To:          parseInt64Default(q.Get("to"), 0),
			Limit:       parseIntDefault(q.Get("limit"), 50),
			Offset:      parseIntDefault(q.Get("offset"), 0),
		}
		if rbac.RoleFromContext(r.Context()) == "mechanic" {
			opts.MechanicID = auth.SubjectFromContext(r.Context())
		}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []inspection.Record{}
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /inspections/{inspectionID}
func GetInspectionHandler(store inspection.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Get(r.Context(), chi.URLParam(r, "inspectionID"))
		if err != nil {
			if errors.Is(err, inspection.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ctx := r.Context()
		if rbac.RoleFromContext(ctx) == "mechanic" && rec.MechanicID != auth.SubjectFromContext(ctx) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

// DELETE /inspections/{inspectionID} removes the record and its photos.
func DeleteInspectionHandler(store inspection.Store, bs storage.BlobStore,
	events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "inspectionID")
		if err := store.Delete(r.Context(), id); err != nil {
			if errors.Is(err, inspection.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		objs, err := bs.List("inspections/" + id + "/")
		if err == nil {
			for _, o := range objs {
				if err := bs.Delete(o.Key); err != nil {
					log.Printf("delete photo %s: %v", o.Key, err)
				}
			}
		}
		if events != nil {
			if err := events.Append(r.Context(), audit.EventInspectionDeleted, id, nil); err != nil {
				log.Printf("audit append: %v", err)
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
