package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/autocheck-dev/autocheck/internal/audit"
	"github.com/autocheck-dev/autocheck/internal/inspection"
	"github.com/autocheck-dev/autocheck/internal/session"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

// -----------------------------
// Admin: storage and audit
// -----------------------------

// GET /admin/storage/info
func StorageInfoHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := storage.Usage(bs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var total int64
		for _, u := range usage {
			total += u.Bytes
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"categories":  usage,
			"total_bytes": total,
			"total_human": storage.HumanSize(total),
		})
	}
}

// POST /admin/storage/cleanup  { "dry_run": true }
// Sweeps photo directories that belong neither to a stored inspection
// nor to a live wizard session. Photos are uploaded under the session
// id while the wizard runs, so in-flight sessions must count as valid.
func StorageCleanupHandler(bs storage.BlobStore, store inspection.Store, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			DryRun bool `json:"dry_run"`
		}{DryRun: true}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
		}
		ids, err := store.IDs(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		ids = append(ids, mgr.IDs()...)
		res, err := storage.CleanupOrphans(bs, ids, req.DryRun)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// GET /admin/audit?q=&limit=
func AuditSearchHandler(events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)

		list, err := events.Recent(r.Context(), q, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]map[string]any, 0, len(list))
		for _, e := range list {
			out = append(out, map[string]any{
				"typ":        e.Type,
				"key":        e.Key,
				"data":       e.DataJSON,
				"created_at": time.Unix(e.CreatedAt, 0),
			})
		}
		respondJSON(w, http.StatusOK, out)
	}
}
