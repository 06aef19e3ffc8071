package http

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/autocheck-dev/autocheck/internal/auth/middleware"
	"github.com/autocheck-dev/autocheck/internal/session"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

// MountAssets serves inspection photos. Uploads are tied to the
// caller's own wizard session; the returned key goes into the photo
// answer.
func MountAssets(r chi.Router, bs storage.BlobStore, mgr *session.Manager) {
	// POST /assets/{sessionID}
	r.Post("/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
		wiz, err := mgr.Get(chi.URLParam(r, "sessionID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ext := strings.ToLower(path.Ext(hdr.Filename))
		if ext == "" {
			ext = ".jpg"
		}
		key := "inspections/" + wiz.ID + "/" + uuid.NewString() + ext
		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"key": key})
	})

	// GET /assets/*   -> returns the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
