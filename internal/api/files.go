package api

import (
	"net/http"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/storage"
)

// ServeUpload streams a stored original or thumbnail back to the
// browser. Paths are relative to the upload root and validated against
// escapes.
func ServeUpload(disk *storage.Disk) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := r.PathValue("path")
		if rel == "" {
			writeError(w, http.StatusBadRequest, "missing_path")
			return
		}

		full, err := disk.Resolve(rel)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_path")
			return
		}

		http.ServeFile(w, r, full)
	}
}
