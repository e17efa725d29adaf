package api

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/storage"
)

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadPhoto takes a multipart submission from the public upload page
// and stores it as a pending photo.
func UploadPhoto(gdb *gorm.DB, disk *storage.Disk, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "upload_too_large")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing_file")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
		if !allowedExt[ext] {
			writeError(w, http.StatusBadRequest, "unsupported_file_type")
			return
		}

		ev, err := resolveEvent(r.Context(), gdb, r.FormValue("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}
		if !ev.IsActive {
			writeError(w, http.StatusForbidden, "event_closed")
			return
		}

		submitter := strings.TrimSpace(r.FormValue("submitter_name"))
		if runes := []rune(submitter); len(runes) > 100 {
			submitter = string(runes[:100])
		}
		caption := strings.TrimSpace(r.FormValue("caption"))
		if len(caption) > 500 {
			writeError(w, http.StatusBadRequest, "caption_too_long")
			return
		}

		var settings db.DisplaySettings
		if err := gdb.WithContext(r.Context()).
			Where("event_id = ?", ev.ID).First(&settings).Error; err == nil {
			if db.BlacklistMatch(settings.BlacklistWords, submitter, caption) {
				writeError(w, http.StatusBadRequest, "blocked_content")
				return
			}
		}

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "read_failed")
			return
		}

		id := uuid.NewString()
		original, thumb, err := disk.SavePhoto(id+ext, data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}

		now := time.Now().UTC()
		p := db.Photo{
			ID:            id,
			EventID:       ev.ID,
			OriginalPath:  original,
			ThumbnailPath: thumb,
			SubmitterName: submitter,
			Caption:       caption,
			Status:        db.StatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := gdb.WithContext(r.Context()).Create(&p).Error; err != nil {
			_ = disk.DeletePhoto(original, thumb)
			writeError(w, http.StatusInternalServerError, "db_create_failed")
			return
		}

		if err := bumpCounter(r.Context(), gdb, ev.ID, metricUploads); err != nil {
			log.Printf("analytics: uploads bump: %v", err)
		}

		toJSON(w, http.StatusCreated, toPhotoRes(p))
	}
}
