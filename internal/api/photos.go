package api

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

type photoRes struct {
	ID            string `json:"id"`
	EventID       string `json:"event_id"`
	OriginalPath  string `json:"original_path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	SubmitterName string `json:"submitter_name,omitempty"`
	Caption       string `json:"caption,omitempty"`
	Status        string `json:"status"`
	DisplayOrder  *int   `json:"display_order,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type photoListRes struct {
	Photos     []photoRes `json:"photos"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

func toPhotoRes(p db.Photo) photoRes {
	return photoRes{
		ID:            p.ID,
		EventID:       p.EventID,
		OriginalPath:  p.OriginalPath,
		ThumbnailPath: p.ThumbnailPath,
		SubmitterName: p.SubmitterName,
		Caption:       p.Caption,
		Status:        p.Status,
		DisplayOrder:  p.DisplayOrder,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func validStatus(s string) bool {
	switch s {
	case db.StatusPending, db.StatusApproved, db.StatusRejected, db.StatusArchived:
		return true
	}
	return false
}

// ListPhotos backs the moderation grid: filter by status, sort by
// arrival time, fixed-size pages. The page index is clamped so a
// filter change can never strand the client on an out-of-range page.
func ListPhotos(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		status := q.Get("status")
		if status == "" {
			status = db.StatusPending
		}
		if !validStatus(status) {
			writeError(w, http.StatusBadRequest, "unknown_status")
			return
		}

		order := "created_at DESC"
		switch q.Get("sort") {
		case "", "newest":
		case "oldest":
			order = "created_at ASC"
		default:
			writeError(w, http.StatusBadRequest, "unknown_sort")
			return
		}

		ev, err := resolveEvent(r.Context(), gdb, q.Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		page, _ := strconv.Atoi(q.Get("page"))
		size, _ := strconv.Atoi(q.Get("page_size"))
		if size < 1 || size > 100 {
			size = DefaultPageSize
		}

		var total int64
		if err := gdb.WithContext(r.Context()).Model(&db.Photo{}).
			Where("event_id = ? AND status = ?", ev.ID, status).
			Count(&total).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		page, offset, limit, totalPages := paginate(int(total), page, size)

		var photos []db.Photo
		if err := gdb.WithContext(r.Context()).
			Where("event_id = ? AND status = ?", ev.ID, status).
			Order(order).
			Offset(offset).
			Limit(limit).
			Find(&photos).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		out := photoListRes{
			Photos:     make([]photoRes, 0, len(photos)),
			Total:      int(total),
			Page:       page,
			PageSize:   size,
			TotalPages: totalPages,
		}
		for _, p := range photos {
			out.Photos = append(out.Photos, toPhotoRes(p))
		}
		toJSON(w, http.StatusOK, out)
	}
}
