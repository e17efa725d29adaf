package api

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
)

// GetDisplayImages returns the display-ready projection of approved
// photos, ordered for the rotation: display order ascending, photos
// without an order last, ties by arrival.
func GetDisplayImages(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := resolveEvent(r.Context(), gdb, r.URL.Query().Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		var photos []db.Photo
		if err := gdb.WithContext(r.Context()).
			Where("event_id = ? AND status = ?", ev.ID, db.StatusApproved).
			Order("created_at ASC").
			Find(&photos).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		imgs := make([]display.Image, 0, len(photos))
		for _, p := range photos {
			imgs = append(imgs, display.Image{
				ID:            p.ID,
				Path:          p.OriginalPath,
				ThumbnailPath: p.ThumbnailPath,
				SubmitterName: p.SubmitterName,
				Caption:       p.Caption,
				DisplayOrder:  p.DisplayOrder,
			})
		}
		display.SortImages(imgs)

		toJSON(w, http.StatusOK, imgs)
	}
}
