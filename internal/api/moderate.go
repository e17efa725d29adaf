package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

type moderateReq struct {
	Action string `json:"action"`
}

var actionStatus = map[string]string{
	"approve": db.StatusApproved,
	"reject":  db.StatusRejected,
	"archive": db.StatusArchived,
}

var actionMetric = map[string]string{
	"approve": metricApproved,
	"reject":  metricRejected,
	"archive": metricArchived,
}

// ModeratePhoto applies approve/reject/archive to one photo, enforcing
// the status transition graph, then wakes the display.
func ModeratePhoto(gdb *gorm.DB, notifier *display.Notifier, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in moderateReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}

		target, ok := actionStatus[in.Action]
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_action")
			return
		}

		id := r.PathValue("id")
		var p db.Photo
		err := gdb.WithContext(r.Context()).Where("id = ?", id).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "photo_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_lookup_failed")
			return
		}

		if !db.ValidTransition(p.Status, target) {
			writeError(w, http.StatusConflict, "invalid_transition")
			return
		}

		if err := gdb.WithContext(r.Context()).Model(&p).
			Updates(map[string]any{
				"status":     target,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
			writeError(w, http.StatusInternalServerError, "db_update_failed")
			return
		}
		p.Status = target

		if err := bumpCounter(r.Context(), gdb, p.EventID, actionMetric[in.Action]); err != nil {
			log.Printf("analytics: %s bump: %v", in.Action, err)
		}

		notifier.Notify(p.EventID)
		hub.NotifyChange(p.EventID, ws.MsgPhotosChanged)

		toJSON(w, http.StatusOK, toPhotoRes(p))
	}
}

type reorderReq struct {
	PhotoOrders []struct {
		PhotoID      string `json:"photoId"`
		DisplayOrder int    `json:"displayOrder"`
	} `json:"photoOrders"`
}

// ReorderPhotos reassigns display order for a batch of photos in one
// transaction.
func ReorderPhotos(gdb *gorm.DB, notifier *display.Notifier, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in reorderReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}
		if len(in.PhotoOrders) == 0 {
			writeError(w, http.StatusBadRequest, "missing_photo_orders")
			return
		}

		var eventID string
		err := gdb.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
			for _, po := range in.PhotoOrders {
				var p db.Photo
				if err := tx.Where("id = ?", po.PhotoID).First(&p).Error; err != nil {
					return err
				}
				eventID = p.EventID
				if err := tx.Model(&p).Updates(map[string]any{
					"display_order": po.DisplayOrder,
					"updated_at":    time.Now().UTC(),
				}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "photo_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_update_failed")
			return
		}

		notifier.Notify(eventID)
		hub.NotifyChange(eventID, ws.MsgPhotosChanged)

		toJSON(w, http.StatusOK, map[string]any{"updated": len(in.PhotoOrders)})
	}
}
