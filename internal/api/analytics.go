package api

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

// Counter columns on analytics_daily
const (
	metricUploads  = "uploads"
	metricViews    = "views"
	metricQRScans  = "qr_scans"
	metricApproved = "approved"
	metricRejected = "rejected"
	metricArchived = "archived"
)

// bumpCounter increments one daily counter for an event, creating the
// row for today if needed. Failures are the caller's problem to log,
// analytics never fail a request.
func bumpCounter(ctx context.Context, gdb *gorm.DB, eventID, column string) error {
	row := db.AnalyticsDaily{EventID: eventID, Date: time.Now().UTC().Format("2006-01-02")}
	switch column {
	case metricUploads:
		row.Uploads = 1
	case metricViews:
		row.Views = 1
	case metricQRScans:
		row.QRScans = 1
	case metricApproved:
		row.Approved = 1
	case metricRejected:
		row.Rejected = 1
	case metricArchived:
		row.Archived = 1
	}

	return gdb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{
			column: gorm.Expr(column + " + 1"),
		}),
	}).Create(&row).Error
}

// TrackMetric lets the public pages report views and QR scans.
func TrackMetric(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var column string
		switch r.PathValue("metric") {
		case "view":
			column = metricViews
		case "qr-scan":
			column = metricQRScans
		default:
			writeError(w, http.StatusBadRequest, "unknown_metric")
			return
		}

		ev, err := resolveEvent(r.Context(), gdb, r.URL.Query().Get("event"))
		if err != nil {
			writeError(w, http.StatusNotFound, "event_not_found")
			return
		}

		if err := bumpCounter(r.Context(), gdb, ev.ID, column); err != nil {
			writeError(w, http.StatusInternalServerError, "db_update_failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
