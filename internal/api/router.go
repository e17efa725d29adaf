package api

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/storage"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

// Deps bundles everything the handlers close over.
type Deps struct {
	GDB       *gorm.DB
	Disk      *storage.Disk
	Hub       *ws.Hub
	Notifier  *display.Notifier
	Registry  *display.Registry
	JWTSecret []byte
	MaxUpload int64
}

func RouterHandler(d Deps) http.Handler {
	mux := http.NewServeMux()
	auth := authRequired(d.JWTSecret)

	mux.HandleFunc("GET /healthz", healthzHandler)

	// Public
	mux.Handle("POST /api/auth/login", Login(d.GDB, d.JWTSecret))
	mux.Handle("POST /api/photos", UploadPhoto(d.GDB, d.Disk, d.MaxUpload))
	mux.Handle("GET /api/display/images", GetDisplayImages(d.GDB))
	mux.Handle("GET /api/display-settings", GetDisplaySettings(d.GDB))
	mux.Handle("GET /api/events/{slug}", GetEventBySlug(d.GDB))
	mux.Handle("GET /api/events/", GetEventBySlug(d.GDB))
	mux.Handle("POST /api/analytics/{metric}", TrackMetric(d.GDB))
	mux.Handle("GET /uploads/{path...}", ServeUpload(d.Disk))
	mux.Handle("GET /ws/display", DisplaySocket(d.GDB, d.Hub, d.Registry))

	// Admin
	mux.Handle("GET /api/photos", auth(ListPhotos(d.GDB)))
	mux.Handle("POST /api/photos/{id}/moderate", auth(ModeratePhoto(d.GDB, d.Notifier, d.Hub)))
	mux.Handle("POST /api/photos/reorder", auth(ReorderPhotos(d.GDB, d.Notifier, d.Hub)))
	mux.Handle("PUT /api/display-settings", auth(UpsertDisplaySettings(d.GDB, d.Notifier, d.Hub)))
	mux.Handle("POST /api/display-settings/preview", auth(PreviewStyle()))

	return reqID(logger(recoverer(mux)))
}
