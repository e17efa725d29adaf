package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/display"
	"github.com/rzlb/FanPhoto-v3-sub001/internal/ws"
)

func TestListPhotosPagination(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	seedPhotos(t, gdb, ev.ID, db.StatusPending, 20, nil)

	rec := doJSON(handler, "GET", "/api/photos?status=pending&page=1", nil, authorize)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out photoListRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Photos, 9)
	assert.Equal(t, 20, out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 3, out.TotalPages)

	rec = doJSON(handler, "GET", "/api/photos?status=pending&page=3", nil, authorize)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Photos, 2) // items 19-20
	assert.Equal(t, 3, out.Page)
}

func TestListPhotosClampsPage(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	seedPhotos(t, gdb, ev.ID, db.StatusPending, 20, nil)

	rec := doJSON(handler, "GET", "/api/photos?status=pending&page=42", nil, authorize)
	require.Equal(t, http.StatusOK, rec.Code)
	var out photoListRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Page)
	assert.Len(t, out.Photos, 2)
}

func TestListPhotosSortOrder(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	seeded := seedPhotos(t, gdb, ev.ID, db.StatusPending, 3, nil)

	rec := doJSON(handler, "GET", "/api/photos?status=pending&sort=newest", nil, authorize)
	require.Equal(t, http.StatusOK, rec.Code)
	var out photoListRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Photos, 3)
	assert.Equal(t, seeded[2].ID, out.Photos[0].ID)

	rec = doJSON(handler, "GET", "/api/photos?status=pending&sort=oldest", nil, authorize)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, seeded[0].ID, out.Photos[0].ID)

	rec = doJSON(handler, "GET", "/api/photos?sort=sideways", nil, authorize)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPhotosFiltersByStatus(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	seedPhotos(t, gdb, ev.ID, db.StatusPending, 2, nil)
	seedPhotos(t, gdb, ev.ID, db.StatusApproved, 3, nil)

	rec := doJSON(handler, "GET", "/api/photos?status=approved", nil, authorize)
	require.Equal(t, http.StatusOK, rec.Code)
	var out photoListRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Total)
	for _, p := range out.Photos {
		assert.Equal(t, db.StatusApproved, p.Status)
	}

	rec = doJSON(handler, "GET", "/api/photos?status=haunted", nil, authorize)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModeratePhotoTransitions(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	p := seedPhotos(t, gdb, ev.ID, db.StatusPending, 1, nil)[0]

	moderate := func(action string) *struct {
		Code int
		Body photoRes
	} {
		rec := doJSON(handler, "POST", "/api/photos/"+p.ID+"/moderate",
			map[string]string{"action": action}, authorize)
		out := &struct {
			Code int
			Body photoRes
		}{Code: rec.Code}
		_ = json.Unmarshal(rec.Body.Bytes(), &out.Body)
		return out
	}

	// pending -> approved
	res := moderate("approve")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, db.StatusApproved, res.Body.Status)

	// approved -> rejected is not in the graph
	res = moderate("reject")
	assert.Equal(t, http.StatusConflict, res.Code)

	// approved <-> archived
	res = moderate("archive")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, db.StatusArchived, res.Body.Status)

	res = moderate("approve")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, db.StatusApproved, res.Body.Status)
}

func TestModeratePhotoUnknownActionAndMissingPhoto(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	p := seedPhotos(t, gdb, ev.ID, db.StatusPending, 1, nil)[0]

	rec := doJSON(handler, "POST", "/api/photos/"+p.ID+"/moderate",
		map[string]string{"action": "vaporize"}, authorize)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(handler, "POST", "/api/photos/not-a-photo/moderate",
		map[string]string{"action": "approve"}, authorize)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestModerationWakesDisplaySubscribers(t *testing.T) {
	gdb, err := db.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.SeedDefaultEvent(gdb, "Gala", "gala"))
	var ev db.Event
	require.NoError(t, gdb.Where("slug = ?", "gala").First(&ev).Error)
	p := seedPhotos(t, gdb, ev.ID, db.StatusPending, 1, nil)[0]

	notifier := display.NewNotifier()
	hub := ws.NewHub()
	go hub.Run()

	mux := http.NewServeMux()
	mux.Handle("POST /api/photos/{id}/moderate", ModeratePhoto(gdb, notifier, hub))

	ch, cancel := notifier.Subscribe(ev.ID)
	defer cancel()

	rec := doJSON(mux, "POST", "/api/photos/"+p.ID+"/moderate",
		map[string]string{"action": "approve"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("display was not notified of the approval")
	}

	var stored db.Photo
	require.NoError(t, gdb.Where("id = ?", p.ID).First(&stored).Error)
	assert.Equal(t, db.StatusApproved, stored.Status)
}

func TestReorderAndDisplayImagesOrdering(t *testing.T) {
	gdb, ev, handler, authorize := newTestEnv(t)
	approved := seedPhotos(t, gdb, ev.ID, db.StatusApproved, 3, nil)
	// a photo that never gets an order must sort last
	unordered := seedPhotos(t, gdb, ev.ID, db.StatusApproved, 1, func(i int, p *db.Photo) {
		p.OriginalPath = "originals/unordered.jpg"
	})[0]

	rec := doJSON(handler, "POST", "/api/photos/reorder", map[string]any{
		"photoOrders": []map[string]any{
			{"photoId": approved[2].ID, "displayOrder": 1},
			{"photoId": approved[0].ID, "displayOrder": 2},
			{"photoId": approved[1].ID, "displayOrder": 3},
		},
	}, authorize)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(handler, "GET", "/api/display/images?event="+ev.Slug, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var imgs []display.Image
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imgs))
	require.Len(t, imgs, 4)
	assert.Equal(t, approved[2].ID, imgs[0].ID)
	assert.Equal(t, approved[0].ID, imgs[1].ID)
	assert.Equal(t, approved[1].ID, imgs[2].ID)
	assert.Equal(t, unordered.ID, imgs[3].ID)
}

func TestDisplayImagesOnlyApproved(t *testing.T) {
	gdb, ev, handler, _ := newTestEnv(t)
	seedPhotos(t, gdb, ev.ID, db.StatusPending, 2, nil)
	seedPhotos(t, gdb, ev.ID, db.StatusRejected, 1, nil)
	seedPhotos(t, gdb, ev.ID, db.StatusArchived, 1, nil)

	rec := doJSON(handler, "GET", "/api/display/images?event="+ev.Slug, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var imgs []display.Image
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imgs))
	assert.Empty(t, imgs)
}

func TestTrackMetricAndUploadCounters(t *testing.T) {
	gdb, ev, handler, _ := newTestEnv(t)

	rec := doJSON(handler, "POST", "/api/analytics/view?event="+ev.Slug, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(handler, "POST", "/api/analytics/view?event="+ev.Slug, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(handler, "POST", "/api/analytics/qr-scan?event="+ev.Slug, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(handler, "POST", "/api/analytics/sacrifices?event="+ev.Slug, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var row db.AnalyticsDaily
	require.NoError(t, gdb.Where("event_id = ?", ev.ID).First(&row).Error)
	assert.Equal(t, 2, row.Views)
	assert.Equal(t, 1, row.QRScans)
}
