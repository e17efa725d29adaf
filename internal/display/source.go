package display

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/rzlb/FanPhoto-v3-sub001/internal/db"
)

// Snapshot is one consistent read of everything the display needs.
// Seq increases with every snapshot taken; consumers must discard a
// snapshot whose Seq is not newer than the last one they applied, so
// a slow read can never overwrite fresher state.
type Snapshot struct {
	Seq      uint64
	Settings db.DisplaySettings
	Images   []Image
}

// Source provides display snapshots plus change notifications, so the
// engine does not care whether updates arrive by polling or by push.
type Source interface {
	Snapshot(ctx context.Context, eventID string) (Snapshot, error)
	Subscribe(eventID string) (<-chan struct{}, func())
}

// Notifier fans out per-event change signals. Channels are buffered
// with one slot, a signal is a wakeup and carries no data, coalescing
// bursts is fine.
type Notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]bool
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan struct{}]bool)}
}

// Notify wakes every subscriber of the event.
func (n *Notifier) Notify(eventID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[eventID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a change channel for the event. The returned
// func must be called on teardown or the channel leaks.
func (n *Notifier) Subscribe(eventID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.subs[eventID] == nil {
		n.subs[eventID] = make(map[chan struct{}]bool)
	}
	n.subs[eventID][ch] = true
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if subs, ok := n.subs[eventID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(n.subs, eventID)
			}
		}
	}
	return ch, cancel
}

// DBSource reads snapshots straight from the database and relays
// change signals from a Notifier.
type DBSource struct {
	gdb      *gorm.DB
	notifier *Notifier
	seq      atomic.Uint64
}

func NewDBSource(gdb *gorm.DB, notifier *Notifier) *DBSource {
	return &DBSource{gdb: gdb, notifier: notifier}
}

func (s *DBSource) Subscribe(eventID string) (<-chan struct{}, func()) {
	return s.notifier.Subscribe(eventID)
}

// Snapshot loads the settings row and the ordered approved images for
// an event. A missing settings row falls back to defaults so a fresh
// event still renders.
func (s *DBSource) Snapshot(ctx context.Context, eventID string) (Snapshot, error) {
	seq := s.seq.Add(1)

	var settings db.DisplaySettings
	err := s.gdb.WithContext(ctx).Where("event_id = ?", eventID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = db.DefaultSettings(eventID)
	} else if err != nil {
		return Snapshot{}, err
	}

	var photos []db.Photo
	if err := s.gdb.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, db.StatusApproved).
		Order("created_at ASC").
		Find(&photos).Error; err != nil {
		return Snapshot{}, err
	}

	imgs := make([]Image, 0, len(photos))
	for _, p := range photos {
		imgs = append(imgs, Image{
			ID:            p.ID,
			Path:          p.OriginalPath,
			ThumbnailPath: p.ThumbnailPath,
			SubmitterName: p.SubmitterName,
			Caption:       p.Caption,
			DisplayOrder:  p.DisplayOrder,
		})
	}
	SortImages(imgs)

	return Snapshot{Seq: seq, Settings: settings, Images: imgs}, nil
}
