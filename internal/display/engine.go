package display

import (
	"context"
	"log"
	"sync"
	"time"
)

// State is the full display state pushed to connected screens after
// every change.
type State struct {
	EventID       string  `json:"event_id"`
	CurrentIndex  int     `json:"current_index"`
	PreviousIndex int     `json:"previous_index"`
	Direction     string  `json:"direction"`
	Paused        bool    `json:"paused"`
	IntervalSec   int     `json:"interval_sec"`
	Style         Style   `json:"style"`
	Images        []Image `json:"images"`
}

// Broadcaster delivers display state to whoever is watching. The
// WebSocket hub implements this.
type Broadcaster interface {
	DisplayState(eventID string, st State)
}

type controlKind int

const (
	ctrlPause controlKind = iota
	ctrlResume
	ctrlNext
	ctrlPrev
	ctrlSetInterval
	ctrlRefresh
)

type control struct {
	kind controlKind
	arg  int
}

// Engine drives one event's slideshow: it advances the rotation on a
// timer, re-snapshots the source on the same cadence, and reacts to
// transport controls. Pausing freezes both the advance and the
// refresh. All state changes happen on the Run goroutine.
type Engine struct {
	eventID string
	src     Source
	bc      Broadcaster
	ctrl    chan control

	mu       sync.Mutex
	rot      Rotation
	style    Style
	paused   bool
	auto     bool
	interval time.Duration
	manual   bool // interval came from a transport control
	savedSec int  // last interval seen in the settings row
	lastSeq  uint64
}

func NewEngine(eventID string, src Source, bc Broadcaster) *Engine {
	return &Engine{
		eventID:  eventID,
		src:      src,
		bc:       bc,
		ctrl:     make(chan control, 16),
		auto:     true,
		interval: 8 * time.Second,
	}
}

// Transport controls. Safe from any goroutine.
func (e *Engine) Pause()  { e.ctrl <- control{kind: ctrlPause} }
func (e *Engine) Resume() { e.ctrl <- control{kind: ctrlResume} }
func (e *Engine) Next()   { e.ctrl <- control{kind: ctrlNext} }
func (e *Engine) Prev()   { e.ctrl <- control{kind: ctrlPrev} }

// SetInterval changes the slide interval. Out-of-range values are
// clamped to [1,60] seconds.
func (e *Engine) SetInterval(seconds int) {
	if seconds < 1 {
		seconds = 1
	}
	if seconds > 60 {
		seconds = 60
	}
	e.ctrl <- control{kind: ctrlSetInterval, arg: seconds}
}

// Refresh forces a re-snapshot outside the regular cadence.
func (e *Engine) Refresh() { e.ctrl <- control{kind: ctrlRefresh} }

// State returns a copy of the current display state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	imgs := make([]Image, len(e.rot.Images))
	copy(imgs, e.rot.Images)
	dir := e.rot.Direction
	if dir == "" {
		dir = Forward
	}
	return State{
		EventID:       e.eventID,
		CurrentIndex:  e.rot.Current,
		PreviousIndex: e.rot.Previous,
		Direction:     string(dir),
		Paused:        e.paused,
		IntervalSec:   int(e.interval / time.Second),
		Style:         e.style,
		Images:        imgs,
	}
}

func (e *Engine) broadcast() {
	if e.bc == nil {
		return
	}
	e.mu.Lock()
	st := e.stateLocked()
	e.mu.Unlock()
	e.bc.DisplayState(e.eventID, st)
}

// refresh applies a fresh snapshot, ignoring any snapshot older than
// the one already applied.
func (e *Engine) refresh(ctx context.Context) bool {
	snap, err := e.src.Snapshot(ctx, e.eventID)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("display: snapshot for %s: %v", e.eventID, err)
		}
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if snap.Seq <= e.lastSeq {
		return false
	}
	e.lastSeq = snap.Seq
	e.rot.SetImages(snap.Images)
	e.style = DeriveStyle(snap.Settings, FullScale)
	e.auto = snap.Settings.AutoRotate
	// A transport-set interval holds until an admin actually changes the
	// saved one; plain refetches must not undo it.
	if s := snap.Settings.SlideInterval; s >= 1 && s <= 60 {
		if !e.manual || s != e.savedSec {
			e.interval = time.Duration(s) * time.Second
			e.manual = false
		}
		e.savedSec = s
	}
	return true
}

// Run owns the slideshow loop until ctx is canceled. The subscription
// and timer are released on the way out.
func (e *Engine) Run(ctx context.Context) {
	changes, cancel := e.src.Subscribe(e.eventID)
	defer cancel()

	if e.refresh(ctx) {
		e.broadcast()
	}

	timer := time.NewTimer(e.currentInterval())
	defer timer.Stop()

	reset := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(e.currentInterval())
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-timer.C:
			e.mu.Lock()
			paused := e.paused
			advance := !paused && e.auto && len(e.rot.Images) > 0
			if advance {
				e.rot.Next()
			}
			e.mu.Unlock()
			if !paused {
				e.refresh(ctx)
				timer.Reset(e.currentInterval())
			}
			if advance {
				e.broadcast()
			}

		case <-changes:
			e.mu.Lock()
			paused := e.paused
			e.mu.Unlock()
			if !paused && e.refresh(ctx) {
				// fresh images restart the current slide's clock
				reset()
				e.broadcast()
			}

		case c := <-e.ctrl:
			switch c.kind {
			case ctrlPause:
				e.mu.Lock()
				e.paused = true
				e.mu.Unlock()
				timer.Stop()
			case ctrlResume:
				e.mu.Lock()
				e.paused = false
				e.mu.Unlock()
				e.refresh(ctx)
				reset()
			case ctrlNext:
				e.mu.Lock()
				e.rot.Next()
				e.mu.Unlock()
				reset()
			case ctrlPrev:
				e.mu.Lock()
				e.rot.Prev()
				e.mu.Unlock()
				reset()
			case ctrlSetInterval:
				e.mu.Lock()
				e.interval = time.Duration(c.arg) * time.Second
				e.manual = true
				paused := e.paused
				e.mu.Unlock()
				if !paused {
					reset()
				}
			case ctrlRefresh:
				e.refresh(ctx)
			}
			e.broadcast()
		}
	}
}

func (e *Engine) currentInterval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}
