package ws

import "github.com/rzlb/FanPhoto-v3-sub001/internal/display"

// EngineControls adapts the display engine registry to the Controller
// interface, so socket clients can drive the slideshow.
type EngineControls struct {
	Registry *display.Registry
}

func (ec EngineControls) Control(eventID, kind string, arg int) {
	e := ec.Registry.Ensure(eventID)
	switch kind {
	case CtlPause:
		e.Pause()
	case CtlResume:
		e.Resume()
	case CtlNext:
		e.Next()
	case CtlPrev:
		e.Prev()
	case CtlInterval:
		e.SetInterval(arg)
	case CtlRefresh:
		e.Refresh()
	}
}
