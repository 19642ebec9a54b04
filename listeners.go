package canvasview

import "math/bits"

// listenerKind is a document-level listener a gesture attaches for its
// lifetime. Layer-level intake (mouse down, touch start, wheel) is always on.
type listenerKind uint8

const (
	listenMouseMove listenerKind = 1 << iota
	listenMouseUp
	listenTouchMove
	listenTouchEnd
	listenTouchCancel
)

const (
	mouseListeners = listenMouseMove | listenMouseUp
	touchListeners = listenTouchMove | listenTouchEnd | listenTouchCancel
)

// listenerSet tracks which gesture listeners are attached. Events whose
// listener is not attached never reach the state machine, so a listener left
// over from an earlier gesture cannot observe a new one.
type listenerSet uint8

func (s *listenerSet) attach(k listenerKind) { *s |= listenerSet(k) }
func (s *listenerSet) detachAll()            { *s = 0 }

func (s listenerSet) has(k listenerKind) bool { return s&listenerSet(k) != 0 }
func (s listenerSet) count() int              { return bits.OnesCount8(uint8(s)) }

// listenersFor returns the listeners a gesture from src attaches.
func listenersFor(src InputSource) listenerKind {
	if src == SourceTouch {
		return touchListeners
	}
	return mouseListeners
}
