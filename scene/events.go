package scene

import "github.com/gogpu/easel"

// Event is delivered to listeners.
type Event struct {
	Type   string
	Target Node
	// Pointer is the scene-plane pointer position for pointer events.
	Pointer easel.Point
	// Data carries event-specific payload, such as the node added to a group.
	Data any
}

// Handler receives events.
type Handler func(e *Event)

type listener struct {
	id int
	fn Handler
}

// Emitter keeps named event listeners. The zero value is ready to use. It
// is embedded by nodes and drivers and is not safe for concurrent use.
type Emitter struct {
	listeners map[string][]listener
	next      int
}

// On registers fn for event and returns a function that removes it.
func (em *Emitter) On(event string, fn Handler) (off func()) {
	if em.listeners == nil {
		em.listeners = make(map[string][]listener)
	}
	em.next++
	id := em.next
	em.listeners[event] = append(em.listeners[event], listener{id: id, fn: fn})
	return func() { em.removeListener(event, id) }
}

// Once registers fn for a single delivery of event.
func (em *Emitter) Once(event string, fn Handler) (off func()) {
	var cancel func()
	cancel = em.On(event, func(e *Event) {
		cancel()
		fn(e)
	})
	return cancel
}

// Off removes all listeners for event, or every listener when event is
// empty.
func (em *Emitter) Off(event string) {
	if event == "" {
		em.listeners = nil
		return
	}
	delete(em.listeners, event)
}

func (em *Emitter) removeListener(event string, id int) {
	ls := em.listeners[event]
	for i, l := range ls {
		if l.id == id {
			em.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit delivers e to the listeners of event. The listener list is
// snapshotted, so listeners may remove themselves.
func (em *Emitter) Emit(event string, e *Event) {
	ls := em.listeners[event]
	if len(ls) == 0 {
		return
	}
	if e == nil {
		e = &Event{}
	}
	e.Type = event
	snapshot := append([]listener(nil), ls...)
	for _, l := range snapshot {
		l.fn(e)
	}
}

// Fire delivers an event to the node's listeners. The target defaults to
// the node itself.
func (o *Object) Fire(event string, e *Event) {
	if e == nil {
		e = &Event{}
	}
	if e.Target == nil {
		e.Target = o.self
	}
	o.Emit(event, e)
}
