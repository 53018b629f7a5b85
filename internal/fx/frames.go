package fx

// FrameID identifies a pending frame callback. Zero means "none".
type FrameID uint64

// Scheduler registers one-shot callbacks for the next display refresh.
// Callbacks that want to keep running must re-register themselves.
type Scheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	cb func()
}

// FrameQueue is a single-threaded Scheduler driven by the host loop.
// The host calls RunFrame once per refresh.
type FrameQueue struct {
	next    FrameID
	pending []frameRequest
	running []frameRequest // batch of the frame currently being run
	frame   int
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame schedules cb for the next RunFrame.
func (q *FrameQueue) RequestFrame(cb func()) FrameID {
	q.next++
	q.pending = append(q.pending, frameRequest{id: q.next, cb: cb})
	return q.next
}

// CancelFrame removes a pending callback. Unknown or zero ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].cb = nil
			return
		}
	}
}

// Pending reports how many callbacks wait for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Frame returns how many frames have been run.
func (q *FrameQueue) Frame() int {
	return q.frame
}

// RunFrame invokes every callback registered before the call and returns
// how many ran. Callbacks registered while running wait for the next frame;
// a callback cancelled earlier in the same frame is skipped.
func (q *FrameQueue) RunFrame() int {
	q.frame++
	q.running = q.pending
	q.pending = nil
	ran := 0
	for i := 0; i < len(q.running); i++ {
		cb := q.running[i].cb
		if cb == nil {
			continue
		}
		q.running[i].cb = nil
		ran++
		cb()
	}
	q.running = nil
	return ran
}
