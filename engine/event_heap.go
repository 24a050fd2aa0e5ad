package engine

// eventHeap implements heap.Interface over pending events
// Each event tracks its slot so cancellation can remove it in O(log n)
type eventHeap struct {
	q []*Event
}

func (h *eventHeap) Len() int {
	return len(h.q)
}

func (h *eventHeap) Less(i int, j int) bool {
	return h.q[i].before(h.q[j])
}

func (h *eventHeap) Swap(i int, j int) {
	h.q[i], h.q[j] = h.q[j], h.q[i]
	h.q[i].index = i
	h.q[j].index = j
}

func (h *eventHeap) Push(x interface{}) {
	ev := x.(*Event)
	ev.index = len(h.q)
	h.q = append(h.q, ev)
}

func (h *eventHeap) Pop() (v interface{}) {
	last := len(h.q) - 1
	ev := h.q[last]
	h.q[last] = nil
	h.q = h.q[:last]
	ev.index = -1
	return ev
}

// peek returns the next event to fire without removing it
// Panics if heap is empty
func (h *eventHeap) peek() *Event {
	return h.q[0]
}
