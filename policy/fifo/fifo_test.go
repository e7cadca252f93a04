package fifo

import "testing"

type mockHooks struct {
	pushFrontCnt   int
	moveToFrontCnt int
	removeCnt      int
	lastPush       int
}

func (h *mockHooks) MoveToFront(int) { h.moveToFrontCnt++ }
func (h *mockHooks) PushFront(i int) { h.pushFrontCnt++; h.lastPush = i }
func (h *mockHooks) Remove(int)      { h.removeCnt++ }
func (h *mockHooks) Back() int       { return 0 }
func (h *mockHooks) Len() int        { return 0 }

// OnAdd enqueues at the front; everything else must leave order alone.
func TestFIFO_OnlyAddTouchesTheList(t *testing.T) {
	t.Parallel()

	h := &mockHooks{}
	p := New().New(h)

	p.OnAdd(4)
	if h.pushFrontCnt != 1 || h.lastPush != 4 {
		t.Fatalf("OnAdd must call PushFront exactly once with the slot")
	}

	p.OnGet(4)
	p.OnUpdate(4)
	p.OnRemove(4)

	if h.moveToFrontCnt != 0 || h.removeCnt != 0 || h.pushFrontCnt != 1 {
		t.Fatalf("reads, updates and removals must not reorder a FIFO queue")
	}
}
