package cache

// noIndex marks an absent slot link: a list boundary, an exhausted free
// chain, or a link field that is meaningless in the slot's current state.
const noIndex int32 = -1

// slotState tags which chain a slot is on. Go has no sum types, so the
// Free/Occupied variant from the data model is an explicit tag; tests
// assert the two link roles are never live at the same time.
type slotState uint8

const (
	slotFree slotState = iota
	slotOccupied
)

// Slot is one arena cell. It is exported only so callers can supply their
// own []Slot slab via Options.Arena (constrained mode); all fields are
// managed by the cache.
//
// Link roles are mutually exclusive: nextFree is meaningful only while the
// slot is free, prev/next only while it is occupied. key and val hold real
// data only while occupied and are zeroed on release so the garbage
// collector can reclaim what they reference.
type Slot[K comparable, V any] struct {
	key K
	val V

	nextFree int32
	prev     int32
	next     int32

	state slotState
}
