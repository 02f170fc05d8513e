package view

// Hook identifies a lifecycle callback kind.
type Hook uint8

const (
	HookMount Hook = iota
	HookRemount
	HookUnmount

	numHooks
)

// Hooks lists every hook in firing-table order.
var Hooks = [numHooks]Hook{HookMount, HookRemount, HookUnmount}

// String returns the callback name of the hook.
func (h Hook) String() string {
	switch h {
	case HookMount:
		return "onmount"
	case HookRemount:
		return "onremount"
	case HookUnmount:
		return "onunmount"
	default:
		return "unknown"
	}
}

// Interest counts, per hook, how many views in a subtree (inclusive)
// implement that hook.
type Interest [numHooks]int

// Empty reports whether no hook has a listener.
func (in Interest) Empty() bool {
	for _, n := range in {
		if n != 0 {
			return false
		}
	}
	return true
}

// Get returns the count for h.
func (in Interest) Get(h Hook) int {
	return in[h]
}

func (in Interest) add(o Interest) Interest {
	for i := range in {
		in[i] += o[i]
	}
	return in
}

// sub never goes below zero; counts on nodes moved behind the engine's back
// are not guaranteed to balance.
func (in Interest) sub(o Interest) Interest {
	for i := range in {
		in[i] -= o[i]
		if in[i] < 0 {
			in[i] = 0
		}
	}
	return in
}

// ownInterest returns the contribution of v alone.
func ownInterest(v View) Interest {
	var in Interest
	if _, ok := v.(Mounter); ok {
		in[HookMount] = 1
	}
	if _, ok := v.(Remounter); ok {
		in[HookRemount] = 1
	}
	if _, ok := v.(Unmounter); ok {
		in[HookUnmount] = 1
	}
	return in
}

// call invokes v's callback for h and reports whether v implements it.
func call(v View, h Hook) bool {
	switch h {
	case HookMount:
		if m, ok := v.(Mounter); ok {
			m.OnMount()
			return true
		}
	case HookRemount:
		if m, ok := v.(Remounter); ok {
			m.OnRemount()
			return true
		}
	case HookUnmount:
		if m, ok := v.(Unmounter); ok {
			m.OnUnmount()
			return true
		}
	}
	return false
}
