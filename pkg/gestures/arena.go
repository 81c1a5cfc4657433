package gestures

// Handler consumes classified gesture events.
type Handler func(Event)

// Subscription identifies one handler registration. The zero value is
// invalid.
type Subscription struct {
	gtype Type
	index int
	valid bool
}

// handlerArena stores subscribers in resizable per-type slot tables.
// Slots are appended on registration and tombstoned on removal, which keeps
// iteration-during-mutation well defined: emit walks a snapshot of the
// table length and skips inactive slots, so a handler removing itself (or a
// sibling) mid-dispatch never perturbs the walk.
type handlerArena struct {
	slots map[Type][]arenaSlot
}

type arenaSlot struct {
	fn     Handler
	active bool
}

func newHandlerArena() *handlerArena {
	return &handlerArena{slots: make(map[Type][]arenaSlot)}
}

// add registers a handler for a gesture type. Every call allocates a fresh
// slot: two registrations of the same function are two independent
// subscriptions, each removed only through its own handle. Function values
// carry no usable identity in Go, so the subscription is the identity.
func (a *handlerArena) add(t Type, fn Handler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	table := a.slots[t]
	a.slots[t] = append(table, arenaSlot{fn: fn, active: true})
	return Subscription{gtype: t, index: len(table), valid: true}
}

// remove tombstones a subscription's slot. Safe on zero or stale values.
func (a *handlerArena) remove(sub Subscription) {
	if !sub.valid {
		return
	}
	table := a.slots[sub.gtype]
	if sub.index < 0 || sub.index >= len(table) {
		return
	}
	table[sub.index].active = false
}

// each calls fn for every active handler of type t registered at call time.
func (a *handlerArena) each(t Type, fn func(Handler)) {
	table := a.slots[t]
	for i := range table {
		if table[i].active {
			fn(table[i].fn)
		}
	}
}

// clear drops every registration.
func (a *handlerArena) clear() {
	a.slots = make(map[Type][]arenaSlot)
}
