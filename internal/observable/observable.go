// ABOUTME: Push-based observable values with replay-1 subscriptions
// ABOUTME: Derived values recompute synchronously once per upstream change

package observable

import "sync"

// Source is a readable, subscribable value.
type Source[T any] interface {
	Get() T
	Subscribe(fn func(T)) (cancel func())
	Watch(fn func(T)) (cancel func())
}

// Value holds the latest value of a stream and multicasts every change.
// Subscribers always see the most recent value first, then each later Set in
// the same order as every other subscriber. Callbacks run synchronously on
// the goroutine calling Set and must not call Set or Subscribe on the same
// Value.
type Value[T any] struct {
	emit sync.Mutex // serializes Set with subscription so no emission is missed or duplicated

	mu   sync.RWMutex
	cur  T
	subs map[int]func(T)
	next int
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{cur: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cur
}

// Set stores val and notifies all subscribers.
func (v *Value[T]) Set(val T) {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	v.cur = val
	fns := v.snapshot()
	v.mu.Unlock()

	for _, fn := range fns {
		fn(val)
	}
}

// Update applies fn to the current value and stores the result.
func (v *Value[T]) Update(fn func(T) T) {
	v.Set(fn(v.Get()))
}

// Subscribe calls fn with the current value immediately and on every change.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	return v.add(fn, true)
}

// Watch is Subscribe without the initial replay.
func (v *Value[T]) Watch(fn func(T)) func() {
	return v.add(fn, false)
}

func (v *Value[T]) add(fn func(T), replay bool) func() {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	id := v.next
	v.next++
	v.subs[id] = fn
	cur := v.cur
	v.mu.Unlock()

	if replay {
		fn(cur)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// snapshot returns subscribers in registration order. Caller holds mu.
func (v *Value[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(v.subs))
	for id := 0; id < v.next; id++ {
		if fn, ok := v.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Derived is a read-only value computed from one or more sources.
type Derived[T any] struct {
	val     *Value[T]
	cancels []func()
}

// Get returns the current derived value.
func (d *Derived[T]) Get() T { return d.val.Get() }

// Subscribe calls fn with the current derived value and on every recompute.
func (d *Derived[T]) Subscribe(fn func(T)) func() { return d.val.Subscribe(fn) }

// Watch is Subscribe without the initial replay.
func (d *Derived[T]) Watch(fn func(T)) func() { return d.val.Watch(fn) }

// Close detaches the derived value from its sources.
func (d *Derived[T]) Close() {
	for _, c := range d.cancels {
		c()
	}
	d.cancels = nil
}

// Map derives a value from a single source.
func Map[A, B any](src Source[A], fn func(A) B) *Derived[B] {
	d := &Derived[B]{val: NewValue(fn(src.Get()))}
	d.cancels = append(d.cancels, src.Watch(func(a A) {
		d.val.Set(fn(a))
	}))
	return d
}

// Combine derives a value from two sources. Each upstream change triggers
// exactly one recompute using the latest value of the other source.
func Combine[A, B, C any](a Source[A], b Source[B], fn func(A, B) C) *Derived[C] {
	d := &Derived[C]{val: NewValue(fn(a.Get(), b.Get()))}
	d.cancels = append(d.cancels,
		a.Watch(func(av A) { d.val.Set(fn(av, b.Get())) }),
		b.Watch(func(bv B) { d.val.Set(fn(a.Get(), bv)) }),
	)
	return d
}
