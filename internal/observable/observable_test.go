// ABOUTME: Tests for observable values and derived values
// ABOUTME: Verifies replay, multicast ordering, and single recompute per change

package observable

import (
	"reflect"
	"testing"
)

func TestValue_SubscribeReplaysCurrent(t *testing.T) {
	v := NewValue("alice")

	var got []string
	v.Subscribe(func(s string) { got = append(got, s) })

	if !reflect.DeepEqual(got, []string{"alice"}) {
		t.Errorf("expected replay of current value, got %v", got)
	}
}

func TestValue_MulticastSameSequence(t *testing.T) {
	v := NewValue(0)

	var first, second []int
	v.Subscribe(func(n int) { first = append(first, n) })
	v.Set(1)
	v.Subscribe(func(n int) { second = append(second, n) })
	v.Set(2)
	v.Set(3)

	if !reflect.DeepEqual(first, []int{0, 1, 2, 3}) {
		t.Errorf("first subscriber got %v", first)
	}
	if !reflect.DeepEqual(second, []int{1, 2, 3}) {
		t.Errorf("late subscriber should start at latest value, got %v", second)
	}
}

func TestValue_CancelStopsDelivery(t *testing.T) {
	v := NewValue(0)

	count := 0
	cancel := v.Subscribe(func(int) { count++ })
	cancel()
	cancel() // idempotent
	v.Set(5)

	if count != 1 {
		t.Errorf("expected only the replay delivery, got %d", count)
	}
	if v.Get() != 5 {
		t.Errorf("expected value 5, got %d", v.Get())
	}
}

func TestValue_WatchSkipsReplay(t *testing.T) {
	v := NewValue("x")

	var got []string
	v.Watch(func(s string) { got = append(got, s) })
	v.Set("y")

	if !reflect.DeepEqual(got, []string{"y"}) {
		t.Errorf("expected only later changes, got %v", got)
	}
}

func TestValue_Update(t *testing.T) {
	v := NewValue(2)
	v.Update(func(n int) int { return n * 10 })
	if v.Get() != 20 {
		t.Errorf("expected 20, got %d", v.Get())
	}
}

func TestMap_RecomputesOncePerChange(t *testing.T) {
	src := NewValue(1)
	calls := 0
	d := Map[int, int](src, func(n int) int {
		calls++
		return n * 2
	})
	defer d.Close()

	if d.Get() != 2 || calls != 1 {
		t.Fatalf("expected initial 2 after one compute, got %d after %d", d.Get(), calls)
	}

	src.Set(4)
	if d.Get() != 8 {
		t.Errorf("expected 8, got %d", d.Get())
	}
	if calls != 2 {
		t.Errorf("expected 2 computes, got %d", calls)
	}
}

func TestCombine_NeverObservedStale(t *testing.T) {
	page := NewValue(0)
	total := NewValue(0)
	calls := 0
	d := Combine[int, int, bool](page, total, func(p, tp int) bool {
		calls++
		return p+1 < tp
	})

	var seen []bool
	d.Subscribe(func(b bool) {
		// Derived must agree with the sources at the moment it is delivered
		if b != (page.Get()+1 < total.Get()) {
			t.Errorf("stale derived value %v for page=%d total=%d", b, page.Get(), total.Get())
		}
		seen = append(seen, b)
	})

	total.Set(3)
	page.Set(2)

	if !reflect.DeepEqual(seen, []bool{false, true, false}) {
		t.Errorf("unexpected sequence %v", seen)
	}
	if calls != 3 {
		t.Errorf("expected 3 computes (initial + 2 changes), got %d", calls)
	}

	d.Close()
	page.Set(0)
	if calls != 3 {
		t.Errorf("expected no recompute after Close, got %d", calls)
	}
}
