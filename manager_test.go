package focal

import (
	"testing"
)

func TestManager_AddReplacesRecordForSameOwner(t *testing.T) {
	inner := el("inner")
	root := el("root", inner)
	m := New(newFakeStore(root))

	owner := "participant"
	m.Add(Record{Owner: owner, Element: root, OnIncoming: func(*TransferEvent) {}})
	m.Add(Record{Owner: owner, Element: inner, OnIncoming: func(*TransferEvent) {}})

	rec, ok := m.Find(inner)
	if !ok {
		t.Fatal("expected a record covering inner")
	}
	if rec.Element != inner {
		t.Error("expected the replacement record, not the original")
	}
	if len(m.records) != 1 {
		t.Errorf("expected 1 record, got %d", len(m.records))
	}
}

func TestManager_AddReplacesRecordForSameElement(t *testing.T) {
	root := el("root")
	m := New(newFakeStore(root))

	var order []string
	m.Add(Record{Owner: "older", Element: root, OnIncoming: func(*TransferEvent) {
		order = append(order, "older")
	}})
	m.Add(Record{Owner: "newer", Element: root, OnIncoming: func(*TransferEvent) {
		order = append(order, "newer")
	}})

	if len(m.records) != 1 {
		t.Fatalf("expected 1 record per root, got %d", len(m.records))
	}

	m.Dispatch(&TransferEvent{Next: root})
	if len(order) != 1 || order[0] != "newer" {
		t.Errorf("expected only the latest registration to run, got %v", order)
	}
}

func TestManager_RemoveIsIdempotent(t *testing.T) {
	root := el("root")
	m := New(newFakeStore(root))

	owner := "participant"
	m.Add(Record{Owner: owner, Element: root, OnIncoming: func(*TransferEvent) {}})

	m.Remove(owner, root)
	if len(m.records) != 0 {
		t.Fatalf("expected 0 records after remove, got %d", len(m.records))
	}

	// Second remove, and remove-without-add, are no-ops.
	m.Remove(owner, root)
	m.Remove("never added", root)
	if len(m.records) != 0 {
		t.Errorf("expected 0 records, got %d", len(m.records))
	}
}

func TestManager_RemoveMatchesElement(t *testing.T) {
	first := el("first")
	second := el("second")
	root := el("root", first, second)
	m := New(newFakeStore(root))

	owner := "participant"
	m.Add(Record{Owner: owner, Element: second, OnIncoming: func(*TransferEvent) {}})

	// A remove for an element the owner no longer roots must not
	// take out the current record.
	m.Remove(owner, first)
	if _, ok := m.Find(second); !ok {
		t.Error("record for the current element should survive a stale remove")
	}

	m.Remove(owner, second)
	if _, ok := m.Find(second); ok {
		t.Error("record should be gone after a matched remove")
	}
}

func TestManager_FindPrefersInnermost(t *testing.T) {
	leaf := el("leaf")
	inner := el("inner", leaf)
	root := el("root", inner)
	m := New(newFakeStore(root))

	m.Add(Record{Owner: "outer", Element: root, OnIncoming: func(*TransferEvent) {}})
	m.Add(Record{Owner: "inner", Element: inner, OnIncoming: func(*TransferEvent) {}})

	rec, ok := m.Find(leaf)
	if !ok {
		t.Fatal("expected a record covering leaf")
	}
	if rec.Owner != "inner" {
		t.Errorf("expected innermost record, got %v", rec.Owner)
	}

	rec, ok = m.Find(root)
	if !ok {
		t.Fatal("expected a record covering root")
	}
	if rec.Owner != "outer" {
		t.Errorf("expected outer record for the root itself, got %v", rec.Owner)
	}
}

func TestManager_DispatchVisitsInnermostFirst(t *testing.T) {
	leaf := el("leaf")
	inner := el("inner", leaf)
	root := el("root", inner)
	m := New(newFakeStore(root))

	var order []string
	m.Add(Record{Owner: "outer", Element: root, OnIncoming: func(*TransferEvent) {
		order = append(order, "outer")
	}})
	m.Add(Record{Owner: "inner", Element: inner, OnIncoming: func(*TransferEvent) {
		order = append(order, "inner")
	}})

	m.Dispatch(&TransferEvent{Next: leaf})

	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("expected [inner outer], got %v", order)
	}
}

func TestManager_DispatchInvokesEachRecordOnce(t *testing.T) {
	leaf := el("leaf")
	root := el("root", leaf)
	m := New(newFakeStore(root))

	calls := 0
	m.Add(Record{Owner: "region", Element: root, OnIncoming: func(ev *TransferEvent) {
		calls++
		ev.Next = leaf
	}})

	m.Dispatch(&TransferEvent{Next: root})

	if calls != 1 {
		t.Errorf("expected 1 invocation, got %d", calls)
	}
}

func TestManager_DispatchDoesNotAutoRedispatch(t *testing.T) {
	other := el("other", focusableEl("deep"))
	target := el("target")
	root := el("root", target, other)
	m := New(newFakeStore(root))

	m.Add(Record{Owner: "redirector", Element: target, OnIncoming: func(ev *TransferEvent) {
		ev.Next = other
	}})
	otherCalls := 0
	m.Add(Record{Owner: "other", Element: other, OnIncoming: func(*TransferEvent) {
		otherCalls++
	}})

	ev := m.Dispatch(&TransferEvent{Next: target})

	if ev.Next != other {
		t.Error("expected the rewrite to stick")
	}
	if otherCalls != 0 {
		t.Error("a rewrite into a foreign subtree must not re-dispatch on its own")
	}
}

func TestManager_DispatchSeesEscapingOrigin(t *testing.T) {
	inside := focusableEl("inside")
	region := el("region", inside)
	outside := focusableEl("outside")
	root := el("root", region, outside)
	m := New(newFakeStore(root))

	seen := false
	m.Add(Record{Owner: "region", Element: region, OnIncoming: func(ev *TransferEvent) {
		seen = true
	}})

	m.Dispatch(&TransferEvent{Previous: inside, Next: outside})

	if !seen {
		t.Error("a region should see transfers leaving it")
	}
}

func TestManager_DispatchRoutesUnknownOriginToSettledRegion(t *testing.T) {
	inside := focusableEl("inside")
	region := el("region", inside)
	outside := focusableEl("outside")
	root := el("root", region, outside)
	m := New(newFakeStore(root))

	seen := 0
	m.Add(Record{Owner: "region", Element: region, OnIncoming: func(*TransferEvent) {
		seen++
	}})

	m.MoveFocus(inside)

	// The focused element is gone and the origin with it; the region
	// focus settled in must still see the outgoing transfer.
	inside.detach()
	m.Dispatch(&TransferEvent{Next: outside})

	if seen != 2 {
		t.Errorf("expected the settled region to see both transfers, got %d", seen)
	}
}

func TestManager_DispatchPanicLeavesRegistryIntact(t *testing.T) {
	leaf := el("leaf")
	root := el("root", leaf)
	m := New(newFakeStore(root))

	m.Add(Record{Owner: "broken", Element: root, OnIncoming: func(*TransferEvent) {
		panic("participant defect")
	}})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the callback panic to propagate")
			}
		}()
		m.Dispatch(&TransferEvent{Next: leaf})
	}()

	if _, ok := m.Find(leaf); !ok {
		t.Error("registration state should survive a callback panic")
	}
	m.Remove("broken", root)
	if len(m.records) != 0 {
		t.Error("record should still be removable after a panic")
	}
}

func TestManager_MoveFocusSettlesActive(t *testing.T) {
	target := focusableEl("target")
	root := el("root", target)
	store := newFakeStore(root)
	m := New(store)

	m.MoveFocus(target)

	if store.ActiveElement() != target {
		t.Error("expected the store focus call to have happened")
	}
	if m.Active() != target {
		t.Error("expected Active to be settled with the immediate scheduler")
	}
}

func TestManager_QueueSchedulerDefersSettling(t *testing.T) {
	target := focusableEl("target")
	root := el("root", target)
	store := newFakeStore(root)
	q := NewQueue()
	m := New(store, WithScheduler(q))

	m.MoveFocus(target)

	if store.ActiveElement() != target {
		t.Error("the focus side effect is synchronous")
	}
	if m.Active() != nil {
		t.Error("Active must lag until the queue settles")
	}
	if q.Len() != 1 {
		t.Errorf("expected 1 deferred sync, got %d", q.Len())
	}

	q.Settle()

	if m.Active() != target {
		t.Error("expected Active to catch up after settling")
	}
	if q.Len() != 0 {
		t.Errorf("expected the queue to be drained, got %d", q.Len())
	}
}
