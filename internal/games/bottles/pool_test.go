package bottles

import "testing"

func TestPoolReuse(t *testing.T) {
	p := NewPool(2)
	if p.Allocated() != 2 || p.Free() != 2 {
		t.Fatalf("NewPool(2): allocated=%d free=%d", p.Allocated(), p.Free())
	}

	a := p.Acquire()
	b := p.Acquire()
	if a == b {
		t.Fatal("Acquire returned the same bottle twice")
	}
	if a.State != StateFalling || a.ID == 0 || a.ID == b.ID {
		t.Errorf("acquired bottles should be falling with distinct IDs: %+v %+v", a, b)
	}

	a.X, a.Y = 10, 5.5
	p.Release(a)
	if a.State != StateFree || a.X != 0 || a.Y != 0 {
		t.Errorf("Release should zero the bottle, got %+v", a)
	}

	c := p.Acquire()
	if c != a {
		t.Error("Acquire should reuse the released bottle")
	}
	if p.Allocated() != 2 {
		t.Errorf("Allocated() = %d, expected no new allocations", p.Allocated())
	}
}

func TestPoolGrowsWhenEmpty(t *testing.T) {
	p := NewPool(0)
	p.Acquire()
	p.Acquire()
	if p.Allocated() != 2 {
		t.Errorf("Allocated() = %d, expected 2", p.Allocated())
	}
}

func TestPoolDoubleRelease(t *testing.T) {
	p := NewPool(1)
	b := p.Acquire()
	p.Release(b)
	p.Release(b)
	p.Release(nil)

	if p.Free() != 1 {
		t.Errorf("Free() = %d, expected 1 after double release", p.Free())
	}
}

func TestPoolGrowIsIdempotent(t *testing.T) {
	p := NewPool(4)
	p.Grow(4)
	p.Grow(2)
	if p.Allocated() != 4 {
		t.Errorf("Allocated() = %d, expected 4", p.Allocated())
	}
}

func TestPoolResetIDs(t *testing.T) {
	p := NewPool(0)
	p.Acquire()
	p.ResetIDs()
	if b := p.Acquire(); b.ID != 1 {
		t.Errorf("ID after ResetIDs = %d, expected 1", b.ID)
	}
}
