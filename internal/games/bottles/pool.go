package bottles

// Pool is a free-list of bottles. In steady state the game acquires and
// releases bottles without allocating.
type Pool struct {
	free      []*Bottle
	allocated int
	nextID    uint64
}

// NewPool creates a pool with prealloc bottles ready for use.
func NewPool(prealloc int) *Pool {
	p := &Pool{}
	p.Grow(prealloc)
	return p
}

// Grow makes sure at least n bottles are waiting in the free-list.
func (p *Pool) Grow(n int) {
	for len(p.free) < n {
		p.free = append(p.free, &Bottle{})
		p.allocated++
	}
}

// Acquire returns a zeroed bottle in StateFalling with a fresh ID.
// A new bottle is allocated only when the free-list is empty.
func (p *Pool) Acquire() *Bottle {
	var b *Bottle
	if n := len(p.free); n > 0 {
		b = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		b = &Bottle{}
		p.allocated++
	}

	p.nextID++
	*b = Bottle{ID: p.nextID, State: StateFalling}
	return b
}

// Release zeroes a bottle and puts it back on the free-list.
// Releasing a bottle that is already free does nothing.
func (p *Pool) Release(b *Bottle) {
	if b == nil || b.State == StateFree {
		return
	}
	*b = Bottle{}
	p.free = append(p.free, b)
}

// Allocated returns how many bottles the pool has ever created.
func (p *Pool) Allocated() int {
	return p.allocated
}

// Free returns how many bottles are waiting in the free-list.
func (p *Pool) Free() int {
	return len(p.free)
}

// ResetIDs restarts bottle numbering; used when a new game starts.
func (p *Pool) ResetIDs() {
	p.nextID = 0
}
