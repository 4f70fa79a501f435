package sound

// PoolSlot is one fixed position in a Pool.
type PoolSlot struct {
	Index int
	InUse bool
	Voice *Voice
}

// Pool caps the number of concurrent voices for one sound. When every slot
// is busy the oldest position, slot 0, is stolen.
type Pool struct {
	slots []*PoolSlot
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{slots: make([]*PoolSlot, size)}
	for i := range p.slots {
		p.slots[i] = &PoolSlot{Index: i}
	}
	return p
}

func (p *Pool) Size() int { return len(p.slots) }

// Slots exposes the slots in order.
func (p *Pool) Slots() []*PoolSlot { return p.slots }

// InUse counts busy slots.
func (p *Pool) InUse() int {
	n := 0
	for _, s := range p.slots {
		if s.InUse {
			n++
		}
	}
	return n
}

// Acquire marks and returns the first free slot. When none is free, slot 0's
// voice is stopped and slot 0 is handed out again.
func (p *Pool) Acquire() *PoolSlot {
	for _, s := range p.slots {
		if !s.InUse {
			s.InUse = true
			return s
		}
	}
	s := p.slots[0]
	if s.Voice != nil {
		s.Voice.stop()
		s.Voice.disconnect()
		s.Voice = nil
	}
	return s
}

// Release frees the slot and disconnects its voice.
func (p *Pool) Release(s *PoolSlot) {
	s.InUse = false
	if s.Voice != nil {
		s.Voice.disconnect()
		s.Voice = nil
	}
}

// bind attaches v to s and arranges for the slot to be released when v ends,
// unless the slot has been handed to another voice by then.
func (p *Pool) bind(s *PoolSlot, v *Voice) {
	s.Voice = v
	v.onEnded = func(ended *Voice) {
		if s.Voice == ended {
			p.Release(s)
		}
	}
}
