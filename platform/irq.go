package platform

// pinIRQ arms edge interrupts on a port whose SetInterrupt only ever sets
// enable bits and refuses a second callback. Disarming passes a nil
// callback with the same change mask, so the armed mask is remembered.
type pinIRQ[C comparable] struct {
	set   func(change C, handler func()) error
	armed C
}

// arm replaces whatever was armed with change.
func (q *pinIRQ[C]) arm(change C, handler func()) error {
	if err := q.clear(); err != nil {
		return err
	}
	if err := q.set(change, handler); err != nil {
		return err
	}
	q.armed = change
	return nil
}

func (q *pinIRQ[C]) clear() error {
	var none C
	if q.armed == none {
		return nil
	}
	if err := q.set(q.armed, nil); err != nil {
		return err
	}
	q.armed = none
	return nil
}
