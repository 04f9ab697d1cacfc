package mailer

import "context"

// Pending is the eventual result of SendAsync.
type Pending struct {
	done chan struct{}
	err  error
	id   string
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(id string, err error) {
	p.id, p.err = id, err
	close(p.done)
}

// Done is closed once the send has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the send resolves or ctx is done.
// A ctx error does not cancel the underlying send.
func (p *Pending) Wait(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return p.id, p.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Result returns the outcome without blocking.
// ok is false while the send is still in flight.
func (p *Pending) Result() (id string, ok bool, err error) {
	select {
	case <-p.done:
		return p.id, true, p.err
	default:
		return "", false, nil
	}
}
