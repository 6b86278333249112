package field

import (
	"context"
	"sync"

	"github.com/goliatone/go-submissions/pkg/validation"
)

// Pending is an error list that may still be computing. It settles exactly
// once, either with a list of validation errors or with a hard error.
type Pending struct {
	done  chan struct{}
	once  sync.Once
	errs  []validation.Error
	err   error
	parts []*Pending
}

// NewPending returns an unsettled list. Settle it with Resolve or Fail.
func NewPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a list that has already settled with errs.
func Resolved(errs ...validation.Error) *Pending {
	p := NewPending()
	p.Resolve(errs)
	return p
}

// Failed returns a list that has already settled with a hard error.
func Failed(err error) *Pending {
	p := NewPending()
	p.Fail(err)
	return p
}

// Resolve settles p with errs. Later calls are ignored.
func (p *Pending) Resolve(errs []validation.Error) {
	p.settle(errs, nil)
}

// Fail settles p with a hard error. Later calls are ignored.
func (p *Pending) Fail(err error) {
	p.settle(nil, err)
}

func (p *Pending) settle(errs []validation.Error, err error) {
	if p == nil || p.done == nil {
		return
	}
	p.once.Do(func() {
		p.errs = append([]validation.Error(nil), errs...)
		p.err = err
		close(p.done)
	})
}

// Wait blocks until p settles or ctx is done.
func (p *Pending) Wait(ctx context.Context) ([]validation.Error, error) {
	if p == nil {
		return nil, nil
	}
	if p.parts != nil {
		var out []validation.Error
		for _, part := range p.parts {
			errs, err := part.Wait(ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, errs...)
		}
		return out, nil
	}

	select {
	case <-p.done:
		if p.err != nil {
			return nil, p.err
		}
		return append([]validation.Error(nil), p.errs...), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Merge composes lists so the result settles to the concatenation of a and
// b, in that order, once both settle. A hard error from either wins.
func Merge(a, b *Pending) *Pending {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	parts := make([]*Pending, 0, 2)
	for _, p := range []*Pending{a, b} {
		if p.parts != nil {
			parts = append(parts, p.parts...)
			continue
		}
		parts = append(parts, p)
	}
	return &Pending{parts: parts}
}
