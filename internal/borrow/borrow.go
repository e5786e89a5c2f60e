// Package borrow gives a heap string a single owner and hands out
// exclusive (Mut) or shared (Ref) access to it.
//
// At most one Mut is active at a time, and no Ref can be taken while one is.
// A Ref remembers the generation of the value it was taken at. Reading it
// after a later mutation fails instead of returning contents the holder never
// agreed to see.
//
// A Text is not safe for concurrent use.
package borrow

import "errors"

var (
	ErrAlreadyBorrowed = errors.New("borrow: value is already mutably borrowed")
	ErrMutablyBorrowed = errors.New("borrow: cannot share a mutably borrowed value")
	ErrHandleReleased  = errors.New("borrow: handle used after release")
	ErrStaleAlias      = errors.New("borrow: alias outlived a mutation")
	ErrNilText         = errors.New("borrow: nil text")
)

// Text owns one storage location for a string.
type Text struct {
	data *string
	gen  uint64
	mut  *Mut // active exclusive borrow, nil if none
}

// New allocates the storage and stores s in it.
func New(s string) *Text {
	data := new(string)
	*data = s
	return &Text{data: data}
}

// Ptr returns the address of the underlying storage.
func (t *Text) Ptr() *string { return t.data }

// Borrowed reports whether an exclusive borrow is active.
func (t *Text) Borrowed() bool { return t.mut != nil }

// BorrowMut starts an exclusive borrow.
func (t *Text) BorrowMut() (*Mut, error) {
	if t == nil {
		return nil, ErrNilText
	}
	if t.mut != nil {
		return nil, ErrAlreadyBorrowed
	}
	m := &Mut{owner: t}
	t.mut = m
	return m, nil
}

// Share returns a read-only handle at the current generation.
func (t *Text) Share() (Ref, error) {
	if t == nil {
		return Ref{}, ErrNilText
	}
	if t.mut != nil {
		return Ref{}, ErrMutablyBorrowed
	}
	return Ref{owner: t, gen: t.gen}, nil
}

// Mut is an exclusive handle. It is valid until Release.
type Mut struct {
	owner    *Text
	released bool
}

// Get returns the current contents.
func (m *Mut) Get() (string, error) {
	if m.released {
		return "", ErrHandleReleased
	}
	return *m.owner.data, nil
}

// Set replaces the contents in place. The storage address does not change.
func (m *Mut) Set(s string) error {
	if m.released {
		return ErrHandleReleased
	}
	*m.owner.data = s
	m.owner.gen++
	return nil
}

// Release ends the exclusive borrow and downgrades it to a shared handle.
func (m *Mut) Release() (Ref, error) {
	if m.released {
		return Ref{}, ErrHandleReleased
	}
	m.released = true
	m.owner.mut = nil
	return Ref{owner: m.owner, gen: m.owner.gen}, nil
}

// Ref is a shared handle. Copying a Ref creates an alias of the same
// storage; the contents are never copied.
type Ref struct {
	owner *Text
	gen   uint64
}

// Alias returns a copy of r.
func (r Ref) Alias() Ref { return r }

// Valid reports whether r still observes the contents it was taken at.
func (r Ref) Valid() bool {
	return r.owner != nil && r.owner.gen == r.gen
}

// Get returns the contents, or ErrStaleAlias if the value changed since r
// was taken.
func (r Ref) Get() (string, error) {
	if r.owner == nil {
		return "", ErrNilText
	}
	if r.owner.gen != r.gen {
		return "", ErrStaleAlias
	}
	return *r.owner.data, nil
}

// Ptr returns the address of the storage r refers to.
func (r Ref) Ptr() *string {
	if r.owner == nil {
		return nil
	}
	return r.owner.data
}

// String panics on a stale or zero Ref.
func (r Ref) String() string {
	s, err := r.Get()
	if err != nil {
		panic(err)
	}
	return s
}
