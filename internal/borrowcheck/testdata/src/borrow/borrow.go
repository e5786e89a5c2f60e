package borrow

type Text struct{ s string }

type Mut struct{ t *Text }

type Ref struct{ t *Text }

func (t *Text) BorrowMut() (*Mut, error) { return &Mut{t: t}, nil }

func (t *Text) Share() (Ref, error) { return Ref{t: t}, nil }

func (m *Mut) Set(s string) error { m.t.s = s; return nil }

func (m *Mut) Release() (Ref, error) { return Ref{t: m.t}, nil }

func New(s string) *Text { return &Text{s: s} }
