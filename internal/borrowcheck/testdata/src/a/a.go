package a

import "borrow"

func mutStr(s *borrow.Mut) (borrow.Ref, error) {
	_ = s.Set("override!")
	return s.Release()
}

func aliasAfterRelease() {
	str := borrow.New("hello, world")
	m, _ := str.BorrowMut()
	str2, _ := mutStr(m)
	str3 := str2
	_, _ = str2, str3
}

func shareAfterRelease() {
	x := borrow.New("")
	m, _ := x.BorrowMut()
	_ = m.Set("override!")
	_, _ = m.Release()
	r, _ := x.Share()
	_ = r
}

func doubleMut() {
	x := borrow.New("")
	m1, _ := x.BorrowMut()
	m2, _ := x.BorrowMut() // want `cannot borrow x as mutable more than once at a time`
	_, _ = m1, m2
}

func shareWhileMut() {
	x := borrow.New("")
	m, _ := x.BorrowMut()
	r, _ := x.Share() // want `cannot share x while it is mutably borrowed`
	_, _ = m, r
}

func useAfterRelease() {
	x := borrow.New("")
	m, _ := x.BorrowMut()
	_, _ = m.Release()
	_ = m.Set("late") // want `use of released handle m`
}

func releaseTwice() {
	x := borrow.New("")
	m, _ := x.BorrowMut()
	_, _ = m.Release()
	_, _ = m.Release() // want `use of released handle m`
}

func leak(x *borrow.Text) *borrow.Mut {
	m, _ := x.BorrowMut()
	return m // want `handle m escapes the function`
}

func downgrade(x *borrow.Text) (borrow.Ref, error) {
	m, _ := x.BorrowMut()
	return m.Release()
}

type holder struct{ m *borrow.Mut }

func store(x *borrow.Text, h *holder) {
	m, _ := x.BorrowMut()
	h.m = m // want `handle m escapes into a field`
}

func spawn(x *borrow.Text) {
	m, _ := x.BorrowMut()
	go func() { _ = m.Set("a") }() // want `handle m escapes into a goroutine`
}

func scoped(x *borrow.Text) {
	{
		m, _ := x.BorrowMut()
		_ = m.Set("a")
	}
	m, _ := x.BorrowMut()
	_ = m.Set("b")
}

func reborrow(x *borrow.Text) {
	m, _ := x.BorrowMut()
	_, _ = m.Release()
	m, _ = x.BorrowMut()
	_ = m.Set("again")
}

func branches(x *borrow.Text, ok bool) {
	if ok {
		m, _ := x.BorrowMut()
		_ = m.Set("a")
	} else {
		r, _ := x.Share()
		_ = r
	}
	for i := 0; i < 2; i++ {
		m, _ := x.BorrowMut()
		_, _ = m.Release()
	}
}

func deferredRelease(x *borrow.Text) {
	m, _ := x.BorrowMut()
	defer m.Release()
	_ = m.Set("a")
	r, _ := x.Share() // want `cannot share x while it is mutably borrowed`
	_ = r
}

func deferAfterRelease(x *borrow.Text) {
	m, _ := x.BorrowMut()
	_, _ = m.Release()
	defer m.Release() // want `use of released handle m`
}

func typeSwitch(x *borrow.Text, v interface{}) {
	switch v.(type) {
	case string:
		m, _ := x.BorrowMut()
		_, _ = m.Release()
		_ = m.Set("late") // want `use of released handle m`
	}
	m, _ := x.BorrowMut()
	_ = m.Set("after the switch")
}

func selects(x *borrow.Text, ch chan int) {
	select {
	case <-ch:
		m, _ := x.BorrowMut()
		m2, _ := x.BorrowMut() // want `cannot borrow x as mutable more than once at a time`
		_, _ = m, m2
	default:
		r, _ := x.Share()
		_ = r
	}
}

type lock struct{}

func (l *lock) BorrowMut() (*lock, error) { return l, nil }

func (l *lock) Share() (*lock, error) { return l, nil }

func otherReceiver() {
	l := &lock{}
	first, _ := l.BorrowMut()
	second, _ := l.BorrowMut()
	shared, _ := l.Share()
	_, _, _ = first, second, shared
}
