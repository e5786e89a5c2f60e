package borrowcheck

import "testing"

func TestActiveBorrowScopes(t *testing.T) {
	r := NewResolver()
	r.Define("m", &Symbol{Name: "m", Kind: KindHandle, Owner: "x"})

	if _, ok := r.ActiveBorrow("x"); !ok {
		t.Fatal("expected an active borrow of x")
	}

	r.EnterScope()
	// an inner m that is not a handle hides the outer one
	r.Define("m", &Symbol{Name: "m"})
	if _, ok := r.ActiveBorrow("x"); ok {
		t.Fatal("shadowed handle still counted")
	}
	r.Define("n", &Symbol{Name: "n", Kind: KindHandle, Owner: "y"})
	r.ExitScope()

	if _, ok := r.ActiveBorrow("y"); ok {
		t.Fatal("handle outlived its scope")
	}
	sym, ok := r.Lookup("m")
	if !ok || sym.Kind != KindHandle {
		t.Fatal("outer handle not visible after ExitScope")
	}

	sym.Released = true
	if _, ok := r.ActiveBorrow("x"); ok {
		t.Fatal("released handle counted as active")
	}
}

func TestExitGlobalScope(t *testing.T) {
	r := NewResolver()
	r.ExitScope()
	if r.Current != r.Global {
		t.Fatal("ExitScope left the global scope")
	}
}
