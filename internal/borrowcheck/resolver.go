package borrowcheck

type SymbolKind int

const (
	KindNone SymbolKind = iota
	KindHandle
)

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Owner    string // receiver name of the BorrowMut call that made it
	Released bool
}

type Scope struct {
	Parent  *Scope
	Symbols map[string]*Symbol
}

// Resolver tracks which handles are visible while a function body is walked.
// A handle that goes out of scope ends its borrow.
type Resolver struct {
	Global  *Scope
	Current *Scope
}

func NewResolver() *Resolver {
	global := &Scope{Symbols: make(map[string]*Symbol)}
	return &Resolver{
		Global:  global,
		Current: global,
	}
}

func (r *Resolver) EnterScope() {
	r.Current = &Scope{
		Parent:  r.Current,
		Symbols: make(map[string]*Symbol),
	}
}

func (r *Resolver) ExitScope() {
	if r.Current.Parent != nil {
		r.Current = r.Current.Parent
	}
}

func (r *Resolver) Define(name string, sym *Symbol) {
	r.Current.Symbols[name] = sym
}

func (r *Resolver) Lookup(name string) (*Symbol, bool) {
	curr := r.Current
	for curr != nil {
		if sym, ok := curr.Symbols[name]; ok {
			return sym, true
		}
		curr = curr.Parent
	}
	return nil, false
}

// ActiveBorrow returns the unreleased handle borrowed from owner, if any.
// Inner scopes shadow outer ones the same way Lookup does.
func (r *Resolver) ActiveBorrow(owner string) (*Symbol, bool) {
	shadowed := make(map[string]bool)
	for curr := r.Current; curr != nil; curr = curr.Parent {
		for name, sym := range curr.Symbols {
			if shadowed[name] {
				continue
			}
			shadowed[name] = true
			if sym.Kind == KindHandle && sym.Owner == owner && !sym.Released {
				return sym, true
			}
		}
	}
	return nil, false
}
