package borrowcheck

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// ── Borrow walk ──────────────────────────────────────────────────────────────
//
// One walker per function body. Statements are visited in source order and
// every x.BorrowMut() result is tracked as a handle of owner x until
// m.Release() is called or the handle's scope ends.
//
// A handle ESCAPES if it is, while still unreleased:
//   1. Returned from the function
//   2. Captured by a goroutine (go stmt)
//   3. Assigned into a field of another value

const (
	methodBorrowMut = "BorrowMut"
	methodShare     = "Share"
	methodRelease   = "Release"

	borrowPkg = "borrow"
	textType  = "Text"
)

type walker struct {
	pass *analysis.Pass
	res  *Resolver
}

func checkBody(pass *analysis.Pass, body *ast.BlockStmt) {
	if body == nil {
		return
	}
	w := &walker{pass: pass, res: NewResolver()}
	for _, stmt := range body.List {
		w.stmt(stmt)
	}
}

func (w *walker) block(stmts []ast.Stmt) {
	w.res.EnterScope()
	for _, stmt := range stmts {
		w.stmt(stmt)
	}
	w.res.ExitScope()
}

func (w *walker) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {

	case *ast.AssignStmt:
		for _, rhs := range s.Rhs {
			w.expr(rhs)
		}
		for _, lhs := range s.Lhs {
			if sel, ok := lhs.(*ast.SelectorExpr); ok {
				// h.f = m  →  m escapes
				w.expr(sel.X)
				for _, rhs := range s.Rhs {
					w.escapes(rhs, "handle %s escapes into a field")
				}
			} else if _, ok := lhs.(*ast.Ident); !ok {
				w.expr(lhs)
			}
		}
		w.bind(s.Lhs, s.Rhs, s.Tok == token.DEFINE)

	case *ast.DeclStmt:
		gen, ok := s.Decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			return
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, v := range vs.Values {
				w.expr(v)
			}
			lhs := make([]ast.Expr, len(vs.Names))
			for i, n := range vs.Names {
				lhs[i] = n
			}
			w.bind(lhs, vs.Values, true)
		}

	// return m  →  m escapes
	case *ast.ReturnStmt:
		for _, r := range s.Results {
			w.expr(r)
			if _, ok := r.(*ast.Ident); ok {
				w.escapes(r, "handle %s escapes the function")
			}
		}

	// go func() { use(m) }  →  m escapes
	case *ast.GoStmt:
		w.escapes(s.Call, "handle %s escapes into a goroutine")

	// defer m.Release() runs at function exit, so m stays borrowed here
	case *ast.DeferStmt:
		if w.isHandleRelease(s.Call) {
			w.expr(s.Call.Fun.(*ast.SelectorExpr).X)
			for _, arg := range s.Call.Args {
				w.expr(arg)
			}
			return
		}
		w.expr(s.Call)
	case *ast.ExprStmt:
		w.expr(s.X)
	case *ast.IncDecStmt:
		w.expr(s.X)
	case *ast.SendStmt:
		w.expr(s.Chan)
		w.expr(s.Value)
	case *ast.LabeledStmt:
		w.stmt(s.Stmt)

	case *ast.BlockStmt:
		w.block(s.List)
	case *ast.IfStmt:
		w.res.EnterScope()
		if s.Init != nil {
			w.stmt(s.Init)
		}
		w.expr(s.Cond)
		w.block(s.Body.List)
		if s.Else != nil {
			w.stmt(s.Else)
		}
		w.res.ExitScope()
	case *ast.ForStmt:
		w.res.EnterScope()
		if s.Init != nil {
			w.stmt(s.Init)
		}
		if s.Cond != nil {
			w.expr(s.Cond)
		}
		w.block(s.Body.List)
		if s.Post != nil {
			w.stmt(s.Post)
		}
		w.res.ExitScope()
	case *ast.RangeStmt:
		w.expr(s.X)
		w.block(s.Body.List)
	case *ast.SwitchStmt:
		w.res.EnterScope()
		if s.Init != nil {
			w.stmt(s.Init)
		}
		if s.Tag != nil {
			w.expr(s.Tag)
		}
		for _, c := range s.Body.List {
			if cc, ok := c.(*ast.CaseClause); ok {
				for _, e := range cc.List {
					w.expr(e)
				}
				w.block(cc.Body)
			}
		}
		w.res.ExitScope()
	case *ast.TypeSwitchStmt:
		w.res.EnterScope()
		if s.Init != nil {
			w.stmt(s.Init)
		}
		w.stmt(s.Assign)
		for _, c := range s.Body.List {
			if cc, ok := c.(*ast.CaseClause); ok {
				w.block(cc.Body)
			}
		}
		w.res.ExitScope()
	case *ast.SelectStmt:
		for _, c := range s.Body.List {
			cc, ok := c.(*ast.CommClause)
			if !ok {
				continue
			}
			w.res.EnterScope()
			if cc.Comm != nil {
				w.stmt(cc.Comm)
			}
			w.block(cc.Body)
			w.res.ExitScope()
		}
	}
}

// bind records the names on the left of an assignment. A name bound to
// x.BorrowMut() becomes a handle; any other name declared here shadows
// whatever handle it used to refer to.
func (w *walker) bind(lhs, rhs []ast.Expr, define bool) {
	owner, isBorrow := "", false
	if len(rhs) == 1 {
		owner, isBorrow = w.borrowCall(rhs[0])
	}
	for i, l := range lhs {
		ident, ok := l.(*ast.Ident)
		if !ok || ident.Name == "_" {
			continue
		}
		sym := &Symbol{Name: ident.Name}
		if isBorrow && i == 0 {
			sym.Kind = KindHandle
			sym.Owner = owner
		}
		if !define {
			if prev, ok := w.res.Lookup(ident.Name); ok {
				*prev = *sym
				continue
			}
			if sym.Kind == KindNone {
				continue
			}
		}
		w.res.Define(ident.Name, sym)
	}
}

// expr checks an expression for borrow conflicts and released handles.
// Function literals are checked on their own and are not entered here.
func (w *walker) expr(e ast.Expr) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.SelectorExpr:
			w.expr(x.X)
			return false
		case *ast.CallExpr:
			return w.call(x)
		case *ast.Ident:
			if sym, ok := w.res.Lookup(x.Name); ok && sym.Kind == KindHandle && sym.Released {
				w.pass.Reportf(x.Pos(), "use of released handle %s", x.Name)
			}
		}
		return true
	})
}

// call handles the three borrow methods. It returns false when the call has
// been fully checked.
func (w *walker) call(c *ast.CallExpr) bool {
	sel, ok := c.Fun.(*ast.SelectorExpr)
	if !ok {
		return true
	}
	recv, ok := sel.X.(*ast.Ident)
	if !ok {
		return true
	}
	switch sel.Sel.Name {
	case methodBorrowMut:
		if !w.isText(recv) {
			return true
		}
		if _, busy := w.res.ActiveBorrow(recv.Name); busy {
			w.pass.Reportf(c.Pos(), "cannot borrow %s as mutable more than once at a time", recv.Name)
		}
	case methodShare:
		if !w.isText(recv) {
			return true
		}
		if _, busy := w.res.ActiveBorrow(recv.Name); busy {
			w.pass.Reportf(c.Pos(), "cannot share %s while it is mutably borrowed", recv.Name)
		}
	case methodRelease:
		sym, ok := w.res.Lookup(recv.Name)
		if !ok || sym.Kind != KindHandle {
			return true
		}
		if sym.Released {
			w.pass.Reportf(recv.Pos(), "use of released handle %s", recv.Name)
		}
		sym.Released = true
	default:
		return true
	}
	for _, arg := range c.Args {
		w.expr(arg)
	}
	return false
}

// escapes reports every unreleased handle mentioned in e.
func (w *walker) escapes(e ast.Node, format string) {
	ast.Inspect(e, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			ast.Inspect(sel.X, func(n ast.Node) bool {
				w.markEscaping(n, format)
				return true
			})
			return false
		}
		w.markEscaping(n, format)
		return true
	})
}

func (w *walker) markEscaping(n ast.Node, format string) {
	ident, ok := n.(*ast.Ident)
	if !ok {
		return
	}
	if sym, ok := w.res.Lookup(ident.Name); ok && sym.Kind == KindHandle && !sym.Released {
		w.pass.Reportf(ident.Pos(), format, ident.Name)
	}
}

// borrowCall reports whether e is x.BorrowMut() on a borrow.Text and
// returns x.
func (w *walker) borrowCall(e ast.Expr) (string, bool) {
	c, ok := e.(*ast.CallExpr)
	if !ok {
		return "", false
	}
	sel, ok := c.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != methodBorrowMut {
		return "", false
	}
	recv, ok := sel.X.(*ast.Ident)
	if !ok || !w.isText(recv) {
		return "", false
	}
	return recv.Name, true
}

// isHandleRelease reports whether c is m.Release() on a tracked handle.
func (w *walker) isHandleRelease(c *ast.CallExpr) bool {
	sel, ok := c.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != methodRelease {
		return false
	}
	recv, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	sym, ok := w.res.Lookup(recv.Name)
	return ok && sym.Kind == KindHandle
}

// isText reports whether e has type borrow.Text or *borrow.Text.
func (w *walker) isText(e ast.Expr) bool {
	if w.pass.TypesInfo == nil {
		return false
	}
	t := w.pass.TypesInfo.TypeOf(e)
	if t == nil {
		return false
	}
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Name() == textType && obj.Pkg() != nil && obj.Pkg().Name() == borrowPkg
}
