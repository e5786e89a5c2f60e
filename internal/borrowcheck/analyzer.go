// Package borrowcheck reports code that breaks the borrow rules of
// internal/borrow before it runs: two live exclusive handles on one value,
// sharing a value while it is exclusively borrowed, using a handle after
// Release, and letting an unreleased handle escape its function.
//
// Only receivers whose type is borrow.Text (or a pointer to it) start a
// borrow. Handles are followed on plain identifiers within one function; they
// are not tracked through struct fields or across calls.
package borrowcheck

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const Doc = `check exclusive and shared borrows of borrow.Text values

Reports a second BorrowMut on a value whose first handle was not released,
Share on a mutably borrowed value, any use of a handle after Release, and
unreleased handles that are returned, stored in a field or captured by a
goroutine.`

var Analyzer = &analysis.Analyzer{
	Name:     "borrowcheck",
	Doc:      Doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.FuncDecl)(nil),
		(*ast.FuncLit)(nil),
	}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			checkBody(pass, fn.Body)
		case *ast.FuncLit:
			checkBody(pass, fn.Body)
		}
	})
	return nil, nil
}
