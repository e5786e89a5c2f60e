// borrowcheck reports borrow rule violations on borrow.Text values.
//
//	borrowcheck ./...
//	go vet -vettool=$(which borrowcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/v4rm4n/ownership/internal/borrowcheck"
)

func main() { singlechecker.Main(borrowcheck.Analyzer) }
