package borrowcheck_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/v4rm4n/ownership/internal/borrowcheck"
)

func TestAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), borrowcheck.Analyzer, "a")
}
