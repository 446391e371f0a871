package xdom

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

// assertEqual fails t when got != want. Strings are reported as a unified
// line-by-line diff; everything else is compared and reported as
// spew.Sdump dumps of both sides.
func assertEqual(t *testing.T, got, want any, msg string) {
	t.Helper()
	gs, gok := got.(string)
	ws, wok := want.(string)
	if gok && wok {
		if gs == ws {
			return
		}
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(ws),
			B:        difflib.SplitLines(gs),
			FromFile: "want",
			ToFile:   "got",
			Context:  2,
		})
		t.Fatalf("%s:\n%s", msg, diff)
		return
	}
	if spew.Sdump(got) != spew.Sdump(want) {
		t.Fatalf("%s:\ngot:  %s\nwant: %s", msg, spew.Sdump(got), spew.Sdump(want))
	}
}
