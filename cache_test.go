package xdom

import "testing"

func TestDisableSelectorCacheBypassesCache(t *testing.T) {
	prev := DisableSelectorCache
	DisableSelectorCache = true
	defer func() { DisableSelectorCache = prev }()

	a, err := getCompiledExpr("//book[@id]")
	if err != nil {
		t.Fatal(err)
	}
	b, err := getCompiledExpr("//book[@id]")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected a fresh parse each call when caching is disabled")
	}
}

func TestSelectorCacheReturnsSamePointer(t *testing.T) {
	prev := DisableSelectorCache
	DisableSelectorCache = false
	defer func() { DisableSelectorCache = prev }()

	a, err := getCompiledExpr("//title[text()]")
	if err != nil {
		t.Fatal(err)
	}
	b, err := getCompiledExpr("//title[text()]")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("expected the cache to return the same compiled expression pointer")
	}
}

func TestSelectorCacheDistinctExpressions(t *testing.T) {
	prev := DisableSelectorCache
	DisableSelectorCache = false
	defer func() { DisableSelectorCache = prev }()

	a, err := getCompiledExpr("//a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := getCompiledExpr("//b")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("distinct expressions should not share a compiled pointer")
	}
}
