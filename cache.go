package xdom

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DisableSelectorCache turns off caching of compiled XPath expressions.
// Exposed for tests and for callers evaluating huge numbers of distinct,
// one-shot expressions where the cache would only add overhead.
var DisableSelectorCache = false

// SelectorCacheMaxEntries bounds the compiled-expression cache. Zero means
// unbounded (groupcache/lru's own default for Cache.MaxEntries).
var SelectorCacheMaxEntries = 256

var (
	cacheMu    sync.Mutex
	exprCache  *lru.Cache
)

func getCompiledExpr(source string) (*expr, error) {
	if DisableSelectorCache {
		return parseXPath(source)
	}

	cacheMu.Lock()
	if exprCache == nil {
		exprCache = lru.New(SelectorCacheMaxEntries)
	}
	if v, ok := exprCache.Get(source); ok {
		cacheMu.Unlock()
		return v.(*expr), nil
	}
	cacheMu.Unlock()

	compiled, err := parseXPath(source)
	if err != nil {
		return nil, err
	}

	cacheMu.Lock()
	exprCache.Add(source, compiled)
	cacheMu.Unlock()
	return compiled, nil
}
