package vfs

import "testing"

func TestSourceCache(t *testing.T) {
	cache := NewSourceCache()

	if _, ok := cache.Get("a.sol"); ok {
		t.Error("empty cache returned an entry")
	}

	cache.Insert("a.sol", "contract A {}")
	cache.Insert("b.sol", "contract B {}")
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}

	got, ok := cache.Get("a.sol")
	if !ok || got != "contract A {}" {
		t.Errorf("Get(%q) = %q, %v", "a.sol", got, ok)
	}

	cache.Insert("a.sol", "contract A2 {}")
	got, _ = cache.Get("a.sol")
	if got != "contract A2 {}" {
		t.Errorf("Insert did not overwrite: Get = %q", got)
	}

	snapshot := cache.Snapshot()
	snapshot["a.sol"] = "mutated"
	if got, _ := cache.Get("a.sol"); got != "contract A2 {}" {
		t.Error("mutating a snapshot leaked into the cache")
	}

	seen := 0
	cache.Each(func(name, content string) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Each visited %d entries after an early stop, want 1", seen)
	}

	cache.Replace(map[string]string{"c.sol": "contract C {}"})
	if cache.Len() != 1 {
		t.Errorf("Len() after Replace = %d, want 1", cache.Len())
	}
	if _, ok := cache.Get("b.sol"); ok {
		t.Error("Replace kept a previous entry")
	}

	cache.Replace(nil)
	if cache.Len() != 0 {
		t.Errorf("Len() after Replace(nil) = %d, want 0", cache.Len())
	}
}
