package calc

import (
	"errors"
	"testing"
)

func TestCachedEvaluatorHitsAndMisses(t *testing.T) {
	cache, err := NewResultCache(8)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	calls := 0
	next := EvaluatorFunc(func(expr string) (string, error) {
		calls++
		return Evaluate(expr)
	})
	e := NewCachedEvaluator(cache, next)

	for i := 0; i < 3; i++ {
		got, err := e.Evaluate("6*7")
		if err != nil || got != "42" {
			t.Fatalf("Evaluate(6*7) = %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 evaluation, got %d", calls)
	}

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("Expected 2 hits / 1 miss, got %d / %d", stats.Hits, stats.Misses)
	}
	if stats.Size != 1 || stats.MaxSize != 8 {
		t.Errorf("Expected size 1 of 8, got %d of %d", stats.Size, stats.MaxSize)
	}
}

func TestCachedEvaluatorKeepsErrors(t *testing.T) {
	cache, _ := NewResultCache(4)
	e := NewCachedEvaluator(cache, nil)

	for i := 0; i < 2; i++ {
		if _, err := e.Evaluate("1/0"); !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("Expected ErrDivisionByZero, got %v", err)
		}
	}
	if cache.Stats().Hits != 1 {
		t.Errorf("Expected cached failure to be a hit")
	}
}

func TestResultCacheEvictsAndPurges(t *testing.T) {
	cache, _ := NewResultCache(2)
	e := NewCachedEvaluator(cache, nil)

	e.Evaluate("1+1")
	e.Evaluate("2+2")
	e.Evaluate("3+3")
	if cache.Stats().Size != 2 {
		t.Errorf("Expected size 2 after eviction, got %d", cache.Stats().Size)
	}

	cache.Purge()
	stats := cache.Stats()
	if stats.Size != 0 || stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("Expected empty stats after purge, got %+v", stats)
	}
}

func TestControllerWithCache(t *testing.T) {
	cache, _ := NewResultCache(0)
	d := NewBufferDisplay()
	c := NewController(d, nil, NewCachedEvaluator(cache, nil))

	d.SetText("(3+4)*2")
	c.OnEvaluate()
	if d.Text() != "14" {
		t.Errorf("Expected 14, got %q", d.Text())
	}
	if cache.Stats().MaxSize != 128 {
		t.Errorf("Expected default size 128, got %d", cache.Stats().MaxSize)
	}
}
