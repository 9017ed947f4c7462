package cache

import (
	"sync"
	"testing"
)

func TestCacheMetrics_Counters(t *testing.T) {
	metrics := NewCacheMetrics()

	if metrics.GetStats().Hits != 0 {
		t.Errorf("Expected 0 hits, got %d", metrics.GetStats().Hits)
	}

	// One cold board read, then two warm ones and an invalidation.
	metrics.RecordMiss()
	metrics.RecordSet()
	metrics.RecordHit()
	metrics.RecordHit()
	metrics.RecordDelete()
	metrics.RecordError()

	stats := metrics.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Expected 1 set, got %d", stats.Sets)
	}
	if stats.Deletes != 1 {
		t.Errorf("Expected 1 delete, got %d", stats.Deletes)
	}
	if stats.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", stats.Errors)
	}

	metrics.Reset()
	stats = metrics.GetStats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Error("Expected metrics to be reset to 0")
	}
}

func TestCacheMetrics_HitRate(t *testing.T) {
	metrics := NewCacheMetrics()

	if metrics.HitRate() != 0.0 {
		t.Errorf("Expected 0%% hit rate with no operations, got %.2f%%", metrics.HitRate())
	}

	metrics.RecordHit()
	metrics.RecordHit()
	if metrics.HitRate() != 100.0 {
		t.Errorf("Expected 100%% hit rate, got %.2f%%", metrics.HitRate())
	}

	metrics.RecordMiss()
	expectedRate := 66.67
	hitRate := metrics.HitRate()
	if hitRate < expectedRate-0.1 || hitRate > expectedRate+0.1 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expectedRate, hitRate)
	}
}

func TestCacheMetrics_Concurrency(t *testing.T) {
	metrics := NewCacheMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				metrics.RecordHit()
				metrics.RecordMiss()
				metrics.RecordSet()
			}
		}()
	}
	wg.Wait()

	stats := metrics.GetStats()
	expected := int64(2000)
	if stats.Hits != expected {
		t.Errorf("Expected %d hits, got %d", expected, stats.Hits)
	}
	if stats.Misses != expected {
		t.Errorf("Expected %d misses, got %d", expected, stats.Misses)
	}
	if stats.Sets != expected {
		t.Errorf("Expected %d sets, got %d", expected, stats.Sets)
	}
}
