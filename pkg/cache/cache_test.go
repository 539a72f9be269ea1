package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTimed(t *testing.T) {
	c := NewTimed[[]byte](5 * time.Minute)

	tstart := time.Now()

	c.set("key", []byte("value"), tstart)

	got, ok := c.get("key", tstart.Add(time.Minute))
	if !ok {
		t.Errorf("failed to get key that should not be expired")
	}
	if string(got) != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}

	_, ok = c.get("key", tstart.Add(10*time.Minute))
	if ok {
		t.Errorf("succeeded in getting expired key")
	}

	_, ok = c.get("key", tstart.Add(time.Minute))
	if ok {
		t.Errorf("succeeded in getting key that was previously evicted")
	}
}

func TestPurge(t *testing.T) {
	c := NewTimed[int](time.Hour)
	tstart := time.Now()

	c.set("old", 1, tstart)
	c.set("new", 2, tstart.Add(30*time.Minute))

	if n := c.purge(tstart.Add(45 * time.Minute)); n != 2 {
		t.Errorf("purged fresh keys, %d left", n)
	}
	if n := c.purge(tstart.Add(80 * time.Minute)); n != 1 {
		t.Errorf("%d keys left after the first expired, want 1", n)
	}
	if _, ok := c.get("new", tstart.Add(80*time.Minute)); !ok {
		t.Errorf("purge dropped an unexpired key")
	}

	c.set("stale", 3, tstart)
	if n := c.Len(); n != 2 {
		t.Errorf("Len is %d before expired keys are swept, want 2", n)
	}
}

func TestConcurrentUse(t *testing.T) {
	c := NewTimed[string](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprint(j % 10)
				c.Set(key, fmt.Sprint(i))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if n := c.Purge(); n != 10 {
		t.Errorf("got %d keys, want 10", n)
	}
}
