package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMultiLevelLoadsOnceAndCaches(t *testing.T) {
	mem := NewLRUCache(8, time.Minute)
	defer mem.Stop()
	ml := NewMultiLevel[string](mem, nil, time.Minute, time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (string, bool, error) {
		calls.Add(1)
		<-release
		return "value", true, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, found, err := ml.GetOrLoad(context.Background(), "k", load)
			if err != nil || !found || v != "value" {
				t.Errorf("GetOrLoad = %q, %v, %v", v, found, err)
			}
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n < 1 || n > 8 {
		t.Fatalf("loader calls = %d", n)
	}
	before := calls.Load()
	if _, _, err := ml.GetOrLoad(context.Background(), "k", load); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != before {
		t.Fatal("cached value was not served from memory")
	}
}

func TestMultiLevelDoesNotCacheMisses(t *testing.T) {
	mem := NewLRUCache(8, time.Minute)
	defer mem.Stop()
	ml := NewMultiLevel[string](mem, nil, time.Minute, time.Minute)

	calls := 0
	load := func(context.Context) (string, bool, error) {
		calls++
		return "", false, nil
	}
	for i := 0; i < 2; i++ {
		if _, found, err := ml.GetOrLoad(context.Background(), "absent", load); err != nil || found {
			t.Fatalf("GetOrLoad found=%v err=%v", found, err)
		}
	}
	if calls != 2 {
		t.Fatalf("loader calls = %d, want 2", calls)
	}
}

func TestMultiLevelInvalidateAndErrors(t *testing.T) {
	mem := NewLRUCache(8, time.Minute)
	defer mem.Stop()
	ml := NewMultiLevel[int](mem, nil, time.Minute, time.Minute)

	n := 0
	load := func(context.Context) (int, bool, error) {
		n++
		return n, true, nil
	}
	if v, _, _ := ml.GetOrLoad(context.Background(), "k", load); v != 1 {
		t.Fatalf("first load = %d", v)
	}
	ml.Invalidate(context.Background(), "k")
	if v, _, _ := ml.GetOrLoad(context.Background(), "k", load); v != 2 {
		t.Fatalf("load after invalidate = %d", v)
	}

	boom := errors.New("boom")
	_, _, err := ml.GetOrLoad(context.Background(), "other", func(context.Context) (int, bool, error) {
		return 0, false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestMultiLevelInvalidateDuringLoadIsNotOverwritten(t *testing.T) {
	mem := NewLRUCache(8, time.Minute)
	defer mem.Stop()
	ml := NewMultiLevel[string](mem, nil, time.Minute, time.Minute)

	read := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, _, err := ml.GetOrLoad(context.Background(), "k", func(context.Context) (string, bool, error) {
			close(read)
			<-release
			return "old", true, nil
		})
		if err != nil {
			t.Errorf("in-flight load: %v", err)
		}
		done <- v
	}()

	<-read
	ml.Invalidate(context.Background(), "k")
	close(release)
	if v := <-done; v != "old" {
		t.Fatalf("in-flight caller got %q, want old", v)
	}

	if _, ok := mem.Get("k"); ok {
		t.Fatal("stale value written back after invalidation")
	}
	v, _, err := ml.GetOrLoad(context.Background(), "k", func(context.Context) (string, bool, error) {
		return "new", true, nil
	})
	if err != nil || v != "new" {
		t.Fatalf("read after write and invalidate = %q, %v; want new", v, err)
	}
}
