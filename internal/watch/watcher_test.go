package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const form = `{"MenuID":"M","Label":"L","Fields":[]}`

func startWatcher(t *testing.T, config Config, handler Handler) context.CancelFunc {
	t.Helper()
	w, err := New(config, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Watch(ctx, handler)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Give fsnotify time to register the watches.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestNew_RequiresPath(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected error without paths")
	}
}

func TestWatcher_ReportsChangedDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(form), 0o644); err != nil {
		t.Fatal(err)
	}

	batches := make(chan []string, 4)
	config := DefaultConfig()
	config.Paths = []string{dir}
	config.Debounce = 50 * time.Millisecond
	startWatcher(t, config, func(_ context.Context, paths []string) {
		batches <- paths
	})

	if err := os.WriteFile(path, []byte(form+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-batches:
		if diff := cmp.Diff([]string{path}, got); diff != "" {
			t.Fatalf("batch mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(time.Second):
		t.Fatal("handler not called after modification")
	}
}

func TestWatcher_SkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".draft.json")
	if err := os.WriteFile(hidden, []byte(form), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	config := DefaultConfig()
	config.Paths = []string{dir}
	config.Debounce = 30 * time.Millisecond
	startWatcher(t, config, func(context.Context, []string) { calls.Add(1) })

	if err := os.WriteFile(hidden, []byte(form+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("handler called %d times for hidden file", n)
	}
}

func TestWatcher_DoubleStart(t *testing.T) {
	config := DefaultConfig()
	config.Paths = []string{t.TempDir()}
	w, err := New(config, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Watch(ctx, func(context.Context, []string) {})
	}()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(context.Background(), func(context.Context, []string) {}); !errors.Is(err, ErrRunning) {
		t.Fatalf("second Watch() error = %v, want ErrRunning", err)
	}
	cancel()
	<-done
}

func TestDebouncer_CoalescesPaths(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	defer d.Stop()

	var (
		mu      sync.Mutex
		batches [][]string
	)
	record := func(paths []string) {
		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()
	}

	for _, p := range []string{"b.json", "a.json", "b.json", "c.yaml"} {
		d.Add(p, record)
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	want := [][]string{{"a.json", "b.json", "c.yaml"}}
	if diff := cmp.Diff(want, batches); diff != "" {
		t.Fatalf("batches mismatch (-want +got):\n%s", diff)
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	d.Add("a.json", func([]string) { calls.Add(1) })
	d.Stop()
	d.Add("b.json", func([]string) { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if n := calls.Load(); n != 0 {
		t.Fatalf("flush called %d times after Stop", n)
	}
}
