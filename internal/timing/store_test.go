package timing

import (
	"sync"
	"testing"

	"github.com/patchtools/patchmon/internal/logger"
)

// newTestStore builds a store over the default method set with logging off.
func newTestStore(dir string) *Store {
	store := NewStore(dir, []string{"quilt", "git", "script"})
	store.SetLogger(logger.Noop())
	return store
}

// newBufferLogger swaps in a capturing logger and returns it.
func newBufferLogger(store *Store) *logger.BufferLogger {
	buf := logger.NewBufferLogger()
	store.SetLogger(buf)
	return buf
}

func TestStoreConcurrentRefreshAndRead(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "quilt", "1.0\n2.0\n")

	store := newTestStore(dir)
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Refresh()
				_ = store.Snapshot()
				_ = store.Get("quilt")
			}
		}()
	}

	wg.Wait()
}
