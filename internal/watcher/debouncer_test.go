package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{
		Path:      "test.go",
		Operation: OpCreate,
		Timestamp: time.Now(),
	})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, "test.go", events[0].Path)
		assert.Equal(t, OpCreate, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_MultipleEventsForSameFile_Coalesces(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(FileEvent{
			Path:      "test.go",
			Operation: OpModify,
			Timestamp: time.Now(),
		})
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, "test.go", events[0].Path)
		assert.Equal(t, OpModify, events[0].Operation)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for debounced events")
	}
}

func TestDebouncer_CreateThenDelete_DeleteWins(t *testing.T) {
	// Deleted outranks Created: a file that was created and deleted within
	// the window still needs its (possibly stale) document removed.
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "temp.go", Operation: OpCreate, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "temp.go", Operation: OpDelete, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpDelete, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_ModifyThenDelete_DeleteWins(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "existing.go", Operation: OpModify, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "existing.go", Operation: OpDelete, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpDelete, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_DeleteThenCreate_DeleteWins(t *testing.T) {
	// Even though Create arrives last, Deleted still outranks it.
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "replaced.go", Operation: OpDelete, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "replaced.go", Operation: OpCreate, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpDelete, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_CreateThenModify_ModifyWins(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "new.go", Operation: OpCreate, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "new.go", Operation: OpModify, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpModify, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_RenameOutranksModifyAndCreate(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "moved.go", Operation: OpCreate, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "moved.go", Operation: OpModify, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "moved.go", Operation: OpRename, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpRename, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_DeleteOutranksRename(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "gone.go", Operation: OpRename, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "gone.go", Operation: OpDelete, Timestamp: time.Now()})

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, OpDelete, events[0].Operation)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for debounced event")
	}
}

func TestDebouncer_DifferentFiles_IndependentEvents(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "a.go", Operation: OpCreate, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "b.go", Operation: OpModify, Timestamp: time.Now()})
	d.Add(FileEvent{Path: "c.go", Operation: OpDelete, Timestamp: time.Now()})

	paths := make(map[string]Operation)
	for len(paths) < 3 {
		select {
		case events := <-d.Output():
			for _, e := range events {
				paths[e.Path] = e.Operation
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatal("timeout waiting for debounced events")
		}
	}
	assert.Equal(t, OpCreate, paths["a.go"])
	assert.Equal(t, OpModify, paths["b.go"])
	assert.Equal(t, OpDelete, paths["c.go"])
}

func TestDebouncer_BusyPathDoesNotStarveQuietPath(t *testing.T) {
	// A continuous stream of events on "busy.go" keeps resetting its own
	// timer, but must never delay the flush of "quiet.go", which only ever
	// sees a single event. Per-path timers guarantee this; a single
	// Debouncer-wide timer would not.
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "quiet.go", Operation: OpModify, Timestamp: time.Now()})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				d.Add(FileEvent{Path: "busy.go", Operation: OpModify, Timestamp: time.Now()})
			}
		}
	}()
	defer func() {
		close(stop)
		<-done
	}()

	select {
	case events := <-d.Output():
		require.Len(t, events, 1)
		assert.Equal(t, "quiet.go", events[0].Path)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("busy.go starved quiet.go's flush")
	}
}

func TestDebouncer_Stop_ClosesOutput(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	d.Stop()

	select {
	case _, ok := <-d.Output():
		assert.False(t, ok, "channel should be closed")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for channel close")
	}
}
