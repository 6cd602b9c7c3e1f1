package ingestprogress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_StartsIdle(t *testing.T) {
	tr := New()
	snap := tr.Snapshot()
	assert.Equal(t, string(StatusIdle), snap.Status)
	assert.False(t, tr.IsIngesting())
}

func TestTracker_StartMovesToIngestingAndScanning(t *testing.T) {
	tr := New()
	tr.Start()

	snap := tr.Snapshot()
	assert.Equal(t, string(StatusIngesting), snap.Status)
	assert.Equal(t, string(StageScanning), snap.Stage)
	assert.True(t, tr.IsIngesting())
}

func TestTracker_SetTotalAdvancesToProcessing(t *testing.T) {
	tr := New()
	tr.Start()
	tr.SetTotal(10)

	snap := tr.Snapshot()
	assert.Equal(t, string(StageProcessing), snap.Stage)
	assert.Equal(t, 10, snap.FilesTotal)
}

func TestTracker_AdvanceComputesProgressPercentage(t *testing.T) {
	tr := New()
	tr.Start()
	tr.SetTotal(4)
	tr.Advance(1)

	snap := tr.Snapshot()
	assert.Equal(t, 25.0, snap.ProgressPct)
}

func TestTracker_DoneTransitionsToReady(t *testing.T) {
	tr := New()
	tr.Start()
	tr.SetTotal(1)
	tr.Advance(1)
	tr.Done()

	snap := tr.Snapshot()
	assert.Equal(t, string(StatusReady), snap.Status)
	assert.False(t, tr.IsIngesting())
}

func TestTracker_FailRecordsErrorMessage(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Fail("disk full")

	snap := tr.Snapshot()
	assert.Equal(t, string(StatusError), snap.Status)
	assert.Equal(t, "disk full", snap.ErrorMessage)
}

func TestTracker_RestartResetsPriorError(t *testing.T) {
	tr := New()
	tr.Start()
	tr.Fail("boom")
	tr.Start()

	snap := tr.Snapshot()
	assert.Equal(t, string(StatusIngesting), snap.Status)
	assert.Empty(t, snap.ErrorMessage)
}
