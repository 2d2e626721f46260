package schedulers

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_StartStop(t *testing.T) {
	var rounds int32
	worker := NewWorker(time.Millisecond*10, func() {
		atomic.AddInt32(&rounds, 1)
	})

	assert.Equal(t, StateStopped, worker.State())

	require.NoError(t, worker.Start())
	assert.Equal(t, StateRunning, worker.State())

	// double start is rejected
	assert.ErrorIs(t, worker.Start(), ErrAlreadyRunning)

	time.Sleep(time.Millisecond * 35)
	worker.Stop()
	assert.Equal(t, StateStopped, worker.State())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&rounds), int32(2))

	// stopping a stopped worker is a no-op
	worker.Stop()
	assert.Equal(t, StateStopped, worker.State())
}

func TestWorker_StopDrainsInflightRound(t *testing.T) {
	entered := make(chan bool)
	var finished int32
	worker := NewWorker(time.Hour, func() {
		select {
		case entered <- true:
		default:
		}
		time.Sleep(time.Millisecond * 50)
		atomic.StoreInt32(&finished, 1)
	})

	require.NoError(t, worker.Start())
	<-entered

	worker.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&finished), "Stop must wait for the in-flight round")
	assert.Equal(t, StateStopped, worker.State())
}

func TestWorker_Restart(t *testing.T) {
	var rounds int32
	worker := NewWorker(time.Millisecond*5, func() {
		atomic.AddInt32(&rounds, 1)
	})

	require.NoError(t, worker.Start())
	worker.Stop()

	before := atomic.LoadInt32(&rounds)
	require.NoError(t, worker.Start())
	time.Sleep(time.Millisecond * 12)
	worker.Stop()
	assert.Greater(t, atomic.LoadInt32(&rounds), before)
}
