package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn mencatat pesan yang diterima dan bisa dipaksa gagal menulis.
type fakeConn struct {
	mu     sync.Mutex
	writes int
	fail   bool
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write failed")
	}
	f.writes++
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeConn) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestPublishDeliversEvent(t *testing.T) {
	hub := NewHub()
	hub.Publish(TaskEvent{Event: "created", TaskID: 7, Title: "Buy milk"})

	payload := <-hub.Broadcast
	var event TaskEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "created", event.Event)
	assert.Equal(t, 7, event.TaskID)
	assert.Equal(t, "Buy milk", event.Title)
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	hub := NewHub()
	// jauh melebihi kapasitas buffer; Publish harus tetap kembali
	for i := 0; i < 100; i++ {
		hub.Publish(TaskEvent{Event: "updated", TaskID: i})
	}

	payload := <-hub.Broadcast
	var event TaskEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, 0, event.TaskID)
}

func TestRunDropsFailingClientAndKeepsDelivering(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	bad := &fakeConn{fail: true}
	good := &fakeConn{}
	hub.Register <- &Client{Conn: bad}
	hub.Register <- &Client{Conn: good}

	hub.Publish(TaskEvent{Event: "created", TaskID: 1, Title: "first"})
	require.Eventually(t, func() bool { return good.writeCount() == 1 },
		time.Second, 10*time.Millisecond)

	// write yang gagal tidak boleh menghentikan loop hub:
	// broadcast berikutnya tetap sampai ke klien yang masih hidup
	hub.Publish(TaskEvent{Event: "deleted", TaskID: 1})
	require.Eventually(t, func() bool { return good.writeCount() == 2 },
		time.Second, 10*time.Millisecond)
	assert.True(t, bad.wasClosed())
}
