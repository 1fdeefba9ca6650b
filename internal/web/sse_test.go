package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harshala334/virtual-office/internal/models"
	"github.com/stretchr/testify/assert"
)

// stubDirectory returns a fixed set of rooms
type stubDirectory struct {
	rooms []*models.Room
	calls int
}

func (d *stubDirectory) Rooms() []*models.Room {
	d.calls++
	return d.rooms
}

func TestNewSSEManager(t *testing.T) {
	directory := &stubDirectory{}

	sseManager := NewSSEManager(directory)
	defer sseManager.Close()

	assert.NotNil(t, sseManager)
	assert.NotNil(t, sseManager.server)
	assert.Equal(t, directory, sseManager.directory)
}

func TestSSEServeHTTP_CORSPreflight(t *testing.T) {
	directory := &stubDirectory{}

	sseManager := NewSSEManager(directory)
	defer sseManager.Close()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/events", nil)

	sseManager.ServeHTTP(recorder, request)

	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", recorder.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET, OPTIONS", recorder.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestNotifyRoomUpdate(t *testing.T) {
	room := models.NewDefaultRoom()
	directory := &stubDirectory{rooms: []*models.Room{room}}

	sseManager := NewSSEManager(directory)
	defer sseManager.Close()

	// Publishing with no subscribers should still read the directory snapshot
	sseManager.NotifyRoomUpdate(room)

	assert.Equal(t, 1, directory.calls)
}
