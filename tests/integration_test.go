package tests

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshala334/virtual-office/internal/api"
	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/media"
	"github.com/harshala334/virtual-office/internal/meetingcode"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/notify"
	"github.com/harshala334/virtual-office/internal/presence"
	"github.com/harshala334/virtual-office/internal/repository/memory"
	"github.com/harshala334/virtual-office/internal/service"
	"github.com/harshala334/virtual-office/internal/web"
)

// TestEventCallback captures room update callbacks
type TestEventCallback struct {
	mu     sync.RWMutex
	events []CallbackEvent
}

type CallbackEvent struct {
	Room      *models.Room
	Timestamp time.Time
}

func (t *TestEventCallback) OnRoomUpdate(room *models.Room) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, CallbackEvent{
		Room:      room,
		Timestamp: time.Now(),
	})
}

func (t *TestEventCallback) GetEvents() []CallbackEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()
	events := make([]CallbackEvent, len(t.events))
	copy(events, t.events)
	return events
}

func (t *TestEventCallback) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
}

func (t *TestEventCallback) WaitForEvents(count int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		t.mu.RLock()
		current := len(t.events)
		t.mu.RUnlock()
		if current >= count {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// IntegrationTestSuite contains the complete application setup for integration testing
type IntegrationTestSuite struct {
	repo       *memory.Repository
	store      *service.RoomStore
	meeting    *service.MeetingState
	session    *service.SessionController
	bus        *presence.MemoryBus
	sseManager *web.SSEManager
	server     *httptest.Server
	callback   *TestEventCallback
}

func setupIntegrationTest(t *testing.T, policy config.PolicyConfig) *IntegrationTestSuite {
	// Create in-memory repository and load the directory
	repo := memory.NewRepository()
	store := service.NewRoomStore(repo, policy)
	require.NoError(t, store.Load(context.Background()))

	// Create test callback
	callback := &TestEventCallback{}
	store.RegisterUpdateCallback(callback.OnRoomUpdate)

	// Wire the session over an in-process presence bus
	bus := presence.NewMemoryBus()
	notifier := notify.LogNotifier{}
	meeting := service.NewMeetingState(media.NewSimulatedProvider(), notifier)
	syncer := presence.NewSynchronizer(bus, "tab-primary")
	session := service.NewSessionController(store, meeting, syncer, notifier, policy, nil)

	// Register SSE callback
	sseManager := web.NewSSEManager(store)
	store.RegisterUpdateCallback(sseManager.NotifyRoomUpdate)

	// Set up routes
	mux := api.SetupRoutes(repo, store, session, meeting)
	mux.Handle("/events", sseManager)

	// Create test server
	server := httptest.NewServer(mux)

	return &IntegrationTestSuite{
		repo:       repo,
		store:      store,
		meeting:    meeting,
		session:    session,
		bus:        bus,
		sseManager: sseManager,
		server:     server,
		callback:   callback,
	}
}

func (suite *IntegrationTestSuite) Close() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.sseManager != nil {
		suite.sseManager.Close()
	}
}

func (suite *IntegrationTestSuite) postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}

	resp, err := http.Post(suite.server.URL+path, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decodeRoom(t *testing.T, resp *http.Response) *models.Room {
	defer resp.Body.Close()
	var room models.Room
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&room))
	return &room
}

// TestCompleteWorkflow exercises the directory and session over HTTP
func TestCompleteWorkflow(t *testing.T) {
	suite := setupIntegrationTest(t, config.PolicyConfig{})
	defer suite.Close()

	var roomID string

	t.Run("Create Room", func(t *testing.T) {
		suite.callback.Clear()

		resp := suite.postJSON(t, "/api/rooms", map[string]interface{}{
			"name":        "Integration Test Room",
			"capacity":    4,
			"description": "Created during integration testing",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		room := decodeRoom(t, resp)

		assert.Equal(t, "Integration Test Room", room.Name)
		assert.NotEmpty(t, room.ID)
		roomID = room.ID

		// Callback fired for the new room
		assert.True(t, suite.callback.WaitForEvents(1, time.Second*2))
		events := suite.callback.GetEvents()
		require.NotEmpty(t, events)
		assert.Equal(t, roomID, events[0].Room.ID)

		// The snapshot in storage contains the new room but not the default
		persisted, err := suite.repo.LoadRooms(context.Background())
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.Equal(t, roomID, persisted[0].ID)
	})

	t.Run("Join Room", func(t *testing.T) {
		suite.callback.Clear()

		resp := suite.postJSON(t, "/api/session/join", map[string]string{"roomId": roomID})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		room := decodeRoom(t, resp)

		assert.Equal(t, []string{models.LocalParticipantName}, room.Participants)
		assert.True(t, room.IsOccupied)
		assert.Equal(t, roomID, suite.session.ActiveRoomID())

		// The join was persisted
		persisted, err := suite.repo.LoadRooms(context.Background())
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.True(t, persisted[0].HasParticipant(models.LocalParticipantName))
	})

	t.Run("Meeting Code Round Trip", func(t *testing.T) {
		resp, err := http.Get(suite.server.URL + "/api/session")
		require.NoError(t, err)
		defer resp.Body.Close()

		var state map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		assert.Equal(t, roomID, state["activeRoomId"])

		verified, err := meetingcode.Verify(state["meetingCode"])
		require.NoError(t, err)
		assert.Equal(t, roomID, verified)
	})

	t.Run("Toggle Media", func(t *testing.T) {
		resp := suite.postJSON(t, "/api/meeting/audio", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var view struct {
			Local models.Participant `json:"local"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		resp.Body.Close()

		assert.False(t, view.Local.IsAudioOn)
		assert.True(t, view.Local.IsVideoOn)
	})

	t.Run("Leave Room", func(t *testing.T) {
		resp := suite.postJSON(t, "/api/session/leave", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		assert.Empty(t, suite.session.ActiveRoomID())

		// The room survives with nobody in it
		persisted, err := suite.repo.LoadRooms(context.Background())
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.False(t, persisted[0].IsOccupied)
		assert.Empty(t, persisted[0].Participants)
	})
}

// TestPresenceAcrossContexts verifies that two sessions sharing a presence
// bus see each other's participants
func TestPresenceAcrossContexts(t *testing.T) {
	suite := setupIntegrationTest(t, config.PolicyConfig{})
	defer suite.Close()

	ctx := context.Background()

	room, err := suite.store.Create(ctx, service.CreateRoomInput{Name: "Shared Room", Capacity: 8})
	require.NoError(t, err)

	// A second context joins the same bus, sharing the directory
	otherNotifier := notify.LogNotifier{}
	otherMeeting := service.NewMeetingState(media.NewSimulatedProvider(), otherNotifier)
	otherSyncer := presence.NewSynchronizer(suite.bus, "tab-secondary")
	otherSession := service.NewSessionController(suite.store, otherMeeting, otherSyncer, otherNotifier, config.PolicyConfig{}, nil)

	_, err = suite.session.Join(ctx, room.ID)
	require.NoError(t, err)

	_, err = otherSession.Join(ctx, room.ID)
	require.NoError(t, err)

	// The first session heard the second one's join announcement
	roster := suite.meeting.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, models.LocalParticipantName, roster[0].Name)
	assert.Equal(t, models.LocalParticipantName, roster[1].Name)
	assert.NotEqual(t, roster[0].ID, roster[1].ID)

	// The second session only knows itself; it joined after the
	// first announcement went out
	assert.Len(t, otherMeeting.Roster(), 1)

	// Leaving drops the announcement channel without touching rosters
	require.NoError(t, otherSession.Leave(ctx))
	assert.Empty(t, otherSession.ActiveRoomID())
}

// TestSimulatedPeersJoin verifies the fabricated remote participants arrive
// after the configured delay
func TestSimulatedPeersJoin(t *testing.T) {
	policy := config.PolicyConfig{SimulatePeers: true, PeerDelay: 20 * time.Millisecond}

	repo := memory.NewRepository()
	store := service.NewRoomStore(repo, policy)
	require.NoError(t, store.Load(context.Background()))

	bus := presence.NewMemoryBus()
	notifier := notify.LogNotifier{}
	meeting := service.NewMeetingState(media.NewSimulatedProvider(), notifier)
	syncer := presence.NewSynchronizer(bus, "tab-sim")
	simulator := presence.NewSimulator(bus, policy.PeerDelay)
	session := service.NewSessionController(store, meeting, syncer, notifier, policy, simulator)

	_, err := session.Join(context.Background(), models.DefaultRoomID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(meeting.Roster()) == 3
	}, time.Second*2, 10*time.Millisecond)

	names := []string{}
	for _, p := range meeting.Roster() {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Pratima")
	assert.Contains(t, names, "Pratima@gmail.com")

	require.NoError(t, session.Leave(context.Background()))
}

// TestSSEStreamDeliversUpdates subscribes to the event stream and verifies
// that a directory change is pushed out
func TestSSEStreamDeliversUpdates(t *testing.T) {
	suite := setupIntegrationTest(t, config.PolicyConfig{})
	defer suite.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, suite.server.URL+"/events?stream=rooms", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	// Give the subscription a moment to register before triggering a change
	time.Sleep(100 * time.Millisecond)

	resp2 := suite.postJSON(t, "/api/rooms", map[string]interface{}{
		"name":     "Streamed Room",
		"capacity": 3,
	})
	require.Equal(t, http.StatusCreated, resp2.StatusCode)
	resp2.Body.Close()

	sawUpdate := false
	deadline := time.After(3 * time.Second)
	for !sawUpdate {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("event stream closed before an update arrived")
			}
			if strings.HasPrefix(line, "data:") && strings.Contains(line, "Streamed Room") {
				sawUpdate = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for SSE update")
		}
	}
}
