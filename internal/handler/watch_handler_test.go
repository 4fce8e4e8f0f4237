package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRoom_StreamsSnapshots(t *testing.T) {
	router := setupRouter(t)
	room := createRoom(t, router, "alice", "Alice")

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/rooms/" + room.Code + "/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The current state arrives immediately.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var initial RoomResponse
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, room.Code, initial.Code)
	assert.Len(t, initial.Players, 1)

	// A commit by another member pushes a fresh snapshot.
	w := doJSON(t, router, http.MethodPost, "/api/v1/rooms/"+room.Code+"/join", "bob", `{"name":"Bob"}`)
	require.Equal(t, http.StatusOK, w.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var after RoomResponse
	require.NoError(t, conn.ReadJSON(&after))
	assert.Len(t, after.Players, 2)
}

func TestWatchRoom_UnknownRoomClosesSocket(t *testing.T) {
	router := setupRouter(t)

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/rooms/ZZZZZZ/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "socket closes with a policy violation for unknown rooms")
}
