package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/patelshaan/imposter/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Identity is client-asserted anyway, so there is nothing origin
	// checking would protect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// WatchRoom godoc
// @Summary      Stream room snapshots over a websocket
// @Description  Sends the current room state immediately, then a fresh full snapshot after every committed change by any member. The socket closes when the room is deleted.
// @Tags         rooms
// @Param        code path string true "Room code"
// @Success      101 {string} string "Switching Protocols"
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{code}/watch [get]
func (h *RoomHandler) WatchRoom(c *gin.Context) {
	code := c.Param("code")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	snapshots := make(chan *models.Room, 16)
	errs := make(chan error, 1)

	sub, err := h.service.Watch(c.Request.Context(), code,
		func(room *models.Room) {
			// Non-blocking: a stalled socket must never block the
			// subscription's delivery goroutine.
			select {
			case snapshots <- room:
			default:
			}
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	if err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	defer sub.Cancel()
	defer conn.Close()

	// Reader goroutine only to detect the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case room := <-snapshots:
			if room == nil {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "room deleted"),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(newRoomResponse(room)); err != nil {
				return
			}

		case err := <-errs:
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()),
				time.Now().Add(writeWait))
			return

		case <-closed:
			return
		}
	}
}
