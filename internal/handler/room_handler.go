package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patelshaan/imposter/internal/auth"
	"github.com/patelshaan/imposter/internal/game"
	"github.com/patelshaan/imposter/internal/models"
)

// RoomHandler exposes the coordination core over HTTP.
type RoomHandler struct {
	service *game.Service
}

func NewRoomHandler(service *game.Service) *RoomHandler {
	return &RoomHandler{service: service}
}

// region --- DTOs ---

type CreateRoomInput struct {
	Name string `json:"name" binding:"required"`
}

type JoinRoomInput struct {
	Name string `json:"name" binding:"required"`
}

type RoomConfigInput struct {
	ImposterCount int `json:"imposter_count" binding:"required,min=1"`
}

type HintInput struct {
	Text string `json:"text" binding:"required"`
}

type PlayerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type ChatMessageResponse struct {
	Type     string `json:"type"`
	Seq      int64  `json:"seq"`
	PlayerID string `json:"player_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
	Ts       string `json:"ts"`
}

type RoomResponse struct {
	Code          string                `json:"code"`
	LeaderID      string                `json:"leader_id"`
	ImposterCount int                   `json:"imposter_count"`
	Started       bool                  `json:"started"`
	TurnIndex     int                   `json:"turn_index"`
	Players       []PlayerResponse      `json:"players"`
	Chat          []ChatMessageResponse `json:"chat"`
	CreatedAt     string                `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func newRoomResponse(room *models.Room) RoomResponse {
	players := make([]PlayerResponse, 0, room.MemberCount())
	// Players are rendered in turn order so clients index them directly.
	for _, p := range room.OrderedPlayers() {
		players = append(players, PlayerResponse{
			ID:       p.ID,
			Name:     p.Name,
			Role:     string(p.Role),
			JoinedAt: p.JoinedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	chat := make([]ChatMessageResponse, 0, len(room.Chat))
	for _, msg := range room.Chat {
		chat = append(chat, ChatMessageResponse{
			Type:     string(msg.Type),
			Seq:      msg.Seq,
			PlayerID: msg.PlayerID,
			Name:     msg.Name,
			Text:     msg.Text,
			Ts:       msg.Ts.UTC().Format(time.RFC3339Nano),
		})
	}

	return RoomResponse{
		Code:          room.Code,
		LeaderID:      room.LeaderID,
		ImposterCount: room.ImposterCount,
		Started:       room.Started,
		TurnIndex:     room.TurnIndex,
		Players:       players,
		Chat:          chat,
		CreatedAt:     room.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// endregion

// respondError maps the game error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrNotLeader), errors.Is(err, game.ErrNotYourTurn):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrGameStarted):
		status = http.StatusConflict
	case errors.Is(err, game.ErrCodeExhausted),
		errors.Is(err, game.ErrConflictExhausted),
		errors.Is(err, game.ErrTimeout),
		errors.Is(err, game.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateRoom godoc
// @Summary      Create a new room
// @Description  Creates a room with the caller as its only member and leader.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        input body CreateRoomInput true "Display name"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse "No free room code or store unavailable"
// @Router       /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), auth.PlayerID(c), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRoomResponse(room))
}

// ListOpenRooms godoc
// @Summary      List open rooms
// @Description  Lists rooms still accepting members. The listing may be stale.
// @Tags         rooms
// @Produce      json
// @Success      200 {array} game.RoomSummary
// @Router       /rooms [get]
func (h *RoomHandler) ListOpenRooms(c *gin.Context) {
	summaries, err := h.service.ListOpenRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetRoom godoc
// @Summary      Get a room by code
// @Tags         rooms
// @Produce      json
// @Param        code path string true "Room code"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Router       /rooms/{code} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.service.GetRoom(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Joins an open room. Re-joining a room you are already in succeeds without change.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code  path string        true "Room code"
// @Param        input body JoinRoomInput true "Display name"
// @Success      200 {object} RoomResponse
// @Failure      404 {object} ErrorResponse "Room not found"
// @Failure      409 {object} ErrorResponse "Game already started"
// @Router       /rooms/{code}/join [post]
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var input JoinRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.Join(c.Request.Context(), c.Param("code"), auth.PlayerID(c), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// LeaveRoom godoc
// @Summary      Leave a room
// @Description  Leaves the room. Leadership moves to the earliest-joined remaining member; the last member leaving deletes the room.
// @Tags         rooms
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code path string true "Room code"
// @Success      200 {object} map[string]string "{"message": "left room"}"
// @Router       /rooms/{code}/leave [post]
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	if err := h.service.Leave(c.Request.Context(), c.Param("code"), auth.PlayerID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left room"})
}

// KickMember godoc
// @Summary      Kick a member (leader only)
// @Tags         rooms
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code     path string true "Room code"
// @Param        playerID path string true "Player id of member to kick"
// @Success      200 {object} map[string]string "{"message": "member kicked"}"
// @Failure      403 {object} ErrorResponse "Only the leader can kick"
// @Failure      404 {object} ErrorResponse "Room or member not found"
// @Router       /rooms/{code}/members/{playerID} [delete]
func (h *RoomHandler) KickMember(c *gin.Context) {
	_, err := h.service.Kick(c.Request.Context(), c.Param("code"), auth.PlayerID(c), c.Param("playerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member kicked"})
}

// UpdateRoomConfig godoc
// @Summary      Set the imposter count (leader only)
// @Description  Sets the configured imposter count. It is clamped against the member count when the game starts.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code  path string          true "Room code"
// @Param        input body RoomConfigInput true "New configuration"
// @Success      200 {object} RoomResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Only the leader can configure the room"
// @Router       /rooms/{code}/config [put]
func (h *RoomHandler) UpdateRoomConfig(c *gin.Context) {
	var input RoomConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.SetImposterCount(c.Request.Context(), c.Param("code"), auth.PlayerID(c), input.ImposterCount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// StartGame godoc
// @Summary      Start the game (leader only)
// @Description  Deals imposter/crewmate roles and opens turn-based play.
// @Tags         rooms
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code path string true "Room code"
// @Success      200 {object} RoomResponse
// @Failure      400 {object} ErrorResponse "Already started or no members"
// @Failure      403 {object} ErrorResponse "Only the leader can start"
// @Router       /rooms/{code}/start [post]
func (h *RoomHandler) StartGame(c *gin.Context) {
	room, err := h.service.StartGame(c.Request.Context(), c.Param("code"), auth.PlayerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

// SendHint godoc
// @Summary      Submit a hint
// @Description  Appends the hint to the chat and advances the turn, if it is the caller's turn.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        X-Player-Id header string false "Client-asserted player id"
// @Param        code  path string    true "Room code"
// @Param        input body HintInput true "Hint text"
// @Success      200 {object} RoomResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Not your turn"
// @Failure      404 {object} ErrorResponse "Room or player not found"
// @Router       /rooms/{code}/hints [post]
func (h *RoomHandler) SendHint(c *gin.Context) {
	var input HintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.SendHint(c.Request.Context(), c.Param("code"), auth.PlayerID(c), input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}
