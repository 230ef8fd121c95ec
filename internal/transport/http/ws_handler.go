package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades connections and wires inbound frames into the game
// service. A connection becomes a host by creating a game or a player by
// joining one; host-only actions are checked against that binding.
type WSHandler struct {
	service  *app.GameService
	gateway  *Gateway
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		gateway: NewGateway(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createGamePayload struct {
	Questions []domain.Question `json:"questions"`
	QuizID    string            `json:"quizId"`
}

type joinGamePayload struct {
	GameCode   string `json:"gameCode"`
	PlayerName string `json:"playerName"`
}

type gameRefPayload struct {
	GameID string `json:"gameId"`
}

type submitAnswerPayload struct {
	GameID      string `json:"gameId"`
	PlayerID    string `json:"playerId"`
	QuestionID  string `json:"questionId"`
	AnswerIndex int    `json:"answerIndex"`
}

type gameCreatedPayload struct {
	GameID   string `json:"gameId"`
	GameCode string `json:"gameCode"`
}

type joinedGamePayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type joinErrorPayload struct {
	Reason string `json:"reason"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// client is one live websocket connection. Frames are written by a single
// writer goroutine fed through a buffered channel; enqueue never blocks, so
// neither the session nor other connections wait on a slow socket.
type client struct {
	conn *websocket.Conn
	send chan outboundFrame
	quit chan struct{}

	// connection role; set only from the reader goroutine
	gameID   string
	playerID string
	isHost   bool
}

func (c *client) enqueue(frame outboundFrame) {
	select {
	case c.send <- frame:
	case <-c.quit:
	default:
		log.Printf("ws: dropping %s frame for slow connection", frame.Type)
	}
}

// ServeWS runs the read loop for one connection until it closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	c := &client{
		conn: conn,
		send: make(chan outboundFrame, 64),
		quit: make(chan struct{}),
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		broken := false
		for {
			select {
			case frame := <-c.send:
				if broken {
					continue
				}
				if err := conn.WriteJSON(frame); err != nil {
					broken = true
				}
			case <-c.quit:
				return
			}
		}
	}()

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		h.dispatch(r.Context(), c, frame)
	}

	h.handleClose(c)
	close(c.quit)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, c *client, frame inboundFrame) {
	switch frame.Type {
	case "create-game":
		h.handleCreateGame(ctx, c, frame.Payload)
	case "join-game":
		h.handleJoinGame(c, frame.Payload)
	case "start-game":
		h.handleHostAction(c, frame.Payload, h.service.Start)
	case "show-leaderboard":
		h.handleHostAction(c, frame.Payload, h.service.ShowLeaderboard)
	case "next-question":
		h.handleHostAction(c, frame.Payload, h.service.Advance)
	case "end-game":
		h.handleEndGame(c, frame.Payload)
	case "submit-answer":
		h.handleSubmitAnswer(c, frame.Payload)
	default:
		h.sendError(c, "unsupported message type")
	}
}

func (h *WSHandler) handleCreateGame(ctx context.Context, c *client, raw json.RawMessage) {
	if c.gameID != "" {
		h.sendError(c, "connection already bound to a game")
		return
	}
	var payload createGamePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(c, "invalid create-game payload")
		return
	}

	gameID, code, err := h.service.CreateGame(ctx, payload.Questions, payload.QuizID)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	c.gameID = gameID
	c.isHost = true
	h.gateway.BindHost(gameID, c)
	c.enqueue(outboundFrame{Type: app.EventGameCreated, Payload: gameCreatedPayload{GameID: gameID, GameCode: code}})
}

func (h *WSHandler) handleJoinGame(c *client, raw json.RawMessage) {
	// A duplicate join from an already-joined connection resolves to the
	// identity it was assigned the first time.
	if c.playerID != "" {
		c.enqueue(outboundFrame{Type: app.EventJoinedGame, Payload: joinedGamePayload{GameID: c.gameID, PlayerID: c.playerID}})
		return
	}
	if c.isHost {
		h.sendError(c, "host connection cannot join as player")
		return
	}
	var payload joinGamePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(c, "invalid join-game payload")
		return
	}

	gameID, player, envs, err := h.service.Join(payload.GameCode, payload.PlayerName)
	if err != nil {
		c.enqueue(outboundFrame{Type: app.EventJoinError, Payload: joinErrorPayload{Reason: joinErrorReason(err)}})
		return
	}

	c.gameID = gameID
	c.playerID = player.ID
	h.gateway.BindPlayer(gameID, player.ID, c)
	c.enqueue(outboundFrame{Type: app.EventJoinedGame, Payload: joinedGamePayload{GameID: gameID, PlayerID: player.ID}})
	h.gateway.Deliver(gameID, envs)
}

func (h *WSHandler) handleHostAction(c *client, raw json.RawMessage, action func(string) ([]app.Envelope, error)) {
	gameID, ok := h.requireHost(c, raw)
	if !ok {
		return
	}
	envs, err := action(gameID)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	h.gateway.Deliver(gameID, envs)
}

func (h *WSHandler) handleEndGame(c *client, raw json.RawMessage) {
	gameID, ok := h.requireHost(c, raw)
	if !ok {
		return
	}
	envs, err := h.service.End(gameID)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	h.gateway.Deliver(gameID, envs)
}

func (h *WSHandler) handleSubmitAnswer(c *client, raw json.RawMessage) {
	var payload submitAnswerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(c, "invalid submit-answer payload")
		return
	}
	if c.playerID == "" || payload.GameID != c.gameID || payload.PlayerID != c.playerID {
		h.sendError(c, "submission does not match this connection")
		return
	}

	envs, err := h.service.Submit(payload.GameID, payload.PlayerID, payload.QuestionID, payload.AnswerIndex)
	if err != nil {
		// Rejections stay private to the submitter; other players never see them.
		h.sendError(c, err.Error())
		return
	}
	h.gateway.Deliver(payload.GameID, envs)
}

// handleClose tears down the connection's binding. A dropped player keeps
// their score inside the session; a dropped host aborts the game, since
// nobody is left to advance it.
func (h *WSHandler) handleClose(c *client) {
	if c.gameID == "" {
		return
	}

	if c.isHost {
		h.gateway.UnbindHost(c.gameID)
		if envs, err := h.service.End(c.gameID); err == nil {
			h.gateway.Deliver(c.gameID, envs)
		}
	} else {
		envs := h.service.Disconnect(c.gameID, c.playerID)
		h.gateway.UnbindPlayer(c.gameID, c.playerID)
		h.gateway.Deliver(c.gameID, envs)
	}

	if h.gateway.Empty(c.gameID) {
		h.gateway.Drop(c.gameID)
		h.service.Reap(c.gameID)
	}
}

func (h *WSHandler) requireHost(c *client, raw json.RawMessage) (string, bool) {
	var payload gameRefPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.sendError(c, "invalid payload")
		return "", false
	}
	if !c.isHost || payload.GameID != c.gameID {
		h.sendError(c, "action restricted to the game host")
		return "", false
	}
	return payload.GameID, true
}

func (h *WSHandler) sendError(c *client, message string) {
	c.enqueue(outboundFrame{Type: "error", Payload: errorPayload{Message: message}})
}

func joinErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidPhase):
		return "already_started"
	default:
		return "join_failed"
	}
}
