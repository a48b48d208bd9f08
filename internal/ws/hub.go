package ws

import (
	"context"
	"time"

	"gamehub/internal/domain"
	"gamehub/internal/http/middleware"
	"gamehub/internal/logger"
	"gamehub/internal/repository"
	"gamehub/internal/room"
)

// Hub routes socket messages into the room registry and records finished
// games. It keeps no room state of its own.
type Hub struct {
	Registry *room.Registry
	repo     *repository.MatchRepository
}

// NewHub wires the registry with the game factory. repo may be nil when
// the hub runs without a database.
func NewHub(factory room.Factory, repo *repository.MatchRepository) *Hub {
	h := &Hub{repo: repo}
	h.Registry = room.NewRegistry(factory, h)
	return h
}

// Handle dispatches one parsed client message.
func (h *Hub) Handle(c *Client, msg clientMessage) error {
	switch msg.Type {
	case "create_room":
		return h.createRoom(c, msg)
	case "join_room":
		return h.joinRoom(c, msg)
	case "action":
		if c.roomCode == "" {
			return room.ErrRoomNotFound
		}
		err := h.Registry.Submit(c.roomCode, c.ID, room.Action{
			Kind:    msg.Kind,
			Payload: msg.Payload,
		})
		if err == nil {
			middleware.ActionsProcessed.WithLabelValues(msg.Kind).Inc()
		}
		return err
	case "leave_room":
		h.leaveRoom(c)
		return nil
	default:
		return room.ErrUnknownAction
	}
}

func (h *Hub) createRoom(c *Client, msg clientMessage) error {
	if c.roomCode != "" {
		return room.ErrAlreadyInRoom
	}
	snap, err := h.Registry.Create(room.GameType(msg.Game), room.NewParticipant(c.ID, c.Name, c))
	if err != nil {
		return err
	}
	c.roomCode = snap.Code
	middleware.RoomsCreated.WithLabelValues(msg.Game).Inc()
	c.enqueue(marshalServer("room_created", snap))
	return nil
}

func (h *Hub) joinRoom(c *Client, msg clientMessage) error {
	if c.roomCode != "" {
		return room.ErrAlreadyInRoom
	}
	snap, err := h.Registry.Join(msg.RoomCode, room.NewParticipant(c.ID, c.Name, c))
	if err != nil {
		return err
	}
	c.roomCode = snap.Code
	middleware.PlayersJoined.Inc()
	c.enqueue(marshalServer("room_joined", snap))
	return nil
}

func (h *Hub) leaveRoom(c *Client) {
	if c.roomCode == "" {
		return
	}
	h.Registry.Leave(c.roomCode, c.ID)
	c.roomCode = ""
	c.enqueue(marshalServer("room_left", nil))
}

// OnDisconnect treats a dropped socket as a leave.
func (h *Hub) OnDisconnect(c *Client) {
	if c.roomCode == "" {
		return
	}
	h.Registry.Leave(c.roomCode, c.ID)
	c.roomCode = ""
}

// RecordMatch implements room.ResultRecorder. The save runs in its own
// goroutine because the registry calls this with the room lock held.
func (h *Hub) RecordMatch(code string, gt room.GameType, seats []room.Seat, res *room.Result) {
	if h.repo == nil || res == nil {
		return
	}

	players := make([]string, len(seats))
	for i, s := range seats {
		players[i] = s.Name
	}
	rec := &domain.MatchRecord{
		RoomCode:   code,
		Game:       string(gt),
		Players:    players,
		WinnerID:   res.WinnerID,
		WinnerName: res.WinnerName,
		Draw:       res.Draw,
		Detail:     res.Detail,
		FinishedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.repo.Save(ctx, rec); err != nil {
			logger.Error("failed to record match", "room", code, "error", err)
		}
	}()
}
