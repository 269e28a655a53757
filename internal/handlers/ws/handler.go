package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pointdeck/pointdeck/internal/models"
	"github.com/pointdeck/pointdeck/internal/repositories/connection"
	"github.com/pointdeck/pointdeck/internal/services/estimation"
)

const pingInterval = 15 * time.Second

// Handler is the websocket transport edge: it upgrades HTTP requests,
// runs each connection's read loop, and dispatches decoded commands to
// the estimation service
type Handler struct {
	service  estimation.Service
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// Config holds the configuration for the websocket handler
type Config struct {
	// Service executes the decoded client commands
	Service estimation.Service

	// Logger records connection lifecycle and transport failures
	Logger *slog.Logger
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Service == nil {
		return nil, errors.New("estimation service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}, nil
}

// Serve upgrades the request and runs the connection to completion
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	client := newClient(conn)
	h.logger.Info("connection opened", "remote", conn.RemoteAddr())

	done := make(chan struct{})
	go h.keepAlive(client, done)

	h.readLoop(c.Request.Context(), client)
	close(done)

	h.logger.Info("connection closed", "remote", conn.RemoteAddr())
}

// readLoop handles frames from a single connection strictly in arrival
// order, then runs disconnect cleanup when the connection dies
func (h *Handler) readLoop(ctx context.Context, client *client) {
	defer h.HandleDisconnect(ctx, client)

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		h.Handle(ctx, client, raw)
	}
}

// keepAlive pings the client periodically and closes the connection on
// failure, which unblocks the read loop into the disconnect path
func (h *Handler) keepAlive(client *client, done chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := client.ping(); err != nil {
				client.conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

// Handle processes one raw client frame. Every failure is reported to
// the sender only and leaves all state untouched.
func (h *Handler) Handle(ctx context.Context, conn connection.Conn, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		h.sendError(conn, errInvalidMessageFormat)
		return
	}

	var err error
	switch cmd.Type {
	case CommandJoin:
		_, err = h.service.Join(ctx, &estimation.JoinInput{
			Conn:     conn,
			TeamCode: cmd.TeamCode,
			Name:     cmd.Name,
			Role:     models.Role(cmd.Role),
			UserID:   cmd.UserID,
		})
	case CommandAddTicket:
		_, err = h.service.AddTicket(ctx, &estimation.AddTicketInput{
			Conn:        conn,
			Title:       cmd.Title,
			Description: cmd.Description,
		})
	case CommandSelectTicket:
		_, err = h.service.SelectTicket(ctx, &estimation.SelectTicketInput{
			Conn:     conn,
			TicketID: cmd.TicketID,
		})
	case CommandVote:
		_, err = h.service.CastVote(ctx, &estimation.CastVoteInput{
			Conn:   conn,
			Points: cmd.Points,
		})
	case CommandRevealVotes:
		_, err = h.service.RevealVotes(ctx, &estimation.RevealVotesInput{Conn: conn})
	case CommandResetVotes:
		_, err = h.service.ResetVotes(ctx, &estimation.ResetVotesInput{Conn: conn})
	case CommandLeave:
		_, err = h.service.Leave(ctx, &estimation.LeaveInput{Conn: conn})
	default:
		h.sendError(conn, errInvalidMessageFormat)
		return
	}

	if err != nil {
		h.sendError(conn, err.Error())
	}
}

// HandleDisconnect runs the leave path for a dead connection. Safe to
// call for connections that never joined, and safe to call twice.
func (h *Handler) HandleDisconnect(ctx context.Context, conn connection.Conn) {
	if _, err := h.service.Leave(ctx, &estimation.LeaveInput{Conn: conn}); err != nil {
		h.logger.Warn("disconnect cleanup failed", "error", err)
	}
}

func (h *Handler) sendError(conn connection.Conn, message string) {
	event := ErrorEvent{
		Type:    EventError,
		Message: message,
	}
	if err := conn.WriteJSON(event); err != nil {
		h.logger.Warn("error reply failed", "error", err)
	}
}
