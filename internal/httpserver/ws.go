package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/protocol"
	"github.com/robalobadob/wordscramble/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	intentTimeout  = 5 * time.Second
)

var (
	errBadPayload  = errors.New("bad payload")
	errUnknownType = errors.New("unknown message type")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stream is one WebSocket attached to a session.
type stream struct {
	id      string
	host    *session.Host
	conn    *websocket.Conn
	out     chan protocol.Envelope
	updates <-chan session.Update
}

// handleWS upgrades the connection and streams Views for the session.
// The first message is always the current state.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	h, ok := s.lookup(w, r)
	if !ok {
		return
	}
	st, updates, cancel, err := h.Watch(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Warn().Err(err).Str("session", h.ID()).Msg("ws upgrade")
		return
	}

	c := &stream{
		id:      h.ID(),
		host:    h,
		conn:    conn,
		out:     make(chan protocol.Envelope, 16),
		updates: updates,
	}
	c.out <- protocol.MustEnvelope(protocol.MsgState, protocol.NewView(c.id, st))

	readerDone := make(chan struct{})
	go c.writePump(readerDone)
	c.readPump()
	close(readerDone)
	cancel()
}

// readPump decodes client envelopes and turns them into intents.
func (c *stream) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", c.id).Msg("ws read")
			}
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.fail("malformed message")
			continue
		}
		if err := c.dispatch(env); err != nil {
			c.fail(err.Error())
		}
	}
}

func (c *stream) dispatch(env protocol.Envelope) error {
	ctx, cancel := context.WithTimeout(context.Background(), intentTimeout)
	defer cancel()

	switch env.Type {
	case protocol.MsgSubmit:
		var m protocol.SubmitMsg
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return errBadPayload
		}
		_, err := c.host.SubmitGuess(ctx, m.Guess)
		return err
	case protocol.MsgInput:
		var m protocol.InputMsg
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return errBadPayload
		}
		_, err := c.host.EditInput(ctx, m.Value)
		return err
	case protocol.MsgNewWord:
		_, err := c.host.RequestNewWord(ctx)
		return err
	default:
		return errUnknownType
	}
}

func (c *stream) fail(msg string) {
	select {
	case c.out <- protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: msg}):
	default:
		log.Warn().Str("session", c.id).Msg("ws out buffer full, dropping error")
	}
}

// writePump owns all writes to the connection.
func (c *stream) writePump(readerDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case u, ok := <-c.updates:
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := c.write(protocol.MustEnvelope(protocol.MsgState, protocol.NewView(c.id, u.State))); err != nil {
				return
			}
			if u.Notice != nil {
				if err := c.write(protocol.MustEnvelope(protocol.MsgNotice, u.Notice)); err != nil {
					return
				}
			}
		case env := <-c.out:
			if err := c.write(env); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}

func (c *stream) write(env protocol.Envelope) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(env)
}
