package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-chat/chat"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Frame types exchanged over /ws/chat.
const (
	frameAsk         = "ask"
	frameQuestion    = "question"
	frameGreeting    = "greeting"
	frameThinking    = "thinking"
	frameDelta       = "delta"
	frameDone        = "done"
	frameSuggestions = "suggestions"
	frameError       = "error"
)

type wsFrame struct {
	Type      string      `json:"type"`
	Session   string      `json:"session,omitempty"`
	Text      string      `json:"text,omitempty"`
	Reply     *chat.Reply `json:"reply,omitempty"`
	Questions []string    `json:"questions,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// chatSession owns one websocket. Only run writes to the connection; the
// read loop only reads.
type chatSession struct {
	id          string
	conn        *websocket.Conn
	srv         *server
	log         *log.Logger
	suggestions *chat.Suggestions
	typewriter  chat.Typewriter
}

func (s *server) handleChatSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	id := uuid.NewString()
	sess := &chatSession{
		id:          id,
		conn:        conn,
		srv:         s,
		log:         s.log.With("session", id),
		suggestions: chat.NewSuggestions(s.assistant.Catalog()),
		typewriter:  chat.Typewriter{Delay: s.cfg.TypingDelay},
	}
	sess.run()
}

func (cs *chatSession) run() {
	defer cs.conn.Close()
	cs.log.Debug("Chat session opened")
	defer cs.log.Debug("Chat session closed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	incoming := make(chan wsFrame)
	go cs.readLoop(ctx, cancel, incoming)

	if err := cs.greet(ctx); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-incoming:
			if !ok {
				return
			}
			if err := cs.handle(ctx, f); err != nil {
				if !errors.Is(err, context.Canceled) {
					cs.log.Debug("Chat session write failed", "error", err)
				}
				return
			}
		}
	}
}

func (cs *chatSession) readLoop(ctx context.Context, cancel context.CancelFunc, out chan<- wsFrame) {
	defer cancel()
	defer close(out)

	cs.conn.SetReadLimit(maxMessageSize)
	for {
		var f wsFrame
		if err := cs.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cs.log.Debug("Chat session read failed", "error", err)
			}
			return
		}
		select {
		case out <- f:
		case <-ctx.Done():
			return
		}
	}
}

func (cs *chatSession) greet(ctx context.Context) error {
	if err := chat.Pause(ctx, cs.srv.cfg.GreetingDelay); err != nil {
		return err
	}
	if err := cs.send(wsFrame{Type: frameGreeting, Session: cs.id, Text: cs.srv.assistant.Catalog().Greeting()}); err != nil {
		return err
	}
	return cs.send(wsFrame{Type: frameSuggestions, Questions: cs.suggestions.Current()})
}

func (cs *chatSession) handle(ctx context.Context, f wsFrame) error {
	var (
		reply chat.Reply
		err   error
	)
	switch f.Type {
	case frameAsk:
		reply, err = cs.srv.assistant.Ask(f.Text)
	case frameQuestion:
		reply, err = cs.srv.assistant.AskSuggested(f.Text)
		if err == nil {
			cs.suggestions.Use(f.Text)
		}
	default:
		return cs.send(wsFrame{Type: frameError, Error: "unknown frame type " + f.Type})
	}
	if err != nil {
		return cs.send(wsFrame{Type: frameError, Error: err.Error()})
	}

	cs.srv.recordReply(reply)

	if err := cs.send(wsFrame{Type: frameThinking}); err != nil {
		return err
	}
	if err := chat.Pause(ctx, cs.srv.cfg.ThinkingDelay); err != nil {
		return err
	}
	err = cs.typewriter.Type(ctx, reply.Answer, func(r string) error {
		return cs.send(wsFrame{Type: frameDelta, Text: r})
	})
	if err != nil {
		return err
	}
	if err := cs.send(wsFrame{Type: frameDone, Reply: &reply}); err != nil {
		return err
	}
	return cs.send(wsFrame{Type: frameSuggestions, Questions: cs.suggestions.Current()})
}

func (cs *chatSession) send(f wsFrame) error {
	if err := cs.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return cs.conn.WriteJSON(f)
}
