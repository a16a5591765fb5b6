package httpserver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsQueueSize bounds utterances waiting behind the one in progress.
const wsQueueSize = 8

// serveWS is the voice transport. Utterances are answered in order; an
// interrupt cancels the utterance in progress and everything queued behind it,
// then its text, if any, is answered as a new utterance.
// @Summary Voice websocket
// @Description Send {"type":"utterance","text":"..."} or {"type":"interrupt","text":"..."}; receive reply, interrupted or error frames
// @Tags Assistant
// @Param session_id query string false "Session id (generated when empty)"
// @Router /api/v1/ws [get]
func (srv *HTTPServer) serveWS(c *gin.Context) {
	conn, err := srv.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		srv.l.Warnf(c.Request.Context(), "%s: upgrade failed: %v", LogPrefixWS, err)
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	vs := newVoiceSession(c.Request.Context(), srv, conn, sessionID)
	defer vs.close()

	if srv.metrics != nil {
		srv.metrics.ActiveSockets.Inc()
		defer srv.metrics.ActiveSockets.Dec()
	}
	srv.l.Infof(vs.base, "%s: session %s connected", LogPrefixWS, sessionID)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				srv.l.Debugf(vs.base, "%s: session %s read: %v", LogPrefixWS, sessionID, err)
			}
			return
		}

		text := strings.TrimSpace(msg.Text)
		switch msg.Type {
		case WSTypeInterrupt:
			vs.interrupt()
			if text != "" {
				vs.enqueue(text)
			}
		case WSTypeUtterance, "":
			if text == "" {
				vs.send(wsMessage{Type: WSTypeError, Error: "empty utterance"})
				continue
			}
			vs.enqueue(text)
		default:
			vs.send(wsMessage{Type: WSTypeError, Error: "unknown message type " + msg.Type})
		}
	}
}

type wsJob struct {
	ctx  context.Context
	text string
}

// voiceSession is one websocket connection and its utterance queue.
type voiceSession struct {
	srv  *HTTPServer
	conn *websocket.Conn
	id   string

	base       context.Context
	cancelBase context.CancelFunc

	mu        sync.Mutex
	gen       context.Context
	cancelGen context.CancelFunc

	writeMu sync.Mutex
	jobs    chan wsJob
	done    chan struct{}
}

func newVoiceSession(parent context.Context, srv *HTTPServer, conn *websocket.Conn, id string) *voiceSession {
	base, cancelBase := context.WithCancel(parent)
	gen, cancelGen := context.WithCancel(base)
	vs := &voiceSession{
		srv:        srv,
		conn:       conn,
		id:         id,
		base:       base,
		cancelBase: cancelBase,
		gen:        gen,
		cancelGen:  cancelGen,
		jobs:       make(chan wsJob, wsQueueSize),
		done:       make(chan struct{}),
	}
	go vs.work()
	return vs
}

func (vs *voiceSession) enqueue(text string) {
	vs.mu.Lock()
	job := wsJob{ctx: vs.gen, text: text}
	vs.mu.Unlock()

	select {
	case vs.jobs <- job:
	default:
		vs.send(wsMessage{Type: WSTypeError, Text: text, Error: "too many pending utterances"})
	}
}

// interrupt cancels every job enqueued so far.
func (vs *voiceSession) interrupt() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.cancelGen()
	vs.gen, vs.cancelGen = context.WithCancel(vs.base)
}

func (vs *voiceSession) work() {
	defer close(vs.done)
	for job := range vs.jobs {
		if job.ctx.Err() != nil {
			vs.send(wsMessage{Type: WSTypeInterrupted, Text: job.text})
			continue
		}

		reply, err := vs.srv.assistant.Handle(job.ctx, vs.id, job.text)
		switch {
		case errors.Is(err, context.Canceled):
			vs.send(wsMessage{Type: WSTypeInterrupted, Text: job.text})
		case err != nil:
			vs.srv.l.Errorf(vs.base, "%s: session %s: %v", LogPrefixWS, vs.id, err)
			vs.send(wsMessage{Type: WSTypeError, Text: job.text, Error: err.Error()})
		default:
			vs.send(wsMessage{Type: WSTypeReply, Text: reply.Text, Reply: reply})
		}
	}
}

func (vs *voiceSession) send(msg wsMessage) {
	vs.writeMu.Lock()
	defer vs.writeMu.Unlock()

	_ = vs.conn.SetWriteDeadline(time.Now().Add(WSWriteTimeout))
	if err := vs.conn.WriteJSON(msg); err != nil {
		vs.srv.l.Debugf(vs.base, "%s: session %s write: %v", LogPrefixWS, vs.id, err)
	}
}

func (vs *voiceSession) close() {
	vs.cancelBase()
	close(vs.jobs)
	<-vs.done
	_ = vs.conn.Close()
}
