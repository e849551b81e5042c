package fastview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 8192

	// The rate at which ele-updates will be sent to the client, so as not to overburden.
	pubResolution  = time.Millisecond * 100
	pingResolution = time.Millisecond * 200
	// By definition, this encompasses the number of pings to tolerate
	// losing before concluding the dashboard tab is gone.
	pongWait = pingResolution * 4
)

var upgrader = websocket.Upgrader{}

// pusher streams one view's ele-updates to a single connected dashboard
// tab over a websocket. It is strictly one-way: the dashboard never
// sends anything back except pong frames, so there is no inbound
// message type to decode.
type pusher[T any] struct {
	updates <-chan T
	ws      *socket
	rootCtx context.Context
}

// NewPusher upgrades r to a websocket and returns a pusher that will
// stream updates to it once Stream is called. An update that arrives
// less than pubResolution after the last one sent is dropped outright,
// not deferred, so items in updates should be idempotent snapshots (a
// whole chart frame, not a delta) that a later update fully replaces.
func NewPusher[T any](
	updates <-chan T,
	w http.ResponseWriter,
	r *http.Request,
) (*pusher[T], error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}

	return &pusher[T]{
		updates: updates,
		ws:      newSocket(ws),
		rootCtx: r.Context(),
	}, nil
}

// Stream runs the ping/pong liveness check and the rate-limited publish
// loop until the dashboard disconnects or ctx is cancelled. It returns
// nil on a graceful disconnect, or the first error encountered.
func (p *pusher[T]) Stream() error {
	group, groupCtx := errgroup.WithContext(p.rootCtx)

	group.Go(func() error {
		return p.drainControlFrames(groupCtx)
	})
	group.Go(func() error {
		return p.pingPong(groupCtx)
	})
	group.Go(func() error {
		return p.publish(groupCtx)
	})

	return group.Wait()
}

// ErrPongDeadlineExceeded is returned by pingPong when the dashboard tab
// has stopped answering pings, which ends the stream and lets the HTTP
// handler clean up its goroutines.
var ErrPongDeadlineExceeded error = errors.New("client disconnect, pong deadline exceeded")

// pingPong is the liveness check for the streamed connection. It
// requires drainControlFrames to be running concurrently: gorilla only
// invokes the pong handler while a read is in flight.
func (p *pusher[T]) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	p.ws.Conn().SetPongHandler(func(_ string) error {
		pong <- struct{}{}
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}

			if err := p.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (p *pusher[T]) ping(ctx context.Context) error {
	return p.ws.Write(
		ctx,
		func(ws *websocket.Conn) (err error) {
			if err = ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				if isError(err) {
					err = fmt.Errorf("ping failed: %T %v", err, err)
				}
			}
			return
		})
}

// drainControlFrames keeps reading off the connection so gorilla can
// process pong control frames and detect a peer-initiated close. The
// dashboard never sends an application message this pusher acts on, so
// anything actually read is discarded.
func (p *pusher[T]) drainControlFrames(ctx context.Context) error {
	for {
		err := p.ws.Read(
			ctx,
			func(ws *websocket.Conn) (readErr error) {
				_, _, readErr = ws.ReadMessage()
				return
			})
		if err != nil {
			return err
		}
	}
}

func (p *pusher[T]) publish(ctx context.Context) error {
	lastSync := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-p.updates:
			// Graceful input channel closure
			if !ok {
				return nil
			}
			// Drop updates when receiving too quickly.
			if time.Since(lastSync) < pubResolution {
				break
			}

			lastSync = time.Now()
			err := p.ws.Write(
				ctx,
				func(ws *websocket.Conn) (writeErr error) {
					if writeErr = ws.SetWriteDeadline(time.Now().Add(writeWait)); writeErr != nil {
						writeErr = fmt.Errorf("failed to set deadline: %T %w", writeErr, writeErr)
						return
					}

					if writeErr = ws.WriteJSON(update); writeErr != nil {
						if isError(writeErr) {
							writeErr = fmt.Errorf("publish failed: %T %v", writeErr, writeErr)
						}
					}
					return
				})
			if err != nil {
				return err
			}
		}
	}
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

// ErrSockCongestion indicates there are too many waiters on the socket for a given op.
var ErrSockCongestion = errors.New("sock op failed due to congestion")

const (
	readDeadline     = time.Second
	writeDeadline    = time.Second
	closeGracePeriod = 10 * time.Second
)

// socket serializes reads and writes to the websocket, whose requirement
// is that there may be only one concurrent reader and one concurrent
// writer at a time.
type socket struct {
	// These are merely mutexes, but channel semantics are cleaner.
	readSem  chan struct{}
	writeSem chan struct{}
	ws       *websocket.Conn
}

func newSocket(ws *websocket.Conn) *socket {
	return &socket{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		ws:       ws,
	}
}

// Conn returns the underlying websocket. Only safe to use
// non-concurrently, for setup (e.g. registering handlers).
func (sock *socket) Conn() *websocket.Conn {
	return sock.ws
}

// Close closes the websocket. Only call this once no further readers or
// writers exist.
func (sock *socket) Close() {
	sock.readSem <- struct{}{}
	sock.writeSem <- struct{}{}

	_ = sock.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = sock.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	sock.ws.Close()
}

// Read serializes read operations on the internal web socket.
func (sock *socket) Read(
	ctx context.Context,
	readFn func(*websocket.Conn) error,
) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.readSem <- struct{}{}:
		defer func() { <-sock.readSem }()
		return readFn(sock.ws)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

// Write serializes write operations to the websocket.
func (sock *socket) Write(
	ctx context.Context,
	writeFn func(*websocket.Conn) error,
) error {
	select {
	case <-ctx.Done():
		return nil
	case sock.writeSem <- struct{}{}:
		defer func() { <-sock.writeSem }()
		return writeFn(sock.ws)
	case <-time.After(writeDeadline):
		return ErrSockCongestion
	}
}
