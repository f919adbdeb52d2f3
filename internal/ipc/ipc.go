// Package ipc implements the single-instance forwarding channel described
// in the external interfaces section: when a second launch of the
// application detects an already-running instance, it forwards its URL
// list to that instance instead of starting a second dispatcher.
//
// The teacher's own daemon client (pkg/daemon) never actually wired the
// websocket_port field its config carries; this package is where that
// unused transport finally gets a real server and client.
package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// DefaultAddr is the loopback-only address the forwarder listens on.
// Binding to loopback keeps the channel unreachable from other machines;
// no auth token is needed beyond "can reach localhost".
const DefaultAddr = "127.0.0.1:0"

// Handler is called once per forwarded batch of URLs, in arrival order.
type Handler func(ctx context.Context, urls []string)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server accepts forwarded URL batches from later instances and invokes
// handler for each. Only one connection is expected at a time (the next
// instance to launch), but the server tolerates more.
type Server struct {
	listener net.Listener
	srv      *http.Server
	handler  Handler
	logger   *logrus.Entry

	mu   sync.Mutex
	addr string
}

// Serve starts a loopback HTTP server with a single "/forward" websocket
// endpoint and returns immediately; it stops when ctx is canceled. The
// chosen address is available via Server.Addr once this call returns.
func Serve(ctx context.Context, handler Handler, logger *logrus.Entry) (*Server, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	listener, err := net.Listen("tcp", DefaultAddr)
	if err != nil {
		return nil, fmt.Errorf("ipc: listen: %w", err)
	}

	s := &Server{listener: listener, handler: handler, logger: logger, addr: listener.Addr().String()}

	mux := http.NewServeMux()
	mux.HandleFunc("/forward", s.handleForward)
	s.srv = &http.Server{Handler: mux}

	go func() {
		if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Warn("ipc server exited")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	return s, nil
}

// Addr is the actual loopback address (with chosen port) the server bound to.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("ipc: websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var urls []string
		if err := conn.ReadJSON(&urls); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithError(err).Debug("ipc: forward connection closed")
			}
			return
		}
		if len(urls) == 0 {
			continue
		}
		s.handler(r.Context(), urls)
		_ = conn.WriteJSON(ackMessage{OK: true, Count: len(urls)})
	}
}

type ackMessage struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// Forward dials an already-running instance at addr and sends urls as one
// batch. It returns an error the caller should treat as "no instance is
// running" rather than a hard failure: the caller falls back to becoming
// the primary instance itself.
func Forward(ctx context.Context, addr string, urls []string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.DialContext(ctx, "ws://"+addr+"/forward", nil)
	if err != nil {
		return fmt.Errorf("ipc: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(urls); err != nil {
		return fmt.Errorf("ipc: write: %w", err)
	}

	var ack ackMessage
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&ack); err != nil {
		return fmt.Errorf("ipc: no ack: %w", err)
	}
	return nil
}

// marshalErr wraps json.Marshal failures with package context; it is used
// to serialize the lock record when writing the registered-port lock file.
func marshalErr(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("ipc: marshal: %w", err)
	}
	return b, nil
}
