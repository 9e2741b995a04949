package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"officegrid/internal/protocol"
	"officegrid/internal/sim/office"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second

	outQueueSize = 64
)

type Server struct {
	office *office.Office
	log    *log.Logger

	upgrader websocket.Upgrader
}

func NewServer(o *office.Office, logger *log.Logger) *Server {
	return &Server{
		office: o,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		out := make(chan []byte, outQueueSize)
		respCh := make(chan office.ConnectResponse, 1)
		s.office.Connect() <- office.ConnectRequest{Out: out, Resp: respCh}
		resp := <-respCh

		// Welcome goes out before anything queued can race it.
		if err := s.writeEvent(conn, protocol.EvtWelcome, resp.Welcome); err != nil {
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Writer goroutine: queued frames plus keepalive pings.
		go func() {
			ping := time.NewTicker(pingInterval)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				case <-ping.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongTimeout))
		})
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
			cmd, err := protocol.DecodeCommand(msg)
			if err != nil {
				s.log.Printf("conn=%s drop frame: %v", resp.ConnID, err)
				continue
			}
			s.office.Inbox() <- office.CommandEnvelope{ConnID: resp.ConnID, Cmd: cmd}
		}

		cancel()
		s.office.Disconnect() <- resp.ConnID
	}
}

func (s *Server) writeEvent(conn *websocket.Conn, event string, data any) error {
	b, err := protocol.Encode(event, data)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
