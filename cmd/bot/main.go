package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"officegrid/internal/protocol"
)

// A headless client that joins the first advertised room and wanders between
// random cells. Useful for soaking the movement path and eyeballing
// broadcasts during development.
func main() {
	var (
		url    = flag.String("url", "ws://localhost:3000/v1/ws", "ws url")
		roomID = flag.String("room", "", "room id to join (default: first advertised)")
		avatar = flag.String("avatar", "https://models.example/bot.glb", "avatar url")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	var (
		myID     string
		pos      protocol.Vec2
		gridW    int
		gridH    int
		moveTick = time.NewTicker(2 * time.Second)
	)
	defer moveTick.Stop()

	frames := make(chan []byte, 16)
	go func() {
		defer close(frames)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			frames <- msg
		}
	}()

	send := func(event string, data any) {
		b, err := protocol.Encode(event, data)
		if err != nil {
			logger.Printf("encode %s: %v", event, err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			logger.Fatalf("write: %v", err)
		}
	}

	for {
		select {
		case <-stop:
			return
		case <-moveTick.C:
			if myID == "" || gridW == 0 {
				continue
			}
			to := protocol.Vec2{rand.Intn(gridW), rand.Intn(gridH)}
			send(protocol.CmdMove, protocol.MoveCmd{From: pos, To: to})
		case msg, ok := <-frames:
			if !ok {
				return
			}
			env, err := protocol.DecodeEnvelope(msg)
			if err != nil {
				continue
			}
			switch env.Event {
			case protocol.EvtWelcome:
				var w protocol.WelcomeEvent
				if err := json.Unmarshal(env.Data, &w); err != nil || len(w.Rooms) == 0 {
					logger.Fatalf("bad welcome")
				}
				target := w.Rooms[0].ID
				if *roomID != "" {
					target = *roomID
				}
				logger.Printf("welcome: %d rooms, joining %s", len(w.Rooms), target)
				send(protocol.CmdJoinRoom, protocol.JoinRoomCmd{RoomID: target, AvatarURL: *avatar})
			case protocol.EvtRoomJoined:
				var j protocol.RoomJoinedEvent
				if err := json.Unmarshal(env.Data, &j); err != nil {
					continue
				}
				myID = j.ID
				gridW = j.Map.Size[0] * j.Map.GridDivision
				gridH = j.Map.Size[1] * j.Map.GridDivision
				for _, c := range j.Characters {
					if c.ID == myID {
						pos = c.Position
					}
				}
				logger.Printf("joined as %s at %v (grid %dx%d)", myID, pos, gridW, gridH)
			case protocol.EvtPlayerMove:
				var c protocol.Character
				if err := json.Unmarshal(env.Data, &c); err != nil {
					continue
				}
				if c.ID == myID && len(c.Path) > 0 {
					pos = c.Path[len(c.Path)-1]
				}
			}
		}
	}
}
