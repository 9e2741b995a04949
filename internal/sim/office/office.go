package office

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"

	"officegrid/internal/persistence/snapshot"
	"officegrid/internal/protocol"
	"officegrid/internal/sim/catalogs"
)

// Office is the single-threaded authoritative core: the room registry, every
// per-room collection, and all live sessions. State must only be touched from
// the loop goroutine in run_loop.go.
type Office struct {
	cfg      Config
	logger   *log.Logger
	catalogs *catalogs.Catalog

	rooms     []*Room
	roomsByID map[string]*Room

	sessions map[string]*session
	calls    map[string]*call
	shared   map[string]*roomCollections

	connect    chan ConnectRequest
	inbox      chan CommandEnvelope
	disconnect chan string
	stop       chan struct{}

	nextConnNum atomic.Uint64
	rng         *rand.Rand

	// Optional snapshot sink; the writer goroutine lives in cmd/server so a
	// slow disk never stalls the event loop. May be nil.
	snapshotSink chan<- snapshot.Document

	// Optional read-model index (chat + layout audit). Never sim-critical;
	// failures are logged and dropped. May be nil.
	audit AuditLogger
}

type Config struct {
	Seed int64
}

// AuditLogger is implemented by internal/persistence/indexdb.
type AuditLogger interface {
	LogChat(roomID, connID, text string) error
	LogLayoutUpdate(roomID, connID string, itemCount int) error
}

type ConnectRequest struct {
	Out  chan []byte
	Resp chan ConnectResponse
}

type ConnectResponse struct {
	ConnID  string
	Welcome protocol.WelcomeEvent
}

type CommandEnvelope struct {
	ConnID string
	Cmd    protocol.Command
}

func New(cfg Config, cats *catalogs.Catalog, roomDocs []snapshot.RoomV1, logger *log.Logger) (*Office, error) {
	if cats == nil {
		return nil, fmt.Errorf("nil catalog")
	}
	if len(roomDocs) == 0 {
		return nil, fmt.Errorf("no rooms in document")
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	o := &Office{
		cfg:        cfg,
		logger:     logger,
		catalogs:   cats,
		roomsByID:  make(map[string]*Room),
		sessions:   make(map[string]*session),
		calls:      make(map[string]*call),
		shared:     make(map[string]*roomCollections),
		connect:    make(chan ConnectRequest, 16),
		inbox:      make(chan CommandEnvelope, 256),
		disconnect: make(chan string, 16),
		stop:       make(chan struct{}),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}
	for _, doc := range roomDocs {
		if doc.ID == "" {
			return nil, fmt.Errorf("room with empty id")
		}
		if _, dup := o.roomsByID[doc.ID]; dup {
			return nil, fmt.Errorf("duplicate room id %q", doc.ID)
		}
		r := newRoom(doc.ID, doc.Name, doc.Password,
			protocol.Vec2(doc.Size), doc.GridDivision, o.itemsFromDoc(doc.Items))
		o.rooms = append(o.rooms, r)
		o.roomsByID[r.ID] = r
	}
	return o, nil
}

func (o *Office) SetSnapshotSink(ch chan<- snapshot.Document) { o.snapshotSink = ch }
func (o *Office) SetAuditLogger(a AuditLogger)                { o.audit = a }

// Channel API used by the transport layer.
func (o *Office) Connect() chan<- ConnectRequest  { return o.connect }
func (o *Office) Inbox() chan<- CommandEnvelope   { return o.inbox }
func (o *Office) Disconnect() chan<- string       { return o.disconnect }

func (o *Office) newConnID() string {
	n := o.nextConnNum.Add(1)
	return fmt.Sprintf("U%06d", n)
}

// itemsFromDoc fills in footprint data from the catalog when the persisted
// document carries only name/position/rotation.
func (o *Office) itemsFromDoc(docs []snapshot.ItemV1) []protocol.PlacedItem {
	items := make([]protocol.PlacedItem, 0, len(docs))
	for _, d := range docs {
		item := protocol.PlacedItem{
			Name:         d.Name,
			GridPosition: protocol.Vec2(d.GridPosition),
			Rotation:     d.Rotation,
			Size:         protocol.Vec2(d.Size),
			Walkable:     d.Walkable,
			Wall:         d.Wall,
		}
		if def, ok := o.catalogs.Lookup(d.Name); ok {
			if item.Size[0] == 0 && item.Size[1] == 0 {
				item.Size = protocol.Vec2(def.Size)
			}
			item.Walkable = item.Walkable || def.Walkable
			item.Wall = item.Wall || def.Wall
		}
		items = append(items, item)
	}
	return items
}

func (o *Office) roomSummaries() []protocol.RoomSummary {
	out := make([]protocol.RoomSummary, 0, len(o.rooms))
	for _, r := range o.rooms {
		out = append(out, r.summary())
	}
	return out
}

func (o *Office) buildWelcome() protocol.WelcomeEvent {
	return protocol.WelcomeEvent{
		Rooms: o.roomSummaries(),
		Items: o.catalogs.Items,
	}
}

// exportDocument captures the full room set for persistence.
func (o *Office) exportDocument() snapshot.Document {
	doc := snapshot.Document{Rooms: make([]snapshot.RoomV1, 0, len(o.rooms))}
	for _, r := range o.rooms {
		rd := snapshot.RoomV1{
			ID:           r.ID,
			Name:         r.Name,
			Password:     r.Password,
			Size:         [2]int(r.Size),
			GridDivision: r.GridDivision,
			Items:        make([]snapshot.ItemV1, 0, len(r.Items)),
		}
		for _, it := range r.Items {
			rd.Items = append(rd.Items, snapshot.ItemV1{
				Name:         it.Name,
				GridPosition: [2]int(it.GridPosition),
				Rotation:     it.Rotation,
				Size:         [2]int(it.Size),
				Walkable:     it.Walkable,
				Wall:         it.Wall,
			})
		}
		doc.Rooms = append(doc.Rooms, rd)
	}
	return doc
}

func (o *Office) persistRooms() {
	if o.snapshotSink == nil {
		return
	}
	select {
	case o.snapshotSink <- o.exportDocument():
	default:
		o.logger.Printf("snapshot sink full, dropping write")
	}
}
