// Package indexdb is an optional sqlite read-model: chat history and layout
// edit audit rows for offline inspection. It never feeds back into the live
// office state, so every failure degrades to a log line.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan row
	wg   sync.WaitGroup
	once sync.Once
}

type rowKind int

const (
	rowChat rowKind = iota + 1
	rowLayout
)

type row struct {
	kind      rowKind
	roomID    string
	connID    string
	text      string
	itemCount int
	at        time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS chat_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id TEXT NOT NULL,
	conn_id TEXT NOT NULL,
	message TEXT NOT NULL,
	at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS layout_audit (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id TEXT NOT NULL,
	conn_id TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_room ON chat_log(room_id);
CREATE INDEX IF NOT EXISTS idx_layout_room ON layout_audit(room_id);
`

func Open(dir string) (*SQLiteIndex, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "office_index.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init index schema: %w", err)
	}
	x := &SQLiteIndex{db: db, ch: make(chan row, 256)}
	x.wg.Add(1)
	go x.writer()
	return x, nil
}

// writer serializes inserts off the caller's goroutine.
func (x *SQLiteIndex) writer() {
	defer x.wg.Done()
	for r := range x.ch {
		switch r.kind {
		case rowChat:
			_, _ = x.db.Exec(`INSERT INTO chat_log (room_id, conn_id, message, at) VALUES (?, ?, ?, ?)`,
				r.roomID, r.connID, r.text, r.at)
		case rowLayout:
			_, _ = x.db.Exec(`INSERT INTO layout_audit (room_id, conn_id, item_count, at) VALUES (?, ?, ?, ?)`,
				r.roomID, r.connID, r.itemCount, r.at)
		}
	}
}

func (x *SQLiteIndex) enqueue(r row) error {
	select {
	case x.ch <- r:
		return nil
	default:
		return fmt.Errorf("index queue full")
	}
}

func (x *SQLiteIndex) LogChat(roomID, connID, text string) error {
	return x.enqueue(row{kind: rowChat, roomID: roomID, connID: connID, text: text, at: time.Now().UTC()})
}

func (x *SQLiteIndex) LogLayoutUpdate(roomID, connID string, itemCount int) error {
	return x.enqueue(row{kind: rowLayout, roomID: roomID, connID: connID, itemCount: itemCount, at: time.Now().UTC()})
}

// ChatCount reports stored chat rows for a room (used by tooling and tests).
func (x *SQLiteIndex) ChatCount(roomID string) (int, error) {
	var n int
	err := x.db.QueryRow(`SELECT COUNT(*) FROM chat_log WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

func (x *SQLiteIndex) Close() error {
	x.once.Do(func() {
		close(x.ch)
	})
	x.wg.Wait()
	return x.db.Close()
}
