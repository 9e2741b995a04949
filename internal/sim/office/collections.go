package office

import "officegrid/internal/protocol"

// roomCollections holds the shared mutable state of one room. Every mutation
// rebroadcasts the whole collection; readers must treat each broadcast as
// authoritative full state, never a patch.
type roomCollections struct {
	todos       []protocol.Todo
	tasks       []protocol.Task
	comments    map[string][]protocol.Comment  // taskID -> thread
	assignments map[string]protocol.Assignment // taskID -> assignment
	code        string
}

// collections returns the room's shared state, creating empty collections on
// first access.
func (o *Office) collections(roomID string) *roomCollections {
	c, ok := o.shared[roomID]
	if !ok {
		c = &roomCollections{
			comments:    make(map[string][]protocol.Comment),
			assignments: make(map[string]protocol.Assignment),
		}
		o.shared[roomID] = c
	}
	return c
}

func (c *roomCollections) todoIndex(id string) int {
	for i := range c.todos {
		if c.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *roomCollections) taskIndex(id string) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// mergeTodo applies the fields present in the update onto the stored todo.
func mergeTodo(dst *protocol.Todo, upd *protocol.TodoUpdate) {
	if upd.Title != nil {
		dst.Title = *upd.Title
	}
	if upd.Description != nil {
		dst.Description = *upd.Description
	}
	if upd.Priority != nil {
		dst.Priority = *upd.Priority
	}
	if upd.Completed != nil {
		dst.Completed = *upd.Completed
	}
}
