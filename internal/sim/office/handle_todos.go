package office

import "officegrid/internal/protocol"

func (o *Office) handleGetTodos(s *session) {
	if !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	o.sendTo(s, protocol.EvtTodosUpdate, shared.todosList())
}

func (o *Office) handleAddTodo(s *session, todo *protocol.Todo) {
	if todo == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	shared.todos = append(shared.todos, *todo)
	o.broadcastRoom(s.room, protocol.EvtTodosUpdate, shared.todosList())
}

func (o *Office) handleUpdateTodo(s *session, upd *protocol.TodoUpdate) {
	if upd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	i := shared.todoIndex(upd.ID)
	if i < 0 {
		return
	}
	mergeTodo(&shared.todos[i], upd)
	o.broadcastRoom(s.room, protocol.EvtTodosUpdate, shared.todosList())
}

// handleDeleteTodo removes the todo and cascades into the collections keyed by
// its id: the assignment record and the comment thread. Each collection that
// changed is rebroadcast in full.
func (o *Office) handleDeleteTodo(s *session, cmd *protocol.DeleteTodoCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	i := shared.todoIndex(cmd.ID)
	if i < 0 {
		return
	}
	shared.todos = append(shared.todos[:i], shared.todos[i+1:]...)
	o.broadcastRoom(s.room, protocol.EvtTodosUpdate, shared.todosList())

	if _, ok := shared.assignments[cmd.ID]; ok {
		delete(shared.assignments, cmd.ID)
		o.broadcastRoom(s.room, protocol.EvtTaskAssignmentsUpdate, shared.assignments)
	}
	if _, ok := shared.comments[cmd.ID]; ok {
		delete(shared.comments, cmd.ID)
		o.broadcastRoom(s.room, protocol.EvtCommentsUpdate, shared.comments)
	}
}

// todosList never returns nil so an empty collection serializes as [].
func (c *roomCollections) todosList() []protocol.Todo {
	if c.todos == nil {
		return []protocol.Todo{}
	}
	return c.todos
}
