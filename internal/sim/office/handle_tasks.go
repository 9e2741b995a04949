package office

import (
	"time"

	"officegrid/internal/protocol"
)

// Assigning or taking a task without an explicit deadline defaults to one
// week out.
const defaultAssignmentWindow = 7 * 24 * time.Hour

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func shortName(prefix, id string) string {
	if len(id) > 4 {
		id = id[:4]
	}
	return prefix + id
}

func (o *Office) handleGetTasks(s *session) {
	if !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	o.sendTo(s, protocol.EvtTasksUpdate, shared.tasksList())
}

func (o *Office) handleCreateTask(s *session, task *protocol.Task) {
	if task == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	shared.tasks = append(shared.tasks, *task)
	o.broadcastRoom(s.room, protocol.EvtTasksUpdate, shared.tasksList())
}

// handleReorderTasks is a full replace: the board order is whatever the client
// sent, last writer wins.
func (o *Office) handleReorderTasks(s *session, cmd *protocol.ReorderTasksCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	shared.tasks = cmd.Tasks
	o.broadcastRoom(s.room, protocol.EvtTasksUpdate, shared.tasksList())
}

// handleUpdateTaskStatus applies whichever half of the payload is present: a
// status string moves the board entry, a completed flag flips the assignment.
func (o *Office) handleUpdateTaskStatus(s *session, cmd *protocol.UpdateTaskStatusCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	if cmd.Status != "" {
		if i := shared.taskIndex(cmd.TaskID); i >= 0 {
			shared.tasks[i].Status = cmd.Status
			o.broadcastRoom(s.room, protocol.EvtTasksUpdate, shared.tasksList())
		}
	}
	if cmd.Completed != nil {
		if a, ok := shared.assignments[cmd.TaskID]; ok {
			a.Completed = *cmd.Completed
			shared.assignments[cmd.TaskID] = a
			o.broadcastRoom(s.room, protocol.EvtTaskAssignmentsUpdate, shared.assignments)
		}
	}
}

func (o *Office) handleGetComments(s *session) {
	if !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	o.sendTo(s, protocol.EvtCommentsUpdate, shared.comments)
}

func (o *Office) handleAddComment(s *session, cmd *protocol.AddCommentCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	username := cmd.Username
	if username == "" {
		username = shortName("User_", cmd.UserID)
	}
	stamp := cmd.Timestamp
	if stamp == "" {
		stamp = nowStamp()
	}
	shared.comments[cmd.TaskID] = append(shared.comments[cmd.TaskID], protocol.Comment{
		UserID:    cmd.UserID,
		Username:  username,
		Comment:   cmd.Comment,
		Timestamp: stamp,
	})
	o.broadcastRoom(s.room, protocol.EvtCommentsUpdate, shared.comments)
}

func (o *Office) handleGetTaskAssignments(s *session) {
	if !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	o.sendTo(s, protocol.EvtTaskAssignmentsUpdate, shared.assignments)
}

// handleAssignTask keeps any existing completed flag: re-assigning a finished
// task does not reopen it.
func (o *Office) handleAssignTask(s *session, cmd *protocol.AssignTaskCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	name := cmd.AssignedName
	if name == "" {
		name = shortName("User_", cmd.AssignedTo)
	}
	assignedAt := cmd.AssignedAt
	if assignedAt == "" {
		assignedAt = nowStamp()
	}
	deadline := cmd.Deadline
	if deadline == "" {
		deadline = time.Now().UTC().Add(defaultAssignmentWindow).Format(time.RFC3339)
	}
	shared.assignments[cmd.TaskID] = protocol.Assignment{
		TaskID:       cmd.TaskID,
		AssignedTo:   cmd.AssignedTo,
		AssignedName: name,
		AssignedAt:   assignedAt,
		Deadline:     deadline,
		Completed:    shared.assignments[cmd.TaskID].Completed,
	}
	o.broadcastRoom(s.room, protocol.EvtTaskAssignmentsUpdate, shared.assignments)
}

// handleTakeTask always resets completed: an explicit claim overrides any
// prior completion state.
func (o *Office) handleTakeTask(s *session, cmd *protocol.TakeTaskCmd) {
	if cmd == nil || !s.inRoom() {
		return
	}
	shared := o.collections(s.room.ID)
	name := cmd.Username
	if name == "" {
		name = shortName("User_", cmd.UserID)
	}
	takenAt := cmd.TakenAt
	if takenAt == "" {
		takenAt = nowStamp()
	}
	shared.assignments[cmd.TaskID] = protocol.Assignment{
		TaskID:       cmd.TaskID,
		AssignedTo:   cmd.UserID,
		AssignedName: name,
		AssignedAt:   takenAt,
		Deadline:     time.Now().UTC().Add(defaultAssignmentWindow).Format(time.RFC3339),
		Completed:    false,
	}
	o.broadcastRoom(s.room, protocol.EvtTaskAssignmentsUpdate, shared.assignments)
}

func (c *roomCollections) tasksList() []protocol.Task {
	if c.tasks == nil {
		return []protocol.Task{}
	}
	return c.tasks
}
