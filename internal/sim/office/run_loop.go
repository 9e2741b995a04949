package office

import (
	"context"

	"officegrid/internal/protocol"
)

// Run owns all office state. Events are handled strictly one at a time in
// arrival order with no preemption mid-handler, so a grid rebuild always
// completes before the next command is processed.
func (o *Office) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.stop:
			return nil
		case req := <-o.connect:
			o.handleConnect(req)
		case env := <-o.inbox:
			o.handleCommand(env)
		case id := <-o.disconnect:
			o.handleDisconnect(id)
		}
	}
}

func (o *Office) Stop() { close(o.stop) }

func (o *Office) handleConnect(req ConnectRequest) {
	id := o.newConnID()
	o.sessions[id] = &session{connID: id, out: req.Out}
	req.Resp <- ConnectResponse{ConnID: id, Welcome: o.buildWelcome()}
}

func (o *Office) handleDisconnect(connID string) {
	s := o.sessions[connID]
	if s == nil {
		return
	}
	// Voice-call teardown and room teardown are independent; run both.
	if s.callID != "" {
		o.removeFromCall(s, s.callID, "")
	}
	o.leaveRoom(s)
	delete(o.sessions, connID)
	o.logger.Printf("disconnected conn=%s", connID)
}

// handleCommand dispatches the closed command union. The switch is exhaustive
// over protocol command names; DecodeCommand already rejected unknown events.
func (o *Office) handleCommand(env CommandEnvelope) {
	s := o.sessions[env.ConnID]
	if s == nil {
		return
	}
	cmd := env.Cmd
	switch cmd.Name {
	case protocol.CmdJoinRoom:
		o.handleJoinRoom(s, cmd.JoinRoom)
	case protocol.CmdLeaveRoom:
		o.handleLeaveRoom(s)
	case protocol.CmdAvatarUpdate:
		o.handleAvatarUpdate(s, cmd.AvatarUpdate)
	case protocol.CmdMove:
		o.handleMove(s, cmd.Move)
	case protocol.CmdDance:
		o.handleDance(s)
	case protocol.CmdChatMessage:
		o.handleChatMessage(s, cmd.ChatMessage)
	case protocol.CmdPasswordCheck:
		o.handlePasswordCheck(s, cmd.PasswordCheck)
	case protocol.CmdItemsUpdate:
		o.handleItemsUpdate(s, cmd.ItemsUpdate)
	case protocol.CmdGetTodos:
		o.handleGetTodos(s)
	case protocol.CmdAddTodo:
		o.handleAddTodo(s, cmd.AddTodo)
	case protocol.CmdUpdateTodo:
		o.handleUpdateTodo(s, cmd.UpdateTodo)
	case protocol.CmdDeleteTodo:
		o.handleDeleteTodo(s, cmd.DeleteTodo)
	case protocol.CmdGetTasks:
		o.handleGetTasks(s)
	case protocol.CmdCreateTask:
		o.handleCreateTask(s, cmd.CreateTask)
	case protocol.CmdReorderTasks:
		o.handleReorderTasks(s, cmd.ReorderTasks)
	case protocol.CmdUpdateTaskStatus:
		o.handleUpdateTaskStatus(s, cmd.UpdateTaskStatus)
	case protocol.CmdGetComments:
		o.handleGetComments(s)
	case protocol.CmdAddComment:
		o.handleAddComment(s, cmd.AddComment)
	case protocol.CmdGetTaskAssignments:
		o.handleGetTaskAssignments(s)
	case protocol.CmdAssignTask:
		o.handleAssignTask(s, cmd.AssignTask)
	case protocol.CmdTakeTask:
		o.handleTakeTask(s, cmd.TakeTask)
	case protocol.CmdCodeUpdate:
		o.handleCodeUpdate(s, cmd.CodeUpdate)
	case protocol.CmdNearDeskComputer:
		o.handleNearDeskComputer(s, cmd.NearDeskComputer)
	case protocol.CmdVoiceCallStart:
		o.handleVoiceCallStart(s, cmd.VoiceCallStart)
	case protocol.CmdVoiceCallJoin:
		o.handleVoiceCallJoin(s, cmd.VoiceCallJoin)
	case protocol.CmdVoiceCallLeave:
		o.handleVoiceCallLeave(s, cmd.VoiceCallLeave)
	case protocol.CmdVoiceCallMute:
		o.handleVoiceCallMute(s, cmd.VoiceCallMute)
	case protocol.CmdStartCall:
		o.handleStartCall(s, cmd.StartCall)
	}
}
