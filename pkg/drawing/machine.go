package drawing

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is the observable input state of a surface.
type State string

// Surface input states.
const (
	StateIdle    State = "idle"
	StateArmed   State = "armed"
	StateDrawing State = "drawing"
)

const (
	stateIdle    statekit.StateID = statekit.StateID(StateIdle)
	stateArmed   statekit.StateID = statekit.StateID(StateArmed)
	stateDrawing statekit.StateID = statekit.StateID(StateDrawing)
)

// Input events driving the statechart.
const (
	eventSelectTool   statekit.EventType = "SELECT_TOOL"
	eventClearTool    statekit.EventType = "CLEAR_TOOL"
	eventPointerDown  statekit.EventType = "POINTER_DOWN"
	eventPointerUp    statekit.EventType = "POINTER_UP"
	eventPointerLeave statekit.EventType = "POINTER_LEAVE"
)

// machineContext is the (empty) context threaded through the statechart;
// all stroke state lives on the Surface, the machine only arbitrates which
// pointer events are acted on.
type machineContext struct{}

// newInputMachine builds the Idle/Armed/Drawing statechart.
func newInputMachine() (*statekit.MachineConfig[*machineContext], error) {
	m, err := statekit.NewMachine[*machineContext]("drawing-surface").
		WithInitial(stateIdle).
		WithContext(&machineContext{}).
		State(stateIdle).
			On(eventSelectTool).Target(stateArmed).
			Done().
		State(stateArmed).
			On(eventSelectTool).Target(stateArmed).
			On(eventClearTool).Target(stateIdle).
			On(eventPointerDown).Target(stateDrawing).
			Done().
		State(stateDrawing).
			On(eventPointerUp).Target(stateArmed).
			On(eventPointerLeave).Target(stateArmed).
			Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build input machine: %w", err)
	}
	return m, nil
}
