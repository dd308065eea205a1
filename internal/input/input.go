package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical playground action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionFast
	ActionSlow
	ActionClose
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveForward:  "move_forward",
	ActionMoveBackward: "move_backward",
	ActionMoveLeft:     "move_left",
	ActionMoveRight:    "move_right",
	ActionFast:         "fast",
	ActionSlow:         "slow",
	ActionClose:        "close",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Manager maps physical keys to actions and queues window events until the
// loop drains them. GLFW delivers callbacks on the thread calling PollEvents,
// so the queue is only touched from the loop thread.
type Manager struct {
	keyToActions map[glfw.Key][]Action

	// held mirrors the pressed state of every action
	held [ActionCount]bool

	queue []Event
}

// NewManager creates a Manager with the default bindings
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeyLeftShift, ActionFast)
	m.BindKey(glfw.KeyLeftControl, ActionSlow)
	m.BindKey(glfw.KeyEscape, ActionClose)

	return m
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key glfw.Key) {
	delete(m.keyToActions, key)
}

// HandleKeyEvent translates a key event into action events
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}

	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		m.held[act] = pressed
		ev := ActionEvent(act, pressed)
		ev.Repeat = action == glfw.Repeat
		m.queue = append(m.queue, ev)
	}
}

// HandleCursorPos queues a cursor move
func (m *Manager) HandleCursorPos(x, y float64) {
	m.queue = append(m.queue, CursorEvent(x, y))
}

// HandleScroll queues a scroll
func (m *Manager) HandleScroll(xoff, yoff float64) {
	m.queue = append(m.queue, ScrollEvent(xoff, yoff))
}

// HandleFramebufferSize queues a framebuffer resize
func (m *Manager) HandleFramebufferSize(width, height int) {
	m.queue = append(m.queue, ResizeEvent(width, height))
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.held[action]
}

// Drain returns the events queued since the last call, oldest first.
func (m *Manager) Drain() []Event {
	events := m.queue
	m.queue = nil
	return events
}

// Attach installs the GLFW callbacks that feed this manager
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		m.HandleCursorPos(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		m.HandleScroll(xoff, yoff)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		m.HandleFramebufferSize(width, height)
	})
}
