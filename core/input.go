package core

import "github.com/go-gl/glfw/v3.3/glfw"

// KeyState tracks a key or mouse button across PollEvents calls.
type KeyState struct {
	wasPressed bool
	pressed    bool
}

func (k *KeyState) update(pressed bool) {
	k.wasPressed = k.pressed
	k.pressed = pressed
}

func (k *KeyState) IsPressed() bool { return k.pressed }

// IsRepeated reports a key held since the previous poll.
func (k *KeyState) IsRepeated() bool { return k.wasPressed && k.pressed }

// IsInitialPress reports a key that went down since the previous poll.
func (k *KeyState) IsInitialPress() bool { return k.pressed && !k.wasPressed }

type Action int

const (
	Release Action = Action(glfw.Release)
	Press   Action = Action(glfw.Press)
	Repeat  Action = Action(glfw.Repeat)
)

type CursorMode int

const (
	CursorNormal   CursorMode = CursorMode(glfw.CursorNormal)
	CursorHidden   CursorMode = CursorMode(glfw.CursorHidden)
	CursorDisabled CursorMode = CursorMode(glfw.CursorDisabled)
)

const (
	MouseButtonLeft   = int(glfw.MouseButtonLeft)
	MouseButtonRight  = int(glfw.MouseButtonRight)
	MouseButtonMiddle = int(glfw.MouseButtonMiddle)
)

const (
	KeySpace        = int(glfw.KeySpace)
	Key0            = int(glfw.Key0)
	Key1            = int(glfw.Key1)
	Key2            = int(glfw.Key2)
	Key3            = int(glfw.Key3)
	KeyA            = int(glfw.KeyA)
	KeyC            = int(glfw.KeyC)
	KeyD            = int(glfw.KeyD)
	KeyE            = int(glfw.KeyE)
	KeyF            = int(glfw.KeyF)
	KeyL            = int(glfw.KeyL)
	KeyQ            = int(glfw.KeyQ)
	KeyR            = int(glfw.KeyR)
	KeyS            = int(glfw.KeyS)
	KeyW            = int(glfw.KeyW)
	KeyEscape       = int(glfw.KeyEscape)
	KeyEnter        = int(glfw.KeyEnter)
	KeyTab          = int(glfw.KeyTab)
	KeyBackspace    = int(glfw.KeyBackspace)
	KeyRight        = int(glfw.KeyRight)
	KeyLeft         = int(glfw.KeyLeft)
	KeyDown         = int(glfw.KeyDown)
	KeyUp           = int(glfw.KeyUp)
	KeyF1           = int(glfw.KeyF1)
	KeyF2           = int(glfw.KeyF2)
	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyLeftControl  = int(glfw.KeyLeftControl)
	KeyLeftAlt      = int(glfw.KeyLeftAlt)
	KeyRightShift   = int(glfw.KeyRightShift)
	KeyRightControl = int(glfw.KeyRightControl)
)
