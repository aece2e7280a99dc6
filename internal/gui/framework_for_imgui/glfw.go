package framework_for_imgui

import (
	"fmt"
	"math"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
)

const (
	mouseButtonPrimary = iota
	mouseButtonSecondary
	mouseButtonTertiary
	mouseButtonCount
)

// GLFW is the window and input side of imgui, backed by an OpenGL 2.1 context.
type GLFW struct {
	imguiIO imgui.IO

	Window *glfw.Window

	time             float64
	mouseJustPressed [mouseButtonCount]bool

	onDropCallback  func([]string)
	onKeyCallback   func(key glfw.Key, mods glfw.ModifierKey)
	onFocusCallback func(focused bool)
}

func init() {
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

// NewGLFW attempts to initialize a GLFW context.
func NewGLFW(io imgui.IO, width, height int, title string) (*GLFW, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	platform := &GLFW{
		imguiIO: io,
		Window:  window,
	}
	platform.setKeyMapping()
	platform.installCallbacks()

	return platform, nil
}

// Dispose cleans up the resources.
func (platform *GLFW) Dispose() {
	platform.Window.Destroy()
	glfw.Terminate()
}

// ShouldStop returns true if the window is to be closed.
func (platform *GLFW) ShouldStop() bool {
	return platform.Window.ShouldClose()
}

// ProcessEvents handles all pending window events.
func (platform *GLFW) ProcessEvents() {
	glfw.PollEvents()
}

// DisplaySize returns the dimension of the display.
func (platform *GLFW) DisplaySize() [2]float32 {
	w, h := platform.Window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// FramebufferSize returns the dimension of the framebuffer.
func (platform *GLFW) FramebufferSize() [2]float32 {
	w, h := platform.Window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// Focused reports whether the window has input focus.
func (platform *GLFW) Focused() bool {
	return platform.Window.GetAttrib(glfw.Focused) != 0
}

// NewFrame marks the begin of a render pass. It forwards all current state to imgui IO.
func (platform *GLFW) NewFrame() {
	displaySize := platform.DisplaySize()
	platform.imguiIO.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	currentTime := glfw.GetTime()
	if platform.time > 0 {
		platform.imguiIO.SetDeltaTime(float32(currentTime - platform.time))
	}
	platform.time = currentTime

	if platform.Focused() {
		x, y := platform.Window.GetCursorPos()
		platform.imguiIO.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	} else {
		platform.imguiIO.SetMousePosition(imgui.Vec2{X: -math.MaxFloat32, Y: -math.MaxFloat32})
	}

	for i := range platform.mouseJustPressed {
		down := platform.mouseJustPressed[i] || platform.Window.GetMouseButton(glfwButtonIDByIndex[i]) == glfw.Press
		platform.imguiIO.SetMouseButtonDown(i, down)
		platform.mouseJustPressed[i] = false
	}
}

// PostRender performs a buffer swap.
func (platform *GLFW) PostRender() {
	platform.Window.SwapBuffers()
}

func (platform *GLFW) setKeyMapping() {
	keys := map[int]glfw.Key{
		imgui.KeyTab:        glfw.KeyTab,
		imgui.KeyLeftArrow:  glfw.KeyLeft,
		imgui.KeyRightArrow: glfw.KeyRight,
		imgui.KeyUpArrow:    glfw.KeyUp,
		imgui.KeyDownArrow:  glfw.KeyDown,
		imgui.KeyPageUp:     glfw.KeyPageUp,
		imgui.KeyPageDown:   glfw.KeyPageDown,
		imgui.KeyHome:       glfw.KeyHome,
		imgui.KeyEnd:        glfw.KeyEnd,
		imgui.KeyDelete:     glfw.KeyDelete,
		imgui.KeyBackspace:  glfw.KeyBackspace,
		imgui.KeyEnter:      glfw.KeyEnter,
		imgui.KeyEscape:     glfw.KeyEscape,
	}
	for imguiKey, glfwKey := range keys {
		platform.imguiIO.KeyMap(imguiKey, int(glfwKey))
	}
}

func (platform *GLFW) installCallbacks() {
	platform.Window.SetMouseButtonCallback(platform.mouseButtonChange)
	platform.Window.SetScrollCallback(platform.mouseScrollChange)
	platform.Window.SetKeyCallback(platform.keyChange)
	platform.Window.SetCharCallback(platform.charChange)
	platform.Window.SetDropCallback(platform.onDrop)
	platform.Window.SetFocusCallback(platform.focusChange)
}

var glfwButtonIndexByID = map[glfw.MouseButton]int{
	glfw.MouseButton1: mouseButtonPrimary,
	glfw.MouseButton2: mouseButtonSecondary,
	glfw.MouseButton3: mouseButtonTertiary,
}

var glfwButtonIDByIndex = map[int]glfw.MouseButton{
	mouseButtonPrimary:   glfw.MouseButton1,
	mouseButtonSecondary: glfw.MouseButton2,
	mouseButtonTertiary:  glfw.MouseButton3,
}

func (platform *GLFW) mouseButtonChange(window *glfw.Window, rawButton glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if i, known := glfwButtonIndexByID[rawButton]; known && action == glfw.Press {
		platform.mouseJustPressed[i] = true
	}
}

func (platform *GLFW) mouseScrollChange(window *glfw.Window, x, y float64) {
	platform.imguiIO.AddMouseWheelDelta(float32(x), float32(y))
}

func (platform *GLFW) keyChange(window *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		platform.imguiIO.KeyPress(int(key))
		if platform.onKeyCallback != nil {
			platform.onKeyCallback(key, mods)
		}
	case glfw.Release:
		platform.imguiIO.KeyRelease(int(key))
	}

	platform.imguiIO.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	platform.imguiIO.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	platform.imguiIO.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	platform.imguiIO.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (platform *GLFW) charChange(window *glfw.Window, char rune) {
	platform.imguiIO.AddInputCharacters(string(char))
}

func (platform *GLFW) onDrop(window *glfw.Window, names []string) {
	window.Focus()
	if platform.onDropCallback != nil && len(names) > 0 {
		platform.onDropCallback(names)
	}
}

func (platform *GLFW) focusChange(window *glfw.Window, focused bool) {
	if platform.onFocusCallback != nil {
		platform.onFocusCallback(focused)
	}
}

func (platform *GLFW) SetDropCallback(cb func(names []string)) {
	platform.onDropCallback = cb
}

// SetKeyCallback is called on every key press, after imgui has seen it.
func (platform *GLFW) SetKeyCallback(cb func(key glfw.Key, mods glfw.ModifierKey)) {
	platform.onKeyCallback = cb
}

func (platform *GLFW) SetFocusCallback(cb func(focused bool)) {
	platform.onFocusCallback = cb
}
