package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/kaishuu0123/nescore/nescore"
)

var keymap1 = [8]glfw.Key{
	nescore.ButtonA:      glfw.KeyZ,
	nescore.ButtonB:      glfw.KeyX,
	nescore.ButtonSelect: glfw.KeyRightShift,
	nescore.ButtonStart:  glfw.KeyEnter,
	nescore.ButtonUp:     glfw.KeyUp,
	nescore.ButtonDown:   glfw.KeyDown,
	nescore.ButtonLeft:   glfw.KeyLeft,
	nescore.ButtonRight:  glfw.KeyRight,
}

var keymap2 = [8]glfw.Key{
	nescore.ButtonA:      glfw.KeyA,
	nescore.ButtonB:      glfw.KeyS,
	nescore.ButtonSelect: glfw.KeyLeftShift,
	nescore.ButtonStart:  glfw.KeyE,
	nescore.ButtonUp:     glfw.KeyI,
	nescore.ButtonDown:   glfw.KeyK,
	nescore.ButtonLeft:   glfw.KeyJ,
	nescore.ButtonRight:  glfw.KeyL,
}

func readKeys(window *glfw.Window, keymap [8]glfw.Key) [8]bool {
	var result [8]bool
	for button, key := range keymap {
		result[button] = window.GetKey(key) == glfw.Press
	}
	return result
}

func processInputController1(window *glfw.Window) [8]bool {
	return readKeys(window, keymap1)
}

func processInputController2(window *glfw.Window) [8]bool {
	return readKeys(window, keymap2)
}

// joystick button indices for A, B, select, start
var joyButtons = map[string][4]int{
	"DUALSHOCK 4 Wireless Controller": {2, 1, 8, 9},
}

var defaultJoyButtons = [4]int{0, 1, 6, 7}

func readJoyStick(joy glfw.Joystick) [8]bool {
	var result [8]bool
	if !joy.Present() {
		return result
	}
	axes := joy.GetAxes()
	buttons := joy.GetButtons()
	layout, ok := joyButtons[joy.GetName()]
	if !ok {
		layout = defaultJoyButtons
	}
	pressed := func(i int) bool {
		return i < len(buttons) && buttons[i] == glfw.Press
	}
	result[nescore.ButtonA] = pressed(layout[0])
	result[nescore.ButtonB] = pressed(layout[1])
	result[nescore.ButtonSelect] = pressed(layout[2])
	result[nescore.ButtonStart] = pressed(layout[3])
	if len(axes) >= 2 {
		result[nescore.ButtonUp] = axes[1] < -0.5
		result[nescore.ButtonDown] = axes[1] > 0.5
		result[nescore.ButtonLeft] = axes[0] < -0.5
		result[nescore.ButtonRight] = axes[0] > 0.5
	}
	return result
}

func combineButtons(a, b [8]bool) [8]bool {
	var result [8]bool
	for i := 0; i < 8; i++ {
		result[i] = a[i] || b[i]
	}
	return result
}
