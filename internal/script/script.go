// Package script drives a console from Lua. Scripts see four tables:
//
//	emu     frameadvance, framecount, reset, savestate, loadstate, cpu, print
//	memory  readbyte, writebyte, readword
//	joypad  set, get
//	gui     text, screenshot
package script

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/fogleman/gg"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/image/draw"

	"github.com/kaishuu0123/nescore/nescore"
)

var buttonNames = [8]string{"A", "B", "select", "start", "up", "down", "left", "right"}

type overlayText struct {
	x, y float64
	text string
}

// Engine owns one Lua state bound to one console.
type Engine struct {
	L       *lua.LState
	console *nescore.Console
	out     io.Writer

	frames  int
	overlay []overlayText
}

func New(console *nescore.Console, out io.Writer) *Engine {
	e := &Engine{
		L:       lua.NewState(),
		console: console,
		out:     out,
	}
	e.register()
	return e
}

func (e *Engine) Close() {
	e.L.Close()
}

// Frames reports how many frames scripts have advanced.
func (e *Engine) Frames() int {
	return e.frames
}

// RunFile executes path. Cancelling ctx aborts the script.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func (e *Engine) RunString(ctx context.Context, source string) error {
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	return e.L.DoString(source)
}

func (e *Engine) register() {
	L := e.L

	L.SetGlobal("print", L.NewFunction(e.print))

	emu := L.NewTable()
	L.SetFuncs(emu, map[string]lua.LGFunction{
		"frameadvance": e.frameAdvance,
		"framecount":   e.frameCount,
		"reset":        e.reset,
		"savestate":    e.saveState,
		"loadstate":    e.loadState,
		"cpu":          e.cpu,
		"print":        e.print,
	})
	L.SetGlobal("emu", emu)

	memory := L.NewTable()
	L.SetFuncs(memory, map[string]lua.LGFunction{
		"readbyte":  e.readByte,
		"writebyte": e.writeByte,
		"readword":  e.readWord,
	})
	L.SetGlobal("memory", memory)

	joypad := L.NewTable()
	L.SetFuncs(joypad, map[string]lua.LGFunction{
		"set": e.joypadSet,
		"get": e.joypadGet,
	})
	L.SetGlobal("joypad", joypad)

	gui := L.NewTable()
	L.SetFuncs(gui, map[string]lua.LGFunction{
		"text":       e.guiText,
		"screenshot": e.screenshot,
	})
	L.SetGlobal("gui", gui)
}

func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}

// emu.frameadvance([n])
func (e *Engine) frameAdvance(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for i := 0; i < n; i++ {
		if ctx := L.Context(); ctx != nil && ctx.Err() != nil {
			L.RaiseError("frameadvance: %v", ctx.Err())
			return 0
		}
		if err := e.console.StepFrame(); err != nil {
			L.RaiseError("frameadvance: %v", err)
			return 0
		}
		e.frames++
		e.overlay = e.overlay[:0]
	}
	return 0
}

func (e *Engine) frameCount(L *lua.LState) int {
	L.Push(lua.LNumber(e.console.FrameCount()))
	return 1
}

func (e *Engine) reset(L *lua.LState) int {
	e.console.Reset()
	return 0
}

// emu.savestate() returns the path of the new slot.
func (e *Engine) saveState(L *lua.LState) int {
	path, err := e.console.SaveStateToDir()
	if err != nil {
		L.RaiseError("savestate: %v", err)
		return 0
	}
	L.Push(lua.LString(path))
	return 1
}

// emu.loadstate([path]) loads path, or the newest slot.
func (e *Engine) loadState(L *lua.LState) int {
	path := L.OptString(1, "")
	if path == "" {
		latest, err := e.console.LatestSaveState()
		if err != nil {
			L.RaiseError("loadstate: %v", err)
			return 0
		}
		path = latest
	}
	if err := e.console.LoadStateFile(path); err != nil {
		L.RaiseError("loadstate: %v", err)
		return 0
	}
	return 0
}

func (e *Engine) cpu(L *lua.LState) int {
	s := e.console.CPUState()
	t := L.NewTable()
	t.RawSetString("pc", lua.LNumber(s.PC))
	t.RawSetString("a", lua.LNumber(s.A))
	t.RawSetString("x", lua.LNumber(s.X))
	t.RawSetString("y", lua.LNumber(s.Y))
	t.RawSetString("sp", lua.LNumber(s.SP))
	t.RawSetString("p", lua.LNumber(s.P))
	t.RawSetString("cycles", lua.LNumber(s.ClockCount))
	L.Push(t)
	return 1
}

func checkAddress(L *lua.LState, n int) uint16 {
	address := L.CheckInt(n)
	if address < 0 || address > 0xFFFF {
		L.ArgError(n, "address out of range")
	}
	return uint16(address)
}

func (e *Engine) readByte(L *lua.LState) int {
	L.Push(lua.LNumber(e.console.Peek(checkAddress(L, 1))))
	return 1
}

func (e *Engine) readWord(L *lua.LState) int {
	address := checkAddress(L, 1)
	lo := uint16(e.console.Peek(address))
	hi := uint16(e.console.Peek(address + 1))
	L.Push(lua.LNumber(hi<<8 | lo))
	return 1
}

func (e *Engine) writeByte(L *lua.LState) int {
	address := checkAddress(L, 1)
	value := L.CheckInt(2)
	e.console.Poke(address, byte(value))
	return 0
}

func (e *Engine) controller(L *lua.LState) *nescore.Controller {
	port := L.CheckInt(1)
	switch port {
	case 1:
		return e.console.Controller1
	case 2:
		return e.console.Controller2
	}
	L.ArgError(1, "port must be 1 or 2")
	return nil
}

// joypad.set(port, {A=true, start=true, ...}) replaces the held buttons.
func (e *Engine) joypadSet(L *lua.LState) int {
	c := e.controller(L)
	t := L.CheckTable(2)
	var buttons [8]bool
	for i, name := range buttonNames {
		buttons[i] = lua.LVAsBool(t.RawGetString(name))
	}
	c.SetButtons(buttons)
	return 0
}

func (e *Engine) joypadGet(L *lua.LState) int {
	c := e.controller(L)
	buttons := c.Buttons()
	t := L.NewTable()
	for i, name := range buttonNames {
		t.RawSetString(name, lua.LBool(buttons[i]))
	}
	L.Push(t)
	return 1
}

// gui.text(x, y, text) draws text on the next screenshot of this frame.
func (e *Engine) guiText(L *lua.LState) int {
	e.overlay = append(e.overlay, overlayText{
		x:    float64(L.CheckNumber(1)),
		y:    float64(L.CheckNumber(2)),
		text: L.CheckString(3),
	})
	return 0
}

// gui.screenshot(path, [caption], [scale]) writes the current frame as a PNG.
func (e *Engine) screenshot(L *lua.LState) int {
	path := L.CheckString(1)
	scaleArg := 2
	var caption string
	if s, ok := L.Get(2).(lua.LString); ok {
		caption = string(s)
		scaleArg = 3
	}
	scale := L.OptInt(scaleArg, 1)
	if scale < 1 || scale > 8 {
		L.ArgError(scaleArg, "scale must be 1-8")
		return 0
	}
	texts := e.overlay
	if caption != "" {
		texts = append(texts[:len(texts):len(texts)], overlayText{x: 2, y: 2, text: caption})
	}
	if err := writeScreenshot(e.console.Buffer(), path, scale, texts); err != nil {
		L.RaiseError("screenshot: %v", err)
	}
	return 0
}

// Screenshot writes the last frame, scaled and with any gui.text overlay, to path.
func (e *Engine) Screenshot(path string, scale int) error {
	return writeScreenshot(e.console.Buffer(), path, scale, e.overlay)
}

// Screenshot scales frame by an integer factor and saves it as a PNG.
func Screenshot(frame *image.RGBA, path string, scale int) error {
	return writeScreenshot(frame, path, scale, nil)
}

func writeScreenshot(frame *image.RGBA, path string, scale int, texts []overlayText) error {
	bounds := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), frame, bounds, draw.Src, nil)

	dc := gg.NewContextForRGBA(dst)
	for _, t := range texts {
		x, y := t.x*float64(scale), t.y*float64(scale)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(t.text, x+1, y+1, 0, 1)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(t.text, x, y, 0, 1)
	}
	return dc.SavePNG(path)
}
