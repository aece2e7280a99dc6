package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Code-Hex/dd"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/kaishuu0123/nescore/internal/gui"
	"github.com/kaishuu0123/nescore/internal/gui/framework_for_imgui"
	"github.com/kaishuu0123/nescore/internal/statsview"
	"github.com/kaishuu0123/nescore/nescore"
	"golang.org/x/image/draw"
)

const (
	SCREEN_WIDTH  int = 256
	SCREEN_HEIGHT int = 240

	// longest slice of emulated time run per host frame
	MAX_STEP_SECONDS = 0.1
	STATUS_DURATION  = 3 * time.Second
)

var (
	scale      = flag.Int("scale", 2, "window scale factor")
	statsAddr  = flag.String("statsview", "", "serve runtime charts on this address (e.g. "+statsview.DefaultAddress+")")
	saveDir    = flag.String("savedir", "", "directory for save states (default: <rom dir>/saves)")
	batteryDir = flag.String("batterydir", "", "directory for battery RAM files (default: next to the ROM)")
	tracePath  = flag.String("trace", "", "write a CPU trace line per instruction to this file")
	dumpState  = flag.Bool("dump", false, "dump CPU and PPU state on exit or on a CPU fault")
)

var (
	console     *nescore.Console
	isRunning   = false
	isPaused    = false
	traceWriter *bufio.Writer

	statusMessage string
	statusExpires time.Time
)

func setStatus(format string, args ...interface{}) {
	statusMessage = fmt.Sprintf(format, args...)
	statusExpires = time.Now().Add(STATUS_DURATION)
	log.Println(statusMessage)
}

func ResetConsole(fileName string) {
	log.Println("Reset Console")
	log.Printf("ROM file path: %s\n", fileName)

	if err := console.LoadROM(fileName); err != nil {
		setStatus("%v", err)
		return
	}
	isRunning = true
	isPaused = false
	setStatus("loaded %s (mapper %d)", console.Title(), console.Cartridge.MapperID)
}

func onDrop(names []string) {
	if len(names) == 0 {
		return
	}
	ResetConsole(names[0])
}

func onKey(key glfw.Key, mods glfw.ModifierKey) {
	if console.Cartridge == nil {
		return
	}
	switch key {
	case glfw.KeyF2:
		console.Reset()
		isRunning = true
		setStatus("reset")
	case glfw.KeyF5:
		path, err := console.SaveStateToDir()
		if err != nil {
			setStatus("save failed: %v", err)
			return
		}
		setStatus("saved %s", filepath.Base(path))
	case glfw.KeyF9:
		path, err := console.LatestSaveState()
		if err != nil {
			setStatus("no save state: %v", err)
			return
		}
		if err := console.LoadStateFile(path); err != nil {
			setStatus("load failed: %v", err)
			return
		}
		isRunning = true
		setStatus("loaded %s", filepath.Base(path))
	case glfw.KeyPause, glfw.KeyP:
		isPaused = !isPaused
	}
}

func onFocus(focused bool) {
	isPaused = !focused
}

func step(seconds float64) error {
	if traceWriter == nil {
		return console.StepSeconds(seconds)
	}
	cycles := int(nescore.CPUFrequency * seconds)
	for cycles > 0 {
		fmt.Fprintln(traceWriter, console.CPU.Trace())
		n, err := console.Step()
		if err != nil {
			return err
		}
		cycles -= n
	}
	return nil
}

type stateDump struct {
	CPU nescore.CPUState
	PPU nescore.PPURegisters
}

func dump() {
	if console.Cartridge == nil || !*dumpState {
		return
	}
	fmt.Fprintln(os.Stderr, dd.Dump(stateDump{
		CPU: console.CPUState(),
		PPU: console.PPURegisters(),
	}))
}

func renderGUI(width, height int, screen *framework_for_imgui.ScreenTexture) {
	if console.Cartridge != nil {
		imgui.BackgroundDrawList().
			AddImage(
				screen.ID(),
				imgui.Vec2{X: 0, Y: 0},
				imgui.Vec2{X: float32(width), Y: float32(height)},
			)
	}

	var msg string
	switch {
	case console.Cartridge == nil:
		msg = "NESCore is currently stopped.\n\nPlease drag and drop ROM file."
	case isPaused:
		msg = "PAUSED"
	}
	if msg != "" {
		textSize := imgui.CalcTextSize(msg, false, 0)
		xpos := (float32(width) - textSize.X) / 2
		ypos := (float32(height) - textSize.Y) / 2
		imgui.ForegroundDrawList().
			AddText(
				imgui.Vec2{X: xpos, Y: ypos},
				imgui.PackedColor(0xFFFFFFFF),
				msg,
			)
	}

	if statusMessage != "" && time.Now().Before(statusExpires) {
		imgui.ForegroundDrawList().
			AddText(
				imgui.Vec2{X: 4, Y: float32(height) - imgui.TextLineHeight() - 4},
				imgui.PackedColor(0xFF00FFFF),
				statusMessage,
			)
	}
}

func main() {
	flag.Parse()
	if *scale < 1 {
		log.Fatalln("scale must be at least 1")
	}

	if *statsAddr != "" {
		stop := statsview.Launch(os.Stdout, *statsAddr)
		defer stop()
	}

	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		traceWriter = bufio.NewWriter(f)
		defer traceWriter.Flush()
	}

	console = nescore.NewEmptyConsole()
	console.SetBatteryDir(*batteryDir)
	console.SetSaveDir(*saveDir)
	defer func() {
		dump()
		if err := console.Close(); err != nil {
			log.Println(err)
		}
	}()

	if len(flag.Args()) >= 1 {
		if _, err := os.Stat(flag.Arg(0)); err != nil {
			log.Fatalln("no rom file specified or found")
		}
		ResetConsole(flag.Arg(0))
	}

	width, height := SCREEN_WIDTH*(*scale), SCREEN_HEIGHT*(*scale)
	window, err := gui.NewMasterWindow("NESCore", width, height)
	if err != nil {
		log.Fatalln(err)
	}
	defer window.Dispose()
	window.SetDropCallback(onDrop)
	window.SetKeyCallback(onKey)
	window.SetFocusCallback(onFocus)

	screenImage := image.NewRGBA(image.Rect(0, 0, width, height))
	screen := window.Renderer.NewScreenTexture(width, height)
	defer screen.Delete()

	if glfw.Joystick1.Present() {
		log.Printf("Joystick1 name: %s\n", glfw.Joystick1.GetName())
	}

	prevTimestamp := glfw.GetTime()
	for !window.Platform.ShouldStop() {
		curTimestamp := glfw.GetTime()
		window.Platform.ProcessEvents()

		dt := curTimestamp - prevTimestamp
		prevTimestamp = curTimestamp
		if dt > MAX_STEP_SECONDS {
			dt = MAX_STEP_SECONDS
		}

		if isRunning && !isPaused {
			console.SetButtons1(combineButtons(processInputController1(window.Platform.Window), readJoyStick(glfw.Joystick1)))
			console.SetButtons2(processInputController2(window.Platform.Window))

			if err := step(dt); err != nil {
				isRunning = false
				var cpuErr *nescore.CPUError
				if errors.As(err, &cpuErr) {
					setStatus("CPU halted: %v (F2 resets)", cpuErr)
					dump()
				} else {
					setStatus("%v", err)
				}
			}
			buffer := console.Buffer()
			draw.NearestNeighbor.Scale(screenImage, screenImage.Bounds(), buffer, buffer.Bounds(), draw.Src, nil)
			screen.Upload(screenImage)
		}

		window.Frame(func() {
			renderGUI(width, height, screen)
		})
	}
}
