// refs: github.com/fogleman/nes
package nescore

import (
	"fmt"
	"image"
	"path/filepath"
)

type Console struct {
	Bus         *Bus
	CPU         *CPU
	PPU         *PPU
	APU         APU
	Cartridge   *Cartridge
	Controller1 *Controller
	Controller2 *Controller

	batteryDir string
	saveDir    string
}

func newConsole() *Console {
	console := &Console{
		PPU:         NewPPU(),
		APU:         NewRegisterAPU(),
		Controller1: NewController(),
		Controller2: NewController(),
	}
	console.Bus = NewBus(console.PPU, console.APU, console.Controller1, console.Controller2)
	console.CPU = console.Bus.CPU
	return console
}

// NewEmptyConsole returns a console with no cartridge inserted.
// Stepping fails with ErrNoCartridge until LoadROM succeeds.
func NewEmptyConsole() *Console {
	return newConsole()
}

// NewConsole loads the ROM at path and powers the console on.
func NewConsole(path string) (*Console, error) {
	console := newConsole()
	if err := console.LoadROM(path); err != nil {
		return nil, err
	}
	return console, nil
}

// NewConsoleWithCartridge powers a console on with an already parsed cartridge.
func NewConsoleWithCartridge(cartridge *Cartridge) (*Console, error) {
	console := newConsole()
	if err := console.InsertCartridge(cartridge); err != nil {
		return nil, err
	}
	return console, nil
}

// LoadROM replaces the cartridge. On failure the current one stays inserted.
func (console *Console) LoadROM(path string) error {
	cartridge, err := LoadNESFile(path)
	if err != nil {
		return err
	}
	return console.InsertCartridge(cartridge)
}

func (console *Console) InsertCartridge(cartridge *Cartridge) error {
	if err := cartridge.attachBattery(console.batteryDir); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	if console.Cartridge != nil {
		if err := console.Cartridge.Close(); err != nil {
			logger.Printf("battery: %v", err)
		}
	}
	console.Cartridge = cartridge
	console.Bus.InsertCartridge(cartridge)
	console.Reset()
	return nil
}

// Reload reads the current ROM file again, resetting mapper state.
func (console *Console) Reload() error {
	if console.Cartridge == nil {
		return ErrNoCartridge
	}
	if console.Cartridge.ROMFilePath == "" {
		mapper, err := NewMapper(console.Cartridge)
		if err != nil {
			return err
		}
		console.Cartridge.Mapper = mapper
		console.Reset()
		return nil
	}
	path := console.Cartridge.ROMFilePath
	cartridge, err := LoadNESFile(path)
	if err != nil {
		return err
	}
	// release the battery mapping before mapping the same file again
	if err := console.Cartridge.Close(); err != nil {
		logger.Printf("battery: %v", err)
	}
	console.Cartridge = nil
	return console.InsertCartridge(cartridge)
}

func (console *Console) Reset() {
	console.Bus.Reset()
}

func (console *Console) SetAPU(apu APU) {
	console.APU = apu
	console.Bus.APU = apu
}

// SetBatteryDir sets where battery RAM files live. Empty means next to the ROM.
func (console *Console) SetBatteryDir(dir string) {
	console.batteryDir = dir
}

// SetSaveDir sets the root of the timestamped save-state slots.
func (console *Console) SetSaveDir(dir string) {
	console.saveDir = dir
}

func (console *Console) SaveDir() string {
	if console.saveDir != "" {
		return console.saveDir
	}
	if console.Cartridge != nil && console.Cartridge.ROMFilePath != "" {
		return filepath.Join(filepath.Dir(console.Cartridge.ROMFilePath), "saves")
	}
	return "saves"
}

// Clock advances the console by one PPU dot.
func (console *Console) Clock() error {
	if console.Cartridge == nil {
		return ErrNoCartridge
	}
	if err := console.CPU.Err(); err != nil {
		return err
	}
	console.Bus.Clock()
	if console.PPU.FrameComplete {
		console.PPU.FrameComplete = false
		console.APU.EndFrame()
	}
	return console.CPU.Err()
}

// Step runs until the CPU retires one instruction and returns its CPU cycles.
func (console *Console) Step() (int, error) {
	start := console.CPU.state.ClockCount
	for {
		if err := console.Clock(); err != nil {
			return int(console.CPU.state.ClockCount - start), err
		}
		if console.CPU.Complete() && console.CPU.state.ClockCount != start {
			return int(console.CPU.state.ClockCount - start), nil
		}
	}
}

// StepFrame runs until the PPU finishes the current frame.
func (console *Console) StepFrame() error {
	frame := console.PPU.Frame
	for frame == console.PPU.Frame {
		if err := console.Clock(); err != nil {
			return err
		}
	}
	return nil
}

// StepSeconds runs the emulated equivalent of seconds of CPU time.
func (console *Console) StepSeconds(seconds float64) error {
	cycles := int(CPUFrequency * seconds)
	for cycles > 0 {
		n, err := console.Step()
		if err != nil {
			return err
		}
		cycles -= n
	}
	return nil
}

func (console *Console) Buffer() *image.RGBA {
	return console.PPU.Buffer()
}

// FrameRGB returns the last completed frame as packed 8-bit RGB triples.
func (console *Console) FrameRGB() []byte {
	src := console.PPU.Buffer().Pix
	rgb := make([]byte, 0, PIXEL_COUNT*3)
	for i := 0; i < len(src); i += 4 {
		rgb = append(rgb, src[i], src[i+1], src[i+2])
	}
	return rgb
}

func (console *Console) FrameCount() uint64 {
	return console.PPU.Frame
}

func (console *Console) SetButtons1(buttons [8]bool) {
	console.Controller1.SetButtons(buttons)
}

func (console *Console) SetButtons2(buttons [8]bool) {
	console.Controller2.SetButtons(buttons)
}

func (console *Console) CPUState() CPUState {
	return console.CPU.State()
}

func (console *Console) PPURegisters() PPURegisters {
	return console.PPU.Registers()
}

// Peek reads CPU address space without side effects.
func (console *Console) Peek(address uint16) byte {
	if console.Cartridge == nil && address >= 0x6000 {
		return 0
	}
	return console.Bus.Peek(address)
}

// Poke writes RAM directly. Other ranges go through the bus.
func (console *Console) Poke(address uint16, value byte) {
	if address < 0x2000 {
		console.Bus.RAM[address&0x07FF] = value
		return
	}
	if console.Cartridge == nil && address >= 0x6000 {
		return
	}
	console.Bus.Write(address, value)
}

func (console *Console) Title() string {
	if console.Cartridge == nil {
		return ""
	}
	return console.Cartridge.Title
}

func (console *Console) FlushBattery() error {
	if console.Cartridge == nil || console.Cartridge.battery == nil {
		return nil
	}
	return console.Cartridge.battery.Flush()
}

func (console *Console) Close() error {
	if console.Cartridge == nil {
		return nil
	}
	return console.Cartridge.Close()
}
