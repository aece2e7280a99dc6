package nescore

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	stateMagic   = "NESS"
	stateVersion = 1

	// SaveStateExt is the extension of save-state slot files.
	SaveStateExt = ".sav"

	saveSlotLayout = "20060102150405"

	maxAPUState = 1 << 16
)

func (cpu *CPU) saveState(e *StateEncoder) {
	s := &cpu.state
	e.Write(s.PC)
	e.Write(s.SP)
	e.Write(s.A)
	e.Write(s.X)
	e.Write(s.Y)
	e.Write(s.P)
	e.Write(s.Cycles)
	e.Write(s.Opcode)
	e.Write(s.AddrAbs)
	e.Write(s.AddrRel)
	e.Write(s.ClockCount)
	e.Write(cpu.fetched)
}

func loadCPUState(d *StateDecoder) (state CPUState, fetched byte) {
	d.Read(&state.PC)
	d.Read(&state.SP)
	d.Read(&state.A)
	d.Read(&state.X)
	d.Read(&state.Y)
	d.Read(&state.P)
	d.Read(&state.Cycles)
	d.Read(&state.Opcode)
	d.Read(&state.AddrAbs)
	d.Read(&state.AddrRel)
	d.Read(&state.ClockCount)
	d.Read(&fetched)
	return
}

func (ppu *PPU) saveState(e *StateEncoder) {
	for i := range ppu.nameTables {
		e.Write(ppu.nameTables[i][:])
	}
	e.Write(ppu.paletteRAM[:])
	e.Write(ppu.oam[:])
	e.Write(ppu.oamAddr)
	e.Write(byte(ppu.ctrl))
	e.Write(byte(ppu.mask))
	e.Write(byte(ppu.status))
	e.Write(uint16(ppu.v))
	e.Write(uint16(ppu.t))
	e.Write(ppu.fineX)
	e.Write(ppu.latch)
	e.Write(ppu.dataBuffer)

	e.Write(ppu.bgNextID)
	e.Write(ppu.bgNextAttrib)
	e.Write(ppu.bgNextLo)
	e.Write(ppu.bgNextHi)
	e.Write(ppu.bgShiftLo)
	e.Write(ppu.bgShiftHi)
	e.Write(ppu.bgAttribLo)
	e.Write(ppu.bgAttribHi)

	for _, s := range ppu.sprites {
		e.Write([]byte{s.y, s.id, s.attribute, s.x})
	}
	e.Int(ppu.spriteCount)
	e.Write(ppu.spriteShiftLo[:])
	e.Write(ppu.spriteShiftHi[:])
	e.Write(ppu.sprite0Possible)
	e.Write(ppu.sprite0Rendering)

	e.Int(ppu.ScanLine)
	e.Int(ppu.Cycle)
	e.Write(ppu.Frame)
	e.Write(ppu.oddFrame)
	e.Write(ppu.FrameComplete)
	e.Write(ppu.NMI)

	e.Write(ppu.front.Pix)
	e.Write(ppu.back.Pix)
}

// loadState decodes into ppu, which must own its frame buffers.
func (ppu *PPU) loadState(d *StateDecoder) {
	for i := range ppu.nameTables {
		d.Read(ppu.nameTables[i][:])
	}
	d.Read(ppu.paletteRAM[:])
	d.Read(ppu.oam[:])
	ppu.oamAddr = d.Byte()
	ppu.ctrl = ppuCtrl(d.Byte())
	ppu.mask = ppuMask(d.Byte())
	ppu.status = ppuStatus(d.Byte())
	ppu.v = loopyRegister(d.Uint16())
	ppu.t = loopyRegister(d.Uint16())
	ppu.fineX = d.Byte() & 7
	ppu.latch = d.Bool()
	ppu.dataBuffer = d.Byte()

	ppu.bgNextID = d.Byte()
	ppu.bgNextAttrib = d.Byte()
	ppu.bgNextLo = d.Byte()
	ppu.bgNextHi = d.Byte()
	ppu.bgShiftLo = d.Uint16()
	ppu.bgShiftHi = d.Uint16()
	ppu.bgAttribLo = d.Uint16()
	ppu.bgAttribHi = d.Uint16()

	for i := range ppu.sprites {
		var raw [4]byte
		d.Read(raw[:])
		ppu.sprites[i] = spriteEntry{y: raw[0], id: raw[1], attribute: raw[2], x: raw[3]}
	}
	ppu.spriteCount = d.Int()
	if ppu.spriteCount < 0 || ppu.spriteCount > len(ppu.sprites) {
		d.Fail(ErrCorruptState)
	}
	d.Read(ppu.spriteShiftLo[:])
	d.Read(ppu.spriteShiftHi[:])
	ppu.sprite0Possible = d.Bool()
	ppu.sprite0Rendering = d.Bool()

	ppu.ScanLine = d.Int()
	ppu.Cycle = d.Int()
	if ppu.ScanLine < -1 || ppu.ScanLine > 260 || ppu.Cycle < 0 || ppu.Cycle > 340 {
		d.Fail(ErrCorruptState)
	}
	ppu.Frame = d.Uint64()
	ppu.oddFrame = d.Bool()
	ppu.FrameComplete = d.Bool()
	ppu.NMI = d.Bool()

	d.Read(ppu.front.Pix)
	d.Read(ppu.back.Pix)
}

// SaveState writes the whole machine state to w.
func (console *Console) SaveState(w io.Writer) error {
	if console.Cartridge == nil {
		return ErrNoCartridge
	}
	cartridge := console.Cartridge
	bus := console.Bus

	var apuState bytes.Buffer
	ae := NewStateEncoder(&apuState)
	console.APU.SaveState(ae)
	if err := ae.Err(); err != nil {
		return err
	}

	e := NewStateEncoder(w)
	e.Write([]byte(stateMagic))
	e.Write(byte(stateVersion))
	e.Write(cartridge.MD5[:])
	e.Write(cartridge.MapperID)

	console.CPU.saveState(e)
	console.PPU.saveState(e)

	e.Write(uint32(apuState.Len()))
	e.Write(apuState.Bytes())

	cartridge.Mapper.SaveState(e)

	e.Write(bus.RAM[:])
	e.Write(bus.clockCount)
	e.Write(bus.dma.Page)
	e.Write(bus.dma.Addr)
	e.Write(bus.dma.Data)
	e.Write(bus.dma.Dummy)
	e.Write(bus.dma.Transfer)

	console.Controller1.SaveState(e)
	console.Controller2.SaveState(e)
	return e.Err()
}

// LoadState restores a stream written by SaveState. The stream must come
// from the same cartridge. Nothing is changed unless the whole stream decodes.
func (console *Console) LoadState(r io.Reader) error {
	if console.Cartridge == nil {
		return ErrNoCartridge
	}
	cartridge := console.Cartridge
	bus := console.Bus
	d := NewStateDecoder(r)

	magic := make([]byte, len(stateMagic))
	d.Read(magic)
	version := d.Byte()
	if err := d.Err(); err != nil {
		return err
	}
	if string(magic) != stateMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorruptState, magic)
	}
	if version != stateVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorruptState, version)
	}

	var hash [16]byte
	d.Read(hash[:])
	mapperID := d.Byte()
	if err := d.Err(); err != nil {
		return err
	}
	if hash != cartridge.MD5 || mapperID != cartridge.MapperID {
		return ErrStateMismatch
	}

	cpuState, fetched := loadCPUState(d)

	ppu := *console.PPU
	ppu.front = image.NewRGBA(console.PPU.front.Rect)
	ppu.back = image.NewRGBA(console.PPU.back.Rect)
	ppu.loadState(d)

	apuLen := d.Uint32()
	if apuLen > maxAPUState {
		d.Fail(ErrCorruptState)
		apuLen = 0
	}
	apuState := make([]byte, apuLen)
	d.Read(apuState)

	mapper, err := NewMapper(cartridge)
	if err != nil {
		return err
	}
	mapper.LoadState(d)

	var ram [2048]byte
	d.Read(ram[:])
	clockCount := d.Uint32()
	dma := DMA{
		Page:     d.Byte(),
		Addr:     d.Byte(),
		Data:     d.Byte(),
		Dummy:    d.Bool(),
		Transfer: d.Bool(),
	}

	controller1 := *console.Controller1
	controller1.LoadState(d)
	controller2 := *console.Controller2
	controller2.LoadState(d)

	if err := d.Err(); err != nil {
		return err
	}

	// The APU is opaque, so it goes first: a failure here leaves the rest untouched.
	ad := NewStateDecoder(bytes.NewReader(apuState))
	console.APU.LoadState(ad)
	if err := ad.Err(); err != nil {
		return err
	}

	console.CPU.state = cpuState
	console.CPU.fetched = fetched
	console.CPU.fault = nil
	*console.PPU = ppu
	cartridge.Mapper = mapper
	cartridge.rebindBattery(mapper)
	bus.RAM = ram
	bus.clockCount = clockCount
	bus.dma = dma
	*console.Controller1 = controller1
	*console.Controller2 = controller2
	return nil
}

// SaveStateToDir writes a new timestamped slot under the save directory
// and returns its path.
func (console *Console) SaveStateToDir() (string, error) {
	if console.Cartridge == nil {
		return "", ErrNoCartridge
	}
	dir := filepath.Join(console.SaveDir(), console.Cartridge.Title)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, time.Now().Format(saveSlotLayout)+SaveStateExt)

	var buf bytes.Buffer
	if err := console.SaveState(&buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	logger.Printf("state saved: %s", path)
	return path, nil
}

func (console *Console) LoadStateFile(path string) error {
	if !strings.EqualFold(filepath.Ext(path), SaveStateExt) {
		return fmt.Errorf("%s: not a %s file", path, SaveStateExt)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := console.LoadState(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Printf("state loaded: %s", path)
	return nil
}

// LatestSaveState returns the newest slot for the current cartridge.
func (console *Console) LatestSaveState() (string, error) {
	if console.Cartridge == nil {
		return "", ErrNoCartridge
	}
	dir := filepath.Join(console.SaveDir(), console.Cartridge.Title)
	matches, err := filepath.Glob(filepath.Join(dir, "*"+SaveStateExt))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	// slot names are timestamps, so lexical order is chronological
	latest := matches[0]
	for _, m := range matches[1:] {
		if m > latest {
			latest = m
		}
	}
	return latest, nil
}
