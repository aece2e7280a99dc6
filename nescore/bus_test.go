package nescore

import "testing"

func newTestConsole(t *testing.T, rom []byte) *Console {
	t.Helper()
	console, err := NewConsoleWithCartridge(mustParse(t, rom))
	if err != nil {
		t.Fatal(err)
	}
	return console
}

// dmaSlots starts a transfer from page 2 with the bus counter at start and
// returns how many CPU slots it held the bus.
func dmaSlots(t *testing.T, start uint32) int {
	t.Helper()
	console := newTestConsole(t, withProgram(buildROM(0, 1, 1, 0), 0x4C, 0x00, 0x80))
	bus := console.Bus
	for i := 0; i < 256; i++ {
		bus.RAM[0x200+i] = byte(i ^ 0x5A)
	}

	bus.clockCount = start
	bus.Write(0x4014, 0x02)
	slots := 0
	for bus.DMA().Transfer {
		if bus.clockCount%3 == 0 {
			slots++
		}
		bus.Clock()
		if slots > 600 {
			t.Fatal("DMA never finished")
		}
	}

	oam := console.PPU.OAM()
	for i := 0; i < 256; i++ {
		if oam[i] != byte(i^0x5A) {
			t.Fatalf("OAM[%d] = %02X, want %02X", i, oam[i], byte(i^0x5A))
		}
	}
	if !bus.DMA().Dummy {
		t.Error("dummy flag not re-armed")
	}
	return slots
}

// A store runs its write on the first CPU slot of the instruction, so a
// write on slot w leaves the first DMA slot at w+3. dmaSlots takes that
// first slot directly.

func TestDMAEvenWriteSlot513(t *testing.T) {
	if got := dmaSlots(t, 0+3); got != 513 {
		t.Errorf("DMA after a write on an even slot took %d, want 513", got)
	}
}

func TestDMAOddWriteSlot514(t *testing.T) {
	if got := dmaSlots(t, 3+3); got != 514 {
		t.Errorf("DMA after a write on an odd slot took %d, want 514", got)
	}
}

func TestDMAStallsCPU(t *testing.T) {
	console := newTestConsole(t, withProgram(buildROM(0, 1, 1, 0), 0x4C, 0x00, 0x80))
	bus := console.Bus
	for !console.CPU.Complete() {
		bus.Clock()
	}
	before := console.CPU.State().ClockCount
	bus.Write(0x4014, 0x00)
	for bus.DMA().Transfer {
		bus.Clock()
	}
	if got := console.CPU.State().ClockCount; got != before {
		t.Errorf("CPU ran %d cycles during DMA", got-before)
	}
}

func TestBusRAMMirror(t *testing.T) {
	console := newTestConsole(t, buildROM(0, 1, 1, 0))
	bus := console.Bus
	bus.Write(0x0801, 0x42)
	for _, address := range []uint16{0x0001, 0x1001, 0x1801} {
		if got := bus.Read(address); got != 0x42 {
			t.Errorf("$%04X = %02X, want 42", address, got)
		}
	}
}

func TestBusPPURegisterMirror(t *testing.T) {
	console := newTestConsole(t, buildROM(0, 1, 1, 0))
	bus := console.Bus
	bus.Write(0x3FF8, 0x80) // $2000
	if !console.PPU.ctrl.nmiEnabled() {
		t.Error("$3FF8 did not reach PPUCTRL")
	}
	bus.Write(0x200E, 0x21) // $2006
	bus.Write(0x2006, 0x08)
	if uint16(console.PPU.v) != 0x2108 {
		t.Errorf("v = %04X, want 2108", uint16(console.PPU.v))
	}
}

func TestBusControllers(t *testing.T) {
	console := newTestConsole(t, buildROM(0, 1, 1, 0))
	bus := console.Bus
	var buttons [8]bool
	buttons[ButtonA] = true
	console.SetButtons1(buttons)
	buttons[ButtonA] = false
	buttons[ButtonB] = true
	console.SetButtons2(buttons)

	bus.Write(0x4016, 1)
	bus.Write(0x4016, 0)
	if got := bus.Peek(0x4016); got != 0x41 {
		t.Errorf("peek pad 1 = %02X", got)
	}
	if got := bus.Read(0x4016); got != 0x41 {
		t.Errorf("pad 1 A = %02X", got)
	}
	if got := bus.Read(0x4017); got != 0x40 {
		t.Errorf("pad 2 A = %02X", got)
	}
	if got := bus.Read(0x4017); got != 0x41 {
		t.Errorf("pad 2 B = %02X", got)
	}
}

func TestBusAPURegisters(t *testing.T) {
	console := newTestConsole(t, buildROM(0, 1, 1, 0))
	bus := console.Bus
	bus.Write(0x4000, 0x3F)
	bus.Write(0x4017, 0x40)
	apu := console.APU.(*RegisterAPU)
	if apu.Register(0x4000) != 0x3F || apu.Register(0x4017) != 0x40 {
		t.Errorf("APU latch = %02X %02X", apu.Register(0x4000), apu.Register(0x4017))
	}
	if got := bus.Read(0x4015); got != 0 {
		t.Errorf("$4015 = %02X, want 0", got)
	}
}

func TestBusPeekPRG(t *testing.T) {
	console := newTestConsole(t, withProgram(buildROM(0, 1, 1, 0), 0xEA, 0x60))
	if got := console.Peek(0x8001); got != 0x60 {
		t.Errorf("$8001 = %02X, want 60", got)
	}
	if got := console.Peek(0xC001); got != 0x60 {
		t.Errorf("$C001 = %02X, want mirror of $8001", got)
	}
}

func TestBusWithoutCartridge(t *testing.T) {
	bus := NewBus(NewPPU(), NewRegisterAPU(), NewController(), NewController())
	for _, address := range []uint16{0x6000, 0x7FFF, 0x8000, 0xFFFC} {
		if got := bus.Peek(address); got != 0 {
			t.Errorf("Peek($%04X) = %02X, want 0", address, got)
		}
		if got := bus.Read(address); got != 0 {
			t.Errorf("Read($%04X) = %02X, want 0", address, got)
		}
		bus.Write(address, 0xFF)
	}
	bus.Write(0x2001, 0x18)
	for i := 0; i < 2*262*341; i++ {
		bus.Clock()
	}
}
