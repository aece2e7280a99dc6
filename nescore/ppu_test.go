package nescore

import "testing"

func newTestPPU(t *testing.T, flags6 byte) *PPU {
	t.Helper()
	ppu := NewPPU()
	ppu.ConnectCartridge(mustParse(t, buildROM(0, 1, 1, flags6)))
	return ppu
}

func setPPUAddr(ppu *PPU, address uint16) {
	ppu.WriteRegister(0x2006, byte(address>>8))
	ppu.WriteRegister(0x2006, byte(address))
}

func TestPPUDataBufferedRead(t *testing.T) {
	ppu := newTestPPU(t, 0)
	setPPUAddr(ppu, 0x2000)
	ppu.WriteRegister(0x2007, 0x11)
	ppu.WriteRegister(0x2007, 0x22)

	setPPUAddr(ppu, 0x2000)
	ppu.ReadRegister(0x2007) // primes the buffer
	if got := ppu.ReadRegister(0x2007); got != 0x11 {
		t.Errorf("first data = %02X, want 11", got)
	}
	if got := ppu.ReadRegister(0x2007); got != 0x22 {
		t.Errorf("second data = %02X, want 22", got)
	}
}

func TestPPUPaletteReadUnbuffered(t *testing.T) {
	ppu := newTestPPU(t, 0)
	setPPUAddr(ppu, 0x3F01)
	ppu.WriteRegister(0x2007, 0x2C)
	setPPUAddr(ppu, 0x3F01)
	if got := ppu.ReadRegister(0x2007); got != 0x2C {
		t.Errorf("palette read = %02X, want 2C", got)
	}
}

func TestPPUPaletteMirrors(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.WritePaletteRAM(0x3F10, 0x0F)
	if got := ppu.ReadPaletteRAM(0x3F00); got != 0x0F {
		t.Errorf("$3F00 = %02X, want $3F10 alias", got)
	}
	ppu.WritePaletteRAM(0x3F1C, 0x21)
	if got := ppu.ReadPaletteRAM(0x3F0C); got != 0x21 {
		t.Errorf("$3F0C = %02X, want $3F1C alias", got)
	}
	ppu.WritePaletteRAM(0x3F11, 0x05)
	if got := ppu.ReadPaletteRAM(0x3F01); got == 0x05 {
		t.Error("$3F11 aliased onto $3F01")
	}
	if got := ppu.ReadPaletteRAM(0x3F31); got != 0x05 {
		t.Errorf("$3F31 = %02X, want $3F11 mirror", got)
	}
}

func TestPPUNametableMirroring(t *testing.T) {
	tests := []struct {
		flags6 byte
		alias  uint16
		other  uint16
	}{
		{0x00, 0x2400, 0x2800}, // horizontal
		{0x01, 0x2800, 0x2400}, // vertical
	}
	for _, tt := range tests {
		ppu := newTestPPU(t, tt.flags6)
		setPPUAddr(ppu, 0x2005)
		ppu.WriteRegister(0x2007, 0x99)

		if got := ppu.read(tt.alias + 5); got != 0x99 {
			t.Errorf("flags %d: $%04X = %02X, want mirror of $2005", tt.flags6, tt.alias+5, got)
		}
		if got := ppu.read(tt.other + 5); got != 0 {
			t.Errorf("flags %d: $%04X = %02X, want separate table", tt.flags6, tt.other+5, got)
		}
		if got := ppu.read(0x3005); got != 0x99 {
			t.Errorf("flags %d: $3005 = %02X, want mirror of $2005", tt.flags6, got)
		}
	}
}

func TestPPUIncrement32(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.WriteRegister(0x2000, 0x04)
	setPPUAddr(ppu, 0x2000)
	ppu.WriteRegister(0x2007, 1)
	ppu.WriteRegister(0x2007, 2)
	if ppu.read(0x2020) != 2 {
		t.Errorf("$2020 = %02X, want 2", ppu.read(0x2020))
	}
	if uint16(ppu.v) != 0x2040 {
		t.Errorf("v = %04X, want 2040", uint16(ppu.v))
	}
}

func TestPPUStatusReadClearsVBlankAndLatch(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.status.set(statusVerticalBlank, true)
	ppu.WriteRegister(0x2006, 0x21)

	if got := ppu.ReadRegister(0x2002); got&0x80 == 0 {
		t.Errorf("status = %02X, want vblank", got)
	}
	if got := ppu.ReadRegister(0x2002); got&0x80 != 0 {
		t.Error("vblank survived a read")
	}
	if ppu.latch {
		t.Error("write latch not reset")
	}
}

func TestPPUPeekRegisterHasNoSideEffects(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.status.set(statusVerticalBlank, true)
	ppu.latch = true
	ppu.PeekRegister(0x2002)
	ppu.PeekRegister(0x2007)
	if !ppu.status.has(statusVerticalBlank) || !ppu.latch {
		t.Error("peek changed state")
	}
}

func TestPPUScrollWrites(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.WriteRegister(0x2000, 0x03)
	ppu.WriteRegister(0x2005, 0x7D) // coarse X 15, fine X 5
	ppu.WriteRegister(0x2005, 0x5E) // coarse Y 11, fine Y 6
	if ppu.fineX != 5 {
		t.Errorf("fine X = %d, want 5", ppu.fineX)
	}
	if ppu.t.coarseX() != 15 || ppu.t.coarseY() != 11 || ppu.t.fineY() != 6 {
		t.Errorf("t = %04X", uint16(ppu.t))
	}
	if ppu.t.nameTableX() != 1 || ppu.t.nameTableY() != 1 {
		t.Errorf("nametable bits lost: t = %04X", uint16(ppu.t))
	}
}

func TestPPUOAMDataIncrements(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.WriteRegister(0x2003, 0x10)
	ppu.WriteRegister(0x2004, 0xAA)
	ppu.WriteRegister(0x2004, 0xBB)
	if ppu.oam[0x10] != 0xAA || ppu.oam[0x11] != 0xBB {
		t.Errorf("OAM = %02X %02X", ppu.oam[0x10], ppu.oam[0x11])
	}
	if ppu.oamAddr != 0x12 {
		t.Errorf("OAMADDR = %02X, want 12", ppu.oamAddr)
	}
}

func TestPPUVBlankTiming(t *testing.T) {
	ppu := newTestPPU(t, 0)
	ppu.WriteRegister(0x2000, 0x80)

	dots := 241*341 + 1
	for i := 0; i < dots; i++ {
		ppu.Clock()
	}
	if ppu.status.has(statusVerticalBlank) || ppu.NMI {
		t.Fatal("vblank before scanline 241 dot 1")
	}
	ppu.Clock()
	if !ppu.status.has(statusVerticalBlank) {
		t.Error("vblank not set")
	}
	if !ppu.NMI {
		t.Error("NMI not raised")
	}
}

func TestPPUFrameLength(t *testing.T) {
	ppu := newTestPPU(t, 0)
	n := 0
	for !ppu.FrameComplete {
		ppu.Clock()
		n++
	}
	if n != 261*341 {
		t.Errorf("first frame took %d dots, want %d", n, 261*341)
	}
	ppu.FrameComplete = false
	n = 0
	for !ppu.FrameComplete {
		ppu.Clock()
		n++
	}
	if n != 262*341 {
		t.Errorf("frame took %d dots, want %d", n, 262*341)
	}
	if ppu.Frame != 2 {
		t.Errorf("frame counter = %d", ppu.Frame)
	}
}

func TestSpriteOverflow(t *testing.T) {
	ppu := newTestPPU(t, 0)
	for i := range ppu.oam {
		ppu.oam[i] = 0xFF
	}
	for n := 0; n < 8; n++ {
		ppu.oam[n*4] = 20
	}
	ppu.ScanLine = 24
	ppu.evaluateSprites()
	if ppu.spriteCount != 8 {
		t.Errorf("sprite count = %d, want 8", ppu.spriteCount)
	}
	if ppu.status.has(statusSpriteOverflow) {
		t.Error("overflow with exactly 8 sprites")
	}

	ppu.oam[8*4] = 22
	ppu.evaluateSprites()
	if !ppu.status.has(statusSpriteOverflow) {
		t.Error("no overflow with 9 sprites")
	}

	// sticky until pre-render
	ppu.oam[8*4] = 0xFF
	ppu.evaluateSprites()
	if !ppu.status.has(statusSpriteOverflow) {
		t.Error("overflow cleared mid-frame")
	}
}

func TestSpriteZeroCandidate(t *testing.T) {
	ppu := newTestPPU(t, 0)
	for i := range ppu.oam {
		ppu.oam[i] = 0xFF
	}
	ppu.oam[0] = 100
	ppu.ScanLine = 100
	ppu.evaluateSprites()
	if !ppu.sprite0Possible {
		t.Error("sprite 0 not flagged")
	}
	ppu.ScanLine = 108
	ppu.evaluateSprites()
	if ppu.sprite0Possible || ppu.spriteCount != 0 {
		t.Error("8x8 sprite selected outside its rows")
	}
	ppu.ctrl = 0x20
	ppu.evaluateSprites()
	if !ppu.sprite0Possible {
		t.Error("8x16 sprite not selected on row 8")
	}
}

func TestFlipByte(t *testing.T) {
	tests := map[byte]byte{0x01: 0x80, 0xF0: 0x0F, 0xA5: 0xA5, 0x12: 0x48}
	for in, want := range tests {
		if got := flipByte(in); got != want {
			t.Errorf("flipByte(%02X) = %02X, want %02X", in, got, want)
		}
	}
}

// newPatternPPU connects a cartridge whose CHR byte i holds the low byte
// of i in the $0000 table and its complement in the $1000 table, so every
// row of every tile reads back a distinct value.
func newPatternPPU(t *testing.T) *PPU {
	t.Helper()
	rom := buildROM(0, 1, 1, 0)
	chr := rom[16+PRG_BLOCK_SIZE:]
	for i := 0; i < 0x1000; i++ {
		chr[i] = byte(i)
		chr[0x1000+i] = ^byte(i)
	}
	ppu := NewPPU()
	ppu.ConnectCartridge(mustParse(t, rom))
	return ppu
}

func TestSpritePatternFetch(t *testing.T) {
	const scanline = 40
	tests := []struct {
		name      string
		ctrl      byte
		id        byte
		attribute byte
		row       int
		lo, hi    byte
	}{
		// 8x8, table $0000, tile $42
		{"8x8", 0x00, 0x42, 0x00, 2, 0x22, 0x2A},
		{"8x8 hflip", 0x00, 0x42, 0x40, 2, 0x44, 0x54},
		{"8x8 vflip", 0x00, 0x42, 0x80, 2, 0x25, 0x2D},
		{"8x8 hvflip", 0x00, 0x42, 0xC0, 2, 0xA4, 0xB4},
		// 8x16, odd id selects table $1000, tiles $42 (top) and $43 (bottom)
		{"8x16 top", 0x20, 0x43, 0x00, 2, 0xDD, 0xD5},
		{"8x16 bottom", 0x20, 0x43, 0x00, 10, 0xCD, 0xC5},
		{"8x16 hflip top", 0x20, 0x43, 0x40, 2, 0xBB, 0xAB},
		{"8x16 vflip top half", 0x20, 0x43, 0x80, 2, 0xCA, 0xC2},
		{"8x16 vflip bottom half", 0x20, 0x43, 0x80, 10, 0xDA, 0xD2},
		{"8x16 hvflip bottom half", 0x20, 0x43, 0xC0, 10, 0x5B, 0x4B},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ppu := newPatternPPU(t)
			ppu.WriteRegister(0x2000, tt.ctrl)
			ppu.WriteOAM(0, byte(scanline-tt.row))
			ppu.WriteOAM(1, tt.id)
			ppu.WriteOAM(2, tt.attribute)
			ppu.WriteOAM(3, 100)

			// evaluation at 257, pattern fetch at 340
			ppu.ScanLine = scanline
			ppu.Cycle = 257
			for ppu.Cycle != 0 {
				ppu.Clock()
			}
			if ppu.ScanLine != scanline+1 {
				t.Fatalf("ended on scanline %d", ppu.ScanLine)
			}

			if ppu.spriteCount != 1 {
				t.Fatalf("sprite count = %d, want 1", ppu.spriteCount)
			}
			if ppu.spriteShiftLo[0] != tt.lo || ppu.spriteShiftHi[0] != tt.hi {
				t.Errorf("shifters = %02X/%02X, want %02X/%02X",
					ppu.spriteShiftLo[0], ppu.spriteShiftHi[0], tt.lo, tt.hi)
			}
		})
	}
}
