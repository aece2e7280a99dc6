package nescore

import (
	"bytes"
	"testing"
)

func mmc1Write(c *Cartridge, address uint16, value byte) {
	for i := 0; i < 5; i++ {
		c.CPUWrite(address, (value>>uint(i))&1)
	}
}

func TestNROMMirror(t *testing.T) {
	small := mustParse(t, buildROM(0, 1, 1, 0))
	if small.CPURead(0x8000) != small.CPURead(0xC000) {
		t.Error("16 KiB NROM not mirrored at $C000")
	}
	large := mustParse(t, buildROM(0, 2, 1, 0))
	if got := large.CPURead(0xC000); got != 2 {
		t.Errorf("32 KiB NROM $C000 bank = %d, want 2", got)
	}
}

func TestMMC1PowerOn(t *testing.T) {
	c := mustParse(t, buildROM(1, 8, 2, 0))
	if got := c.CPURead(0x8000); got != 0 {
		t.Errorf("$8000 bank = %d, want 0", got)
	}
	// last 16 KiB bank is 8 KiB banks 14 and 15
	if got := c.CPURead(0xC000); got != 14 {
		t.Errorf("$C000 bank = %d, want 14", got)
	}
}

func TestMMC1PRGModes(t *testing.T) {
	c := mustParse(t, buildROM(1, 8, 2, 0))

	// mode 3: switch $8000, fix last at $C000
	mmc1Write(c, 0xE000, 3)
	if got := c.CPURead(0x8000); got != 6 {
		t.Errorf("mode 3 $8000 = %d, want 6", got)
	}
	if got := c.CPURead(0xC000); got != 14 {
		t.Errorf("mode 3 $C000 = %d, want 14", got)
	}

	// mode 2: fix first at $8000, switch $C000
	mmc1Write(c, 0x8000, 0x08)
	mmc1Write(c, 0xE000, 5)
	if got := c.CPURead(0x8000); got != 0 {
		t.Errorf("mode 2 $8000 = %d, want 0", got)
	}
	if got := c.CPURead(0xC000); got != 10 {
		t.Errorf("mode 2 $C000 = %d, want 10", got)
	}

	// mode 0: 32 KiB, low bit ignored
	mmc1Write(c, 0x8000, 0x00)
	mmc1Write(c, 0xE000, 3)
	if got := c.CPURead(0x8000); got != 4 {
		t.Errorf("32 KiB $8000 = %d, want 4", got)
	}
	if got := c.CPURead(0xC000); got != 6 {
		t.Errorf("32 KiB $C000 = %d, want 6", got)
	}
}

func TestMMC1ResetBit(t *testing.T) {
	c := mustParse(t, buildROM(1, 8, 2, 0))
	c.CPUWrite(0x8000, 1)
	c.CPUWrite(0x8000, 1)
	c.CPUWrite(0x8000, 0x80)
	// a full write after the reset lands intact
	mmc1Write(c, 0xE000, 2)
	if got := c.CPURead(0x8000); got != 4 {
		t.Errorf("$8000 = %d, want 4", got)
	}
}

func TestMMC1Mirroring(t *testing.T) {
	c := mustParse(t, buildROM(1, 2, 1, 0))
	want := []MirroringType{MIRROR_SINGLE_SCREEN_A, MIRROR_SINGLE_SCREEN_B, MIRROR_VERTICAL, MIRROR_HORIZONTAL}
	for mode, mirroring := range want {
		mmc1Write(c, 0x8000, 0x0C|byte(mode))
		if got := c.Mapper.MirroringType(); got != mirroring {
			t.Errorf("mode %d: %v, want %v", mode, got, mirroring)
		}
	}
}

func TestMMC1CHRBanks(t *testing.T) {
	c := mustParse(t, buildROM(1, 2, 4, 0))

	// 4 KiB mode
	mmc1Write(c, 0x8000, 0x1C)
	mmc1Write(c, 0xA000, 3)
	mmc1Write(c, 0xC000, 6)
	if got := c.PPURead(0x0000); got != 12 {
		t.Errorf("$0000 1K bank = %d, want 12", got)
	}
	if got := c.PPURead(0x1000); got != 24 {
		t.Errorf("$1000 1K bank = %d, want 24", got)
	}

	// 8 KiB mode ignores the low bit
	mmc1Write(c, 0x8000, 0x0C)
	mmc1Write(c, 0xA000, 3)
	if got := c.PPURead(0x0000); got != 8 {
		t.Errorf("8K $0000 = %d, want 8", got)
	}
	if got := c.PPURead(0x1C00); got != 15 {
		t.Errorf("8K $1C00 = %d, want 15", got)
	}
}

func TestMMC1AddRAM(t *testing.T) {
	c := mustParse(t, buildROM(1, 2, 1, 0))
	c.CPUWrite(0x6123, 0x5A)
	if got := c.CPURead(0x6123); got != 0x5A {
		t.Errorf("add-on RAM = %02X", got)
	}
}

func TestUxROM(t *testing.T) {
	c := mustParse(t, buildROM(2, 8, 0, 0))
	c.CPUWrite(0x8000, 3)
	if got := c.CPURead(0x8000); got != 6 {
		t.Errorf("$8000 = %d, want 6", got)
	}
	if got := c.CPURead(0xC000); got != 14 {
		t.Errorf("$C000 = %d, want 14", got)
	}

	// CHR-RAM is writable
	c.PPUWrite(0x0010, 0xAB)
	if got := c.PPURead(0x0010); got != 0xAB {
		t.Errorf("CHR-RAM = %02X", got)
	}
}

func TestCNROM(t *testing.T) {
	c := mustParse(t, buildROM(3, 2, 4, 0))
	c.CPUWrite(0x8000, 2)
	if got := c.PPURead(0x0000); got != 16 {
		t.Errorf("CHR bank = %d, want 16", got)
	}
	// bank numbers wrap at the CHR size
	c = mustParse(t, buildROM(3, 1, 2, 0))
	c.CPUWrite(0x8000, 3)
	if got := c.PPURead(0x0000); got != 8 {
		t.Errorf("wrapped CHR bank = %d, want 8", got)
	}

	// CHR-ROM ignores writes
	c.PPUWrite(0x0000, 0xFF)
	if got := c.PPURead(0x0000); got != 8 {
		t.Errorf("CHR-ROM written: %02X", got)
	}
}

func TestGxROM(t *testing.T) {
	c := mustParse(t, buildROM(66, 8, 4, 0))
	c.CPUWrite(0x8000, 0x21)
	if got := c.CPURead(0x8000); got != 8 {
		t.Errorf("PRG $8000 = %d, want 8", got)
	}
	if got := c.CPURead(0xE000); got != 11 {
		t.Errorf("PRG $E000 = %d, want 11", got)
	}
	if got := c.PPURead(0x0400); got != 9 {
		t.Errorf("CHR $0400 = %d, want 9", got)
	}
}

func TestNoAddRAM(t *testing.T) {
	c := mustParse(t, buildROM(0, 1, 1, 0))
	c.CPUWrite(0x6000, 0x12)
	if got := c.CPURead(0x6000); got != 0 {
		t.Errorf("NROM $6000 = %02X, want 0", got)
	}
}

func TestMMC3PowerOn(t *testing.T) {
	c := mustParse(t, buildROM(4, 4, 4, 0))
	want := []byte{0, 1, 6, 7}
	for i, bank := range want {
		if got := c.CPURead(0x8000 + uint16(i)*0x2000); got != bank {
			t.Errorf("window %d = %d, want %d", i, got, bank)
		}
	}
}

func TestMMC3PRGMode(t *testing.T) {
	c := mustParse(t, buildROM(4, 4, 4, 0))
	c.CPUWrite(0x8000, 6)
	c.CPUWrite(0x8001, 2)
	c.CPUWrite(0x8000, 7)
	c.CPUWrite(0x8001, 3)

	want := []byte{2, 3, 6, 7}
	for i, bank := range want {
		if got := c.CPURead(0x8000 + uint16(i)*0x2000); got != bank {
			t.Errorf("mode 0 window %d = %d, want %d", i, got, bank)
		}
	}

	c.CPUWrite(0x8000, 0x40)
	want = []byte{6, 3, 2, 7}
	for i, bank := range want {
		if got := c.CPURead(0x8000 + uint16(i)*0x2000); got != bank {
			t.Errorf("mode 1 window %d = %d, want %d", i, got, bank)
		}
	}
}

func TestMMC3CHRInversion(t *testing.T) {
	c := mustParse(t, buildROM(4, 2, 4, 0))
	values := []byte{4, 10, 20, 21, 22, 23}
	for reg, v := range values {
		c.CPUWrite(0x8000, byte(reg))
		c.CPUWrite(0x8001, v)
	}

	normal := []byte{4, 5, 10, 11, 20, 21, 22, 23}
	for i, bank := range normal {
		if got := c.PPURead(uint16(i) * 0x400); got != bank {
			t.Errorf("normal window %d = %d, want %d", i, got, bank)
		}
	}

	c.CPUWrite(0x8000, 0x80)
	inverted := []byte{20, 21, 22, 23, 4, 5, 10, 11}
	for i, bank := range inverted {
		if got := c.PPURead(uint16(i) * 0x400); got != bank {
			t.Errorf("inverted window %d = %d, want %d", i, got, bank)
		}
	}
}

func TestMMC3Mirroring(t *testing.T) {
	c := mustParse(t, buildROM(4, 2, 1, 0))
	c.CPUWrite(0xA000, 1)
	if got := c.Mapper.MirroringType(); got != MIRROR_HORIZONTAL {
		t.Errorf("got %v, want horizontal", got)
	}
	c.CPUWrite(0xA000, 0)
	if got := c.Mapper.MirroringType(); got != MIRROR_VERTICAL {
		t.Errorf("got %v, want vertical", got)
	}
}

func TestMMC3IRQ(t *testing.T) {
	c := mustParse(t, buildROM(4, 2, 1, 0))
	m := c.Mapper
	c.CPUWrite(0xC000, 2)
	c.CPUWrite(0xC001, 0)
	c.CPUWrite(0xE001, 0)

	m.Scanline() // reload to 2
	if m.IRQState() {
		t.Fatal("IRQ after reload")
	}
	m.Scanline() // 1
	if m.IRQState() {
		t.Fatal("IRQ at 1")
	}
	m.Scanline() // 0
	if !m.IRQState() {
		t.Fatal("no IRQ at 0")
	}
	m.IRQClear()
	if m.IRQState() {
		t.Fatal("IRQ not cleared")
	}

	// disable acknowledges and blocks further IRQs
	m.Scanline()
	m.Scanline()
	m.Scanline()
	c.CPUWrite(0xE000, 0)
	if m.IRQState() {
		t.Error("E000 did not acknowledge")
	}
	m.Scanline()
	m.Scanline()
	m.Scanline()
	if m.IRQState() {
		t.Error("IRQ while disabled")
	}
}

func TestMapperStateRoundTrip(t *testing.T) {
	c := mustParse(t, buildROM(4, 4, 4, 0))
	c.CPUWrite(0x8000, 0x46)
	c.CPUWrite(0x8001, 1)
	c.CPUWrite(0xC000, 9)
	c.CPUWrite(0x6000, 0x77)

	var buf bytes.Buffer
	e := NewStateEncoder(&buf)
	c.Mapper.SaveState(e)
	if err := e.Err(); err != nil {
		t.Fatal(err)
	}

	fresh, err := NewMapper(c)
	if err != nil {
		t.Fatal(err)
	}
	d := NewStateDecoder(&buf)
	fresh.LoadState(d)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	for _, address := range []uint16{0x8000, 0xA000, 0xC000, 0xE000} {
		if fresh.ReadPRG(address) != c.Mapper.ReadPRG(address) {
			t.Errorf("PRG $%04X differs", address)
		}
	}
	if fresh.Base().addRAM[0] != 0x77 {
		t.Error("add-on RAM not restored")
	}
}

func TestMapperStateTruncated(t *testing.T) {
	c := mustParse(t, buildROM(1, 2, 1, 0))
	var buf bytes.Buffer
	c.Mapper.SaveState(NewStateEncoder(&buf))
	d := NewStateDecoder(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	c.Mapper.LoadState(d)
	if d.Err() != ErrCorruptState {
		t.Errorf("err = %v, want ErrCorruptState", d.Err())
	}
}
