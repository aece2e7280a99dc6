package nescore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// counterProgram bumps $10 every frame from its NMI handler.
var counterProgram = []byte{
	0xA9, 0x80, // LDA #$80
	0x8D, 0x00, 0x20, // STA $2000
	0x4C, 0x05, 0x80, // JMP $8005
}

func counterROM() []byte {
	rom := withProgram(buildROM(4, 2, 1, 0), counterProgram...)
	// NMI handler at $8010: INC $10; RTI
	copy(rom[16+0x10:], []byte{0xE6, 0x10, 0x40})
	last := rom[16+PRG_BLOCK_SIZE:]
	last[0x3FFA] = 0x10
	return rom
}

type snapshot struct {
	cpu   CPUState
	ppu   PPURegisters
	ram   [2048]byte
	pix   []byte
	clock uint32
}

func takeSnapshot(console *Console) snapshot {
	return snapshot{
		cpu:   console.CPUState(),
		ppu:   console.PPURegisters(),
		ram:   console.Bus.RAM,
		pix:   append([]byte{}, console.Buffer().Pix...),
		clock: console.Bus.ClockCount(),
	}
}

func (s snapshot) equal(o snapshot) bool {
	return s.cpu == o.cpu && s.ppu == o.ppu && s.ram == o.ram &&
		s.clock == o.clock && bytes.Equal(s.pix, o.pix)
}

func runFrames(t *testing.T, console *Console, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := console.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	console := newTestConsole(t, counterROM())
	runFrames(t, console, 3)
	console.Poke(0x6000, 0xAB)
	// switch $A000, away from the running code
	console.Cartridge.CPUWrite(0x8000, 0x07)
	console.Cartridge.CPUWrite(0x8001, 0x02)

	var buf bytes.Buffer
	if err := console.SaveState(&buf); err != nil {
		t.Fatal(err)
	}
	saved := takeSnapshot(console)
	runFrames(t, console, 2)
	want := takeSnapshot(console)
	if want.ram[0x10] == saved.ram[0x10] {
		t.Fatal("NMI counter did not advance")
	}

	console.Poke(0x6000, 0x00)
	console.Cartridge.CPUWrite(0x8001, 0x01)
	if err := console.LoadState(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	if got := takeSnapshot(console); !got.equal(saved) {
		t.Errorf("restored state differs from saved state: cpu %+v vs %+v", got.cpu, saved.cpu)
	}
	if got := console.Peek(0x6000); got != 0xAB {
		t.Errorf("add-on RAM = %02X, want AB", got)
	}
	if got := console.Peek(0xA000); got != 2 {
		t.Errorf("$A000 bank = %d, want 2", got)
	}

	// the machine replays to the same place
	runFrames(t, console, 2)
	if got := takeSnapshot(console); !got.equal(want) {
		t.Error("replay after load diverged")
	}
}

func TestLoadStateMismatch(t *testing.T) {
	console := newTestConsole(t, counterROM())
	runFrames(t, console, 1)
	var buf bytes.Buffer
	if err := console.SaveState(&buf); err != nil {
		t.Fatal(err)
	}

	otherROM := counterROM()
	otherROM[16+0x100] = 0xFF
	other := newTestConsole(t, otherROM)
	runFrames(t, other, 2)
	before := takeSnapshot(other)

	if err := other.LoadState(bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrStateMismatch) {
		t.Fatalf("err = %v, want ErrStateMismatch", err)
	}
	if !takeSnapshot(other).equal(before) {
		t.Error("state changed by a rejected load")
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	console := newTestConsole(t, counterROM())
	runFrames(t, console, 1)
	var buf bytes.Buffer
	if err := console.SaveState(&buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	runFrames(t, console, 1)
	before := takeSnapshot(console)

	badMagic := append([]byte{}, data...)
	badMagic[0] = 'X'
	badVersion := append([]byte{}, data...)
	badVersion[4] = 99

	tests := map[string][]byte{
		"empty":     nil,
		"header":    data[:10],
		"truncated": data[:len(data)-1],
		"half":      data[:len(data)/2],
		"magic":     badMagic,
		"version":   badVersion,
	}
	for name, stream := range tests {
		if err := console.LoadState(bytes.NewReader(stream)); !errors.Is(err, ErrCorruptState) {
			t.Errorf("%s: err = %v, want ErrCorruptState", name, err)
		}
		if !takeSnapshot(console).equal(before) {
			t.Errorf("%s: state changed by a failed load", name)
		}
	}
}

func TestSaveStateNoCartridge(t *testing.T) {
	console := newConsole()
	if err := console.SaveState(&bytes.Buffer{}); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("save err = %v", err)
	}
	if err := console.LoadState(&bytes.Buffer{}); !errors.Is(err, ErrNoCartridge) {
		t.Errorf("load err = %v", err)
	}
}

func TestSaveStateSlots(t *testing.T) {
	console := newTestConsole(t, counterROM())
	dir := t.TempDir()
	console.SetSaveDir(dir)
	runFrames(t, console, 1)

	path, err := console.SaveStateToDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != filepath.Join(dir, "test") {
		t.Errorf("slot %q not under the title directory", path)
	}
	if filepath.Ext(path) != SaveStateExt || len(filepath.Base(path)) != len("20060102150405.sav") {
		t.Errorf("slot name %q", filepath.Base(path))
	}
	saved := takeSnapshot(console)

	latest, err := console.LatestSaveState()
	if err != nil || latest != path {
		t.Fatalf("latest = %q, %v", latest, err)
	}

	runFrames(t, console, 1)
	if err := console.LoadStateFile(path); err != nil {
		t.Fatal(err)
	}
	if !takeSnapshot(console).equal(saved) {
		t.Error("slot did not restore the state")
	}

	wrongExt := filepath.Join(dir, "state.bin")
	if err := os.WriteFile(wrongExt, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := console.LoadStateFile(wrongExt); err == nil {
		t.Error("loaded a file without the slot extension")
	}
}
