package nescore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func init() {
	SetLogOutput(io.Discard)
}

// buildROM assembles an iNES image. Every PRG byte holds the index of its
// 8 KiB bank and every CHR byte the index of its 1 KiB bank, so bank
// arithmetic can be checked by reading any byte.
func buildROM(mapper byte, numPRG, numCHR int, flags6 byte) []byte {
	header := []byte{
		'N', 'E', 'S', 0x1A,
		byte(numPRG), byte(numCHR),
		flags6 | mapper<<4, mapper & 0xF0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	prg := make([]byte, numPRG*PRG_BLOCK_SIZE)
	for i := range prg {
		prg[i] = byte(i / 0x2000)
	}
	chr := make([]byte, numCHR*CHR_BLOCK_SIZE)
	for i := range chr {
		chr[i] = byte(i / 0x0400)
	}
	rom := append(header, prg...)
	return append(rom, chr...)
}

// withProgram copies code to $8000 and points every vector at its start.
// The ROM must map its first PRG bank at $8000 and its last at $C000.
func withProgram(rom []byte, code ...byte) []byte {
	numPRG := int(rom[4])
	prg := rom[16 : 16+numPRG*PRG_BLOCK_SIZE]
	copy(prg, code)
	last := prg[len(prg)-PRG_BLOCK_SIZE:]
	for _, vector := range []int{0x3FFA, 0x3FFC, 0x3FFE} {
		last[vector] = 0x00
		last[vector+1] = 0x80
	}
	return rom
}

func mustParse(t *testing.T, rom []byte) *Cartridge {
	t.Helper()
	cartridge, err := ParseNES(rom, "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cartridge
}

func TestParseNES(t *testing.T) {
	cartridge := mustParse(t, buildROM(1, 8, 2, 0x03))
	if cartridge.MapperID != 1 {
		t.Errorf("mapper = %d, want 1", cartridge.MapperID)
	}
	if cartridge.Mirroring != MIRROR_VERTICAL {
		t.Errorf("mirroring = %v, want vertical", cartridge.Mirroring)
	}
	if !cartridge.Battery {
		t.Error("battery flag lost")
	}
	if len(cartridge.PRG) != 8*PRG_BLOCK_SIZE || len(cartridge.CHR) != 2*CHR_BLOCK_SIZE {
		t.Errorf("PRG %d CHR %d", len(cartridge.PRG), len(cartridge.CHR))
	}
	if len(cartridge.Hash()) != 32 {
		t.Errorf("hash %q", cartridge.Hash())
	}
}

func TestParseNESMapperHighNibble(t *testing.T) {
	cartridge := mustParse(t, buildROM(66, 2, 1, 0))
	if cartridge.MapperID != 66 {
		t.Errorf("mapper = %d, want 66", cartridge.MapperID)
	}
	if cartridge.Mirroring != MIRROR_HORIZONTAL {
		t.Errorf("mirroring = %v", cartridge.Mirroring)
	}
}

func TestParseNESTrainer(t *testing.T) {
	rom := buildROM(0, 1, 1, 0x04)
	trainer := make([]byte, 512)
	for i := range trainer {
		trainer[i] = 0xEE
	}
	withTrainer := append(append(append([]byte{}, rom[:16]...), trainer...), rom[16:]...)
	cartridge := mustParse(t, withTrainer)
	if cartridge.PRG[0] != 0 {
		t.Errorf("PRG[0] = %02X, trainer not skipped", cartridge.PRG[0])
	}
}

func TestParseNESErrors(t *testing.T) {
	good := buildROM(0, 1, 1, 0)

	badMagic := append([]byte{}, good...)
	badMagic[0] = 'X'

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", good[:10], ErrInvalidNESFile},
		{"bad magic", badMagic, ErrInvalidNESFile},
		{"truncated", good[:len(good)-1], ErrInvalidNESFile},
		{"no PRG", buildROM(0, 0, 1, 0), ErrInvalidNESFile},
		{"unsupported mapper", buildROM(5, 1, 1, 0), ErrUnsupportedMapper},
	}
	for _, tt := range tests {
		if _, err := ParseNES(tt.data, "bad"); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestLoadNESFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Some Game.NES")
	if err := os.WriteFile(path, buildROM(0, 1, 1, 0), 0644); err != nil {
		t.Fatal(err)
	}
	cartridge, err := LoadNESFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cartridge.Title != "some game" {
		t.Errorf("title = %q", cartridge.Title)
	}
	if cartridge.ROMFilePath != path {
		t.Errorf("path = %q", cartridge.ROMFilePath)
	}

	if _, err := LoadNESFile(filepath.Join(dir, "missing.nes")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}
