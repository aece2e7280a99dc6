// refs: github.com/fogleman/nes
package nescore

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const iNESFileMagic = 0x1a53454e

type iNESFileHeader struct {
	Magic    uint32  // iNES magic number
	NumPRG   byte    // number of PRG-ROM banks (16KB each)
	NumCHR   byte    // number of CHR-ROM banks (8KB each)
	Control1 byte    // control bits
	Control2 byte    // control bits
	NumRAM   byte    // PRG-RAM size (x 8KB)
	_        [7]byte // unused padding
}

// LoadNESFile reads an iNES file (.nes) and returns a Cartridge on success.
// http://wiki.nesdev.com/w/index.php/INES
func LoadNESFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cartridge, err := ParseNES(data, gameTitle(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cartridge.ROMFilePath = path
	return cartridge, nil
}

// gameTitle names save-state directories: lower-cased base name without ".nes".
func gameTitle(path string) string {
	title := strings.ToLower(filepath.Base(path))
	return strings.TrimSuffix(title, ".nes")
}

// ParseNES decodes an in-memory iNES image.
func ParseNES(data []byte, title string) (*Cartridge, error) {
	r := bytes.NewReader(data)

	// read file header
	header := iNESFileHeader{}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, ErrInvalidNESFile
	}

	// verify header magic number
	if header.Magic != iNESFileMagic {
		return nil, ErrInvalidNESFile
	}
	if header.NumPRG == 0 {
		return nil, fmt.Errorf("%w: no PRG-ROM", ErrInvalidNESFile)
	}

	mapperID := (header.Control2 & 0xF0) | (header.Control1 >> 4)

	mirror := MIRROR_HORIZONTAL
	if header.Control1&0x01 != 0 {
		mirror = MIRROR_VERTICAL
	}
	if header.Control1&0x08 != 0 {
		// XXX: only two nametables exist, four-screen boards run vertical
		logger.Printf("four-screen mirroring is not supported, using vertical")
		mirror = MIRROR_VERTICAL
	}

	battery := header.Control1&0x02 != 0

	// skip trainer if present (unused)
	if header.Control1&0x04 != 0 {
		if _, err := r.Seek(512, io.SeekCurrent); err != nil {
			return nil, err
		}
	}

	prg := make([]byte, int(header.NumPRG)*PRG_BLOCK_SIZE)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("%w: truncated PRG-ROM", ErrInvalidNESFile)
	}

	chr := make([]byte, int(header.NumCHR)*CHR_BLOCK_SIZE)
	if _, err := io.ReadFull(r, chr); err != nil {
		return nil, fmt.Errorf("%w: truncated CHR-ROM", ErrInvalidNESFile)
	}

	cartridge := &Cartridge{
		PRG:       prg,
		CHR:       chr,
		MapperID:  mapperID,
		Mirroring: mirror,
		Battery:   battery,
		NumPRG:    header.NumPRG,
		NumCHR:    header.NumCHR,
		Title:     title,
		MD5:       md5.Sum(data),
	}

	mapper, err := NewMapper(cartridge)
	if err != nil {
		return nil, err
	}
	cartridge.Mapper = mapper

	logger.Printf("loaded %q: mapper %d, PRG %dx16KiB, CHR %dx8KiB, %s, battery %v",
		title, mapperID, header.NumPRG, header.NumCHR, mirror, battery)
	return cartridge, nil
}
