// refs: github.com/fogleman/nes
package nescore

import (
	"encoding/hex"
)

type Cartridge struct {
	PRG       []byte // PRG-ROM banks
	CHR       []byte // CHR-ROM banks, empty when the board uses CHR-RAM
	MapperID  byte
	Mapper    Mapper
	Mirroring MirroringType // mirroring from the header
	Battery   bool

	// Meta data
	ROMFilePath string
	Title       string
	MD5         [16]byte
	NumPRG      byte
	NumCHR      byte

	battery *Battery
}

func (c *Cartridge) HasCHRROM() bool {
	return c.NumCHR > 0
}

// Hash is the hex MD5 of the whole ROM file.
func (c *Cartridge) Hash() string {
	return hex.EncodeToString(c.MD5[:])
}

// CPURead serves $6000-$FFFF.
func (c *Cartridge) CPURead(address uint16) byte {
	switch {
	case address >= 0x8000:
		return c.PRG[int(c.Mapper.ReadPRG(address))%len(c.PRG)]
	case address >= 0x6000:
		offset := c.Mapper.ReadAddRAM(address)
		if offset == NoAddRAM {
			logMisaccess(accessNoAddRAM, address)
			return 0
		}
		return c.Mapper.Base().addRAM[offset&(ADD_RAM_SIZE-1)]
	}
	logMisaccess(accessOpenBus, address)
	return 0
}

// CPUWrite serves $6000-$FFFF. Writes at $8000+ only reach mapper registers.
func (c *Cartridge) CPUWrite(address uint16, value byte) {
	switch {
	case address >= 0x8000:
		c.Mapper.WritePRG(address, value)
	case address >= 0x6000:
		offset := c.Mapper.WriteAddRAM(address, value)
		if offset == NoAddRAM {
			logMisaccess(accessNoAddRAM, address)
			return
		}
		c.Mapper.Base().addRAM[offset&(ADD_RAM_SIZE-1)] = value
	default:
		logMisaccess(accessOpenBus, address)
	}
}

// PPURead serves the pattern tables at $0000-$1FFF.
func (c *Cartridge) PPURead(address uint16) byte {
	offset := int(c.Mapper.ReadCHR(address & 0x1FFF))
	if c.NumCHR == 0 {
		return c.Mapper.Base().chrRAM[offset%CHR_BLOCK_SIZE]
	}
	return c.CHR[offset%len(c.CHR)]
}

func (c *Cartridge) PPUWrite(address uint16, value byte) {
	offset := int(c.Mapper.WriteCHR(address&0x1FFF, value))
	if c.NumCHR != 0 {
		logMisaccess(accessCHRROMWrite, address)
		return
	}
	c.Mapper.Base().chrRAM[offset%CHR_BLOCK_SIZE] = value
}

// Close flushes battery RAM, if any, and releases its mapping.
func (c *Cartridge) Close() error {
	if c.battery == nil {
		return nil
	}
	err := c.battery.Close()
	c.battery = nil
	return err
}
