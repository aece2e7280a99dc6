// refs: github.com/fogleman/nes
package nescore

// Mapper000 is NROM: 16 or 32 KiB of PRG mirrored into $8000-$FFFF, 8 KiB CHR.
type Mapper000 struct {
	*MapperBase
}

func NewMapper000(cartridge *Cartridge) Mapper {
	return &Mapper000{
		MapperBase: NewMapperBase(cartridge),
	}
}

func (m *Mapper000) ReadPRG(address uint16) uint32 {
	if m.numPRG > 1 {
		return uint32(address & 0x7FFF)
	}
	return uint32(address & 0x3FFF)
}

func (m *Mapper000) WritePRG(address uint16, value byte) {
}

func (m *Mapper000) ReadCHR(address uint16) uint32 {
	return uint32(address)
}

func (m *Mapper000) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper000) SaveState(e *StateEncoder) {
	m.saveBase(e)
}

func (m *Mapper000) LoadState(d *StateDecoder) {
	m.loadBase(d)
}
