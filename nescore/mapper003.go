// refs: github.com/libretro/Mesen
package nescore

// Mapper003 is CNROM: fixed PRG with a switchable 8 KiB CHR bank.
type Mapper003 struct {
	*MapperBase

	chrBank byte
}

func NewMapper003(cartridge *Cartridge) Mapper {
	return &Mapper003{
		MapperBase: NewMapperBase(cartridge),
	}
}

func (m *Mapper003) ReadPRG(address uint16) uint32 {
	if m.numPRG > 1 {
		return uint32(address & 0x7FFF)
	}
	return uint32(address & 0x3FFF)
}

func (m *Mapper003) WritePRG(address uint16, value byte) {
	m.chrBank = value & 0x03
	if m.numCHR > 0 {
		m.chrBank %= m.numCHR
	}
}

func (m *Mapper003) ReadCHR(address uint16) uint32 {
	return uint32(m.chrBank)*CHR_BLOCK_SIZE + uint32(address)
}

func (m *Mapper003) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper003) SaveState(e *StateEncoder) {
	m.saveBase(e)
	e.Write(m.chrBank)
}

func (m *Mapper003) LoadState(d *StateDecoder) {
	m.loadBase(d)
	m.chrBank = d.Byte()
}
