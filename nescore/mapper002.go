// refs: github.com/libretro/Mesen
package nescore

// Mapper002 is UxROM: a switchable 16 KiB bank at $8000 and the last bank fixed at $C000.
type Mapper002 struct {
	*MapperBase

	prgBankLo byte
	prgBankHi byte
}

func NewMapper002(cartridge *Cartridge) Mapper {
	m := &Mapper002{
		MapperBase: NewMapperBase(cartridge),
	}
	m.prgBankHi = m.numPRG - 1
	return m
}

func (m *Mapper002) ReadPRG(address uint16) uint32 {
	if address <= 0xBFFF {
		return uint32(m.prgBankLo)*PRG_BLOCK_SIZE + uint32(address&0x3FFF)
	}
	return uint32(m.prgBankHi)*PRG_BLOCK_SIZE + uint32(address&0x3FFF)
}

func (m *Mapper002) WritePRG(address uint16, value byte) {
	m.prgBankLo = value & 0x0F
}

func (m *Mapper002) ReadCHR(address uint16) uint32 {
	return uint32(address)
}

func (m *Mapper002) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper002) SaveState(e *StateEncoder) {
	m.saveBase(e)
	e.Write(m.prgBankLo)
	e.Write(m.prgBankHi)
}

func (m *Mapper002) LoadState(d *StateDecoder) {
	m.loadBase(d)
	m.prgBankLo = d.Byte()
	m.prgBankHi = d.Byte()
}
