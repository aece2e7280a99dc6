package nescore

// Mapper066 is GxROM: one register selects a 32 KiB PRG bank and an 8 KiB CHR bank.
type Mapper066 struct {
	*MapperBase

	prgBank byte
	chrBank byte
}

func NewMapper066(cartridge *Cartridge) Mapper {
	return &Mapper066{
		MapperBase: NewMapperBase(cartridge),
	}
}

func (m *Mapper066) ReadPRG(address uint16) uint32 {
	return uint32(m.prgBank)*0x8000 + uint32(address&0x7FFF)
}

func (m *Mapper066) WritePRG(address uint16, value byte) {
	m.chrBank = value & 0x03
	m.prgBank = (value >> 4) & 0x03
}

func (m *Mapper066) ReadCHR(address uint16) uint32 {
	return uint32(m.chrBank)*CHR_BLOCK_SIZE + uint32(address)
}

func (m *Mapper066) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper066) SaveState(e *StateEncoder) {
	m.saveBase(e)
	e.Write(m.prgBank)
	e.Write(m.chrBank)
}

func (m *Mapper066) LoadState(d *StateDecoder) {
	m.loadBase(d)
	m.prgBank = d.Byte()
	m.chrBank = d.Byte()
}
