// refs: github.com/libretro/Mesen
package nescore

type MMC1RegisterType byte

const (
	MMC1_Reg8000 MMC1RegisterType = iota
	MMC1_RegA000
	MMC1_RegC000
	MMC1_RegE000
)

// Mapper001 is MMC1 (SxROM). Registers are loaded serially, one bit per
// write, and latched on the fifth write.
type Mapper001 struct {
	*MapperBase

	shiftRegister byte
	writeCount    byte
	control       byte

	chrBank4Lo  byte
	chrBank4Hi  byte
	chrBank8    byte
	prgBank16Lo byte
	prgBank16Hi byte
	prgBank32   byte
}

func NewMapper001(cartridge *Cartridge) Mapper {
	m := &Mapper001{
		MapperBase: NewMapperBase(cartridge),
		control:    0x1C,
	}
	m.prgBank16Hi = m.numPRG - 1
	return m
}

func (m *Mapper001) prgMode() byte {
	return (m.control >> 2) & 0x03
}

func (m *Mapper001) chr4KMode() bool {
	return m.control&0x10 != 0
}

func (m *Mapper001) ReadAddRAM(address uint16) uint32 {
	return uint32(address & 0x1FFF)
}

func (m *Mapper001) WriteAddRAM(address uint16, value byte) uint32 {
	return uint32(address & 0x1FFF)
}

func (m *Mapper001) ReadPRG(address uint16) uint32 {
	if m.prgMode() >= 2 {
		if address <= 0xBFFF {
			return uint32(m.prgBank16Lo)*PRG_BLOCK_SIZE + uint32(address&0x3FFF)
		}
		return uint32(m.prgBank16Hi)*PRG_BLOCK_SIZE + uint32(address&0x3FFF)
	}
	return uint32(m.prgBank32)*0x8000 + uint32(address&0x7FFF)
}

func (m *Mapper001) WritePRG(address uint16, value byte) {
	if value&0x80 != 0 {
		m.shiftRegister = 0
		m.writeCount = 0
		m.control |= 0x0C
		return
	}

	m.shiftRegister >>= 1
	m.shiftRegister |= (value & 0x01) << 4
	m.writeCount++
	if m.writeCount < 5 {
		return
	}

	m.writeRegister(MMC1RegisterType((address>>13)&0x03), m.shiftRegister)
	m.shiftRegister = 0
	m.writeCount = 0
}

func (m *Mapper001) writeRegister(reg MMC1RegisterType, value byte) {
	switch reg {
	case MMC1_Reg8000:
		m.control = value & 0x1F
		switch m.control & 0x03 {
		case 0:
			m.mirroringType = MIRROR_SINGLE_SCREEN_A
		case 1:
			m.mirroringType = MIRROR_SINGLE_SCREEN_B
		case 2:
			m.mirroringType = MIRROR_VERTICAL
		case 3:
			m.mirroringType = MIRROR_HORIZONTAL
		}
	case MMC1_RegA000:
		if m.chr4KMode() {
			m.chrBank4Lo = value & 0x1F
		} else {
			// low bit is ignored in 8 KiB mode
			m.chrBank8 = (value & 0x1E) >> 1
		}
	case MMC1_RegC000:
		if m.chr4KMode() {
			m.chrBank4Hi = value & 0x1F
		}
	case MMC1_RegE000:
		switch m.prgMode() {
		case 0, 1:
			m.prgBank32 = (value & 0x0E) >> 1
		case 2:
			m.prgBank16Lo = 0
			m.prgBank16Hi = value & 0x0F
		case 3:
			m.prgBank16Lo = value & 0x0F
			m.prgBank16Hi = m.numPRG - 1
		}
	}
}

func (m *Mapper001) ReadCHR(address uint16) uint32 {
	if m.numCHR == 0 {
		return uint32(address)
	}
	if m.chr4KMode() {
		if address <= 0x0FFF {
			return uint32(m.chrBank4Lo)*0x1000 + uint32(address&0x0FFF)
		}
		return uint32(m.chrBank4Hi)*0x1000 + uint32(address&0x0FFF)
	}
	return uint32(m.chrBank8)*CHR_BLOCK_SIZE + uint32(address&0x1FFF)
}

func (m *Mapper001) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper001) SaveState(e *StateEncoder) {
	m.saveBase(e)
	e.Write([]byte{
		m.writeCount, m.shiftRegister, m.control,
		m.chrBank4Lo, m.chrBank4Hi, m.chrBank8,
		m.prgBank16Lo, m.prgBank16Hi, m.prgBank32,
	})
}

func (m *Mapper001) LoadState(d *StateDecoder) {
	m.loadBase(d)
	regs := make([]byte, 9)
	d.Read(regs)
	m.writeCount, m.shiftRegister, m.control = regs[0], regs[1], regs[2]
	m.chrBank4Lo, m.chrBank4Hi, m.chrBank8 = regs[3], regs[4], regs[5]
	m.prgBank16Lo, m.prgBank16Hi, m.prgBank32 = regs[6], regs[7], regs[8]
}
