// refs: github.com/libretro/Mesen
package nescore

type MMC3RegisterType uint16

const (
	MMC3_Reg8000 MMC3RegisterType = 0x8000
	MMC3_Reg8001 MMC3RegisterType = 0x8001
	MMC3_RegA000 MMC3RegisterType = 0xA000
	MMC3_RegA001 MMC3RegisterType = 0xA001
	MMC3_RegC000 MMC3RegisterType = 0xC000
	MMC3_RegC001 MMC3RegisterType = 0xC001
	MMC3_RegE000 MMC3RegisterType = 0xE000
	MMC3_RegE001 MMC3RegisterType = 0xE001
)

// Mapper004 is MMC3 (TxROM): eight 1 KiB CHR windows, four 8 KiB PRG
// windows and a scanline counter that raises an IRQ.
type Mapper004 struct {
	*MapperBase

	currentRegister byte
	prgMode         bool
	chrInversion    bool
	registers       [8]byte

	prgBanks [4]uint32
	chrBanks [8]uint32

	irqActive      bool
	irqEnabled     bool
	irqCounter     byte
	irqReloadValue byte
}

func NewMapper004(cartridge *Cartridge) Mapper {
	m := &Mapper004{
		MapperBase: NewMapperBase(cartridge),
	}
	// R7 powers on as 1 so $A000 starts at the second bank
	m.registers[7] = 1
	m.updateBanks()
	return m
}

func (m *Mapper004) secondLastBank() uint32 {
	return (uint32(m.numPRG)*2 - 2) * 0x2000
}

func (m *Mapper004) lastBank() uint32 {
	return (uint32(m.numPRG)*2 - 1) * 0x2000
}

func (m *Mapper004) ReadAddRAM(address uint16) uint32 {
	return uint32(address & 0x1FFF)
}

func (m *Mapper004) WriteAddRAM(address uint16, value byte) uint32 {
	return uint32(address & 0x1FFF)
}

func (m *Mapper004) ReadPRG(address uint16) uint32 {
	return m.prgBanks[(address>>13)&0x03] + uint32(address&0x1FFF)
}

func (m *Mapper004) WritePRG(address uint16, value byte) {
	switch MMC3RegisterType(address & 0xE001) {
	case MMC3_Reg8000:
		m.currentRegister = value & 0x07
		m.prgMode = value&0x40 != 0
		m.chrInversion = value&0x80 != 0
		m.updateBanks()
	case MMC3_Reg8001:
		m.registers[m.currentRegister] = value
		m.updateBanks()
	case MMC3_RegA000:
		if value&0x01 != 0 {
			m.mirroringType = MIRROR_HORIZONTAL
		} else {
			m.mirroringType = MIRROR_VERTICAL
		}
	case MMC3_RegA001:
		// PRG-RAM protect is not emulated
	case MMC3_RegC000:
		m.irqReloadValue = value
	case MMC3_RegC001:
		m.irqCounter = 0
	case MMC3_RegE000:
		m.irqEnabled = false
		m.irqActive = false
	case MMC3_RegE001:
		m.irqEnabled = true
	}
}

func (m *Mapper004) updateBanks() {
	r := &m.registers
	pair0 := uint32(r[0] & 0xFE)
	pair1 := uint32(r[1] & 0xFE)
	if m.chrInversion {
		m.chrBanks = [8]uint32{
			uint32(r[2]), uint32(r[3]), uint32(r[4]), uint32(r[5]),
			pair0, pair0 + 1, pair1, pair1 + 1,
		}
	} else {
		m.chrBanks = [8]uint32{
			pair0, pair0 + 1, pair1, pair1 + 1,
			uint32(r[2]), uint32(r[3]), uint32(r[4]), uint32(r[5]),
		}
	}
	for i := range m.chrBanks {
		m.chrBanks[i] *= 0x0400
	}

	if m.prgMode {
		m.prgBanks[0] = m.secondLastBank()
		m.prgBanks[2] = uint32(r[6]&0x3F) * 0x2000
	} else {
		m.prgBanks[0] = uint32(r[6]&0x3F) * 0x2000
		m.prgBanks[2] = m.secondLastBank()
	}
	m.prgBanks[1] = uint32(r[7]&0x3F) * 0x2000
	m.prgBanks[3] = m.lastBank()
}

func (m *Mapper004) ReadCHR(address uint16) uint32 {
	if m.numCHR == 0 {
		return uint32(address)
	}
	return m.chrBanks[(address>>10)&0x07] + uint32(address&0x03FF)
}

func (m *Mapper004) WriteCHR(address uint16, value byte) uint32 {
	return uint32(address)
}

func (m *Mapper004) Scanline() {
	if m.irqCounter == 0 {
		m.irqCounter = m.irqReloadValue
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqActive = true
	}
}

func (m *Mapper004) IRQState() bool {
	return m.irqActive
}

func (m *Mapper004) IRQClear() {
	m.irqActive = false
}

func (m *Mapper004) SaveState(e *StateEncoder) {
	m.saveBase(e)
	e.Write(m.currentRegister)
	e.Write(m.prgMode)
	e.Write(m.chrInversion)
	e.Write(m.registers[:])
	e.Write(m.chrBanks[:])
	e.Write(m.prgBanks[:])
	e.Write(m.irqActive)
	e.Write(m.irqEnabled)
	e.Write(m.irqCounter)
	e.Write(m.irqReloadValue)
}

func (m *Mapper004) LoadState(d *StateDecoder) {
	m.loadBase(d)
	m.currentRegister = d.Byte() & 0x07
	m.prgMode = d.Bool()
	m.chrInversion = d.Bool()
	d.Read(m.registers[:])
	d.Read(m.chrBanks[:])
	d.Read(m.prgBanks[:])
	m.irqActive = d.Bool()
	m.irqEnabled = d.Bool()
	m.irqCounter = d.Byte()
	m.irqReloadValue = d.Byte()
}
