// refs: github.com/fogleman/nes
package nescore

// DMA is the OAM transfer channel started by a write to $4014.
type DMA struct {
	Page     byte
	Addr     byte
	Data     byte
	Dummy    bool // waiting for an odd cycle before the first read
	Transfer bool
}

// Bus owns RAM and decodes every CPU address. It also drives the master
// clock: one PPU dot per call, one CPU cycle (or DMA step) every third.
type Bus struct {
	CPU         *CPU
	PPU         *PPU
	APU         APU
	Controller1 *Controller
	Controller2 *Controller
	Cartridge   *Cartridge
	RAM         [2048]byte // 2 KiB

	clockCount uint32
	dma        DMA
}

func NewBus(ppu *PPU, apu APU, controller1 *Controller, controller2 *Controller) *Bus {
	b := &Bus{
		PPU:         ppu,
		APU:         apu,
		Controller1: controller1,
		Controller2: controller2,
		dma:         DMA{Dummy: true},
	}
	b.CPU = NewCPU(b)
	return b
}

func (b *Bus) InsertCartridge(cartridge *Cartridge) {
	b.Cartridge = cartridge
	b.PPU.ConnectCartridge(cartridge)
}

func (b *Bus) Reset() {
	b.RAM = [2048]byte{}
	b.clockCount = 0
	b.dma = DMA{Dummy: true}
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
}

func (b *Bus) ClockCount() uint32 {
	return b.clockCount
}

func (b *Bus) DMA() DMA {
	return b.dma
}

func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x2000:
		// $0000-$1FFF
		return b.RAM[address&0x07FF]
	case address < 0x4000:
		// $2000-$3FFF
		return b.PPU.ReadRegister(address)
	case address == 0x4015:
		return b.APU.ReadRegister(address)
	case address == 0x4016:
		return b.Controller1.Read()
	case address == 0x4017:
		return b.Controller2.Read()
	case address < 0x6000:
		// $4000-$5FFF
		logMisaccess(accessOpenBus, address)
		return 0
	case b.Cartridge == nil:
		return 0
	}
	// $6000-$FFFF
	return b.Cartridge.CPURead(address)
}

func (b *Bus) Write(address uint16, value byte) {
	switch {
	case address < 0x2000:
		b.RAM[address&0x07FF] = value
	case address < 0x4000:
		// $2000-$3FFF
		b.PPU.WriteRegister(address, value)
	case address < 0x4014, address == 0x4015, address == 0x4017:
		// $4000-$4013, $4015, $4017
		b.APU.WriteRegister(address, value)
	case address == 0x4014:
		b.dma.Page = value
		b.dma.Addr = 0
		b.dma.Transfer = true
	case address == 0x4016:
		b.Controller1.Write(value)
		b.Controller2.Write(value)
	case address < 0x6000:
		logMisaccess(accessOpenBus, address)
	case b.Cartridge == nil:
	default:
		// $6000-$FFFF
		b.Cartridge.CPUWrite(address, value)
	}
}

// Peek reads without side effects: no latches, buffers or shift registers move.
func (b *Bus) Peek(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.RAM[address&0x07FF]
	case address < 0x4000:
		return b.PPU.PeekRegister(address)
	case address == 0x4016:
		return b.Controller1.Peek()
	case address == 0x4017:
		return b.Controller2.Peek()
	case address < 0x6000, b.Cartridge == nil:
		return 0
	case address < 0x8000:
		offset := b.Cartridge.Mapper.ReadAddRAM(address)
		if offset == NoAddRAM {
			return 0
		}
		return b.Cartridge.Mapper.Base().addRAM[offset&(ADD_RAM_SIZE-1)]
	}
	return b.Cartridge.CPURead(address)
}

// Clock advances the whole system by one PPU dot.
func (b *Bus) Clock() {
	b.PPU.Clock()

	if b.clockCount%3 == 0 {
		if b.dma.Transfer {
			b.clockDMA()
		} else {
			// XXX: keeps the counter in range; it also flips DMA parity on wrap
			b.clockCount %= 0x3FFFFFFF
			b.CPU.Clock()
		}
	}

	if b.PPU.NMI {
		b.PPU.NMI = false
		b.CPU.NMI()
	}

	if b.Cartridge != nil && b.Cartridge.Mapper.IRQState() {
		b.Cartridge.Mapper.IRQClear()
		b.CPU.IRQ()
	}

	b.clockCount++
}

func (b *Bus) clockDMA() {
	if b.dma.Dummy {
		if b.clockCount%2 == 1 {
			b.dma.Dummy = false
		}
		return
	}

	if b.clockCount%2 == 0 {
		b.dma.Data = b.Read(uint16(b.dma.Page)<<8 | uint16(b.dma.Addr))
		return
	}

	b.PPU.WriteOAM(b.dma.Addr, b.dma.Data)
	b.dma.Addr++
	if b.dma.Addr == 0 {
		b.dma.Transfer = false
		b.dma.Dummy = true
	}
}
