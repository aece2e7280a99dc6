// refs: github.com/libretro/Mesen
package nescore

const CPUFrequency = 1789773

const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

type AddressingMode byte

// addressing modes
const (
	modeImplied AddressingMode = iota
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

// Memory is the CPU's view of the address space.
type Memory interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

type CPU struct {
	state   CPUState
	mem     Memory
	fetched byte
	fault   *CPUError
}

func NewCPU(mem Memory) *CPU {
	return &CPU{mem: mem}
}

// Reset resets the CPU to its initial powerup state
func (cpu *CPU) Reset() {
	cpu.state.A = 0
	cpu.state.X = 0
	cpu.state.Y = 0
	cpu.state.SP = 0xFD
	cpu.SetAllFlags(PSFlagsInterrupt | PSFlagsReserved)
	cpu.state.PC = cpu.read16(ResetVector)

	cpu.state.AddrAbs = 0
	cpu.state.AddrRel = 0
	cpu.fetched = 0
	cpu.fault = nil

	cpu.state.Cycles = 8
}

func (cpu *CPU) State() CPUState {
	return cpu.state
}

// Err returns the fault that halted the CPU, or nil.
func (cpu *CPU) Err() error {
	if cpu.fault == nil {
		return nil
	}
	return cpu.fault
}

func (cpu *CPU) Halted() bool {
	return cpu.fault != nil
}

// Complete reports whether the current instruction has used up its cycles.
func (cpu *CPU) Complete() bool {
	return cpu.state.Cycles == 0
}

// Clock advances the CPU by one cycle. The whole instruction executes on
// the cycle it is fetched; the remaining cycles only count down.
func (cpu *CPU) Clock() {
	if cpu.fault != nil {
		return
	}

	if cpu.state.Cycles == 0 {
		cpu.state.Opcode = cpu.read(cpu.state.PC)
		cpu.SetFlags(PSFlagsReserved)
		cpu.state.PC++

		instruction := &instructions[cpu.state.Opcode]
		cpu.state.Cycles = instruction.cycles

		pageCrossed := cpu.addressing(instruction.mode)
		extra := cpu.execute(instruction)
		if extra < 0 {
			cpu.state.Cycles += byte(-extra)
		} else {
			cpu.state.Cycles += pageCrossed & byte(extra)
		}

		cpu.SetFlags(PSFlagsReserved)
		if cpu.fault != nil {
			return
		}
	}

	cpu.state.Cycles--
	cpu.state.ClockCount++
}

// Step runs clock cycles until the current instruction retires and returns how many it took.
func (cpu *CPU) Step() (int, error) {
	cycles := 0
	for {
		cpu.Clock()
		if cpu.fault != nil {
			return cycles, cpu.fault
		}
		cycles++
		if cpu.state.Cycles == 0 {
			return cycles, nil
		}
	}
}

// IRQ requests a maskable interrupt.
func (cpu *CPU) IRQ() {
	if cpu.CheckFlag(PSFlagsInterrupt) {
		return
	}
	cpu.interrupt(IRQVector)
}

// NMI requests a non-maskable interrupt.
func (cpu *CPU) NMI() {
	cpu.interrupt(NMIVector)
}

func (cpu *CPU) interrupt(vector uint16) {
	if cpu.fault != nil {
		return
	}
	cpu.push16(cpu.state.PC)
	cpu.push((cpu.state.P &^ PSFlagsBreak) | PSFlagsReserved)
	if cpu.fault != nil {
		return
	}
	cpu.SetFlags(PSFlagsInterrupt)
	cpu.state.PC = cpu.read16(vector)
	cpu.state.Cycles = 7
}

func (cpu *CPU) read(address uint16) byte {
	return cpu.mem.Read(address)
}

func (cpu *CPU) write(address uint16, value byte) {
	cpu.mem.Write(address, value)
}

func (cpu *CPU) read16(address uint16) uint16 {
	lo := uint16(cpu.read(address))
	hi := uint16(cpu.read(address + 1))
	return hi<<8 | lo
}

// push pushes a byte onto the stack
func (cpu *CPU) push(value byte) {
	if cpu.fault != nil {
		return
	}
	if cpu.state.SP == 0 {
		cpu.fault = &CPUError{
			Kind:   StackOverflow,
			PC:     cpu.state.PC,
			Opcode: cpu.state.Opcode,
			SP:     cpu.state.SP,
		}
		return
	}
	cpu.write(0x100|uint16(cpu.state.SP), value)
	cpu.state.SP--
}

// pull pops a byte from the stack
func (cpu *CPU) pull() byte {
	cpu.state.SP++
	return cpu.read(0x100 | uint16(cpu.state.SP))
}

// push16 pushes two bytes onto the stack, high byte first
func (cpu *CPU) push16(value uint16) {
	cpu.push(byte(value >> 8))
	cpu.push(byte(value & 0xFF))
}

// pull16 pops two bytes from the stack
func (cpu *CPU) pull16() uint16 {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	return hi<<8 | lo
}

// pagesDiffer returns true if the two addresses reference different pages
func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// addressing resolves the effective address of the current instruction.
// It returns 1 when indexing crossed a page boundary.
func (cpu *CPU) addressing(mode AddressingMode) byte {
	s := &cpu.state
	switch mode {
	case modeImplied:
		cpu.fetched = s.A
	case modeImmediate:
		s.AddrAbs = s.PC
		s.PC++
	case modeZeroPage:
		s.AddrAbs = uint16(cpu.read(s.PC))
		s.PC++
	case modeZeroPageX:
		s.AddrAbs = uint16(cpu.read(s.PC) + s.X)
		s.PC++
	case modeZeroPageY:
		s.AddrAbs = uint16(cpu.read(s.PC) + s.Y)
		s.PC++
	case modeRelative:
		s.AddrRel = uint16(cpu.read(s.PC))
		s.PC++
		if s.AddrRel&0x80 != 0 {
			s.AddrRel |= 0xFF00
		}
	case modeAbsolute:
		s.AddrAbs = cpu.read16(s.PC)
		s.PC += 2
	case modeAbsoluteX:
		base := cpu.read16(s.PC)
		s.PC += 2
		s.AddrAbs = base + uint16(s.X)
		if pagesDiffer(base, s.AddrAbs) {
			return 1
		}
	case modeAbsoluteY:
		base := cpu.read16(s.PC)
		s.PC += 2
		s.AddrAbs = base + uint16(s.Y)
		if pagesDiffer(base, s.AddrAbs) {
			return 1
		}
	case modeIndirect:
		ptr := cpu.read16(s.PC)
		s.PC += 2
		// XXX: the high byte does not cross pages, as on hardware
		hi := ptr&0xFF00 | uint16(byte(ptr)+1)
		s.AddrAbs = uint16(cpu.read(hi))<<8 | uint16(cpu.read(ptr))
	case modeIndirectX:
		zero := cpu.read(s.PC)
		s.PC++
		lo := uint16(cpu.read(uint16(zero + s.X)))
		hi := uint16(cpu.read(uint16(zero + s.X + 1)))
		s.AddrAbs = hi<<8 | lo
	case modeIndirectY:
		zero := cpu.read(s.PC)
		s.PC++
		lo := uint16(cpu.read(uint16(zero)))
		hi := uint16(cpu.read(uint16(zero + 1)))
		base := hi<<8 | lo
		s.AddrAbs = base + uint16(s.Y)
		if pagesDiffer(base, s.AddrAbs) {
			return 1
		}
	}
	return 0
}

// fetch loads the operand of the current instruction
func (cpu *CPU) fetch(mode AddressingMode) byte {
	if mode != modeImplied {
		cpu.fetched = cpu.read(cpu.state.AddrAbs)
	}
	return cpu.fetched
}
