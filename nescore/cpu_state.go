// refs: github.com/libretro/Mesen
package nescore

type CPUState struct {
	PC uint16 // program counter
	SP byte   // stack pointer
	A  byte   // accumulator
	X  byte   // x register
	Y  byte   // y register
	P  byte   // processor status

	Cycles     byte   // cycles left for the current instruction
	Opcode     byte   // current opcode
	AddrAbs    uint16 // effective address
	AddrRel    uint16 // sign-extended branch offset
	ClockCount uint64 // cycles since reset
}

const (
	PSFlagsCarry     = 0x01
	PSFlagsZero      = 0x02
	PSFlagsInterrupt = 0x04
	PSFlagsDecimal   = 0x08
	PSFlagsBreak     = 0x10
	PSFlagsReserved  = 0x20
	PSFlagsOverflow  = 0x40
	PSFlagsNegative  = 0x80
)

func (cpu *CPU) SetAllFlags(flags byte) {
	cpu.state.P = flags
}

func (cpu *CPU) SetFlags(flags byte) {
	cpu.state.P |= flags
}

func (cpu *CPU) ClearFlags(flags byte) {
	cpu.state.P &^= flags
}

func (cpu *CPU) CheckFlag(flag byte) bool {
	return (cpu.state.P & flag) == flag
}

// Flags returns the processor status flags
func (cpu *CPU) Flags() byte {
	return cpu.state.P
}

func (cpu *CPU) setFlag(flag byte, on bool) {
	if on {
		cpu.SetFlags(flag)
	} else {
		cpu.ClearFlags(flag)
	}
}

// carry returns the carry flag as 0 or 1
func (cpu *CPU) carry() byte {
	return cpu.state.P & PSFlagsCarry
}

// setZN sets the zero flag and the negative flag
func (cpu *CPU) setZN(value byte) {
	cpu.setZ(value)
	cpu.setN(value)
}

// setZ sets the zero flag if the argument is zero
func (cpu *CPU) setZ(value byte) {
	cpu.setFlag(PSFlagsZero, value == 0)
}

// setN sets the negative flag if the argument is negative (high bit is set)
func (cpu *CPU) setN(value byte) {
	cpu.setFlag(PSFlagsNegative, value&0x80 != 0)
}
