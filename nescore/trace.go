package nescore

import (
	"fmt"
	"strings"
)

// Peeker reads memory without side effects.
type Peeker interface {
	Peek(address uint16) byte
}

func (cpu *CPU) peek(address uint16) byte {
	if p, ok := cpu.mem.(Peeker); ok {
		return p.Peek(address)
	}
	return cpu.mem.Read(address)
}

// Trace returns a nestest-style line for the instruction at PC.
// Call it when Complete reports true, before the next Clock.
func (cpu *CPU) Trace() string {
	pc := cpu.state.PC
	instruction := instructions[cpu.peek(pc)]

	w := [3]string{fmt.Sprintf("%02X", instruction.opcode), "  ", "  "}
	for i := 1; i < int(instruction.size); i++ {
		w[i] = fmt.Sprintf("%02X", cpu.peek(pc+uint16(i)))
	}
	text, _ := disassemble(cpu.peek, pc)

	return fmt.Sprintf(
		"%04X  %s %s %s  %-31s"+
			"A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		pc, w[0], w[1], w[2], text,
		cpu.state.A, cpu.state.X, cpu.state.Y, cpu.Flags(), cpu.state.SP, cpu.state.ClockCount)
}

// Disassemble decodes count instructions starting at start.
func Disassemble(mem Peeker, start uint16, count int) []string {
	lines := make([]string, 0, count)
	address := start
	for i := 0; i < count; i++ {
		text, size := disassemble(mem.Peek, address)
		lines = append(lines, fmt.Sprintf("$%04X: %s", address, text))
		address += uint16(size)
	}
	return lines
}

func disassemble(peek func(uint16) byte, address uint16) (string, int) {
	instruction := instructions[peek(address)]
	lo := peek(address + 1)
	word := uint16(peek(address+2))<<8 | uint16(lo)

	var operand string
	switch instruction.mode {
	case modeImplied:
		switch instruction.opcode {
		case 0x0A, 0x2A, 0x4A, 0x6A:
			operand = "A"
		}
	case modeImmediate:
		operand = fmt.Sprintf("#$%02X", lo)
	case modeZeroPage:
		operand = fmt.Sprintf("$%02X", lo)
	case modeZeroPageX:
		operand = fmt.Sprintf("$%02X,X", lo)
	case modeZeroPageY:
		operand = fmt.Sprintf("$%02X,Y", lo)
	case modeRelative:
		target := address + 2 + uint16(int8(lo))
		operand = fmt.Sprintf("$%04X", target)
	case modeAbsolute:
		operand = fmt.Sprintf("$%04X", word)
	case modeAbsoluteX:
		operand = fmt.Sprintf("$%04X,X", word)
	case modeAbsoluteY:
		operand = fmt.Sprintf("$%04X,Y", word)
	case modeIndirect:
		operand = fmt.Sprintf("($%04X)", word)
	case modeIndirectX:
		operand = fmt.Sprintf("($%02X,X)", lo)
	case modeIndirectY:
		operand = fmt.Sprintf("($%02X),Y", lo)
	}

	if operand == "" {
		return instruction.name, int(instruction.size)
	}
	return strings.Join([]string{instruction.name, operand}, " "), int(instruction.size)
}
