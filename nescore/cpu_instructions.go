// refs: github.com/libretro/Mesen
package nescore

type Operation byte

// operations
const (
	opADC Operation = iota
	opAND
	opASL
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opJMP
	opJSR
	opLDA
	opLDX
	opLDY
	opLSR
	opNOP
	opORA
	opPHA
	opPHP
	opPLA
	opPLP
	opROL
	opROR
	opRTI
	opRTS
	opSBC
	opSEC
	opSED
	opSEI
	opSTA
	opSTX
	opSTY
	opTAX
	opTAY
	opTSX
	opTXA
	opTXS
	opTYA
	opXXX
)

type CPUInstruction struct {
	opcode byte
	// instructionNames indicates the name of each instruction
	name string
	op   Operation
	// addressing mode
	mode AddressingMode
	// instructionSizes indicates the size of each instruction in bytes
	size byte
	// instructionCycles indicates the number of cycles used by each instruction, not including conditional cycles
	cycles byte
}

// Undefined opcodes are named "???". The ones that behave as NOP on
// hardware are kept as NOP with their real operand size.
var instructions = [256]CPUInstruction{
	{opcode: 0x00, name: "BRK", op: opBRK, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x01, name: "ORA", op: opORA, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0x02, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x03, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x04, name: "NOP", op: opNOP, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x05, name: "ORA", op: opORA, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x06, name: "ASL", op: opASL, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0x07, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x08, name: "PHP", op: opPHP, mode: modeImplied, size: 1, cycles: 3},
	{opcode: 0x09, name: "ORA", op: opORA, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x0A, name: "ASL", op: opASL, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x0B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x0C, name: "NOP", op: opNOP, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x0D, name: "ORA", op: opORA, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x0E, name: "ASL", op: opASL, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0x0F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x10, name: "BPL", op: opBPL, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0x11, name: "ORA", op: opORA, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0x12, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x13, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x14, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x15, name: "ORA", op: opORA, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x16, name: "ASL", op: opASL, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0x17, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x18, name: "CLC", op: opCLC, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x19, name: "ORA", op: opORA, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0x1A, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x1B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x1C, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x1D, name: "ORA", op: opORA, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x1E, name: "ASL", op: opASL, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0x1F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x20, name: "JSR", op: opJSR, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0x21, name: "AND", op: opAND, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0x22, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x23, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x24, name: "BIT", op: opBIT, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x25, name: "AND", op: opAND, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x26, name: "ROL", op: opROL, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0x27, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x28, name: "PLP", op: opPLP, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0x29, name: "AND", op: opAND, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x2A, name: "ROL", op: opROL, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x2B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x2C, name: "BIT", op: opBIT, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x2D, name: "AND", op: opAND, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x2E, name: "ROL", op: opROL, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0x2F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x30, name: "BMI", op: opBMI, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0x31, name: "AND", op: opAND, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0x32, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x33, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x34, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x35, name: "AND", op: opAND, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x36, name: "ROL", op: opROL, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0x37, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x38, name: "SEC", op: opSEC, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x39, name: "AND", op: opAND, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0x3A, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x3B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x3C, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x3D, name: "AND", op: opAND, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x3E, name: "ROL", op: opROL, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0x3F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x40, name: "RTI", op: opRTI, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x41, name: "EOR", op: opEOR, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0x42, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x43, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x44, name: "NOP", op: opNOP, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x45, name: "EOR", op: opEOR, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x46, name: "LSR", op: opLSR, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0x47, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x48, name: "PHA", op: opPHA, mode: modeImplied, size: 1, cycles: 3},
	{opcode: 0x49, name: "EOR", op: opEOR, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x4A, name: "LSR", op: opLSR, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x4B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x4C, name: "JMP", op: opJMP, mode: modeAbsolute, size: 3, cycles: 3},
	{opcode: 0x4D, name: "EOR", op: opEOR, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x4E, name: "LSR", op: opLSR, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0x4F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x50, name: "BVC", op: opBVC, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0x51, name: "EOR", op: opEOR, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0x52, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x53, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x54, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x55, name: "EOR", op: opEOR, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x56, name: "LSR", op: opLSR, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0x57, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x58, name: "CLI", op: opCLI, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x59, name: "EOR", op: opEOR, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0x5A, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x5B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x5C, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x5D, name: "EOR", op: opEOR, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x5E, name: "LSR", op: opLSR, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0x5F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x60, name: "RTS", op: opRTS, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x61, name: "ADC", op: opADC, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0x62, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x63, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x64, name: "NOP", op: opNOP, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x65, name: "ADC", op: opADC, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x66, name: "ROR", op: opROR, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0x67, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x68, name: "PLA", op: opPLA, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0x69, name: "ADC", op: opADC, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x6A, name: "ROR", op: opROR, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x6B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x6C, name: "JMP", op: opJMP, mode: modeIndirect, size: 3, cycles: 5},
	{opcode: 0x6D, name: "ADC", op: opADC, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x6E, name: "ROR", op: opROR, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0x6F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x70, name: "BVS", op: opBVS, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0x71, name: "ADC", op: opADC, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0x72, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x73, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0x74, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x75, name: "ADC", op: opADC, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x76, name: "ROR", op: opROR, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0x77, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x78, name: "SEI", op: opSEI, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x79, name: "ADC", op: opADC, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0x7A, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x7B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x7C, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x7D, name: "ADC", op: opADC, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0x7E, name: "ROR", op: opROR, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0x7F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0x80, name: "NOP", op: opNOP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x81, name: "STA", op: opSTA, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0x82, name: "NOP", op: opNOP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x83, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x84, name: "STY", op: opSTY, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x85, name: "STA", op: opSTA, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x86, name: "STX", op: opSTX, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0x87, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 3},
	{opcode: 0x88, name: "DEY", op: opDEY, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x89, name: "NOP", op: opNOP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0x8A, name: "TXA", op: opTXA, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x8B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x8C, name: "STY", op: opSTY, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x8D, name: "STA", op: opSTA, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x8E, name: "STX", op: opSTX, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0x8F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0x90, name: "BCC", op: opBCC, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0x91, name: "STA", op: opSTA, mode: modeIndirectY, size: 2, cycles: 6},
	{opcode: 0x92, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x93, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0x94, name: "STY", op: opSTY, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x95, name: "STA", op: opSTA, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0x96, name: "STX", op: opSTX, mode: modeZeroPageY, size: 2, cycles: 4},
	{opcode: 0x97, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0x98, name: "TYA", op: opTYA, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x99, name: "STA", op: opSTA, mode: modeAbsoluteY, size: 3, cycles: 5},
	{opcode: 0x9A, name: "TXS", op: opTXS, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0x9B, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x9C, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 5},
	{opcode: 0x9D, name: "STA", op: opSTA, mode: modeAbsoluteX, size: 3, cycles: 5},
	{opcode: 0x9E, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0x9F, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0xA0, name: "LDY", op: opLDY, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xA1, name: "LDA", op: opLDA, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0xA2, name: "LDX", op: opLDX, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xA3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0xA4, name: "LDY", op: opLDY, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xA5, name: "LDA", op: opLDA, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xA6, name: "LDX", op: opLDX, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xA7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 3},
	{opcode: 0xA8, name: "TAY", op: opTAY, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xA9, name: "LDA", op: opLDA, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xAA, name: "TAX", op: opTAX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xAB, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xAC, name: "LDY", op: opLDY, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xAD, name: "LDA", op: opLDA, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xAE, name: "LDX", op: opLDX, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xAF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0xB0, name: "BCS", op: opBCS, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0xB1, name: "LDA", op: opLDA, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0xB2, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xB3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0xB4, name: "LDY", op: opLDY, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xB5, name: "LDA", op: opLDA, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xB6, name: "LDX", op: opLDX, mode: modeZeroPageY, size: 2, cycles: 4},
	{opcode: 0xB7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0xB8, name: "CLV", op: opCLV, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xB9, name: "LDA", op: opLDA, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0xBA, name: "TSX", op: opTSX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xBB, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0xBC, name: "LDY", op: opLDY, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xBD, name: "LDA", op: opLDA, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xBE, name: "LDX", op: opLDX, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0xBF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 4},
	{opcode: 0xC0, name: "CPY", op: opCPY, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xC1, name: "CMP", op: opCMP, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0xC2, name: "NOP", op: opNOP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xC3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0xC4, name: "CPY", op: opCPY, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xC5, name: "CMP", op: opCMP, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xC6, name: "DEC", op: opDEC, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0xC7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0xC8, name: "INY", op: opINY, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xC9, name: "CMP", op: opCMP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xCA, name: "DEX", op: opDEX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xCB, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xCC, name: "CPY", op: opCPY, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xCD, name: "CMP", op: opCMP, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xCE, name: "DEC", op: opDEC, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0xCF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0xD0, name: "BNE", op: opBNE, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0xD1, name: "CMP", op: opCMP, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0xD2, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xD3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0xD4, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xD5, name: "CMP", op: opCMP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xD6, name: "DEC", op: opDEC, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0xD7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0xD8, name: "CLD", op: opCLD, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xD9, name: "CMP", op: opCMP, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0xDA, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xDB, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0xDC, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xDD, name: "CMP", op: opCMP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xDE, name: "DEC", op: opDEC, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0xDF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0xE0, name: "CPX", op: opCPX, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xE1, name: "SBC", op: opSBC, mode: modeIndirectX, size: 2, cycles: 6},
	{opcode: 0xE2, name: "NOP", op: opNOP, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xE3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0xE4, name: "CPX", op: opCPX, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xE5, name: "SBC", op: opSBC, mode: modeZeroPage, size: 2, cycles: 3},
	{opcode: 0xE6, name: "INC", op: opINC, mode: modeZeroPage, size: 2, cycles: 5},
	{opcode: 0xE7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 5},
	{opcode: 0xE8, name: "INX", op: opINX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xE9, name: "SBC", op: opSBC, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xEA, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xEB, name: "SBC", op: opSBC, mode: modeImmediate, size: 2, cycles: 2},
	{opcode: 0xEC, name: "CPX", op: opCPX, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xED, name: "SBC", op: opSBC, mode: modeAbsolute, size: 3, cycles: 4},
	{opcode: 0xEE, name: "INC", op: opINC, mode: modeAbsolute, size: 3, cycles: 6},
	{opcode: 0xEF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0xF0, name: "BEQ", op: opBEQ, mode: modeRelative, size: 2, cycles: 2},
	{opcode: 0xF1, name: "SBC", op: opSBC, mode: modeIndirectY, size: 2, cycles: 5},
	{opcode: 0xF2, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xF3, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 8},
	{opcode: 0xF4, name: "NOP", op: opNOP, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xF5, name: "SBC", op: opSBC, mode: modeZeroPageX, size: 2, cycles: 4},
	{opcode: 0xF6, name: "INC", op: opINC, mode: modeZeroPageX, size: 2, cycles: 6},
	{opcode: 0xF7, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 6},
	{opcode: 0xF8, name: "SED", op: opSED, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xF9, name: "SBC", op: opSBC, mode: modeAbsoluteY, size: 3, cycles: 4},
	{opcode: 0xFA, name: "NOP", op: opNOP, mode: modeImplied, size: 1, cycles: 2},
	{opcode: 0xFB, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
	{opcode: 0xFC, name: "NOP", op: opNOP, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xFD, name: "SBC", op: opSBC, mode: modeAbsoluteX, size: 3, cycles: 4},
	{opcode: 0xFE, name: "INC", op: opINC, mode: modeAbsoluteX, size: 3, cycles: 7},
	{opcode: 0xFF, name: "???", op: opXXX, mode: modeImplied, size: 1, cycles: 7},
}

// execute runs the operation of the current instruction. A negative result
// is a branch penalty added as is; 1 means the instruction takes the
// page-cross cycle reported by its addressing mode.
func (cpu *CPU) execute(in *CPUInstruction) int {
	switch in.op {
	case opADC:
		return cpu.adc(in.mode)
	case opAND:
		return cpu.and(in.mode)
	case opASL:
		return cpu.asl(in.mode)
	case opBCC:
		return cpu.bcc(in.mode)
	case opBCS:
		return cpu.bcs(in.mode)
	case opBEQ:
		return cpu.beq(in.mode)
	case opBIT:
		return cpu.bit(in.mode)
	case opBMI:
		return cpu.bmi(in.mode)
	case opBNE:
		return cpu.bne(in.mode)
	case opBPL:
		return cpu.bpl(in.mode)
	case opBRK:
		return cpu.brk(in.mode)
	case opBVC:
		return cpu.bvc(in.mode)
	case opBVS:
		return cpu.bvs(in.mode)
	case opCLC:
		return cpu.clc(in.mode)
	case opCLD:
		return cpu.cld(in.mode)
	case opCLI:
		return cpu.cli(in.mode)
	case opCLV:
		return cpu.clv(in.mode)
	case opCMP:
		return cpu.cmp(in.mode)
	case opCPX:
		return cpu.cpx(in.mode)
	case opCPY:
		return cpu.cpy(in.mode)
	case opDEC:
		return cpu.dec(in.mode)
	case opDEX:
		return cpu.dex(in.mode)
	case opDEY:
		return cpu.dey(in.mode)
	case opEOR:
		return cpu.eor(in.mode)
	case opINC:
		return cpu.inc(in.mode)
	case opINX:
		return cpu.inx(in.mode)
	case opINY:
		return cpu.iny(in.mode)
	case opJMP:
		return cpu.jmp(in.mode)
	case opJSR:
		return cpu.jsr(in.mode)
	case opLDA:
		return cpu.lda(in.mode)
	case opLDX:
		return cpu.ldx(in.mode)
	case opLDY:
		return cpu.ldy(in.mode)
	case opLSR:
		return cpu.lsr(in.mode)
	case opNOP:
		return cpu.nop(in.mode)
	case opORA:
		return cpu.ora(in.mode)
	case opPHA:
		return cpu.pha(in.mode)
	case opPHP:
		return cpu.php(in.mode)
	case opPLA:
		return cpu.pla(in.mode)
	case opPLP:
		return cpu.plp(in.mode)
	case opROL:
		return cpu.rol(in.mode)
	case opROR:
		return cpu.ror(in.mode)
	case opRTI:
		return cpu.rti(in.mode)
	case opRTS:
		return cpu.rts(in.mode)
	case opSBC:
		return cpu.sbc(in.mode)
	case opSEC:
		return cpu.sec(in.mode)
	case opSED:
		return cpu.sed(in.mode)
	case opSEI:
		return cpu.sei(in.mode)
	case opSTA:
		return cpu.sta(in.mode)
	case opSTX:
		return cpu.stx(in.mode)
	case opSTY:
		return cpu.sty(in.mode)
	case opTAX:
		return cpu.tax(in.mode)
	case opTAY:
		return cpu.tay(in.mode)
	case opTSX:
		return cpu.tsx(in.mode)
	case opTXA:
		return cpu.txa(in.mode)
	case opTXS:
		return cpu.txs(in.mode)
	case opTYA:
		return cpu.tya(in.mode)
	case opXXX:
		return cpu.xxx(in.mode)
	}
	return 0
}

// store writes a read-modify-write result back to A or memory
func (cpu *CPU) store(mode AddressingMode, value byte) {
	if mode == modeImplied {
		cpu.state.A = value
	} else {
		cpu.write(cpu.state.AddrAbs, value)
	}
}

func (cpu *CPU) add(value byte) {
	a := cpu.state.A
	sum := uint16(a) + uint16(value) + uint16(cpu.carry())
	result := byte(sum)
	cpu.setFlag(PSFlagsCarry, sum > 0xFF)
	cpu.setFlag(PSFlagsOverflow, (a^result)&(value^result)&0x80 != 0)
	cpu.state.A = result
	cpu.setZN(result)
}

func (cpu *CPU) compare(a, b byte) {
	cpu.setZN(a - b)
	cpu.setFlag(PSFlagsCarry, a >= b)
}

func (cpu *CPU) branch(taken bool) int {
	if !taken {
		return 0
	}
	s := &cpu.state
	s.AddrAbs = s.PC + s.AddrRel
	penalty := -1
	if pagesDiffer(s.AddrAbs, s.PC) {
		penalty = -2
	}
	s.PC = s.AddrAbs
	return penalty
}

// ADC - Add with Carry
func (cpu *CPU) adc(mode AddressingMode) int {
	cpu.add(cpu.fetch(mode))
	return 1
}

// AND - Logical AND
func (cpu *CPU) and(mode AddressingMode) int {
	cpu.state.A &= cpu.fetch(mode)
	cpu.setZN(cpu.state.A)
	return 1
}

// ASL - Arithmetic Shift Left
func (cpu *CPU) asl(mode AddressingMode) int {
	value := cpu.fetch(mode)
	cpu.setFlag(PSFlagsCarry, value&0x80 != 0)
	value <<= 1
	cpu.setZN(value)
	cpu.store(mode, value)
	return 0
}

// BCC - Branch if Carry Clear
func (cpu *CPU) bcc(mode AddressingMode) int {
	return cpu.branch(!cpu.CheckFlag(PSFlagsCarry))
}

// BCS - Branch if Carry Set
func (cpu *CPU) bcs(mode AddressingMode) int {
	return cpu.branch(cpu.CheckFlag(PSFlagsCarry))
}

// BEQ - Branch if Equal
func (cpu *CPU) beq(mode AddressingMode) int {
	return cpu.branch(cpu.CheckFlag(PSFlagsZero))
}

// BIT - Bit Test
func (cpu *CPU) bit(mode AddressingMode) int {
	value := cpu.fetch(mode)
	cpu.setZ(cpu.state.A & value)
	cpu.setFlag(PSFlagsOverflow, value&0x40 != 0)
	cpu.setN(value)
	return 0
}

// BMI - Branch if Minus
func (cpu *CPU) bmi(mode AddressingMode) int {
	return cpu.branch(cpu.CheckFlag(PSFlagsNegative))
}

// BNE - Branch if Not Equal
func (cpu *CPU) bne(mode AddressingMode) int {
	return cpu.branch(!cpu.CheckFlag(PSFlagsZero))
}

// BPL - Branch if Positive
func (cpu *CPU) bpl(mode AddressingMode) int {
	return cpu.branch(!cpu.CheckFlag(PSFlagsNegative))
}

// BRK - Force Interrupt
func (cpu *CPU) brk(mode AddressingMode) int {
	// skip the padding byte
	cpu.state.PC++
	cpu.push16(cpu.state.PC)
	cpu.push(cpu.state.P | PSFlagsBreak | PSFlagsReserved)
	cpu.SetFlags(PSFlagsInterrupt)
	cpu.state.PC = cpu.read16(IRQVector)
	return 0
}

// BVC - Branch if Overflow Clear
func (cpu *CPU) bvc(mode AddressingMode) int {
	return cpu.branch(!cpu.CheckFlag(PSFlagsOverflow))
}

// BVS - Branch if Overflow Set
func (cpu *CPU) bvs(mode AddressingMode) int {
	return cpu.branch(cpu.CheckFlag(PSFlagsOverflow))
}

// CLC - Clear Carry Flag
func (cpu *CPU) clc(mode AddressingMode) int {
	cpu.ClearFlags(PSFlagsCarry)
	return 0
}

// CLD - Clear Decimal Mode
func (cpu *CPU) cld(mode AddressingMode) int {
	cpu.ClearFlags(PSFlagsDecimal)
	return 0
}

// CLI - Clear Interrupt Disable
func (cpu *CPU) cli(mode AddressingMode) int {
	cpu.ClearFlags(PSFlagsInterrupt)
	return 0
}

// CLV - Clear Overflow Flag
func (cpu *CPU) clv(mode AddressingMode) int {
	cpu.ClearFlags(PSFlagsOverflow)
	return 0
}

// CMP - Compare
func (cpu *CPU) cmp(mode AddressingMode) int {
	cpu.compare(cpu.state.A, cpu.fetch(mode))
	return 1
}

// CPX - Compare X Register
func (cpu *CPU) cpx(mode AddressingMode) int {
	cpu.compare(cpu.state.X, cpu.fetch(mode))
	return 0
}

// CPY - Compare Y Register
func (cpu *CPU) cpy(mode AddressingMode) int {
	cpu.compare(cpu.state.Y, cpu.fetch(mode))
	return 0
}

// DEC - Decrement Memory
func (cpu *CPU) dec(mode AddressingMode) int {
	value := cpu.fetch(mode) - 1
	cpu.write(cpu.state.AddrAbs, value)
	cpu.setZN(value)
	return 0
}

// DEX - Decrement X Register
func (cpu *CPU) dex(mode AddressingMode) int {
	cpu.state.X--
	cpu.setZN(cpu.state.X)
	return 0
}

// DEY - Decrement Y Register
func (cpu *CPU) dey(mode AddressingMode) int {
	cpu.state.Y--
	cpu.setZN(cpu.state.Y)
	return 0
}

// EOR - Exclusive OR
func (cpu *CPU) eor(mode AddressingMode) int {
	cpu.state.A ^= cpu.fetch(mode)
	cpu.setZN(cpu.state.A)
	return 1
}

// INC - Increment Memory
func (cpu *CPU) inc(mode AddressingMode) int {
	value := cpu.fetch(mode) + 1
	cpu.write(cpu.state.AddrAbs, value)
	cpu.setZN(value)
	return 0
}

// INX - Increment X Register
func (cpu *CPU) inx(mode AddressingMode) int {
	cpu.state.X++
	cpu.setZN(cpu.state.X)
	return 0
}

// INY - Increment Y Register
func (cpu *CPU) iny(mode AddressingMode) int {
	cpu.state.Y++
	cpu.setZN(cpu.state.Y)
	return 0
}

// JMP - Jump
func (cpu *CPU) jmp(mode AddressingMode) int {
	cpu.state.PC = cpu.state.AddrAbs
	return 0
}

// JSR - Jump to Subroutine
func (cpu *CPU) jsr(mode AddressingMode) int {
	cpu.push16(cpu.state.PC - 1)
	cpu.state.PC = cpu.state.AddrAbs
	return 0
}

// LDA - Load Accumulator
func (cpu *CPU) lda(mode AddressingMode) int {
	cpu.state.A = cpu.fetch(mode)
	cpu.setZN(cpu.state.A)
	return 1
}

// LDX - Load X Register
func (cpu *CPU) ldx(mode AddressingMode) int {
	cpu.state.X = cpu.fetch(mode)
	cpu.setZN(cpu.state.X)
	return 1
}

// LDY - Load Y Register
func (cpu *CPU) ldy(mode AddressingMode) int {
	cpu.state.Y = cpu.fetch(mode)
	cpu.setZN(cpu.state.Y)
	return 1
}

// LSR - Logical Shift Right
func (cpu *CPU) lsr(mode AddressingMode) int {
	value := cpu.fetch(mode)
	cpu.setFlag(PSFlagsCarry, value&0x01 != 0)
	value >>= 1
	cpu.setZN(value)
	cpu.store(mode, value)
	return 0
}

// NOP - No Operation
func (cpu *CPU) nop(mode AddressingMode) int {
	switch cpu.state.Opcode {
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		return 1
	}
	return 0
}

// ORA - Logical Inclusive OR
func (cpu *CPU) ora(mode AddressingMode) int {
	cpu.state.A |= cpu.fetch(mode)
	cpu.setZN(cpu.state.A)
	return 1
}

// PHA - Push Accumulator
func (cpu *CPU) pha(mode AddressingMode) int {
	cpu.push(cpu.state.A)
	return 0
}

// PHP - Push Processor Status
func (cpu *CPU) php(mode AddressingMode) int {
	cpu.push(cpu.state.P | PSFlagsBreak | PSFlagsReserved)
	return 0
}

// PLA - Pull Accumulator
func (cpu *CPU) pla(mode AddressingMode) int {
	cpu.state.A = cpu.pull()
	cpu.setZN(cpu.state.A)
	return 0
}

// PLP - Pull Processor Status
func (cpu *CPU) plp(mode AddressingMode) int {
	cpu.SetAllFlags(cpu.pull()&^PSFlagsBreak | PSFlagsReserved)
	return 0
}

// ROL - Rotate Left
func (cpu *CPU) rol(mode AddressingMode) int {
	value := cpu.fetch(mode)
	c := cpu.carry()
	cpu.setFlag(PSFlagsCarry, value&0x80 != 0)
	value = value<<1 | c
	cpu.setZN(value)
	cpu.store(mode, value)
	return 0
}

// ROR - Rotate Right
func (cpu *CPU) ror(mode AddressingMode) int {
	value := cpu.fetch(mode)
	c := cpu.carry()
	cpu.setFlag(PSFlagsCarry, value&0x01 != 0)
	value = value>>1 | c<<7
	cpu.setZN(value)
	cpu.store(mode, value)
	return 0
}

// RTI - Return from Interrupt
func (cpu *CPU) rti(mode AddressingMode) int {
	cpu.SetAllFlags(cpu.pull() &^ (PSFlagsBreak | PSFlagsReserved))
	cpu.state.PC = cpu.pull16()
	return 0
}

// RTS - Return from Subroutine
func (cpu *CPU) rts(mode AddressingMode) int {
	cpu.state.PC = cpu.pull16() + 1
	return 0
}

// SBC - Subtract with Carry
func (cpu *CPU) sbc(mode AddressingMode) int {
	cpu.add(cpu.fetch(mode) ^ 0xFF)
	return 1
}

// SEC - Set Carry Flag
func (cpu *CPU) sec(mode AddressingMode) int {
	cpu.SetFlags(PSFlagsCarry)
	return 0
}

// SED - Set Decimal Flag
func (cpu *CPU) sed(mode AddressingMode) int {
	cpu.SetFlags(PSFlagsDecimal)
	return 0
}

// SEI - Set Interrupt Disable
func (cpu *CPU) sei(mode AddressingMode) int {
	cpu.SetFlags(PSFlagsInterrupt)
	return 0
}

// STA - Store Accumulator
func (cpu *CPU) sta(mode AddressingMode) int {
	cpu.write(cpu.state.AddrAbs, cpu.state.A)
	return 0
}

// STX - Store X Register
func (cpu *CPU) stx(mode AddressingMode) int {
	cpu.write(cpu.state.AddrAbs, cpu.state.X)
	return 0
}

// STY - Store Y Register
func (cpu *CPU) sty(mode AddressingMode) int {
	cpu.write(cpu.state.AddrAbs, cpu.state.Y)
	return 0
}

// TAX - Transfer Accumulator to X
func (cpu *CPU) tax(mode AddressingMode) int {
	cpu.state.X = cpu.state.A
	cpu.setZN(cpu.state.X)
	return 0
}

// TAY - Transfer Accumulator to Y
func (cpu *CPU) tay(mode AddressingMode) int {
	cpu.state.Y = cpu.state.A
	cpu.setZN(cpu.state.Y)
	return 0
}

// TSX - Transfer Stack Pointer to X
func (cpu *CPU) tsx(mode AddressingMode) int {
	cpu.state.X = cpu.state.SP
	cpu.setZN(cpu.state.X)
	return 0
}

// TXA - Transfer X to Accumulator
func (cpu *CPU) txa(mode AddressingMode) int {
	cpu.state.A = cpu.state.X
	cpu.setZN(cpu.state.A)
	return 0
}

// TXS - Transfer X to Stack Pointer
func (cpu *CPU) txs(mode AddressingMode) int {
	cpu.state.SP = cpu.state.X
	return 0
}

// TYA - Transfer Y to Accumulator
func (cpu *CPU) tya(mode AddressingMode) int {
	cpu.state.A = cpu.state.Y
	cpu.setZN(cpu.state.A)
	return 0
}

// xxx halts the CPU on an undefined opcode.
func (cpu *CPU) xxx(mode AddressingMode) int {
	cpu.fault = &CPUError{
		Kind:   IllegalOpcode,
		PC:     cpu.state.PC - 1,
		Opcode: cpu.state.Opcode,
		SP:     cpu.state.SP,
	}
	return 0
}
