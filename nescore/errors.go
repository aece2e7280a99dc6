package nescore

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNESFile    = errors.New("invalid .nes file")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
	ErrStateMismatch     = errors.New("save state belongs to a different cartridge")
	ErrCorruptState      = errors.New("corrupt save state")
	ErrNoCartridge       = errors.New("no cartridge inserted")
)

type CPUErrorKind byte

const (
	IllegalOpcode CPUErrorKind = iota
	StackOverflow
)

func (k CPUErrorKind) String() string {
	switch k {
	case IllegalOpcode:
		return "illegal opcode"
	case StackOverflow:
		return "stack overflow"
	}
	return "unknown fault"
}

// CPUError is a fatal CPU fault. The CPU stays halted until Reset.
type CPUError struct {
	Kind   CPUErrorKind
	PC     uint16 // address of the faulting instruction
	Opcode byte
	SP     byte
}

func (e *CPUError) Error() string {
	return fmt.Sprintf("cpu: %s (opcode $%02X at $%04X, SP=$%02X)", e.Kind, e.Opcode, e.PC, e.SP)
}
