package nescore

// loopyRegister is the 15-bit VRAM address / scroll register:
// yyy NN YYYYY XXXXX (fine Y, nametable, coarse Y, coarse X).
type loopyRegister uint16

func (r loopyRegister) coarseX() uint16 { return uint16(r) & 0x1F }
func (r loopyRegister) coarseY() uint16 { return (uint16(r) >> 5) & 0x1F }
func (r loopyRegister) nameTableX() uint16 { return (uint16(r) >> 10) & 0x01 }
func (r loopyRegister) nameTableY() uint16 { return (uint16(r) >> 11) & 0x01 }
func (r loopyRegister) fineY() uint16 { return (uint16(r) >> 12) & 0x07 }

func (r *loopyRegister) set(shift uint, mask uint16, value uint16) {
	*r = loopyRegister(uint16(*r)&^(mask<<shift) | (value&mask)<<shift)
}

func (r *loopyRegister) setCoarseX(v uint16) { r.set(0, 0x1F, v) }
func (r *loopyRegister) setCoarseY(v uint16) { r.set(5, 0x1F, v) }
func (r *loopyRegister) setNameTableX(v uint16) { r.set(10, 0x01, v) }
func (r *loopyRegister) setNameTableY(v uint16) { r.set(11, 0x01, v) }
func (r *loopyRegister) setFineY(v uint16) { r.set(12, 0x07, v) }

// $2000 PPUCTRL
type ppuCtrl byte

func (c ppuCtrl) nameTableX() uint16 { return uint16(c) & 0x01 }
func (c ppuCtrl) nameTableY() uint16 { return uint16(c>>1) & 0x01 }
func (c ppuCtrl) increment() uint16 {
	if c&0x04 != 0 {
		return 32
	}
	return 1
}
func (c ppuCtrl) spritePatternTable() uint16 { return uint16(c>>3) & 0x01 }
func (c ppuCtrl) backgroundPatternTable() uint16 { return uint16(c>>4) & 0x01 }
func (c ppuCtrl) spriteHeight() int {
	if c&0x20 != 0 {
		return 16
	}
	return 8
}
func (c ppuCtrl) nmiEnabled() bool { return c&0x80 != 0 }

// $2001 PPUMASK
type ppuMask byte

func (m ppuMask) grayscale() bool { return m&0x01 != 0 }
func (m ppuMask) backgroundLeft() bool { return m&0x02 != 0 }
func (m ppuMask) spritesLeft() bool { return m&0x04 != 0 }
func (m ppuMask) backgroundEnabled() bool { return m&0x08 != 0 }
func (m ppuMask) spritesEnabled() bool { return m&0x10 != 0 }
func (m ppuMask) renderingEnabled() bool { return m&0x18 != 0 }

// $2002 PPUSTATUS
type ppuStatus byte

const (
	statusSpriteOverflow ppuStatus = 0x20
	statusSprite0Hit     ppuStatus = 0x40
	statusVerticalBlank  ppuStatus = 0x80
)

func (s *ppuStatus) set(flag ppuStatus, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

func (s ppuStatus) has(flag ppuStatus) bool { return s&flag != 0 }

// PPURegisters is a debugger snapshot of the CPU-visible PPU state.
type PPURegisters struct {
	Control  byte
	Mask     byte
	Status   byte
	OAMAddr  byte
	V        uint16
	T        uint16
	FineX    byte
	Latch    bool
	Scanline int
	Cycle    int
	Frame    uint64
}
