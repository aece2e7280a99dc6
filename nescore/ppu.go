// refs: github.com/fogleman/nes
package nescore

import (
	"image"
)

const (
	SCREEN_WIDTH  = 256
	SCREEN_HEIGHT = 240
	PIXEL_COUNT   = SCREEN_WIDTH * SCREEN_HEIGHT
)

type spriteEntry struct {
	y         byte
	id        byte
	attribute byte
	x         byte
}

type PPU struct {
	cartridge *Cartridge

	nameTables [2][0x400]byte
	paletteRAM [32]byte
	oam        [256]byte
	oamAddr    byte

	ctrl   ppuCtrl
	mask   ppuMask
	status ppuStatus

	v          loopyRegister // current VRAM address
	t          loopyRegister // temporary VRAM address
	fineX      byte
	latch      bool
	dataBuffer byte

	bgNextID     byte
	bgNextAttrib byte
	bgNextLo     byte
	bgNextHi     byte
	bgShiftLo    uint16
	bgShiftHi    uint16
	bgAttribLo   uint16
	bgAttribHi   uint16

	sprites          [8]spriteEntry
	spriteCount      int
	spriteShiftLo    [8]byte
	spriteShiftHi    [8]byte
	sprite0Possible  bool
	sprite0Rendering bool

	ScanLine      int // -1..260, -1=pre-render, 0-239=visible, 241-260=vblank
	Cycle         int // 0-340
	Frame         uint64
	oddFrame      bool
	FrameComplete bool
	NMI           bool

	front *image.RGBA
	back  *image.RGBA
}

func NewPPU() *PPU {
	ppu := &PPU{
		front: image.NewRGBA(image.Rect(0, 0, SCREEN_WIDTH, SCREEN_HEIGHT)),
		back:  image.NewRGBA(image.Rect(0, 0, SCREEN_WIDTH, SCREEN_HEIGHT)),
	}
	ppu.Reset()
	return ppu
}

func (ppu *PPU) ConnectCartridge(cartridge *Cartridge) {
	ppu.cartridge = cartridge
}

func (ppu *PPU) Reset() {
	ppu.FrameComplete = false
	ppu.NMI = false
	ppu.fineX = 0
	ppu.latch = false
	ppu.dataBuffer = 0
	ppu.ScanLine = 0
	ppu.Cycle = 0
	ppu.bgNextID = 0
	ppu.bgNextAttrib = 0
	ppu.bgNextLo = 0
	ppu.bgNextHi = 0
	ppu.bgShiftLo = 0
	ppu.bgShiftHi = 0
	ppu.bgAttribLo = 0
	ppu.bgAttribHi = 0
	ppu.status = 0
	ppu.mask = 0
	ppu.ctrl = 0
	ppu.v = 0
	ppu.t = 0
	ppu.oddFrame = false

	ppu.nameTables = [2][0x400]byte{}
	ppu.paletteRAM = [32]byte{}
	blankFrame(ppu.front)
	blankFrame(ppu.back)
}

// blankFrame fills img with opaque black.
func blankFrame(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
		if i&3 == 3 {
			img.Pix[i] = 0xFF
		}
	}
}

// Buffer returns the last completed frame.
func (ppu *PPU) Buffer() *image.RGBA {
	return ppu.front
}

func (ppu *PPU) Registers() PPURegisters {
	return PPURegisters{
		Control:  byte(ppu.ctrl),
		Mask:     byte(ppu.mask),
		Status:   byte(ppu.status),
		OAMAddr:  ppu.oamAddr,
		V:        uint16(ppu.v),
		T:        uint16(ppu.t),
		FineX:    ppu.fineX,
		Latch:    ppu.latch,
		Scanline: ppu.ScanLine,
		Cycle:    ppu.Cycle,
		Frame:    ppu.Frame,
	}
}

// ReadRegister serves CPU reads of $2000-$2007.
func (ppu *PPU) ReadRegister(address uint16) byte {
	switch address & 0x07 {
	case 0x02:
		data := byte(ppu.status)&0xE0 | ppu.dataBuffer&0x1F
		ppu.status.set(statusVerticalBlank, false)
		ppu.latch = false
		return data
	case 0x04:
		return ppu.oam[ppu.oamAddr]
	case 0x07:
		data := ppu.dataBuffer
		ppu.dataBuffer = ppu.read(uint16(ppu.v))
		// palette reads are not delayed
		if uint16(ppu.v)&0x3FFF >= 0x3F00 {
			data = ppu.dataBuffer
		}
		ppu.v = loopyRegister((uint16(ppu.v) + ppu.ctrl.increment()) & 0x7FFF)
		return data
	}
	logMisaccess(accessPPUWriteOnly, address)
	return 0
}

// PeekRegister returns what ReadRegister would without clearing flags or moving the address.
func (ppu *PPU) PeekRegister(address uint16) byte {
	switch address & 0x07 {
	case 0x02:
		return byte(ppu.status)&0xE0 | ppu.dataBuffer&0x1F
	case 0x04:
		return ppu.oam[ppu.oamAddr]
	case 0x07:
		if uint16(ppu.v)&0x3FFF >= 0x3F00 {
			return ppu.read(uint16(ppu.v))
		}
		return ppu.dataBuffer
	}
	return 0
}

// WriteRegister serves CPU writes of $2000-$2007.
func (ppu *PPU) WriteRegister(address uint16, value byte) {
	switch address & 0x07 {
	case 0x00:
		ppu.ctrl = ppuCtrl(value)
		ppu.t.setNameTableX(ppu.ctrl.nameTableX())
		ppu.t.setNameTableY(ppu.ctrl.nameTableY())
	case 0x01:
		ppu.mask = ppuMask(value)
	case 0x02:
		logMisaccess(accessPPUReadOnly, address)
	case 0x03:
		ppu.oamAddr = value
	case 0x04:
		ppu.oam[ppu.oamAddr] = value
		ppu.oamAddr++
	case 0x05:
		if !ppu.latch {
			ppu.fineX = value & 0x07
			ppu.t.setCoarseX(uint16(value >> 3))
		} else {
			ppu.t.setFineY(uint16(value & 0x07))
			ppu.t.setCoarseY(uint16(value >> 3))
		}
		ppu.latch = !ppu.latch
	case 0x06:
		if !ppu.latch {
			ppu.t = loopyRegister(uint16(value&0x3F)<<8 | uint16(ppu.t)&0x00FF)
		} else {
			ppu.t = loopyRegister(uint16(ppu.t)&0xFF00 | uint16(value))
			ppu.v = ppu.t
		}
		ppu.latch = !ppu.latch
	case 0x07:
		ppu.write(uint16(ppu.v), value)
		ppu.v = loopyRegister((uint16(ppu.v) + ppu.ctrl.increment()) & 0x7FFF)
	}
}

// WriteOAM is the DMA path into sprite memory.
func (ppu *PPU) WriteOAM(address byte, value byte) {
	ppu.oam[address] = value
}

func (ppu *PPU) OAM() []byte {
	return ppu.oam[:]
}

func paletteIndex(address uint16) uint16 {
	address &= 0x1F
	switch address {
	case 0x10, 0x14, 0x18, 0x1C:
		address &= 0x0F
	}
	return address
}

func (ppu *PPU) ReadPaletteRAM(address uint16) byte {
	return ppu.paletteRAM[paletteIndex(address)]
}

func (ppu *PPU) WritePaletteRAM(address uint16, value byte) {
	ppu.paletteRAM[paletteIndex(address)] = value
}

func (ppu *PPU) mirroring() MirroringType {
	if ppu.cartridge == nil {
		return MIRROR_HORIZONTAL
	}
	return ppu.cartridge.Mapper.MirroringType()
}

// read serves the PPU address space $0000-$3FFF.
func (ppu *PPU) read(address uint16) byte {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if ppu.cartridge == nil {
			return 0
		}
		return ppu.cartridge.PPURead(address)
	case address < 0x3F00:
		return ppu.nameTables[ppu.mirroring().nameTable(address)][address&0x03FF]
	}
	value := ppu.ReadPaletteRAM(address)
	if ppu.mask.grayscale() {
		return value & 0x30
	}
	return value & 0x3F
}

func (ppu *PPU) write(address uint16, value byte) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if ppu.cartridge != nil {
			ppu.cartridge.PPUWrite(address, value)
		}
	case address < 0x3F00:
		ppu.nameTables[ppu.mirroring().nameTable(address)][address&0x03FF] = value
	default:
		ppu.WritePaletteRAM(address, value)
	}
}

func (ppu *PPU) incrementScrollX() {
	if !ppu.mask.renderingEnabled() {
		return
	}
	if ppu.v.coarseX() == 31 {
		ppu.v.setCoarseX(0)
		ppu.v.setNameTableX(^ppu.v.nameTableX())
	} else {
		ppu.v.setCoarseX(ppu.v.coarseX() + 1)
	}
}

func (ppu *PPU) incrementScrollY() {
	if !ppu.mask.renderingEnabled() {
		return
	}
	if ppu.v.fineY() < 7 {
		ppu.v.setFineY(ppu.v.fineY() + 1)
		return
	}
	ppu.v.setFineY(0)
	switch ppu.v.coarseY() {
	case 29:
		ppu.v.setCoarseY(0)
		ppu.v.setNameTableY(^ppu.v.nameTableY())
	case 31:
		// attribute rows wrap without switching nametables
		ppu.v.setCoarseY(0)
	default:
		ppu.v.setCoarseY(ppu.v.coarseY() + 1)
	}
}

func (ppu *PPU) transferAddressX() {
	if !ppu.mask.renderingEnabled() {
		return
	}
	ppu.v.setNameTableX(ppu.t.nameTableX())
	ppu.v.setCoarseX(ppu.t.coarseX())
}

func (ppu *PPU) transferAddressY() {
	if !ppu.mask.renderingEnabled() {
		return
	}
	ppu.v.setFineY(ppu.t.fineY())
	ppu.v.setNameTableY(ppu.t.nameTableY())
	ppu.v.setCoarseY(ppu.t.coarseY())
}

func (ppu *PPU) loadBackgroundShifters() {
	ppu.bgShiftLo = ppu.bgShiftLo&0xFF00 | uint16(ppu.bgNextLo)
	ppu.bgShiftHi = ppu.bgShiftHi&0xFF00 | uint16(ppu.bgNextHi)
	ppu.bgAttribLo = ppu.bgAttribLo & 0xFF00
	if ppu.bgNextAttrib&0x01 != 0 {
		ppu.bgAttribLo |= 0x00FF
	}
	ppu.bgAttribHi = ppu.bgAttribHi & 0xFF00
	if ppu.bgNextAttrib&0x02 != 0 {
		ppu.bgAttribHi |= 0x00FF
	}
}

func (ppu *PPU) updateShifters() {
	if ppu.mask.backgroundEnabled() {
		ppu.bgShiftLo <<= 1
		ppu.bgShiftHi <<= 1
		ppu.bgAttribLo <<= 1
		ppu.bgAttribHi <<= 1
	}

	if ppu.mask.spritesEnabled() && ppu.Cycle >= 1 && ppu.Cycle < 258 {
		for i := 0; i < ppu.spriteCount; i++ {
			if ppu.sprites[i].x > 0 {
				ppu.sprites[i].x--
			} else {
				ppu.spriteShiftLo[i] <<= 1
				ppu.spriteShiftHi[i] <<= 1
			}
		}
	}
}

func (ppu *PPU) fetchBackground() {
	ppu.updateShifters()

	switch (ppu.Cycle - 1) % 8 {
	case 0:
		ppu.loadBackgroundShifters()
		ppu.bgNextID = ppu.read(0x2000 | uint16(ppu.v)&0x0FFF)
	case 2:
		v := ppu.v
		attrib := ppu.read(0x23C0 | v.nameTableY()<<11 | v.nameTableX()<<10 |
			(v.coarseY()>>2)<<3 | v.coarseX()>>2)
		if v.coarseY()&0x02 != 0 {
			attrib >>= 4
		}
		if v.coarseX()&0x02 != 0 {
			attrib >>= 2
		}
		ppu.bgNextAttrib = attrib & 0x03
	case 4:
		ppu.bgNextLo = ppu.read(ppu.backgroundPatternAddr())
	case 6:
		ppu.bgNextHi = ppu.read(ppu.backgroundPatternAddr() + 8)
	case 7:
		ppu.incrementScrollX()
	}
}

func (ppu *PPU) backgroundPatternAddr() uint16 {
	return ppu.ctrl.backgroundPatternTable()<<12 + uint16(ppu.bgNextID)<<4 + ppu.v.fineY()
}

// evaluateSprites picks the sprites of the next scanline.
func (ppu *PPU) evaluateSprites() {
	for i := range ppu.sprites {
		ppu.sprites[i] = spriteEntry{0xFF, 0xFF, 0xFF, 0xFF}
	}
	ppu.spriteCount = 0
	ppu.spriteShiftLo = [8]byte{}
	ppu.spriteShiftHi = [8]byte{}
	ppu.sprite0Possible = false

	height := ppu.ctrl.spriteHeight()
	overflow := false
	for n := 0; n < 64; n++ {
		entry := ppu.oam[n*4 : n*4+4]
		diff := ppu.ScanLine - int(entry[0])
		if diff < 0 || diff >= height {
			continue
		}
		if ppu.spriteCount == 8 {
			overflow = true
			break
		}
		if n == 0 {
			ppu.sprite0Possible = true
		}
		ppu.sprites[ppu.spriteCount] = spriteEntry{entry[0], entry[1], entry[2], entry[3]}
		ppu.spriteCount++
	}
	if overflow {
		ppu.status.set(statusSpriteOverflow, true)
	}
}

// fetchSprites loads the pattern shifters of the selected sprites.
func (ppu *PPU) fetchSprites() {
	for i := 0; i < ppu.spriteCount; i++ {
		s := ppu.sprites[i]
		row := uint16(ppu.ScanLine - int(s.y))
		flipV := s.attribute&0x80 != 0

		var addr uint16
		if ppu.ctrl.spriteHeight() == 8 {
			if flipV {
				row = 7 - row
			}
			addr = ppu.ctrl.spritePatternTable()<<12 | uint16(s.id)<<4 | row&0x07
		} else {
			tile := uint16(s.id & 0xFE)
			if (row < 8) == flipV {
				tile++
			}
			if flipV {
				row = 7 - row
			}
			addr = uint16(s.id&0x01)<<12 | tile<<4 | row&0x07
		}

		lo := ppu.read(addr)
		hi := ppu.read(addr + 8)
		if s.attribute&0x40 != 0 {
			lo = flipByte(lo)
			hi = flipByte(hi)
		}
		ppu.spriteShiftLo[i] = lo
		ppu.spriteShiftHi[i] = hi
	}
}

func flipByte(b byte) byte {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

func (ppu *PPU) backgroundPixel() (pixel, palette byte) {
	if !ppu.mask.backgroundEnabled() {
		return 0, 0
	}
	if !ppu.mask.backgroundLeft() && ppu.Cycle < 9 {
		return 0, 0
	}
	mux := uint16(0x8000) >> ppu.fineX
	if ppu.bgShiftLo&mux != 0 {
		pixel |= 0x01
	}
	if ppu.bgShiftHi&mux != 0 {
		pixel |= 0x02
	}
	if ppu.bgAttribLo&mux != 0 {
		palette |= 0x01
	}
	if ppu.bgAttribHi&mux != 0 {
		palette |= 0x02
	}
	return pixel, palette
}

func (ppu *PPU) spritePixel() (pixel, palette byte, front bool) {
	if !ppu.mask.spritesEnabled() {
		return 0, 0, false
	}
	if !ppu.mask.spritesLeft() && ppu.Cycle < 9 {
		return 0, 0, false
	}
	ppu.sprite0Rendering = false
	for i := 0; i < ppu.spriteCount; i++ {
		s := &ppu.sprites[i]
		if s.x != 0 {
			continue
		}
		pixel = (ppu.spriteShiftHi[i]>>7)<<1 | ppu.spriteShiftLo[i]>>7
		palette = s.attribute&0x03 + 0x04
		front = s.attribute&0x20 == 0
		if pixel != 0 {
			if i == 0 {
				ppu.sprite0Rendering = true
			}
			break
		}
	}
	return pixel, palette, front
}

func (ppu *PPU) renderPixel() {
	bgPixel, bgPalette := ppu.backgroundPixel()
	fgPixel, fgPalette, fgFront := ppu.spritePixel()

	var pixel, palette byte
	switch {
	case bgPixel == 0 && fgPixel == 0:
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgFront {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}
		if ppu.sprite0Possible && ppu.sprite0Rendering &&
			ppu.mask.backgroundEnabled() && ppu.mask.spritesEnabled() {
			first := 1
			if !ppu.mask.backgroundLeft() && !ppu.mask.spritesLeft() {
				first = 9
			}
			if ppu.Cycle >= first && ppu.Cycle < 258 {
				ppu.status.set(statusSprite0Hit, true)
			}
		}
	}

	x, y := ppu.Cycle-1, ppu.ScanLine
	if x < 0 || x >= SCREEN_WIDTH || y < 0 || y >= SCREEN_HEIGHT {
		return
	}
	c := Palette[ppu.read(0x3F00+uint16(palette)<<2+uint16(pixel))&0x3F]
	i := ppu.back.PixOffset(x, y)
	ppu.back.Pix[i+0] = c.R
	ppu.back.Pix[i+1] = c.G
	ppu.back.Pix[i+2] = c.B
	ppu.back.Pix[i+3] = 0xFF
}

// Clock advances the PPU by one dot.
func (ppu *PPU) Clock() {
	if ppu.ScanLine >= -1 && ppu.ScanLine < 240 {
		if ppu.ScanLine == 0 && ppu.Cycle == 0 && ppu.oddFrame && ppu.mask.renderingEnabled() {
			// odd frame skip
			ppu.Cycle = 1
		}

		if ppu.ScanLine == -1 && ppu.Cycle == 1 {
			ppu.status.set(statusVerticalBlank, false)
			ppu.status.set(statusSpriteOverflow, false)
			ppu.status.set(statusSprite0Hit, false)
			ppu.spriteShiftLo = [8]byte{}
			ppu.spriteShiftHi = [8]byte{}
		}

		if (ppu.Cycle >= 2 && ppu.Cycle < 258) || (ppu.Cycle >= 321 && ppu.Cycle < 338) {
			ppu.fetchBackground()
		}

		if ppu.Cycle == 256 {
			ppu.incrementScrollY()
		}

		if ppu.Cycle == 257 {
			ppu.loadBackgroundShifters()
			ppu.transferAddressX()
		}

		// unused nametable fetches
		if ppu.Cycle == 338 || ppu.Cycle == 340 {
			ppu.bgNextID = ppu.read(0x2000 | uint16(ppu.v)&0x0FFF)
		}

		if ppu.ScanLine == -1 && ppu.Cycle >= 280 && ppu.Cycle < 305 {
			ppu.transferAddressY()
		}

		if ppu.Cycle == 257 && ppu.ScanLine >= 0 {
			ppu.evaluateSprites()
		}

		if ppu.Cycle == 340 {
			ppu.fetchSprites()
		}
	}

	if ppu.ScanLine == 241 && ppu.Cycle == 1 {
		ppu.status.set(statusVerticalBlank, true)
		if ppu.ctrl.nmiEnabled() {
			ppu.NMI = true
		}
	}

	ppu.renderPixel()

	ppu.Cycle++
	if ppu.mask.renderingEnabled() && ppu.Cycle == 260 && ppu.ScanLine < 240 && ppu.cartridge != nil {
		ppu.cartridge.Mapper.Scanline()
	}

	if ppu.Cycle >= 341 {
		ppu.Cycle = 0
		ppu.ScanLine++
		if ppu.ScanLine >= 261 {
			ppu.ScanLine = -1
			ppu.FrameComplete = true
			ppu.oddFrame = !ppu.oddFrame
			ppu.Frame++
			ppu.swapBuffer()
		}
	}
}

func (ppu *PPU) swapBuffer() {
	ppu.front, ppu.back = ppu.back, ppu.front
}
