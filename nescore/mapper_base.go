// refs: github.com/libretro/Mesen
package nescore

type MirroringType byte

const (
	MIRROR_HORIZONTAL MirroringType = iota
	MIRROR_VERTICAL
	MIRROR_SINGLE_SCREEN_A
	MIRROR_SINGLE_SCREEN_B
)

func (m MirroringType) String() string {
	switch m {
	case MIRROR_HORIZONTAL:
		return "horizontal"
	case MIRROR_VERTICAL:
		return "vertical"
	case MIRROR_SINGLE_SCREEN_A:
		return "single-screen A"
	case MIRROR_SINGLE_SCREEN_B:
		return "single-screen B"
	}
	return "unknown"
}

// nameTable returns which of the two 1 KiB tables serves a $2000-$2FFF address.
func (m MirroringType) nameTable(address uint16) int {
	address &= 0x0FFF
	switch m {
	case MIRROR_HORIZONTAL:
		return int(address>>11) & 1
	case MIRROR_VERTICAL:
		return int(address>>10) & 1
	case MIRROR_SINGLE_SCREEN_B:
		return 1
	}
	return 0
}

const (
	PRG_BLOCK_SIZE = 0x4000
	CHR_BLOCK_SIZE = 0x2000
	ADD_RAM_SIZE   = 0x2000
)

// NoAddRAM is returned by ReadAddRAM/WriteAddRAM on boards without RAM at $6000.
const NoAddRAM uint32 = 0xFFFF

// MapperBase holds what every board shares: bank counts, the current
// mirroring, the $6000-$7FFF RAM and CHR-RAM when the cartridge has no CHR-ROM.
type MapperBase struct {
	mapperID      byte
	numPRG        byte
	numCHR        byte
	mirroringType MirroringType
	addRAM        []byte
	chrRAM        []byte
}

func NewMapperBase(cartridge *Cartridge) *MapperBase {
	b := &MapperBase{
		mapperID:      cartridge.MapperID,
		numPRG:        cartridge.NumPRG,
		numCHR:        cartridge.NumCHR,
		mirroringType: cartridge.Mirroring,
		addRAM:        make([]byte, ADD_RAM_SIZE),
	}
	if b.numCHR == 0 {
		b.chrRAM = make([]byte, CHR_BLOCK_SIZE)
	}
	return b
}

func (b *MapperBase) Base() *MapperBase {
	return b
}

func (b *MapperBase) MapperID() byte {
	return b.mapperID
}

func (b *MapperBase) MirroringType() MirroringType {
	return b.mirroringType
}

func (b *MapperBase) HasCHRRAM() bool {
	return b.chrRAM != nil
}

func (b *MapperBase) AddRAM() []byte {
	return b.addRAM
}

// bindAddRAM swaps the backing store of add-on RAM, e.g. for a mapped battery file.
func (b *MapperBase) bindAddRAM(mem []byte) {
	b.addRAM = mem[:ADD_RAM_SIZE]
}

func (b *MapperBase) ReadAddRAM(address uint16) uint32 {
	return NoAddRAM
}

func (b *MapperBase) WriteAddRAM(address uint16, value byte) uint32 {
	return NoAddRAM
}

func (b *MapperBase) Scanline() {}

func (b *MapperBase) IRQState() bool {
	return false
}

func (b *MapperBase) IRQClear() {}

func (b *MapperBase) saveBase(e *StateEncoder) {
	e.Write(byte(b.mirroringType))
	e.Write(b.addRAM)
	if b.chrRAM != nil {
		e.Write(b.chrRAM)
	}
}

func (b *MapperBase) loadBase(d *StateDecoder) {
	mirroring := MirroringType(d.Byte())
	if mirroring > MIRROR_SINGLE_SCREEN_B {
		d.Fail(ErrCorruptState)
	}
	b.mirroringType = mirroring
	d.Read(b.addRAM)
	if b.chrRAM != nil {
		d.Read(b.chrRAM)
	}
}
