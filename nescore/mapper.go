// refs: github.com/fogleman/nes
package nescore

import (
	"fmt"
)

// Mapper translates bus addresses into offsets within the cartridge
// memories. It never owns PRG or CHR data itself.
type Mapper interface {
	// Address range: $6000-$7FFF. Offset into add-on RAM or NoAddRAM.
	ReadAddRAM(address uint16) uint32
	// Address range: $6000-$7FFF
	WriteAddRAM(address uint16, value byte) uint32
	// Address range: $8000-$FFFF. Offset into PRG-ROM.
	ReadPRG(address uint16) uint32
	// Address range: $8000-$FFFF. Register writes.
	WritePRG(address uint16, value byte)
	// Address range: $0000-$1FFF. Offset into CHR-ROM or CHR-RAM.
	ReadCHR(address uint16) uint32
	// Address range: $0000-$1FFF
	WriteCHR(address uint16, value byte) uint32

	// Scanline is called by the PPU once per rendered scanline.
	Scanline()
	IRQState() bool
	IRQClear()

	MirroringType() MirroringType
	Base() *MapperBase

	SaveState(e *StateEncoder)
	LoadState(d *StateDecoder)
}

func NewMapper(cartridge *Cartridge) (Mapper, error) {
	switch cartridge.MapperID {
	case 0:
		return NewMapper000(cartridge), nil
	case 1:
		return NewMapper001(cartridge), nil
	case 2:
		return NewMapper002(cartridge), nil
	case 3:
		return NewMapper003(cartridge), nil
	case 4:
		return NewMapper004(cartridge), nil
	case 66:
		return NewMapper066(cartridge), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, cartridge.MapperID)
}
