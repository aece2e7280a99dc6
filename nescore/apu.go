package nescore

// APU is the bus-visible surface of the audio unit. Synthesis lives
// outside the core; an implementation only sees register traffic.
type APU interface {
	ReadRegister(address uint16) byte
	WriteRegister(address uint16, value byte)
	// EndFrame is called once per completed video frame.
	EndFrame()
	Reset()
	SaveState(e *StateEncoder)
	LoadState(d *StateDecoder)
}

// RegisterAPU records the last value written to each register at $4000-$4017
// and produces no sound.
type RegisterAPU struct {
	registers [0x18]byte
	frames    uint64
}

func NewRegisterAPU() *RegisterAPU {
	return &RegisterAPU{}
}

func (apu *RegisterAPU) ReadRegister(address uint16) byte {
	// no length counters run, so every channel reads as silent
	return 0
}

func (apu *RegisterAPU) WriteRegister(address uint16, value byte) {
	if address < 0x4000 || address > 0x4017 {
		return
	}
	apu.registers[address-0x4000] = value
}

// Register returns the last value written to address.
func (apu *RegisterAPU) Register(address uint16) byte {
	if address < 0x4000 || address > 0x4017 {
		return 0
	}
	return apu.registers[address-0x4000]
}

func (apu *RegisterAPU) EndFrame() {
	apu.frames++
}

func (apu *RegisterAPU) Frames() uint64 {
	return apu.frames
}

func (apu *RegisterAPU) Reset() {
	apu.registers = [0x18]byte{}
}

func (apu *RegisterAPU) SaveState(e *StateEncoder) {
	e.Write(apu.registers[:])
}

func (apu *RegisterAPU) LoadState(d *StateDecoder) {
	d.Read(apu.registers[:])
}
