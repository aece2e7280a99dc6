// refs: github.com/fogleman/nes
package nescore

const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a standard joypad: a parallel-in, serial-out shift register.
type Controller struct {
	buttons [8]bool
	latch   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = buttons
}

func (c *Controller) Buttons() [8]bool {
	return c.buttons
}

func (c *Controller) state() byte {
	var value byte
	for i, pressed := range c.buttons {
		if pressed {
			value |= 1 << uint(i)
		}
	}
	return value
}

// Read returns the next button bit on D0; D6 reflects open bus.
func (c *Controller) Read() byte {
	if c.strobe&1 != 0 {
		return 0x40 | c.state()&1
	}
	bit := c.latch & 1
	// official pads return 1 after the eighth read
	c.latch = c.latch>>1 | 0x80
	return 0x40 | bit
}

// Peek returns what Read would return without shifting.
func (c *Controller) Peek() byte {
	if c.strobe&1 != 0 {
		return 0x40 | c.state()&1
	}
	return 0x40 | c.latch&1
}

func (c *Controller) Write(value byte) {
	if c.strobe&1 != 0 && value&1 == 0 {
		c.latch = c.state()
	}
	c.strobe = value & 1
}

func (c *Controller) SaveState(e *StateEncoder) {
	e.Write(c.buttons[:])
	e.Write(c.latch)
	e.Write(c.strobe)
}

func (c *Controller) LoadState(d *StateDecoder) {
	d.Read(c.buttons[:])
	c.latch = d.Byte()
	c.strobe = d.Byte() & 1
}
