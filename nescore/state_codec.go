package nescore

import (
	"encoding/binary"
	"io"
)

// StateEncoder writes little-endian fields and keeps the first error.
type StateEncoder struct {
	w   io.Writer
	err error
}

func NewStateEncoder(w io.Writer) *StateEncoder {
	return &StateEncoder{w: w}
}

// Write accepts fixed-size values: integers, bools and arrays or slices of them.
func (e *StateEncoder) Write(v interface{}) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, binary.LittleEndian, v)
}

func (e *StateEncoder) Int(v int) {
	e.Write(int32(v))
}

func (e *StateEncoder) Err() error {
	return e.err
}

// StateDecoder is the reading half of StateEncoder. After the first
// failure every further read is a no-op and Err reports ErrCorruptState.
type StateDecoder struct {
	r   io.Reader
	err error
}

func NewStateDecoder(r io.Reader) *StateDecoder {
	return &StateDecoder{r: r}
}

// Read decodes into v, which must be a pointer to a fixed-size value or a slice.
func (d *StateDecoder) Read(v interface{}) {
	if d.err != nil {
		return
	}
	if err := binary.Read(d.r, binary.LittleEndian, v); err != nil {
		d.err = err
	}
}

func (d *StateDecoder) Byte() byte {
	var v byte
	d.Read(&v)
	return v
}

func (d *StateDecoder) Uint16() uint16 {
	var v uint16
	d.Read(&v)
	return v
}

func (d *StateDecoder) Uint32() uint32 {
	var v uint32
	d.Read(&v)
	return v
}

func (d *StateDecoder) Uint64() uint64 {
	var v uint64
	d.Read(&v)
	return v
}

func (d *StateDecoder) Bool() bool {
	var v bool
	d.Read(&v)
	return v
}

func (d *StateDecoder) Int() int {
	var v int32
	d.Read(&v)
	return int(v)
}

// Fail records a semantic error found while decoding.
func (d *StateDecoder) Fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *StateDecoder) Err() error {
	if d.err == nil {
		return nil
	}
	if d.err == io.EOF || d.err == io.ErrUnexpectedEOF {
		return ErrCorruptState
	}
	return d.err
}
