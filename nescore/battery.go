package nescore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// Battery is battery-backed add-on RAM kept in a memory-mapped file.
type Battery struct {
	path string
	file *os.File
	mmap mmap.MMap
}

func batteryPath(dir, romFilePath string) string {
	if dir == "" {
		dir = filepath.Dir(filepath.Clean(romFilePath))
	}
	return filepath.Join(dir, fileNameWithoutExtension(romFilePath)+`.sav`)
}

// OpenBattery maps path, creating a zero-filled file of size bytes first if needed.
func OpenBattery(path string, size int) (*Battery, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := createBatteryFile(path, size); err != nil {
			return nil, err
		}
		logger.Printf("battery: file created. Path: %s", path)
	} else if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			file.Close()
			return nil, err
		}
	}
	m, err := mmap.MapRegion(file, size, mmap.RDWR, 0, 0)
	if err != nil {
		file.Close()
		return nil, err
	}
	logger.Printf("battery: file loaded. Path: %s", path)

	return &Battery{
		path: path,
		file: file,
		mmap: m,
	}, nil
}

func createBatteryFile(path string, size int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := file.Seek(int64(size-1), 0); err != nil {
		file.Close()
		return err
	}
	if _, err := file.Write([]byte{0}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (b *Battery) Path() string {
	return b.path
}

func (b *Battery) Memory() []byte {
	return b.mmap
}

func (b *Battery) Flush() error {
	return b.mmap.Flush()
}

func (b *Battery) Close() error {
	err := b.mmap.Flush()
	if unmapErr := b.mmap.Unmap(); err == nil {
		err = unmapErr
	}
	if closeErr := b.file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// attachBattery backs the mapper's add-on RAM with the battery file.
// Boards without add-on RAM are left alone.
func (c *Cartridge) attachBattery(dir string) error {
	if !c.Battery || c.ROMFilePath == "" || c.battery != nil {
		return nil
	}
	if c.Mapper.ReadAddRAM(0x6000) == NoAddRAM {
		logger.Printf("battery flag set on mapper %d without add-on RAM, ignored", c.MapperID)
		return nil
	}
	b, err := OpenBattery(batteryPath(dir, c.ROMFilePath), ADD_RAM_SIZE)
	if err != nil {
		return err
	}
	c.battery = b
	c.Mapper.Base().bindAddRAM(b.Memory())
	return nil
}

// rebindBattery moves a freshly decoded add-on RAM image into the battery file.
func (c *Cartridge) rebindBattery(m Mapper) {
	if c.battery == nil {
		return
	}
	mem := c.battery.Memory()
	copy(mem, m.Base().addRAM)
	m.Base().bindAddRAM(mem)
}

func fileNameWithoutExtension(filePath string) string {
	fileName := filepath.Base(filePath)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
