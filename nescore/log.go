package nescore

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

var logger = log.New(os.Stderr, "nescore: ", log.LstdFlags)

// SetLogOutput redirects diagnostic output of the core.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

type accessClass byte

const (
	accessPPUWriteOnly accessClass = iota
	accessPPUReadOnly
	accessOpenBus
	accessNoAddRAM
	accessCHRROMWrite
	accessClassCount
)

var accessMessages = [accessClassCount]string{
	accessPPUWriteOnly: "read of write-only PPU register",
	accessPPUReadOnly:  "write to read-only PPU register",
	accessOpenBus:      "access to unmapped address",
	accessNoAddRAM:     "add-on RAM access on a board without RAM",
	accessCHRROMWrite:  "write to CHR-ROM",
}

// misaccessCounts is shared by all consoles; it only throttles log lines.
var misaccessCounts [accessClassCount]uint32

// logMisaccess logs the first occurrence of each class and then every 1024th.
func logMisaccess(class accessClass, address uint16) {
	n := atomic.AddUint32(&misaccessCounts[class], 1)
	if (n-1)&0x3FF != 0 {
		return
	}
	logger.Printf("%s: $%04X (seen %d times)", accessMessages[class], address, n)
}
