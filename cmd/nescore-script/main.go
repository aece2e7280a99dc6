// Command nescore-script runs a ROM headlessly, optionally under a Lua script.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Code-Hex/dd"
	"github.com/kaishuu0123/nescore/internal/script"
	"github.com/kaishuu0123/nescore/nescore"
)

var (
	romPath    = flag.String("rom", "", "ROM to run (or pass it as the first argument)")
	scriptPath = flag.String("script", "", "Lua script to run against the ROM")
	timeout    = flag.Duration("timeout", 0, "abort the script after this long (0: no limit)")
	frames     = flag.Int("frames", 0, "frames to run when no script is given, or after it returns")
	screenshot = flag.String("screenshot", "", "write the final frame as a PNG to this path")
	shotScale  = flag.Int("scale", 1, "screenshot scale factor")
	saveDir    = flag.String("savedir", "", "directory for save states (default: <rom dir>/saves)")
	dumpState  = flag.Bool("dump", false, "dump CPU and PPU state when finished")
)

type stateDump struct {
	Title  string
	Frames uint64
	CPU    nescore.CPUState
	PPU    nescore.PPURegisters
}

func run(console *nescore.Console) error {
	if *scriptPath != "" {
		engine := script.New(console, os.Stdout)
		defer engine.Close()

		ctx := context.Background()
		if *timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, *timeout)
			defer cancel()
		}
		if err := engine.RunFile(ctx, *scriptPath); err != nil {
			return err
		}
	}
	for i := 0; i < *frames; i++ {
		if err := console.StepFrame(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [rom.nes]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	path := *romPath
	if path == "" {
		path = flag.Arg(0)
	}
	if path == "" {
		flag.Usage()
		os.Exit(2)
	}

	console, err := nescore.NewConsole(path)
	if err != nil {
		log.Fatalln(err)
	}
	console.SetSaveDir(*saveDir)

	start := time.Now()
	runErr := run(console)
	log.Printf("%s: %d frames in %v", console.Title(), console.FrameCount(), time.Since(start).Round(time.Millisecond))

	if *screenshot != "" {
		if err := script.Screenshot(console.Buffer(), *screenshot, *shotScale); err != nil {
			log.Println(err)
		}
	}
	if *dumpState {
		fmt.Fprintln(os.Stderr, dd.Dump(stateDump{
			Title:  console.Title(),
			Frames: console.FrameCount(),
			CPU:    console.CPUState(),
			PPU:    console.PPURegisters(),
		}))
	}
	if err := console.Close(); err != nil {
		log.Println(err)
	}

	if runErr != nil {
		var cpuErr *nescore.CPUError
		if errors.As(runErr, &cpuErr) {
			log.Fatalf("CPU halted: %v", cpuErr)
		}
		log.Fatalln(runErr)
	}
}
