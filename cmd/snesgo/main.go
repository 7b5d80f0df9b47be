// Package main implements the snesgo SNES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/kestrelcore/snesgo"
	"github.com/kestrelcore/snesgo/internal/config"
	"github.com/kestrelcore/snesgo/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to SNES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		sramFile   = flag.String("sram", "", "Path to battery save file (defaults to <rom>.srm)")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		return
	}

	if *romFile == "" {
		fmt.Println("usage: snesgo -rom <file> [-config <file>] [-sram <file>]")
		os.Exit(1)
	}

	cfg := config.New()
	configPath := *configFile
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	if err := cfg.LoadFromFile(configPath); err != nil {
		log.Fatalf("snesgo: loading config: %v", err)
	}

	sramPath := *sramFile
	if sramPath == "" {
		sramPath = *romFile + ".srm"
	}

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("snesgo: reading ROM: %v", err)
	}
	sram, _ := os.ReadFile(sramPath) // absent save file is not an error

	core, err := snesgo.New(rom, sram)
	if err != nil {
		log.Fatalf("snesgo: %v", err)
	}

	fmt.Printf("snesgo - loaded %q\n", core.Title())

	stream := &audioStream{}
	if cfg.Audio.Enabled {
		ctx := audio.NewContext(cfg.Audio.SampleRate)
		player, err := ctx.NewPlayer(stream)
		if err != nil {
			log.Fatalf("snesgo: creating audio player: %v", err)
		}
		player.Play()
	}

	ebiten.SetWindowTitle(fmt.Sprintf("snesgo - %s", core.Title()))
	ebiten.SetWindowSize(snesgo.ScreenWidth*2, snesgo.ScreenHeight*2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := newGame(core, stream)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("snesgo: %v", err)
	}

	if err := os.WriteFile(sramPath, core.SRAM(), 0o644); err != nil {
		log.Printf("snesgo: saving SRAM: %v", err)
	}
}
