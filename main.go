package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scenario := flag.String("scenario", "", "scenario yaml path (embedded default when empty)")
	watch := flag.Bool("watch", false, "live-reload the scenario file on change")
	debug := flag.Bool("debug", false, "show the diagnostics overlay")
	flag.Parse()

	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("Cloth Drop Simulation")
	ebiten.SetTPS(60)

	game, err := NewGame(*scenario, *watch, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if game.watcher != nil {
			_ = game.watcher.Close()
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
