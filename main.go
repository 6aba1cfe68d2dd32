package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"raycaster/internal/config"
	"raycaster/internal/engine"
	"raycaster/internal/game"
	"raycaster/internal/graphics"
	"raycaster/internal/terminal"
	"raycaster/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration")
	useTerminal := flag.Bool("terminal", false, "render in the terminal instead of a window")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	grid := world.DefaultGrid(cfg.GetTileSize())
	if cfg.Assets.MapFile != "" {
		grid, err = world.NewMapLoader(cfg).LoadMap(cfg.Assets.MapFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	atlas, err := graphics.LoadTextureAtlas(cfg.Assets.TextureAtlas, cfg.GetMaterialCount())
	if err != nil {
		log.Fatal(err)
	}

	eng, err := engine.NewEngine(cfg, grid, atlas)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	if *useTerminal {
		if err := runTerminal(eng); err != nil {
			log.Fatal(err)
		}
		return
	}

	game.ConfigureWindow(cfg)
	if err := ebiten.RunGame(game.NewRaycastGame(cfg, eng)); err != nil {
		log.Fatal(err)
	}
}

func runTerminal(eng *engine.Engine) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return terminal.NewPresenter(screen, eng, 30).Run(ctx)
}
