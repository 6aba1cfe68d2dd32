package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"raycaster/internal/config"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 260
)

type mapInfo struct {
	Name string
	Grid *world.Grid
	Err  error
}

type viewer struct {
	cfg         *config.Config
	maps        []mapInfo
	mapIndex    int
	legendLines []string
	lastErr     string
}

func main() {
	ensureRuntimeCWD()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	maps, err := loadMaps(cfg, filepath.Join("assets", "maps"))
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	v := &viewer{
		cfg:         cfg,
		maps:        maps,
		legendLines: buildLegendLines(cfg),
	}
	if len(maps) == 0 {
		v.lastErr = "no maps loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if len(v.maps) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.mapIndex = (v.mapIndex + 1) % len(v.maps)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.mapIndex--
		if v.mapIndex < 0 {
			v.mapIndex = len(v.maps) - 1
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("map %s failed to load: %v", m.Name, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	v.drawMapPanel(screen, m, padding, padding, mapAreaW, mapAreaH)
	v.drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// fitCellSize returns the largest square cell that fits a grid of
// cols x rows into a w x h panel, never below 2 pixels.
func fitCellSize(w, h, cols, rows int) int {
	size := w / cols
	if alt := h / rows; alt < size {
		size = alt
	}
	if size < 2 {
		size = 2
	}
	return size
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	g := m.Grid
	cellSize := fitCellSize(w, h, g.Width, g.Height)
	originX := x + (w-g.Width*cellSize)/2
	originY := y + (h-g.Height*cellSize)/2

	for cy := 0; cy < g.Height; cy++ {
		for cx := 0; cx < g.Width; cx++ {
			cellColor := v.cellColor(g.MaterialAt(cx, cy))
			vector.DrawFilledRect(screen,
				float32(originX+cx*cellSize), float32(originY+cy*cellSize),
				float32(cellSize-1), float32(cellSize-1), cellColor, false)
		}
	}

	if g.StartX >= 0 && g.StartY >= 0 {
		centerX := float32(originX + g.StartX*cellSize + cellSize/2)
		centerY := float32(originY + g.StartY*cellSize + cellSize/2)
		radius := float32(cellSize) * 0.35
		vector.DrawFilledCircle(screen, centerX, centerY, radius, color.RGBA{50, 200, 255, 255}, true)
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}

	ebitenutil.DebugPrintAt(screen, m.Name, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch maps, Esc to quit", x+12, y+24)
}

func (v *viewer) cellColor(m world.Material) color.RGBA {
	if m == world.Empty {
		return color.RGBA{0, 0, 0, 255}
	}
	return v.cfg.GetMaterialMapColor(int(m))
}

func (v *viewer) drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	row := y + 12
	worldW, worldH := m.Grid.WorldSize()
	stats := []string{
		fmt.Sprintf("Cells: %dx%d", m.Grid.Width, m.Grid.Height),
		fmt.Sprintf("World: %.0fx%.0f", worldW, worldH),
		fmt.Sprintf("Walls: %d", countWalls(m.Grid)),
		fmt.Sprintf("Start: %d,%d", m.Grid.StartX, m.Grid.StartY),
		"",
	}
	for _, line := range append(stats, v.legendLines...) {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func countWalls(g *world.Grid) int {
	n := 0
	for cy := 0; cy < g.Height; cy++ {
		for cx := 0; cx < g.Width; cx++ {
			if _, wall := g.IsWall(cx, cy); wall {
				n++
			}
		}
	}
	return n
}

// loadMaps parses every .map file in dir, sorted by name. A file that fails
// to parse is kept with its error so the viewer can report it.
func loadMaps(cfg *config.Config, dir string) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.map"))
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .map files in %s", dir)
	}
	sort.Strings(paths)

	// The viewer accepts any map size.
	loaderCfg := *cfg
	loaderCfg.World.MapWidth = 0
	loaderCfg.World.MapHeight = 0
	loader := world.NewMapLoader(&loaderCfg)

	maps := make([]mapInfo, 0, len(paths))
	for _, path := range paths {
		grid, err := loader.LoadMap(path)
		maps = append(maps, mapInfo{
			Name: filepath.Base(path),
			Grid: grid,
			Err:  err,
		})
	}
	return maps, nil
}

func buildLegendLines(cfg *config.Config) []string {
	lines := []string{
		"Legend",
		"------",
		". or 0 -> empty",
		"+ -> empty, start position",
	}
	for i, m := range cfg.Materials {
		lines = append(lines, fmt.Sprintf("%d -> %s", i+1, m.Name))
	}
	return lines
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
