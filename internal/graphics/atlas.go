package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// TextureAtlas holds the wall textures as one image split into equal
// horizontal bands, band i-1 belonging to material i.
type TextureAtlas struct {
	pixels     *image.RGBA
	bands      int
	bandHeight int
}

// LoadTextureAtlas decodes a PNG or BMP atlas with the given number of
// material bands.
func LoadTextureAtlas(path string, bands int) (*TextureAtlas, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture atlas %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture atlas %s: %w", path, err)
	}

	atlas, err := NewTextureAtlas(img, bands)
	if err != nil {
		return nil, fmt.Errorf("texture atlas %s: %w", path, err)
	}
	fmt.Printf("[Atlas] Loaded %s (%s): %dx%d, %d bands of %d rows\n", path, format, atlas.Width(), atlas.Height(), bands, atlas.bandHeight)
	return atlas, nil
}

// NewTextureAtlas copies img into an RGBA atlas.
func NewTextureAtlas(img image.Image, bands int) (*TextureAtlas, error) {
	if bands <= 0 {
		return nil, fmt.Errorf("band count must be positive, got %d", bands)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() < bands {
		return nil, fmt.Errorf("image %dx%d too small for %d bands", b.Dx(), b.Dy(), bands)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &TextureAtlas{
		pixels:     rgba,
		bands:      bands,
		bandHeight: b.Dy() / bands,
	}, nil
}

// Width returns the atlas width in texels.
func (a *TextureAtlas) Width() int { return a.pixels.Rect.Dx() }

// Height returns the atlas height in texels.
func (a *TextureAtlas) Height() int { return a.pixels.Rect.Dy() }

// Bands returns the number of material bands.
func (a *TextureAtlas) Bands() int { return a.bands }

// BandHeight returns the height of one band in texels.
func (a *TextureAtlas) BandHeight() int { return a.bandHeight }

// BandStart returns the first atlas row of a material's band. Material ids
// past the band count wrap around.
func (a *TextureAtlas) BandStart(m world.Material) int {
	if m == world.Empty {
		return 0
	}
	return a.bandHeight * ((int(m) - 1) % a.bands)
}

// Sample returns the texel at column tx and row ty of the material's band.
// Both coordinates are clamped into the band.
func (a *TextureAtlas) Sample(m world.Material, tx, ty int) color.RGBA {
	tx = mathutil.IntClamp(tx, 0, a.Width()-1)
	ty = mathutil.IntClamp(ty, 0, a.bandHeight-1)
	return a.pixels.RGBAAt(tx, a.BandStart(m)+ty)
}

// Image exposes the decoded atlas.
func (a *TextureAtlas) Image() *image.RGBA {
	return a.pixels
}
