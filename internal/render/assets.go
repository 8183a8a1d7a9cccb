package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Cache is a read-through store for templates, fonts and icons. Entries are
// loaded once and are immutable afterwards, so concurrent renders may read
// them freely; each render works on its own copy of the template.
type Cache struct {
	mu        sync.RWMutex
	fonts     map[string]*truetype.Font
	templates map[string]*image.RGBA
	icons     map[iconKey]image.Image
}

type iconKey struct {
	path string
	size int
}

// NewCache creates an empty asset cache.
func NewCache() *Cache {
	return &Cache{
		fonts:     make(map[string]*truetype.Font),
		templates: make(map[string]*image.RGBA),
		icons:     make(map[iconKey]image.Image),
	}
}

// Font returns a font face for the given file and pixel size. The parsed
// font is cached by path; the face itself is built per call because a
// truetype face carries internal rasterizer state and is not safe to share
// across renders.
func (c *Cache) Font(path string, size int) (font.Face, error) {
	c.mu.RLock()
	f, ok := c.fonts[path]
	c.mu.RUnlock()
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		f, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		c.mu.Lock()
		c.fonts[path] = f
		c.mu.Unlock()
	}
	return truetype.NewFace(f, &truetype.Options{Size: float64(size)}), nil
}

// Template returns the decoded template bitmap for a path. The cached image
// is shared and read-only; callers must clone it before drawing.
func (c *Cache) Template(path string) (*image.RGBA, error) {
	c.mu.RLock()
	img, ok := c.templates[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	img, err := decodeRGBA(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.templates[path] = img
	c.mu.Unlock()
	return img, nil
}

// Icon returns an auxiliary bitmap (coin icon, divider line) resampled to a
// square of the given size.
func (c *Cache) Icon(path string, size int) (image.Image, error) {
	key := iconKey{path: path, size: size}
	c.mu.RLock()
	icon, ok := c.icons[key]
	c.mu.RUnlock()
	if ok {
		return icon, nil
	}

	src, err := decodeRGBA(path)
	if err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	c.mu.Lock()
	c.icons[key] = dst
	c.mu.Unlock()
	return dst, nil
}

func decodeRGBA(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba, nil
}

// cloneRGBA copies a template so the cached original is never drawn on.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
