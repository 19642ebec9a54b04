package canvasview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next Draw. The PNG is written to
// ScreenshotDir with a timestamped file name.
func (c *Controller) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label. Called at the end of Draw.
func (c *Controller) flushScreenshots(target *ebiten.Image) {
	if len(c.screenshotQueue) == 0 {
		return
	}
	defer func() { c.screenshotQueue = c.screenshotQueue[:0] }()

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("canvasview: screenshot dir", "dir", c.ScreenshotDir, "err", err)
		return
	}

	b := target.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	target.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range c.screenshotQueue {
		path := filepath.Join(c.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Warn("canvasview: screenshot", "err", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA bytes to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		copy(img.Pix[i:i+4], []byte{r, g, b, a})
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps [A-Za-z0-9.-] and replaces everything else with
// underscores. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
