package chart

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	gochart "github.com/wcharczuk/go-chart/v2"
)

var (
	bufferPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}
	live       atomic.Int64

	defaultFont, defaultFontErr = gochart.GetDefaultFont()
)

// canvas is the drawing surface of one render. It must be released once
// the PNG bytes have been copied out, including on error paths.
type canvas struct {
	width, height int
	buf           *bytes.Buffer
	raster        gochart.Renderer
}

func acquireCanvas(width, height int) (*canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	live.Add(1)
	return &canvas{width: width, height: height, buf: buf}, nil
}

// renderer returns the raw raster renderer, creating it on first use.
func (c *canvas) renderer() (gochart.Renderer, error) {
	if c.raster != nil {
		return c.raster, nil
	}
	if defaultFontErr != nil {
		return nil, fmt.Errorf("load font: %w", defaultFontErr)
	}
	r, err := gochart.PNG(c.width, c.height)
	if err != nil {
		return nil, err
	}
	r.SetFont(defaultFont)
	c.raster = r
	return r, nil
}

// save encodes the raw renderer into the canvas buffer.
func (c *canvas) save() error {
	if c.raster == nil {
		return fmt.Errorf("nothing drawn")
	}
	return c.raster.Save(c.buf)
}

// bytes copies the encoded PNG out of the pooled buffer.
func (c *canvas) bytes() []byte {
	out := make([]byte, c.buf.Len())
	copy(out, c.buf.Bytes())
	return out
}

func (c *canvas) release() {
	if c.buf == nil {
		return
	}
	c.buf.Reset()
	bufferPool.Put(c.buf)
	c.buf = nil
	c.raster = nil
	live.Add(-1)
}

// LiveCanvases returns the number of canvases currently acquired.
func LiveCanvases() int64 { return live.Load() }
