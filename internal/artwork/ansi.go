package artwork

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// RenderFile decodes the image at path and renders it with RenderANSI.
func RenderFile(path string, cols, rows int, trueColor bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return RenderANSI(img, cols, rows, trueColor), nil
}

// RenderANSI draws img as cols x rows terminal cells using upper half
// blocks: each cell shows two vertically stacked pixel pairs, the top pair
// as foreground and the bottom pair as background. Without trueColor only
// the block glyphs are emitted.
func RenderANSI(img image.Image, cols, rows int, trueColor bool) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := resize.Resize(uint(cols*2), uint(rows*2), img, resize.Lanczos3)

	var sb strings.Builder
	for y := 0; y < rows*2; y += 2 {
		for x := 0; x < cols*2; x += 2 {
			top := average(pixel(scaled, x, y), pixel(scaled, x+1, y))
			bottom := average(pixel(scaled, x, y+1), pixel(scaled, x+1, y+1))
			sb.WriteString(cell('▀', top, bottom, trueColor))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func pixel(img image.Image, x, y int) colorful.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(img.At(x, y))
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func cell(ch rune, fg, bg colorful.Color, trueColor bool) string {
	if !trueColor {
		return string(ch)
	}
	fr, fgG, fb := rgb8(fg)
	br, bgG, bb := rgb8(bg)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", fr, fgG, fb, br, bgG, bb, ch)
}

func rgb8(c colorful.Color) (uint8, uint8, uint8) {
	return clamp(c.R), clamp(c.G), clamp(c.B)
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v * 255)
	}
}
