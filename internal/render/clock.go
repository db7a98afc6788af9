package render

import (
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	clockFace   = color.RGBA{A: 0xFF}
	clockInk    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	clockSecond = color.RGBA{R: 0xFF, A: 0xFF}

	romanNumerals = []string{"XII", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI"}
)

const (
	clockScale    = 0.9
	clockRimWidth = 10
	clockHubSize  = 5
)

// ClockRect returns the square the clock is drawn into: 90% of the shorter
// screen side, no larger than size when size > 0, centered horizontally and
// pushed down by offset.
func ClockRect(screen image.Rectangle, size, offset int) image.Rectangle {
	side := int(math.Round(float64(min(screen.Dx(), screen.Dy())) * clockScale))
	if size > 0 {
		side = min(size, side)
	}
	x := screen.Min.X + (screen.Dx()-side)/2
	y := screen.Min.Y + max(offset, 0)
	return image.Rect(x, y, x+side, y+side)
}

// handAngles returns the hour, minute and second hand angles in radians,
// clockwise from twelve o'clock
func handAngles(t time.Time) (hour, minute, second float64) {
	h, m, s := float64(t.Hour()%12), float64(t.Minute()), float64(t.Second())
	hour = h*math.Pi/6 + m*math.Pi/360
	minute = m*math.Pi/30 + s*math.Pi/1800
	second = s * math.Pi / 30
	return hour, minute, second
}

// drawClock renders an analog clock into rect on dst. faces supplies the
// numeral font.
func drawClock(dst *image.RGBA, rect image.Rectangle, now time.Time, faces FaceSource) {
	cx := float64(rect.Min.X) + float64(rect.Dx())/2
	cy := float64(rect.Min.Y) + float64(rect.Dy())/2
	radius := float64(rect.Dx()) / 2 * clockScale

	// Face with a white rim
	fillDisk(dst, cx, cy, radius+clockRimWidth/2, clockInk)
	fillDisk(dst, cx, cy, radius-clockRimWidth/2, clockFace)
	fillDisk(dst, cx, cy, clockHubSize, clockInk)

	drawNumerals(dst, cx, cy, radius, faces)

	hour, minute, second := handAngles(now)
	drawHand(dst, cx, cy, hour, radius*0.5, 12, clockInk)
	drawHand(dst, cx, cy, minute, radius*0.7, 8, clockInk)
	drawHand(dst, cx, cy, second, radius*0.8, 2, clockSecond)
}

func drawHand(dst *image.RGBA, cx, cy, angle, length, width float64, c color.Color) {
	x := cx + length*math.Sin(angle)
	y := cy - length*math.Cos(angle)
	strokeLine(dst, cx, cy, x, y, width, c)
}

func drawNumerals(dst *image.RGBA, cx, cy, radius float64, faces FaceSource) {
	if faces == nil {
		return
	}
	face, err := faces.Face(max(1, int(radius*0.15)))
	if err != nil {
		return
	}

	metrics := face.Metrics()
	// Vertical middle of the glyphs sits on the numeral position
	middle := (metrics.Ascent - metrics.Descent) / 2

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(clockInk), Face: face}
	for i, numeral := range romanNumerals {
		angle := float64(i) * math.Pi / 6
		x := cx + radius*0.85*math.Sin(angle)
		y := cy - radius*0.85*math.Cos(angle)

		width := d.MeasureString(numeral)
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x*64) - width/2,
			Y: fixed.Int26_6(y*64) + middle,
		}
		d.DrawString(numeral)
	}
}
