package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/genricoloni/synframe/internal/domain"
	"github.com/genricoloni/synframe/internal/render/layout"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	albumText   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	albumShadow = color.RGBA{A: 0xC0}
	albumDim    = color.RGBA{A: 0x60}
)

const (
	albumMarginRatio = 0.06
	albumLineGap     = 0.25 // fraction of the line size added between lines
	shadowOffset     = 2
)

// albumLayout places the cover on the left and the text column on the right
func albumLayout(screen image.Rectangle) (cover, text image.Rectangle) {
	margin := int(float64(min(screen.Dx(), screen.Dy())) * albumMarginRatio)
	inner := layout.Inset(screen, margin)
	left, right := layout.SplitVertical(inner, min(inner.Dy(), inner.Dx()/2))
	return layout.FitSquare(left), layout.Inset(right, margin/2)
}

// drawAlbum renders the blurred backdrop, the cover and the fitted text lines
func drawAlbum(dst *image.RGBA, snap domain.AlbumSnapshot, faces FaceSource) {
	screen := dst.Bounds()
	if snap.Artwork.Background != nil {
		scaleInto(dst, screen, snap.Artwork.Background)
		draw.Draw(dst, screen, image.NewUniform(albumDim), image.Point{}, draw.Over)
	}

	coverRect, textRect := albumLayout(screen)
	if cover := snap.Artwork.Cover; cover != nil && !cover.Bounds().Empty() {
		target := layout.FitAspect(coverRect, cover.Bounds().Size())
		xdraw.CatmullRom.Scale(dst, target, cover, cover.Bounds(), draw.Over, nil)
	}

	if faces == nil {
		return
	}
	lines := []struct {
		text string
		size int
	}{
		{snap.Artist, snap.ArtistSize},
		{snap.Title, snap.TitleSize},
		{snap.Track, snap.TitleSize},
	}

	total := 0
	for _, l := range lines {
		if l.text != "" {
			total += l.size + int(float64(l.size)*albumLineGap)
		}
	}

	y := layout.Center(textRect).Y - total/2
	for _, l := range lines {
		if l.text == "" || l.size <= 0 {
			continue
		}
		face, err := faces.Face(l.size)
		if err != nil {
			continue
		}
		y += face.Metrics().Ascent.Ceil()
		drawShadowedText(dst, face, l.text, textRect.Min.X, y)
		y += face.Metrics().Descent.Ceil() + int(float64(l.size)*albumLineGap)
	}
}

func drawShadowedText(dst *image.RGBA, face font.Face, text string, x, baseline int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(albumShadow), Face: face}
	d.Dot = fixed.P(x+shadowOffset, baseline+shadowOffset)
	d.DrawString(text)

	d.Src = image.NewUniform(albumText)
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
}

// scaleInto draws src scaled into r on dst
func scaleInto(dst *image.RGBA, r image.Rectangle, src image.Image) {
	xdraw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}
