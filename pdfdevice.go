package scalehouse

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// mmPerPt converts PostScript points to the millimeters the canvas context
// works in. All pageDevice coordinates are pt; the conversion happens once,
// here at the device boundary.
const mmPerPt = 25.4 / 72.0

const ruleWidthMM = 0.25

// canvasDevice renders the draw operations of one page onto a
// tdewolff/canvas context and serializes it through the PDF backend.
type canvasDevice struct {
	c     *canvas.Canvas
	ctx   *canvas.Context
	faces map[fontFace]*canvas.FontFamily
	logo  image.Image
	wMM   float64
	hMM   float64
}

// newCanvasDevice builds a one-page US-Letter device from loaded resources.
// Font parsing failures surface here rather than at draw time.
func newCanvasDevice(res *Resources) (*canvasDevice, error) {
	families := map[fontFace][]byte{
		faceRegular: res.FontRegular,
		faceBold:    res.FontBold,
		faceMono:    res.FontMono,
	}
	names := map[fontFace]string{
		faceRegular: "regular",
		faceBold:    "bold",
		faceMono:    "mono",
	}

	faces := make(map[fontFace]*canvas.FontFamily, len(families))
	for face, data := range families {
		family := canvas.NewFontFamily(names[face])
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, names[face], err)
		}
		faces[face] = family
	}

	wMM, hMM := pageWidthPt*mmPerPt, pageHeightPt*mmPerPt
	c := canvas.New(wMM, hMM)
	return &canvasDevice{
		c:     c,
		ctx:   canvas.NewContext(c),
		faces: faces,
		logo:  res.Logo,
		wMM:   wMM,
		hMM:   hMM,
	}, nil
}

func (d *canvasDevice) Text(x, y, size float64, face fontFace, s string) {
	if s == "" {
		return
	}
	ff := d.faces[face].Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	d.ctx.DrawText(x*mmPerPt, y*mmPerPt, canvas.NewTextLine(ff, s, canvas.Left))
}

func (d *canvasDevice) Line(x1, y1, x2, y2 float64) {
	d.ctx.SetStrokeColor(canvas.Black)
	d.ctx.SetStrokeWidth(ruleWidthMM)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo((x2-x1)*mmPerPt, (y2-y1)*mmPerPt)
	d.ctx.DrawPath(x1*mmPerPt, y1*mmPerPt, p)
}

func (d *canvasDevice) Box(x1, y1, x2, y2 float64) {
	d.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	d.ctx.SetStrokeColor(canvas.Black)
	d.ctx.SetStrokeWidth(ruleWidthMM)
	d.ctx.DrawPath(x1*mmPerPt, y1*mmPerPt, canvas.Rectangle((x2-x1)*mmPerPt, (y2-y1)*mmPerPt))
}

// Logo draws the company mark with its bottom-left corner at (x, y). scale
// maps image pixels to points, so a 100px-wide mark at scale 0.65 occupies
// 65pt on the page.
func (d *canvasDevice) Logo(x, y, scale float64) {
	if d.logo == nil {
		return
	}
	pxW := float64(d.logo.Bounds().Dx())
	if pxW <= 0 || scale <= 0 {
		return
	}
	widthMM := pxW * scale * mmPerPt
	d.ctx.DrawImage(x*mmPerPt, y*mmPerPt, d.logo, canvas.DPMM(pxW/widthMM))
}

func (d *canvasDevice) Finish() ([]byte, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, d.wMM, d.hMM, nil)
	d.c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFRender, err)
	}
	return buf.Bytes(), nil
}
