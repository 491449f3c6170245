package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/marquee/renderer"
)

// Style 决定每个像素的画法。
type Style string

const (
	StyleLED   Style = "led"   // 每个像素画成圆点，熄灭的 LED 也可见
	StylePixel Style = "pixel" // 直接贴图，像素为方块
)

// Options configures the canvas renderer. Lengths are millimetres.
type Options struct {
	Pitch    float64 // LED 中心距
	DotRatio float64 // 圆点直径 / Pitch
	Margin   float64
	Panel    color.Color // 面板底色
	Off      color.Color // 熄灭 LED 的颜色
	Style    Style
	Creator  string
}

// DefaultOptions 对应 4mm 间距的 P4 点阵屏。
var DefaultOptions = Options{
	Pitch:    4,
	DotRatio: 0.8,
	Margin:   6,
	Panel:    canvas.Hex("#101010"),
	Off:      canvas.Hex("#262626"),
	Style:    StyleLED,
	Creator:  "marquee",
}

// Renderer draws snapshot sheets via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with DefaultOptions.
func NewRenderer() *Renderer { return NewRendererWithOptions(DefaultOptions) }

// NewRendererWithOptions creates a renderer; zero fields fall back to
// DefaultOptions.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Pitch <= 0 {
		opts.Pitch = DefaultOptions.Pitch
	}
	if opts.DotRatio <= 0 || opts.DotRatio > 1 {
		opts.DotRatio = DefaultOptions.DotRatio
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.Panel == nil {
		opts.Panel = DefaultOptions.Panel
	}
	if opts.Off == nil {
		opts.Off = DefaultOptions.Off
	}
	if opts.Style == "" {
		opts.Style = DefaultOptions.Style
	}
	return &Renderer{opts: opts}
}

// Render renders the sheet into a PDF byte slice, one page per snapshot.
func (r *Renderer) Render(sheet *renderer.Sheet) ([]byte, error) {
	if sheet == nil {
		return nil, fmt.Errorf("快照表为空")
	}
	if len(sheet.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的快照")
	}

	for i, page := range sheet.Pages {
		if page.Image == nil {
			return nil, fmt.Errorf("第 %d 页缺少图像", i+1)
		}
	}

	var buf bytes.Buffer
	w, h := r.PageSize(sheet.Pages[0].Image)
	writer := pdf.New(&buf, w, h, nil)
	r.applyMeta(writer, sheet)
	for i, page := range sheet.Pages {
		w, h := r.PageSize(page.Image)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与帧坐标一致

		r.drawPanel(ctx, w, h)
		switch r.opts.Style {
		case StylePixel:
			r.drawPixels(ctx, page.Image)
		default:
			r.drawLEDs(ctx, page.Image)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// PageSize returns the page size in millimetres for a snapshot.
func (r *Renderer) PageSize(img *image.RGBA) (float64, float64) {
	var w, h int
	if img != nil {
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
	}
	return float64(w)*r.opts.Pitch + 2*r.opts.Margin, float64(h)*r.opts.Pitch + 2*r.opts.Margin
}

func (r *Renderer) applyMeta(writer *pdf.PDF, sheet *renderer.Sheet) {
	steps := make([]string, 0, len(sheet.Pages))
	seen := map[string]bool{}
	for _, p := range sheet.Pages {
		if !seen[p.Step] {
			seen[p.Step] = true
			steps = append(steps, p.Step)
		}
	}
	writer.SetInfo(sheet.Title, sheet.Subject, strings.Join(steps, ", "), sheet.Author, r.opts.Creator)
}

// drawPanel 绘制面板底色
func (r *Renderer) drawPanel(ctx *canvas.Context, w, h float64) {
	ctx.SetFillColor(r.opts.Panel)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
}

// drawLEDs 每个像素画一个圆点
func (r *Renderer) drawLEDs(ctx *canvas.Context, img *image.RGBA) {
	radius := r.opts.Pitch * r.opts.DotRatio / 2
	for _, d := range Dots(img) {
		fill := r.opts.Off
		if d.Lit {
			fill = d.Color
		}
		cx, cy := r.center(d.X, d.Y)
		ctx.SetFillColor(fill)
		ctx.DrawPath(cx-radius, cy-radius, canvas.Circle(radius))
	}
}

// drawPixels 直接按间距缩放贴图
func (r *Renderer) drawPixels(ctx *canvas.Context, img *image.RGBA) {
	ctx.DrawImage(r.opts.Margin, r.opts.Margin, img, canvas.DPMM(1/r.opts.Pitch))
}

func (r *Renderer) center(x, y int) (float64, float64) {
	return r.opts.Margin + (float64(x)+0.5)*r.opts.Pitch, r.opts.Margin + (float64(y)+0.5)*r.opts.Pitch
}

// Dot is one LED of a snapshot.
type Dot struct {
	X, Y  int
	Color color.RGBA
	Lit   bool
}

// Dots lists every pixel of img row by row; black pixels are not lit.
func Dots(img *image.RGBA) []Dot {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := make([]Dot, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			c.A = 0xff
			out = append(out, Dot{
				X:     x - b.Min.X,
				Y:     y - b.Min.Y,
				Color: c,
				Lit:   c.R != 0 || c.G != 0 || c.B != 0,
			})
		}
	}
	return out
}
