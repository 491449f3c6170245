package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/marquee/config"
	"github.com/ByLCY/marquee/face"
	"github.com/ByLCY/marquee/fonts"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/show"
)

// renderPreview 用 BDF 字体把 text 排成一行，每个像素放大 scale 倍。
func renderPreview(opts config.Options, text string) (*image.RGBA, error) {
	bdfFont, err := fonts.Open(opts.Font).Unpack()
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	fc := face.New(bdfFont, face.WithFallback(opts.DefaultChar))
	defer fc.Close()

	m := fc.Metrics()
	width := font.MeasureString(fc, text).Ceil()
	height := m.Height.Ceil()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("文本 %q 没有可见宽度", text)
	}

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(src, src.Bounds(), image.NewUniform(frame.Black), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(show.DefaultSettings.Color),
		Face: fc,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(text)

	scale := max(opts.Scale, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

func writePreview(opts config.Options, text, outputPath string) error {
	img, err := renderPreview(opts, text)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建 PNG 文件失败: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("写入 PNG 失败: %w", err)
	}
	return f.Close()
}
