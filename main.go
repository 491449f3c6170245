package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ByLCY/marquee/animation"
	"github.com/ByLCY/marquee/config"
	"github.com/ByLCY/marquee/display/term"
	"github.com/ByLCY/marquee/display/x11"
	"github.com/ByLCY/marquee/fonts"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
	"github.com/ByLCY/marquee/renderer"
	canvasrenderer "github.com/ByLCY/marquee/renderer/canvas"
	"github.com/ByLCY/marquee/show"
)

func main() {
	envDir := flag.String("env", ".", ".env / .env.local 所在目录")
	flag.String("font", "", "BDF 字体路径，留空使用内置字体")
	flag.String("show", "", "节目脚本路径，留空使用内置节目")
	flag.String("images", "", "图片目录")
	flag.String("display", "", "输出设备: memory、x11 或 terminal")
	flag.Int("scale", 0, "x11 窗口中每个 LED 的像素大小")
	flag.Int("loops", 0, "播放次数，0 表示循环播放")
	flag.String("snapshots", "", "快照 PDF 输出路径")
	flag.Int("every", 0, "每隔多少帧采集一次快照")
	flag.Int("limit", 0, "快照页数上限")
	flag.Bool("offline", false, "使用虚拟时钟播放")
	flag.Duration("max-runtime", 0, "最长播放时间")
	style := flag.String("style", string(canvasrenderer.StyleLED), "快照样式: led 或 pixel")
	debug := flag.String("debug-json", "", "快照调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到节目脚本的 JSON 数据")
	preview := flag.String("preview", "", "把文本渲染成 PNG 后退出")
	out := flag.String("out", "preview.png", "-preview 的 PNG 输出路径")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	opts, err := config.Load(*envDir)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	if err := applyFlags(&opts); err != nil {
		log.Fatalf("参数错误: %v", err)
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	if *preview != "" {
		if err := writePreview(opts, *preview, *out); err != nil {
			log.Fatalf("生成预览失败: %v", err)
		}
		fmt.Printf("已生成预览：%s\n", *out)
		return
	}

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.MaxRuntime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxRuntime)
		defer cancel()
	}

	export := exportOptions{Style: canvasrenderer.Style(*style), Debug: *debug}
	if err := run(ctx, opts, inputData, export); err != nil {
		logging.Logger().Error("播放失败", "error", err)
		os.Exit(1)
	}
	if opts.Snapshots != "" {
		fmt.Printf("已生成快照 PDF：%s\n", opts.Snapshots)
	}
}

// applyFlags 用命令行上显式给出的参数覆盖环境变量配置。
func applyFlags(opts *config.Options) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "font":
			opts.Font = v.(string)
		case "show":
			opts.Show = v.(string)
		case "images":
			opts.ImageDir = v.(string)
		case "display":
			opts.Display = v.(string)
		case "scale":
			opts.Scale = v.(int)
		case "loops":
			opts.Loops = v.(int)
		case "snapshots":
			opts.Snapshots = v.(string)
		case "every":
			opts.SnapshotEvery = v.(int)
		case "limit":
			opts.SnapshotLimit = v.(int)
		case "offline":
			opts.Offline = v.(bool)
		case "max-runtime":
			opts.MaxRuntime = v.(time.Duration)
		case "style":
			switch canvasrenderer.Style(v.(string)) {
			case canvasrenderer.StyleLED, canvasrenderer.StylePixel:
			default:
				err = fmt.Errorf("未知快照样式 %q", v)
			}
		}
	})
	return err
}

type exportOptions struct {
	Style canvasrenderer.Style
	Debug string
}

// run 串联字体、节目脚本、输出设备与快照导出。
func run(ctx context.Context, opts config.Options, data any, export exportOptions) error {
	log := logging.Logger()

	font, err := fonts.Open(opts.Font).Unpack()
	if err != nil {
		return fmt.Errorf("加载字体失败: %w", err)
	}
	if dropped := font.Dropped(); len(dropped) > 0 {
		log.Warn("字体中有字形被丢弃", "count", len(dropped))
	}
	log.Info("font loaded", "name", font.Header().Name, "glyphs", font.Len())

	sh, err := loadShow(opts, data)
	if err != nil {
		return err
	}

	var (
		canvas    frame.Canvas
		observers []animation.Observer
	)
	switch opts.Display {
	case config.DisplayX11, config.DisplayTerminal:
		dev, err := openDevice(opts, sh.Name)
		if err != nil {
			return err
		}
		defer dev.Close()
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-dev.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
		canvas = dev
		observers = append(observers, dev.Observer())
	default:
		canvas = frame.NewBuffer(opts.Width(), opts.Height())
	}

	adjusted, err := frame.Adjust(canvas, opts.Adjustment())
	if err != nil {
		return fmt.Errorf("颜色校正配置无效: %w", err)
	}

	// 没有真实显示设备时无需等待真实时间
	var clock animation.Clock = animation.SystemClock{}
	if opts.Offline || opts.Display == config.DisplayMemory {
		clock = animation.NewVirtualClock(time.Now())
	}

	var rec *renderer.Recorder
	if opts.Snapshots != "" {
		rec = renderer.NewRecorder(opts.SnapshotEvery, opts.SnapshotLimit, clock.Now)
		observers = append(observers, rec)
	}

	seq, err := animation.New(frame.New(adjusted), font, sh.Steps,
		animation.WithClock(clock),
		animation.WithDefaultChar(sh.DefaultChar),
		animation.WithObserver(animation.Observers(observers...)),
	)
	if err != nil {
		return err
	}

	loops := opts.Loops
	if loops <= 0 && opts.Display == config.DisplayMemory {
		loops = 1
	}
	log.Info("show started", "show", sh.Name, "steps", len(sh.Steps), "loops", loops, "display", opts.Display)
	err = seq.Loop(ctx, loops)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Info("show stopped", "reason", err)
	case err != nil:
		return err
	default:
		log.Info("show finished", "show", sh.Name)
	}

	if rec == nil {
		return nil
	}
	return exportSheet(rec.Sheet(sh.Name), opts.Snapshots, export)
}

// device 是带窗口或终端的输出设备。
type device interface {
	frame.Canvas
	Done() <-chan struct{}
	Observer() animation.Observer
	Close() error
}

func openDevice(opts config.Options, title string) (device, error) {
	if opts.Display == config.DisplayTerminal {
		t, err := term.Open(opts.Width(), opts.Height())
		if err != nil {
			return nil, fmt.Errorf("打开终端失败: %w", err)
		}
		return t, nil
	}
	w, err := x11.Open("marquee: "+title, opts.Width(), opts.Height(), opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("打开 X11 窗口失败: %w", err)
	}
	return w, nil
}

func loadShow(opts config.Options, data any) (*show.Show, error) {
	script, builtin := show.Default, true
	if opts.Show != "" {
		raw, err := os.ReadFile(opts.Show)
		if err != nil {
			return nil, fmt.Errorf("无法打开节目脚本 %s: %w", opts.Show, err)
		}
		script, builtin = string(raw), false
	}
	settings := show.DefaultSettings
	settings.DefaultChar = opts.DefaultChar
	sh, err := show.Compile(script, show.BuildOptions{
		Settings:          &settings,
		Data:              data,
		Images:            os.DirFS(opts.ImageDir),
		SkipMissingImages: builtin,
	})
	if err != nil {
		return nil, fmt.Errorf("解析节目脚本失败: %w", err)
	}
	return sh, nil
}

func exportSheet(sheet *renderer.Sheet, outputPath string, export exportOptions) error {
	if len(sheet.Pages) == 0 {
		return errors.New("没有采集到快照")
	}
	if export.Debug != "" {
		if err := os.MkdirAll(filepath.Dir(export.Debug), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := renderer.WriteDebugJSON(sheet, export.Debug); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	ropts := canvasrenderer.DefaultOptions
	if export.Style != "" {
		ropts.Style = export.Style
	}
	pdfBytes, err := canvasrenderer.NewRendererWithOptions(ropts).Render(sheet)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}
