package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"

	"github.com/richinsley/dropshadow/data"
	"github.com/richinsley/dropshadow/dropshadow"
	"github.com/richinsley/dropshadow/glfwcontext"
	"github.com/richinsley/dropshadow/graphics"
	"github.com/richinsley/dropshadow/headless"
	"github.com/richinsley/dropshadow/host"
	"github.com/richinsley/dropshadow/options"
	"github.com/richinsley/dropshadow/pipeline"
	"github.com/richinsley/dropshadow/renderer"
	"github.com/richinsley/dropshadow/settings"
	"github.com/richinsley/dropshadow/video"
)

// flag names that map onto filter settings
var overrideFlags = map[string]string{
	"offset-x": dropshadow.SettingOffsetX,
	"offset-y": dropshadow.SettingOffsetY,
	"blur":     dropshadow.SettingBlurRadius,
	"opacity":  dropshadow.SettingOpacity,
	"color":    dropshadow.SettingColor,
}

func init() {
	runtime.LockOSThread()
}

func parseOptions() *options.FilterOptions {
	opts := &options.FilterOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Input:      flag.String("input", "", "Input video file"),
		Output:     flag.String("output", "output.mp4", "Output file name"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Video codec: h264, hevc or prores (.mov only)"),
		Bitrate:    flag.String("bitrate", "", "Output bitrate, e.g. 25M"),
		HWAccel:    flag.Bool("hwaccel", false, "Use the platform hardware encoder"),
		Pad:        flag.Int("pad", 0, "Transparent border in pixels added around each frame"),
		MaxFrames:  flag.Int("frames", 0, "Stop after this many frames (0 for all)"),
		Properties: flag.Bool("properties", false, "Print the filter properties and exit"),
		Debug:      flag.Bool("debug", false, "Enable debug logging"),
		Headless:   flag.Bool("headless", false, "Render with EGL, no display server needed (Linux only)"),

		DataDir: flag.String("data", "data", "Module data directory"),
		Locale:  flag.String("locale", data.DefaultLocale, "Locale used for display text"),

		SettingsFile: flag.String("settings", "", "Settings file (.json or .toml)"),
		Watch:        flag.Bool("watch", false, "Reload the settings file while processing"),
		SaveSettings: flag.String("save-settings", "", "Write the effective settings to this file"),

		OffsetX:    flag.Float64("offset-x", 4, "Shadow offset in x (pixels)"),
		OffsetY:    flag.Float64("offset-y", 4, "Shadow offset in y (pixels)"),
		BlurRadius: flag.Float64("blur", 4, "Shadow blur radius (pixels)"),
		Opacity:    flag.Float64("opacity", 0.6, "Shadow opacity"),
		Color:      flag.String("color", "#00000080", "Shadow color, #RRGGBB[AA] or 0xAABBGGRR"),
	}
	flag.Parse()

	opts.Overrides = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		if name, ok := overrideFlags[f.Name]; ok {
			opts.Overrides[name] = true
		}
	})
	return opts
}

// applyOverrides writes every setting given on the command line into s.
func applyOverrides(s *settings.Data, opts *options.FilterOptions) error {
	for name := range opts.Overrides {
		switch name {
		case dropshadow.SettingOffsetX:
			s.SetDouble(name, *opts.OffsetX)
		case dropshadow.SettingOffsetY:
			s.SetDouble(name, *opts.OffsetY)
		case dropshadow.SettingBlurRadius:
			s.SetDouble(name, *opts.BlurRadius)
		case dropshadow.SettingOpacity:
			s.SetDouble(name, *opts.Opacity)
		case dropshadow.SettingColor:
			c, err := options.ParseColor(*opts.Color)
			if err != nil {
				return err
			}
			s.SetInt(name, int64(c))
		}
	}
	return nil
}

func loadSettings(opts *options.FilterOptions) (*settings.Data, error) {
	s := settings.New()
	if *opts.SettingsFile != "" {
		loaded, err := settings.Load(*opts.SettingsFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if err := applyOverrides(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

// printProperties lists every registered source with its properties and
// the values s resolves to. User set values are marked with "*".
func printProperties(w io.Writer, reg *host.Registry, module *data.Module, s *settings.Data) {
	fmt.Fprintf(w, "locale %s\n", module.Locale())
	for _, id := range reg.IDs() {
		info, _ := reg.Lookup(id)
		if info.GetDefaults != nil {
			info.GetDefaults(s)
		}
		fmt.Fprintf(w, "\n%s (%s, %s)\n", info.GetName(), id, info.Type)
		if info.GetProperties == nil {
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tLABEL\tTYPE\tRANGE\tVALUE")
		for _, p := range info.GetProperties(nil).List() {
			mark := ""
			if s.HasUserValue(p.Name) {
				mark = "*"
			}
			switch p.Type {
			case host.PropertyColor:
				fmt.Fprintf(tw, "%s\t%s\t%s\t\t%s%s\n", p.Name, p.Description, p.Type, options.FormatColor(uint32(s.GetInt(p.Name))), mark)
			default:
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g..%g step %g\t%g%s\n", p.Name, p.Description, p.Type, p.Min, p.Max, p.Step, s.GetDouble(p.Name), mark)
			}
		}
		tw.Flush()
	}
}

// watchSettings forwards every successful reload, with the command line
// overrides reapplied, to the returned channel.
func watchSettings(ctx context.Context, opts *options.FilterOptions) (<-chan *settings.Data, error) {
	updates, err := settings.Watch(ctx, *opts.SettingsFile)
	if err != nil {
		return nil, err
	}
	out := make(chan *settings.Data, 1)
	go func() {
		defer close(out)
		for u := range updates {
			if u.Err != nil {
				log.Printf("Ignoring settings change: %v", u.Err)
				continue
			}
			if err := applyOverrides(u.Data, opts); err != nil {
				log.Printf("Ignoring settings change: %v", err)
				continue
			}
			select {
			case out <- u.Data:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// newContext creates the GL context the filter renders with. release
// destroys it along with any windowing state.
func newContext(useEGL bool) (graphics.Context, func(), error) {
	if useEGL {
		c, err := headless.New(1, 1)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Shutdown, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize graphics: %w", err)
	}
	c, err := glfwcontext.New(1, 1)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, err
	}
	return c, func() {
		c.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func main() {
	opts := parseOptions()

	if *opts.Help {
		fmt.Println("Drop shadow video filter")
		flag.PrintDefaults()
		return
	}

	if *opts.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	dropshadow.SetLogger(slog.Default())

	module, err := data.New(*opts.DataDir, *opts.Locale)
	if err != nil {
		log.Fatalf("Failed to load module data: %v", err)
	}

	s, err := loadSettings(opts)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	if *opts.Properties {
		// Properties need no GL context; the registry is only queried.
		reg := host.NewRegistry()
		if err := dropshadow.Register(reg, nil, module); err != nil {
			log.Fatalf("Failed to register filter: %v", err)
		}
		printProperties(os.Stdout, reg, module, s)
		return
	}

	if *opts.SaveSettings != "" {
		if err := settings.Save(*opts.SaveSettings, s); err != nil {
			log.Fatalf("Failed to save settings: %v", err)
		}
		log.Printf("Saved settings to %s", *opts.SaveSettings)
	}

	if *opts.Input == "" {
		if *opts.SaveSettings != "" {
			return
		}
		log.Fatalf("No input file, use -input")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var updates <-chan *settings.Data
	if *opts.Watch {
		if *opts.SettingsFile == "" {
			log.Fatalf("-watch needs -settings")
		}
		updates, err = watchSettings(ctx, opts)
		if err != nil {
			log.Fatalf("Failed to watch settings: %v", err)
		}
	}

	glctx, release, err := newContext(*opts.Headless)
	if err != nil {
		log.Fatalf("Failed to create GL context: %v", err)
	}
	defer release()

	gfx, err := renderer.NewGraphics(glctx)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer gfx.Shutdown()

	reg := host.NewRegistry()
	if err := dropshadow.Register(reg, gfx, module); err != nil {
		log.Fatalf("Failed to register filter: %v", err)
	}

	result, err := pipeline.Run(ctx, pipeline.Config{
		Graphics:   gfx,
		Registry:   reg,
		Settings:   s,
		Updates:    updates,
		Input:      *opts.Input,
		Pad:        *opts.Pad,
		MaxFrames:  *opts.MaxFrames,
		FFmpegPath: *opts.FFMPEGPath,
		Encoder: video.EncoderOptions{
			Output:  *opts.Output,
			Codec:   *opts.Codec,
			Bitrate: *opts.Bitrate,
			HWAccel: *opts.HWAccel,
			GOOS:    runtime.GOOS,
		},
	})
	if err != nil {
		// deferred cleanup is skipped by log.Fatalf
		gfx.Shutdown()
		release()
		log.Fatalf("Filtering failed: %v", err)
	}
	log.Printf("Filtered %d frames, wrote %d to %s in %s (%d settings updates)", result.Frames, result.Encoded, *opts.Output, result.Elapsed, result.Updates)
}
