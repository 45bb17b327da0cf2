// Package cmd holds the markview command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/markview/internal/app"
	"github.com/zjrosen/markview/internal/cachemanager"
	"github.com/zjrosen/markview/internal/config"
	"github.com/zjrosen/markview/internal/flags"
	"github.com/zjrosen/markview/internal/layout"
	"github.com/zjrosen/markview/internal/localize"
	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/paths"
	"github.com/zjrosen/markview/internal/tracing"
	"github.com/zjrosen/markview/internal/ui/mdview"
	"github.com/zjrosen/markview/internal/ui/styles"
)

var version = "dev"

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// rootOptions is the state shared by every subcommand.
type rootOptions struct {
	v       *viper.Viper
	cfgFile string
	debug   bool
	cfg     config.Config
	cfgPath string
}

// NewRootCmd builds the command tree with a fresh viper instance.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "markview [file]",
		Short: "A terminal viewer for Markdown documents",
		Long: `markview renders a Markdown document in a scrollable, selectable text view.
Pass "-" or pipe into it to read from stdin.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.load(cmd)
		},
		RunE: o.runApp,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.cfgFile, "config", "c", "", "config file (default: .markview/config.yaml, then ~/.config/markview/config.yaml)")
	pf.BoolVarP(&o.debug, "debug", "d", false, "write a debug log and enable the log overlay (ctrl+x)")

	f := root.Flags()
	f.BoolP("watch", "w", false, "reload the file when it changes on disk")
	f.BoolP("background", "b", false, "start with a filled background")
	f.Int("width", 0, "fixed container width (0 follows the terminal)")
	f.Int("max-height", 0, "maximum rows for the view (0 uses the config value)")
	f.String("align", "", "text alignment: left, center, right, justified")
	f.String("trace", "", "enable tracing with this exporter: file, stdout, otlp")

	for key, flag := range map[string]string{
		"watch.enabled":         "watch",
		"view.draws_background": "background",
		"view.container_width":  "width",
		"view.alignment":        "align",
	} {
		_ = o.v.BindPFlag(key, f.Lookup(flag))
	}

	root.AddCommand(newRenderCmd(o), newConfigCmd(o))
	return root
}

// load reads the config file, environment and flags into o.cfg.
func (o *rootOptions) load(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	cfg, path, err := loadConfig(o.v, o.cfgFile, wd)
	if err != nil {
		return err
	}
	if h, _ := cmd.Flags().GetInt("max-height"); h > 0 {
		cfg.View.MaxHeight = h
	}
	if exp, _ := cmd.Flags().GetString("trace"); exp != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Exporter = exp
	}
	if !o.debug {
		o.debug = o.v.GetBool("debug")
	}
	o.cfg = cfg
	o.cfgPath = path
	return nil
}

// loadConfig layers defaults, the config file and MARKVIEW_* environment
// variables. It returns the config file used, or "" when none was found.
func loadConfig(v *viper.Viper, explicit, dir string) (config.Config, string, error) {
	setDefaults(v, config.Defaults())
	v.SetEnvPrefix("MARKVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := paths.FindConfig(explicit, dir)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, "", fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "loaded config", "path", path)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

// setDefaults registers every default so environment variables can
// override keys that are absent from the file.
func setDefaults(v *viper.Viper, d config.Config) {
	for key, value := range map[string]any{
		"view.max_height":        d.View.MaxHeight,
		"view.draws_background":  d.View.DrawsBackground,
		"view.alignment":         d.View.Alignment,
		"view.container_width":   d.View.ContainerWidth,
		"view.width_padding":     d.View.WidthPadding,
		"view.inner_padding":     d.View.InnerPadding,
		"theme.label_color":      d.Theme.LabelColor,
		"theme.scrollbar_color":  d.Theme.ScrollbarColor,
		"theme.selection_color":  d.Theme.SelectionColor,
		"ui.help_style":          d.UI.HelpStyle,
		"ui.locale":              d.UI.Locale,
		"ui.mouse":               d.UI.Mouse,
		"watch.enabled":          d.Watch.Enabled,
		"watch.debounce":         d.Watch.Debounce,
		"log.path":               d.Log.Path,
		"log.level":              d.Log.Level,
		"cache.expiration":       d.Cache.Expiration,
		"cache.cleanup_interval": d.Cache.CleanupInterval,
		"tracing.enabled":        d.Tracing.Enabled,
		"tracing.exporter":       d.Tracing.Exporter,
		"tracing.file_path":      d.Tracing.FilePath,
		"tracing.otlp_endpoint":  d.Tracing.OTLPEndpoint,
		"tracing.sample_rate":    d.Tracing.SampleRate,
		"tracing.service_name":   d.Tracing.ServiceName,
		"debug":                  false,
	} {
		v.SetDefault(key, value)
	}
}

// source is the document to show.
type source struct {
	name string
	path string // empty for stdin
	text string
}

// readSource reads args[0], or stdin when there is no argument or it is "-".
func readSource(args []string, stdin io.Reader) (source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return source{}, fmt.Errorf("reading stdin: %w", err)
		}
		return source{name: "stdin", text: string(data)}, nil
	}
	path := paths.ExpandHome(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return source{name: filepath.Base(path), path: path, text: string(data)}, nil
}

// viewOptions translates the config into widget options.
func viewOptions(cfg config.Config, text string) (mdview.Options, error) {
	align, err := mdview.ParseAlignment(cfg.View.Alignment)
	if err != nil {
		return mdview.Options{}, err
	}
	localizer := localize.FromEnv()
	if cfg.UI.Locale != "" {
		localizer = localize.FromLocale(cfg.UI.Locale)
	}
	cache := cachemanager.NewInMemoryCacheManager[int]("measure", cfg.Cache.Expiration, cfg.Cache.CleanupInterval)

	return mdview.Options{
		Text:            text,
		DrawsBackground: cfg.View.DrawsBackground,
		MaxViewHeight:   cfg.View.MaxHeight,
		Alignment:       align,
		ContainerWidth:  cfg.View.ContainerWidth,
		WidthPadding:    cfg.View.WidthPadding,
		InnerPadding:    cfg.View.InnerPadding,
		LabelColor:      styles.LabelColor,
		Localizer:       localizer,
		Measurer:        layout.NewCachedMeasurer(layout.CharWrapMeasurer{}, cache),
	}, nil
}

// startTracing builds the tracer provider. The returned func flushes it.
func startTracing(cfg config.Config) (*tracing.Provider, func(), error) {
	tp, err := tracing.NewProvider(cfg.ResolveTracing())
	if err != nil {
		return nil, nil, fmt.Errorf("starting tracing: %w", err)
	}
	return tp, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
		}
	}, nil
}

func (o *rootOptions) runApp(cmd *cobra.Command, args []string) error {
	if o.debug {
		cleanup, err := log.InitFile(o.cfg.Log.Path, "markview", log.ParseLevel(o.cfg.Log.Level))
		if err != nil {
			return err
		}
		defer cleanup()
	}

	if err := styles.ApplyTheme(o.cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	src, err := readSource(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	tp, shutdown, err := startTracing(o.cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	opts, err := viewOptions(o.cfg, src.text)
	if err != nil {
		return err
	}
	opts.Tracer = tp.Tracer()

	watchPath := ""
	if o.cfg.Watch.Enabled {
		if src.path == "" {
			log.Warn(log.CatWatcher, "watch ignored for stdin")
		} else {
			watchPath = src.path
		}
	}

	// Query the background color before the program owns stdin so the
	// terminal's reply is not read as input.
	_ = lipgloss.HasDarkBackground()
	zone.NewGlobal()

	model := app.New(app.Config{
		Source:    src.name,
		View:      opts,
		WatchPath: watchPath,
		Debounce:  o.cfg.Watch.Debounce,
		HelpStyle: o.cfg.UI.HelpStyle,
		Debug:     o.debug,
		Flags:     flags.New(o.cfg.Flags),
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if o.cfg.UI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	if src.path == "" {
		// stdin carried the document; keys come from the terminal.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(&model, progOpts...).Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
