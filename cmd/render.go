package cmd

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/ui/mdview"
	"github.com/zjrosen/markview/internal/ui/styles"
)

// renderAllRows stands in for "no cap" when printing a whole document.
const renderAllRows = 1 << 20

func newRenderCmd(o *rootOptions) *cobra.Command {
	var (
		width      int
		maxHeight  int
		background bool
		plain      bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print the laid-out document once and exit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.debug {
				log.InitWriter(cmd.ErrOrStderr(), log.ParseLevel(o.cfg.Log.Level))
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
			opts.ContainerWidth = width
			opts.DrawsBackground = background || o.cfg.View.DrawsBackground
			opts.MaxViewHeight = renderAllRows
			if maxHeight > 0 {
				opts.MaxViewHeight = maxHeight
			}

			out, err := renderOnce(opts)
			if err != nil {
				return err
			}
			if plain {
				out = ansi.Strip(out)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "container width in columns")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "maximum rows (0 prints everything)")
	cmd.Flags().BoolVarP(&background, "background", "b", false, "filled background")
	cmd.Flags().BoolVar(&plain, "plain", false, "strip colors and styles")
	return cmd
}

// renderOnce runs one layout pass and returns the widget's view.
func renderOnce(opts mdview.Options) (string, error) {
	if opts.ContainerWidth <= 0 {
		return "", fmt.Errorf("--width must be > 0, got %d", opts.ContainerWidth)
	}
	view := mdview.New(opts)
	if _, ok := view.RecomputeLayout(); !ok {
		return "", nil
	}
	return view.View(), nil
}
