package cli

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ankek/flow-cartography/internal/config"
	"github.com/ankek/flow-cartography/internal/flow"
	"github.com/ankek/flow-cartography/internal/parser"
	"github.com/ankek/flow-cartography/internal/renderer"
	"github.com/ankek/flow-cartography/internal/validation"
)

// renderOpts holds the command-line flags for the render command. Zero
// values defer to the config file, which defers to built-in defaults.
type renderOpts struct {
	output     string  // output image path
	format     string  // png or jpeg
	scale      float64 // logical-unit to pixel factor
	title      string  // title bar override
	font       string  // TTF file replacing the bundled body font
	configPath string  // flowcart.toml location
}

// newRenderCmd creates the render command. The single argument is a flow
// definition: a .flow-meta.xml export, an .hcl flow file, or an http(s) URL.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [flow file or URL]",
		Short: "Render a flow definition to a diagram image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path (default: input base + format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "render scale (default 1.35)")
	cmd.Flags().StringVar(&opts.title, "title", "", "override the diagram title")
	cmd.Flags().StringVar(&opts.font, "font", "", "TTF file replacing the bundled body font")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file with render defaults")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	scale := opts.scale
	if scale == 0 {
		scale = cfg.Scale
	}
	format := opts.format
	if format == "" {
		format = cfg.Format
	}
	fontPath := opts.font
	if fontPath == "" {
		fontPath = cfg.Font
	}

	p := newProgress(logger)
	g, err := loadGraph(ctx, input, cfg)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Parsed %d nodes and %d edges", len(g.Nodes), len(g.Edges)))

	output := opts.output
	if output == "" {
		output = defaultOutputPath(input, format)
	}
	if err := validation.ValidateOutputPath(output); err != nil {
		return err
	}

	rp := newProgress(logger)
	ropts := renderer.RenderOptions{Scale: scale, Title: opts.title, FontPath: fontPath}
	if err := renderer.ExportDiagram(ctx, g, output, format, ropts); err != nil {
		return err
	}
	rp.done("Wrote " + output)
	return nil
}

// loadGraph routes the input to the right parser: URLs through the remote
// fetcher (XML body assumed), .hcl files through the HCL parser, everything
// else through the Flow XML parser.
func loadGraph(ctx context.Context, input string, cfg config.Config) (*flow.Graph, error) {
	if parser.IsRemote(input) {
		remote := &parser.RemoteConfig{Username: cfg.Remote.Username, Password: cfg.Remote.Password}
		data, err := parser.FetchDefinition(ctx, input, remote)
		if err != nil {
			return nil, err
		}
		return parser.ParseFlow(data, remoteTitle(input))
	}

	if err := validation.ValidateInputPath(input); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(input), ".hcl") {
		return parser.ParseHCLFile(input)
	}
	return parser.ParseFlowFile(input)
}

// defaultOutputPath derives the output path from the input name and format:
// "escalation.flow-meta.xml" becomes "escalation.flow-meta.png".
func defaultOutputPath(input, format string) string {
	base := input
	if parser.IsRemote(input) {
		if u, err := url.Parse(input); err == nil && u.Path != "" {
			base = filepath.Base(u.Path)
		} else {
			base = "flow"
		}
	}
	ext := ".png"
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		ext = ".jpg"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// remoteTitle derives a fallback diagram title from the URL path.
func remoteTitle(input string) string {
	u, err := url.Parse(input)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "Flow"
	}
	base := filepath.Base(u.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
