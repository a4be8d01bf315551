package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bus-route/pkg/app"
	"bus-route/pkg/config"
	"bus-route/pkg/page"
	"bus-route/pkg/route"
	"bus-route/pkg/week"
)

// Frame schedulers for render
const (
	FramesManual = "manual"
	FramesLoop   = "loop"
)

// ErrUnknownFrames is returned for an unrecognised --frames value
var ErrUnknownFrames = errors.New("unknown frame scheduler")

// newRenderCmd creates a new command for previewing a page headlessly
func newRenderCmd() *cobra.Command {
	var (
		slug   string
		frames string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a page preview",
		Long: `Render the route page, or a week page with --week, against the configured
content and print the resulting page containers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames != FramesManual && frames != FramesLoop {
				return fmt.Errorf("%w: %s (supported: manual, loop)", ErrUnknownFrames, frames)
			}
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return renderPage(cmd, cfg, slug, cmd.Flags().Changed("week"), frames)
		},
	}

	cmd.Flags().StringVarP(&slug, "week", "w", "", "Render the week page for this slug")
	cmd.Flags().StringVar(&frames, "frames", FramesManual, "Frame scheduler: manual (flush once) or loop (run on a frame loop)")
	return cmd
}

// renderPage runs one page view and writes the page out
func renderPage(cmd *cobra.Command, cfg *config.Config, slug string, weekPage bool, frames string) error {
	store, closer, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer closer()

	env := app.Env{
		Events: page.NewDispatcher(),
		Store:  store,
		Logger: logger,
	}

	var containers []string
	if weekPage {
		containers = []string{"header", "main", week.ContentID}
		env.Doc = page.NewDocument(url.Values{week.QueryParam: {slug}}.Encode(), containers...)
	} else {
		containers = []string{"header", "main", route.StopsID}
		env.Doc = page.NewDocument("", containers...)
	}

	view := func(ctx context.Context) error {
		if weekPage {
			_, err := app.RunWeek(ctx, env)
			return err
		}
		_, err := app.RunRoute(ctx, env)
		return err
	}

	ctx := cmd.Context()
	if frames == FramesLoop {
		loop := page.NewLoop(page.FrameInterval)
		env.Frames = loop
		var viewErr error
		if err := loop.Settle(ctx, func() { viewErr = view(ctx) }); err != nil {
			return err
		}
		if viewErr != nil {
			return viewErr
		}
	} else {
		manual := &page.ManualFrames{}
		env.Frames = manual
		if err := view(ctx); err != nil {
			return err
		}
		manual.Flush()
	}

	logger.Debug("Page rendered", zap.String("frames", frames), zap.Int("navigations", len(env.Doc.Navigations())))
	writePage(cmd.OutOrStdout(), env.Doc, containers)
	return nil
}

func writePage(out io.Writer, doc *page.Document, containers []string) {
	if doc.Title != "" {
		fmt.Fprintf(out, "<title>%s</title>\n", doc.Title)
	}
	if desc := doc.Meta("description"); desc != "" {
		fmt.Fprintf(out, "<meta name=\"description\" content=%q>\n", desc)
	}
	for _, id := range containers {
		el, ok := doc.Element(id)
		if !ok || el.HTML == "" {
			continue
		}
		fmt.Fprintf(out, "<!-- #%s -->\n%s\n", id, el.HTML)
	}
}
