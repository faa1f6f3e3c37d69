package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"mdbook/internal/book"
	"mdbook/internal/mcp"
	"mdbook/internal/preview"
	"mdbook/internal/render"

	"github.com/spf13/cobra"
)

func (a *appContext) theme() string {
	if a.cfg != nil && a.cfg.Theme != "" {
		return a.cfg.Theme
	}
	return "light"
}

func newBuildCmd(app *appContext) *cobra.Command {
	var output, theme string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the whole book to static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			if theme == "" {
				theme = app.theme()
			}
			if output == "" {
				output = filepath.Join(b.Root, "build")
			}

			files, err := render.New(theme).Build(b, output)
			if err != nil {
				return err
			}
			fmt.Printf("%sRendered %d pages to %s\n", successStyle.Render("✓ "), len(files), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: <book>/build)")
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: configured theme)")
	return cmd
}

func newServeCmd(app *appContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the book over local HTTP, rendering on the fly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.resolveRoot()
			if _, err := book.Load(root); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := preview.NewServer(root, render.New(app.theme()), app.logger)
			return srv.Serve(ctx, port, func(addr string) {
				fmt.Println("Serving book at " + headerStyle.Render(addr))
				fmt.Println(faintStyle.Render("Press Ctrl+C to stop."))
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to serve on (default: first free in 3500-3509)")
	return cmd
}

func newMCPCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Long:  "Exposes the book operations as Model Context Protocol tools for AI\nassistants. Communicates over stdin/stdout; run it from an MCP client.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := app.resolveRoot()
			if _, err := book.Load(root); err != nil {
				return err
			}
			return mcp.NewServer(root, app.logger).Start()
		},
	}
}
