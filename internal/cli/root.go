// Package cli wires every book operation into a cobra command tree. The
// commands are thin: they resolve the book root, call into the internal
// packages, and style the result for the terminal.
package cli

import (
	"fmt"
	"os"

	"mdbook/internal/book"
	"mdbook/internal/config"
	"mdbook/internal/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// appContext carries the pieces every command needs.
type appContext struct {
	logger *logging.AppLogger
	cfg    *config.Config
	// bookDir is the --book flag value; empty means fall back to the
	// configured default book and then the working directory.
	bookDir string
}

// resolveRoot picks the book root: the --book flag, then the configured
// default book, then the current directory.
func (a *appContext) resolveRoot() string {
	if a.bookDir != "" {
		return a.bookDir
	}
	if a.cfg != nil && a.cfg.DefaultBook != "" {
		return a.cfg.DefaultBook
	}
	return "."
}

// loadBook loads the resolved book or fails with a pointer at init.
func (a *appContext) loadBook() (*book.Book, error) {
	b, err := book.Load(a.resolveRoot())
	if err != nil {
		return nil, fmt.Errorf("%w (run \"mdbook init\" to create one)", err)
	}
	return b, nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd(logger *logging.AppLogger, cfg *config.Config) *cobra.Command {
	app := &appContext{logger: logger, cfg: cfg}

	root := &cobra.Command{
		Use:           "mdbook",
		Short:         "Manage, edit and render a markdown book",
		Long:          "mdbook manages a book of markdown chapters: discovery, section-level editing,\nSUMMARY.md maintenance, git history, HTML rendering and an MCP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.bookDir, "book", "b", "", "book root directory (default: configured book, then current directory)")

	root.AddCommand(
		newInitCmd(app),
		newNewCmd(app),
		newInfoCmd(app),
		newReadCmd(app),
		newSectionsCmd(app),
		newTocCmd(app),
		newTocGenCmd(app),
		newEditCmd(app),
		newHistoryCmd(app),
		newDiffCmd(app),
		newBuildCmd(app),
		newServeCmd(app),
		newMCPCmd(app),
	)
	return root
}

// Execute runs the CLI and maps failure onto a non-zero exit.
func Execute(logger *logging.AppLogger, cfg *config.Config) {
	if err := NewRootCmd(logger, cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
