package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"mdbook/internal/book"
	"mdbook/internal/document"

	"github.com/spf13/cobra"
)

// editFlags are shared by every edit subcommand.
type editFlags struct {
	content  string
	fromFile string
	dryRun   bool
	noBackup bool
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.content, "content", "c", "", "content to apply")
	cmd.Flags().StringVarP(&f.fromFile, "file", "f", "", "read content from a file (\"-\" for stdin)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show the diff without writing")
	cmd.Flags().BoolVar(&f.noBackup, "no-backup", false, "skip the timestamped backup before writing")
}

// resolveContent returns the edit content from --content, --file or stdin.
func (f *editFlags) resolveContent() (string, error) {
	if f.content != "" && f.fromFile != "" {
		return "", errors.New("--content and --file are mutually exclusive")
	}
	if f.content != "" {
		return f.content, nil
	}
	if f.fromFile == "" {
		return "", errors.New("content required: pass --content or --file")
	}
	if f.fromFile == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(f.fromFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.fromFile, err)
	}
	return string(raw), nil
}

func (f *editFlags) options(app *appContext) book.EditOptions {
	backup := !f.noBackup
	if app.cfg != nil && !app.cfg.Backup {
		backup = false
	}
	return book.EditOptions{DryRun: f.dryRun, Backup: backup}
}

// reportEdit prints an edit result and returns an error when the edit was
// rejected, so the process exits non-zero.
func reportEdit(res book.EditResult) error {
	if !res.OK {
		fmt.Println(errorStyle.Render("✗ ") + res.Message)
		for _, w := range res.Warnings {
			fmt.Println(warnStyle.Render("  warning: " + w))
		}
		if res.Diff != "" {
			fmt.Println(faintStyle.Render("Rejected change:"))
			fmt.Println(res.Diff)
		}
		return errors.New("edit rejected")
	}

	fmt.Println(successStyle.Render("✓ ") + res.Message)
	if res.BackupPath != "" {
		fmt.Println(faintStyle.Render("Backup: " + res.BackupPath))
	}
	if !res.Written {
		fmt.Println(faintStyle.Render("Dry run, nothing written."))
		if res.Diff != "" {
			fmt.Println(res.Diff)
		}
	}
	return nil
}

func parseChapterArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid chapter number %q", arg)
	}
	return n, nil
}

func newEditCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit chapter content",
	}
	cmd.AddCommand(
		newEditUpdateCmd(app),
		newEditAppendCmd(app),
		newEditInsertCmd(app),
		newEditReplaceCmd(app),
	)
	return cmd
}

func newEditUpdateCmd(app *appContext) *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "update <chapter>",
		Short: "Replace a chapter's whole body, keeping frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			content, err := flags.resolveContent()
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			res, err := b.UpdateChapter(number, content, flags.options(app))
			if err != nil {
				return err
			}
			return reportEdit(res)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditAppendCmd(app *appContext) *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "append <chapter>",
		Short: "Append content to the end of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			content, err := flags.resolveContent()
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			res, err := b.AppendToChapter(number, content, flags.options(app))
			if err != nil {
				return err
			}
			return reportEdit(res)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditInsertCmd(app *appContext) *cobra.Command {
	var flags editFlags
	var section, position string

	cmd := &cobra.Command{
		Use:   "insert <chapter>",
		Short: "Insert content before or after a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			if section == "" {
				return errors.New("--section is required")
			}
			pos := document.InsertPosition(position)
			if pos != document.InsertBefore && pos != document.InsertAfter {
				return fmt.Errorf("invalid --position %q, want \"before\" or \"after\"", position)
			}
			content, err := flags.resolveContent()
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			res, err := b.InsertAtSection(number, document.ParseSectionRef(section), content, pos, flags.options(app))
			if err != nil {
				return err
			}
			return reportEdit(res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&section, "section", "s", "", "section heading text or numeric index")
	cmd.Flags().StringVarP(&position, "position", "p", "after", "insert \"before\" or \"after\" the section")
	return cmd
}

func newEditReplaceCmd(app *appContext) *cobra.Command {
	var flags editFlags
	var section string
	var dropHeading bool

	cmd := &cobra.Command{
		Use:   "replace <chapter>",
		Short: "Replace one section of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			if section == "" {
				return errors.New("--section is required")
			}
			content, err := flags.resolveContent()
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			res, err := b.ReplaceSection(number, document.ParseSectionRef(section), content, !dropHeading, flags.options(app))
			if err != nil {
				return err
			}
			return reportEdit(res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&section, "section", "s", "", "section heading text or numeric index")
	cmd.Flags().BoolVar(&dropHeading, "drop-heading", false, "replace the heading too instead of preserving it")
	return cmd
}
