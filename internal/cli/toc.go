package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sections <chapter>",
		Short: "List the sections of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[0])
			}

			b, err := app.loadBook()
			if err != nil {
				return err
			}
			ch, sections, err := b.Sections(number)
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title)))
			for _, sec := range sections {
				heading := sec.Heading
				if !sec.HasHeading() {
					heading = faintStyle.Render("(preamble)")
				}
				fmt.Printf("%3d  %s %s\n", sec.Index, heading,
					faintStyle.Render(fmt.Sprintf("(lines %d-%d)", sec.StartLine, sec.EndLine)))
			}
			return nil
		},
	}
}

func newTocCmd(app *appContext) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Update SUMMARY.md from the chapters on disk",
		Long:  "Reconciles SUMMARY.md with the chapter files. By default existing hierarchy\n(group headers, nesting) is preserved and only new files are appended;\n--flat regenerates a single-level outline.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			res, err := b.UpdateTOC(flat)
			if err != nil {
				return err
			}

			mode := "preserved structure"
			if flat {
				mode = "flat structure"
			}
			fmt.Printf("%sUpdated %s (%s): %d added, %d existing\n",
				successStyle.Render("✓ "), b.SummaryPath(), mode, len(res.Added), len(res.Existing))
			for _, added := range res.Added {
				fmt.Println(faintStyle.Render("  + " + added))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("preserve-structure", "P", true, "preserve existing hierarchy")
	cmd.Flags().BoolVar(&flat, "flat", false, "regenerate a flat outline, discarding nesting")
	_ = cmd.Flags().MarkHidden("preserve-structure")
	return cmd
}

func newTocGenCmd(app *appContext) *cobra.Command {
	var includeSections bool

	cmd := &cobra.Command{
		Use:   "toc-gen",
		Short: "Print an outline preview without writing SUMMARY.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}

			outline, err := b.GenerateOutline(includeSections)
			if err != nil {
				return err
			}
			fmt.Print(outline)
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeSections, "include-sections", false, "nest each chapter's ## headings")
	return cmd
}
