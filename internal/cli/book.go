package cli

import (
	"fmt"

	"mdbook/internal/book"
	"mdbook/internal/ui"

	"github.com/spf13/cobra"
)

func newInitCmd(app *appContext) *cobra.Command {
	var title, author string
	var setDefault bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new book project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if title == "" {
				title = "My Book"
			}

			b, err := book.Init(dir, title, author)
			if err != nil {
				return err
			}
			app.logger.Info("Book initialized", "root", b.Root, "title", title)
			fmt.Println(successStyle.Render("✓ ") + "Created book " + headerStyle.Render(title) + " at " + b.Root)

			if setDefault && app.cfg != nil {
				if err := app.cfg.SetDefaultBook(b.Root); err != nil {
					return fmt.Errorf("book created but default not saved: %w", err)
				}
				fmt.Println(faintStyle.Render("Set as default book."))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "book title")
	cmd.Flags().StringVarP(&author, "author", "a", "", "book author")
	cmd.Flags().BoolVar(&setDefault, "default", false, "record this book as the default")
	return cmd
}

func newNewCmd(app *appContext) *cobra.Command {
	var draft bool

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Add a new chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			ch, err := b.AddChapter(args[0], draft)
			if err != nil {
				return err
			}
			fmt.Printf("%sCreated chapter %d: %s (%s)\n",
				successStyle.Render("✓ "), ch.Number, ch.Title, ch.RelPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&draft, "draft", false, "mark the chapter as a draft")
	return cmd
}

func newInfoCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show book metadata and chapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(b.Meta.Title))
			if b.Meta.Author != "" {
				fmt.Println("by " + b.Meta.Author)
			}
			if b.Meta.Description != "" {
				fmt.Println(b.Meta.Description)
			}
			fmt.Println(faintStyle.Render(b.Root))
			fmt.Printf("\n%d chapters:\n", len(b.Chapters))
			for _, ch := range b.Chapters {
				label := fmt.Sprintf("%3d", ch.Number)
				if ch.IsIntro() {
					label = "  I"
				}
				line := fmt.Sprintf("%s  %s", label, ch.Title)
				if ch.Draft {
					line += warnStyle.Render("  [draft]")
				}
				fmt.Println(line + faintStyle.Render("  "+ch.RelPath))
			}
			return nil
		},
	}
}

func newReadCmd(app *appContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "read [chapter]",
		Short: "Read the book in the interactive terminal reader",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.loadBook()
			if err != nil {
				return err
			}

			number := -1
			if len(args) == 1 {
				if _, err := fmt.Sscanf(args[0], "%d", &number); err != nil {
					return fmt.Errorf("invalid chapter number %q", args[0])
				}
			}

			if plain {
				if number < 0 {
					return fmt.Errorf("--plain requires a chapter number")
				}
				_, raw, err := b.ReadChapter(number)
				if err != nil {
					return err
				}
				fmt.Print(raw)
				return nil
			}
			return ui.Run(b, number, app.logger)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the raw chapter instead of the interactive reader")
	return cmd
}
