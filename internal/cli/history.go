package cli

import (
	"fmt"

	"mdbook/internal/history"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *appContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <chapter>",
		Short: "Show the git history of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			ch, err := b.Chapter(number)
			if err != nil {
				return err
			}

			svc, err := history.Open(b.Root, app.logger)
			if err != nil {
				return err
			}
			commits, err := svc.FileHistory(ch.RelPath, limit)
			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("History of chapter %d: %s", ch.Number, ch.Title)))
			for _, c := range commits {
				fmt.Printf("%s  %s  %s  %s\n",
					warnStyle.Render(c.ShortHash),
					c.Date.Format("2006-01-02"),
					faintStyle.Render(c.Author),
					c.Summary())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum commits to show")
	return cmd
}

func newDiffCmd(app *appContext) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "diff <chapter>",
		Short: "Diff a chapter between two git revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			b, err := app.loadBook()
			if err != nil {
				return err
			}
			ch, err := b.Chapter(number)
			if err != nil {
				return err
			}

			svc, err := history.Open(b.Root, app.logger)
			if err != nil {
				return err
			}
			diff, err := svc.FileDiff(ch.RelPath, from, to)
			if err != nil {
				return err
			}

			if diff.Patch == "" {
				fmt.Println(faintStyle.Render(fmt.Sprintf("No changes to %s between %s and %s.", ch.RelPath, from, to)))
				return nil
			}
			fmt.Printf("%s %s..%s %s\n",
				headerStyle.Render(ch.RelPath), from, to,
				faintStyle.Render(fmt.Sprintf("(+%d -%d)", diff.Additions, diff.Deletions)))
			fmt.Print(diff.Patch)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "HEAD~1", "older revision")
	cmd.Flags().StringVar(&to, "to", "HEAD", "newer revision")
	return cmd
}
