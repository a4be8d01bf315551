package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bus-route/pkg/content"
	"bus-route/pkg/week"
)

// newShowWeekCmd creates a new command for showing week details
func newShowWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-week [slug]",
		Short: "Show a specific week",
		Long:  `Show detailed information about the week identified by its slug.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closer, err := loadStore(cmd)
			if err != nil {
				return err
			}
			defer closer()
			return showWeek(cmd.OutOrStdout(), store, args[0])
		},
	}
}

// showWeek displays details about a specific week
func showWeek(out io.Writer, store *content.Store, slug string) error {
	w, ok := store.WeekBySlug(slug)
	if !ok {
		return fmt.Errorf("week not found: %s", slug)
	}

	fmt.Fprintf(out, "Week %d: %s\n", w.WeekNumber, w.Title)
	fmt.Fprintf(out, "Stop: %s\n", w.StopName)
	fmt.Fprintf(out, "Date: %s\n", w.DateDisplay)
	fmt.Fprintf(out, "Status: %s\n", w.Status)
	fmt.Fprintf(out, "URL: %s\n", w.Href())
	if w.HasFeaturedImage() {
		fmt.Fprintf(out, "Featured: %s\n", w.FeaturedImage.Src)
	}
	if desc := week.MetaDescription(w.Essay); desc != "" {
		fmt.Fprintf(out, "Description: %s\n", desc)
	}
	fmt.Fprintf(out, "Paragraphs: %d\n", len(week.SplitEssay(w.Essay)))
	fmt.Fprintf(out, "Images: %d\n", len(w.Images))
	fmt.Fprintln(out, "================")

	for i, img := range w.Images {
		fmt.Fprintf(out, "%d. %s\n", i+1, img.Src)
		if img.Caption != "" {
			fmt.Fprintf(out, "   Caption: %s\n", img.Caption)
		}
	}

	adj := store.AdjacentWeeks(w.WeekNumber)
	if adj.Prev != nil {
		fmt.Fprintf(out, "Previous: %s (%s)\n", adj.Prev.Title, adj.Prev.Slug)
	}
	if adj.Next != nil {
		fmt.Fprintf(out, "Next: %s (%s)\n", adj.Next.Title, adj.Next.Slug)
	}
	return nil
}
