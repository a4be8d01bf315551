package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bus-route/pkg/content"
)

// newListWeeksCmd creates a new command for listing weeks
func newListWeeksCmd() *cobra.Command {
	var publishedOnly bool

	cmd := &cobra.Command{
		Use:   "list-weeks",
		Short: "List all weeks on the route",
		Long:  `List every week in the content document with its status and stop name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closer, err := loadStore(cmd)
			if err != nil {
				return err
			}
			defer closer()
			listWeeks(cmd.OutOrStdout(), store, publishedOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&publishedOnly, "published", false, "Only list published weeks")
	return cmd
}

// listWeeks displays all weeks in document order
func listWeeks(out io.Writer, store *content.Store, publishedOnly bool) {
	weeks := store.AllWeeks()
	if publishedOnly {
		weeks = store.PublishedWeeks()
	}

	fmt.Fprintln(out, "Weeks:")
	fmt.Fprintln(out, "================")

	for _, week := range weeks {
		fmt.Fprintf(out, "%2d. %s [%s]\n", week.WeekNumber, week.Title, week.Status)
		fmt.Fprintf(out, "    Stop: %s  Date: %s  Slug: %s\n", week.StopName, week.DateDisplay, week.Slug)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d weeks, %d published\n", len(weeks), len(store.PublishedWeeks()))
}
