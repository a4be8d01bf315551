package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"bus-route/pkg/content"
	"bus-route/pkg/models"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// newExportCmd creates a new command for exporting route data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export route data",
		Long:  `Export the content document with weeks ordered by week number. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" {
				return fmt.Errorf("%w: %s (supported: json)", ErrUnsupportedFormat, format)
			}

			store, closer, err := loadStore(cmd)
			if err != nil {
				return err
			}
			defer closer()
			return exportData(cmd.OutOrStdout(), store)
		},
	}
}

// exportData writes the document as indented JSON
func exportData(out io.Writer, store *content.Store) error {
	weeks := store.AllWeeks()

	// Sort weeks by number for consistent output
	slices.SortStableFunc(weeks, func(a, b models.Week) int {
		return a.WeekNumber - b.WeekNumber
	})

	doc := models.Document{Weeks: weeks, Route: store.RouteConfig()}
	if site := store.Site(); site != nil {
		doc.Site = *site
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
