package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bus-route/pkg/content"
	"bus-route/pkg/models"
)

// ErrMissingAssets is returned when referenced images are not in the bucket
var ErrMissingAssets = errors.New("missing assets")

// newCheckAssetsCmd creates a new command for verifying image assets
func newCheckAssetsCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		webp   bool
	)

	cmd := &cobra.Command{
		Use:   "check-assets",
		Short: "Check that every referenced image exists in the bucket",
		Long: `List the objects of the Cloud Storage bucket holding the site and report
featured and gallery images referenced by published weeks that are missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			if bucket == "" {
				gcs, err := content.ParseGCSSource(cfg.Content)
				if err != nil {
					return fmt.Errorf("no --bucket given and content is not in a bucket: %w", err)
				}
				bucket = gcs.Bucket
			}

			store, closer, err := newStore(cfg)
			if err != nil {
				return err
			}
			defer closer()
			if _, err := store.Load(cmd.Context()); err != nil {
				return err
			}

			objects, err := (&content.GCSSource{Bucket: bucket}).ListObjects(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			logger.Debug("Listed bucket", zap.String("bucket", bucket), zap.Int("objects", len(objects)))

			missing := missingAssets(store.PublishedWeeks(), objects, prefix, webp)
			return reportAssets(cmd.OutOrStdout(), missing, len(objects))
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket holding the site (defaults to the content bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Object prefix the site is published under")
	cmd.Flags().BoolVar(&webp, "webp", false, "Also require the .webp variant of every .jpg")
	return cmd
}

// missingAssets returns the image paths referenced by weeks that are not in objects
func missingAssets(weeks []models.Week, objects map[string]bool, prefix string, webp bool) []string {
	var missing []string
	seen := make(map[string]bool)

	check := func(src string) {
		if src == "" || strings.Contains(src, "://") {
			return
		}
		name := prefix + strings.TrimPrefix(src, "/")
		if seen[name] {
			return
		}
		seen[name] = true
		if !objects[name] {
			missing = append(missing, name)
		}
	}

	for _, week := range weeks {
		images := week.Images
		if week.HasFeaturedImage() {
			images = append([]models.Image{*week.FeaturedImage}, images...)
		}
		for _, img := range images {
			check(img.Src)
			if webp {
				if alt := img.WebP(); alt != img.Src {
					check(alt)
				}
			}
		}
	}
	return missing
}

func reportAssets(out io.Writer, missing []string, total int) error {
	fmt.Fprintf(out, "Objects in bucket: %d\n", total)
	if len(missing) == 0 {
		fmt.Fprintln(out, "All referenced images are present")
		return nil
	}

	fmt.Fprintln(out, "Missing images:")
	fmt.Fprintln(out, "================")
	for _, name := range missing {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return fmt.Errorf("%w: %d", ErrMissingAssets, len(missing))
}
