package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vango-dev/marquee/internal/errors"
	"github.com/vango-dev/marquee/internal/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		bucket string
		prefix string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the built bundle to S3",
		Long: `Upload every file in build.dist to s3://publish.bucket/publish.prefix.

index.html is uploaded last with Cache-Control: no-cache. Credentials
come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and, when set,
AWS_SESSION_TOKEN.

Examples:
  marquee publish
  marquee publish --bucket=tickets-site --prefix=v2
  marquee publish --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if prefix != "" {
				cfg.Publish.Prefix = prefix
			}
			if cfg.Publish.Bucket == "" {
				return errors.New("M160").WithSuggestion("Set publish.bucket in marquee.json or pass --bucket")
			}

			var client publish.PutObjectAPI
			if !dryRun {
				s3Client, err := publish.NewS3Client(cfg.Publish.Region)
				if err != nil {
					return errors.New("M163").Wrap(err)
				}
				client = s3Client
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			p := publish.New(client, cfg.Publish.Bucket, cfg.Publish.Prefix,
				publish.WithDryRun(dryRun),
				publish.WithLogger(logger.With("component", "publish")),
			)
			res, err := p.Publish(ctx, cfg.DistPath())
			if err != nil {
				if stderrors.Is(err, os.ErrNotExist) || stderrors.Is(err, publish.ErrNotDir) {
					return errors.New("M162").Wrap(err)
				}
				return errors.New("M161").Wrap(err)
			}

			out := cmd.OutOrStdout()
			verb := "Uploaded"
			if dryRun {
				verb = "Would upload"
			}
			success(out, "%s %d files (%d bytes) to s3://%s/%s", verb, len(res.Objects), res.Bytes, cfg.Publish.Bucket, p.Key(""))
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default publish.bucket)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default publish.prefix)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List files without uploading")

	return cmd
}
