package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"threadboard/internal/config"
	"threadboard/internal/repository/sqlite"
	"threadboard/internal/storage"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload a snapshot of the database to S3",
	Long: `Take a consistent snapshot of the sqlite database, upload it to the
configured bucket and prune backups beyond FORUM_STORAGE_KEEP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		backups, err := buildBackups(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		dest, err := backups.Run(cmd.Context(), func(ctx context.Context, path string) error {
			return sqlite.Snapshot(ctx, db, path)
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dest)
		return nil
	},
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List stored backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		backups, err := buildBackups(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		objects, err := backups.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tSIZE\tMODIFIED")
		for _, obj := range objects {
			modified := "-"
			if obj.LastModified != nil {
				modified = obj.LastModified.Local().Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", obj.Key, storage.FormatBytes(obj.Size), modified)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(backupsCmd)
}

func buildBackups(ctx context.Context, cfg config.Config) (*storage.Backups, error) {
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Debugf("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)

	return storage.NewBackups(storage.NewS3Service(client), storage.BackupConfig{
		Bucket: cfg.Storage.Bucket,
		Prefix: cfg.Storage.KeyPrefix,
		Keep:   cfg.Storage.Keep,
		Logger: logger,
	}), nil
}

