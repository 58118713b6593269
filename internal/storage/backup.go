package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const backupTimeLayout = "20060102T150405Z"

// Snapshotter writes a consistent copy of the database to dest.
type Snapshotter func(ctx context.Context, dest string) error

// BackupConfig describes where snapshots go and how many are retained.
type BackupConfig struct {
	Bucket string
	Prefix string
	// Keep is the number of newest backups retained by Prune; <= 0 keeps everything.
	Keep   int
	Logger *logrus.Logger
}

// Backups uploads database snapshots and prunes old ones.
type Backups struct {
	store Service
	cfg   BackupConfig
	now   func() time.Time
}

func NewBackups(store Service, cfg BackupConfig) *Backups {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	return &Backups{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Run snapshots the database, uploads it and prunes expired backups.
func (b *Backups) Run(ctx context.Context, snapshot Snapshotter) (string, error) {
	dir, err := os.MkdirTemp("", "forum-backup-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, "forum.db")
	if err := snapshot(ctx, local); err != nil {
		return "", fmt.Errorf("snapshot database: %w", err)
	}

	key := b.keyFor(b.now())
	logger := b.cfg.Logger.WithField("key", key)
	logger.Info("backup upload started")

	dest, err := b.store.UploadFile(ctx, local, UploadOptions{
		Bucket:           b.cfg.Bucket,
		Key:              key,
		ProgressCallback: newUploadProgressLogger(logger),
	})
	if err != nil {
		return "", err
	}
	logger.Infof("backup stored at %s", dest)

	if _, err := b.Prune(ctx); err != nil {
		logger.Warnf("prune backups: %v", err)
	}
	return dest, nil
}

// List returns stored backups, newest first.
func (b *Backups) List(ctx context.Context) ([]ObjectInfo, error) {
	objects, err := b.store.ListObjects(ctx, b.cfg.Bucket, b.listPrefix())
	if err != nil {
		return nil, err
	}
	sortNewestFirst(objects)
	return objects, nil
}

// Prune deletes every backup beyond the newest Keep and returns the removed keys.
func (b *Backups) Prune(ctx context.Context) ([]string, error) {
	if b.cfg.Keep <= 0 {
		return nil, nil
	}
	objects, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(objects) <= b.cfg.Keep {
		return nil, nil
	}

	keys := make([]string, 0, len(objects)-b.cfg.Keep)
	for _, obj := range objects[b.cfg.Keep:] {
		keys = append(keys, obj.Key)
	}
	if err := b.store.DeleteObjects(ctx, b.cfg.Bucket, keys); err != nil {
		return nil, err
	}
	b.cfg.Logger.Infof("pruned %d backups", len(keys))
	return keys, nil
}

func (b *Backups) keyFor(t time.Time) string {
	name := fmt.Sprintf("forum-%s.db", t.UTC().Format(backupTimeLayout))
	if b.cfg.Prefix == "" {
		return name
	}
	return b.cfg.Prefix + "/" + name
}

func (b *Backups) listPrefix() string {
	if b.cfg.Prefix == "" {
		return "forum-"
	}
	return b.cfg.Prefix + "/forum-"
}

// sortNewestFirst relies on the timestamp embedded in each key sorting lexically.
func sortNewestFirst(objects []ObjectInfo) {
	slices.SortFunc(objects, func(a, b ObjectInfo) int {
		return strings.Compare(b.Key, a.Key)
	})
}

func newUploadProgressLogger(logger *logrus.Entry) func(done, total int64) {
	var lastLog time.Time
	return func(done, total int64) {
		now := time.Now()
		if now.Sub(lastLog) < 500*time.Millisecond && done != total {
			return
		}
		lastLog = now
		if total == 0 {
			logger.Infof("upload progress: %s uploaded", FormatBytes(done))
			return
		}
		percent := float64(done) / float64(total) * 100
		logger.Infof("upload progress: %.1f%% (%s/%s)", percent, FormatBytes(done), FormatBytes(total))
	}
}

// FormatBytes renders a byte count with binary units, e.g. 1.5KiB.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB",
		float64(b)/float64(div),
		"KMGTPE"[exp],
	)
}
