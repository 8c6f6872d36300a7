package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/kerbaras/fitguide/pkg/assets"
	"github.com/kerbaras/fitguide/pkg/catalog"
	fgerr "github.com/kerbaras/fitguide/pkg/errors"
	"github.com/kerbaras/fitguide/pkg/logging"
)

// Sync statuses reported on the progress channel.
const (
	SyncChecking    = "checking"
	SyncDownloading = "downloading"
	SyncComplete    = "complete"
	SyncSkipped     = "skipped"
	SyncMissing     = "missing"
	SyncError       = "error"
)

// SyncProgress represents the progress of one media file.
type SyncProgress struct {
	Exercise string
	Gender   catalog.Gender
	Path     string
	Current  int
	Total    int
	Status   string
	Attempts int
	Error    error
}

// SyncItem is one declared media path to mirror.
type SyncItem struct {
	Exercise string
	Gender   catalog.Gender
	Src      string
}

// SyncResult counts outcomes of a Sync run.
type SyncResult struct {
	Downloaded int
	Skipped    int
	Missing    int
	Failed     int
	Errors     []error
}

// SyncItems lists every body-type variant with media in c, sorted by body
// type then exercise.
func SyncItems(c *catalog.Catalog) []SyncItem {
	var items []SyncItem
	for _, g := range catalog.Genders {
		for _, name := range c.Names(g) {
			ex, _ := c.Lookup(name, g)
			v, ok := ex.Variant(g)
			if !ok || v.ImagePath == "" || assets.IsURL(v.ImagePath) {
				continue
			}
			items = append(items, SyncItem{Exercise: name, Gender: g, Src: v.ImagePath})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Gender != items[j].Gender {
			return items[i].Gender < items[j].Gender
		}
		return items[i].Exercise < items[j].Exercise
	})
	return items
}

// SyncerConfig configures an AssetSyncer. Zero values take defaults.
type SyncerConfig struct {
	Remote      string // base URL of the asset host
	AssetDir    string // local directory served as "/"
	Concurrency int
	Interval    time.Duration // minimum spacing between downloads
	Client      *http.Client
	Logger      *slog.Logger
}

// AssetSyncer mirrors exercise media from a remote host into the local asset
// directory. Each file walks the fallback cascade against the remote and is
// stored under its canonical path.
type AssetSyncer struct {
	remote       *assets.HTTPProber
	local        assets.FSProber
	client       *http.Client
	concurrency  int
	rateLimiter  *time.Ticker
	progressChan chan SyncProgress
	closeOnce    sync.Once
	logger       *slog.Logger
}

func NewAssetSyncer(cfg SyncerConfig) *AssetSyncer {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond // 2 req/sec
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}

	remote := assets.NewHTTPProber(cfg.Remote)
	remote.Client = cfg.Client

	return &AssetSyncer{
		remote:       remote,
		local:        assets.FSProber{Root: cfg.AssetDir},
		client:       cfg.Client,
		concurrency:  cfg.Concurrency,
		rateLimiter:  time.NewTicker(cfg.Interval),
		progressChan: make(chan SyncProgress, 100),
		logger:       logging.OrDiscard(cfg.Logger),
	}
}

// Progress returns the channel for receiving sync progress updates.
func (s *AssetSyncer) Progress() <-chan SyncProgress {
	return s.progressChan
}

// Sync mirrors items with bounded concurrency. Per-item failures are counted
// in the result; only cancellation returns an error.
func (s *AssetSyncer) Sync(ctx context.Context, items []SyncItem) (SyncResult, error) {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		result    SyncResult
		semaphore = make(chan struct{}, s.concurrency)
	)

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, item SyncItem) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()

			status, err := s.SyncOne(ctx, item, i+1, len(items))

			mu.Lock()
			defer mu.Unlock()
			switch status {
			case SyncComplete:
				result.Downloaded++
			case SyncSkipped:
				result.Skipped++
			case SyncMissing:
				result.Missing++
			default:
				if ctx.Err() == nil {
					result.Failed++
					result.Errors = append(result.Errors, fmt.Errorf("%s (%s): %w", item.Exercise, item.Gender, err))
				}
			}
		}(i, item)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// SyncOne mirrors a single item and returns its final status.
func (s *AssetSyncer) SyncOne(ctx context.Context, item SyncItem, current, total int) (string, error) {
	target := assets.FixAssetPath(item.Src)
	progress := SyncProgress{
		Exercise: item.Exercise,
		Gender:   item.Gender,
		Path:     target,
		Current:  current,
		Total:    total,
	}

	if ok, _ := s.local.Exists(ctx, target); ok {
		progress.Status = SyncSkipped
		s.sendProgress(progress)
		return SyncSkipped, nil
	}

	progress.Status = SyncChecking
	s.sendProgress(progress)

	loc, err := assets.Locate(ctx, s.remote, item.Src, item.Gender, s.logger)
	if err != nil {
		return s.fail(progress, err)
	}
	progress.Attempts = loc.Attempts
	if loc.Placeholder {
		s.logger.Warn("no remote media", "exercise", item.Exercise, "gender", item.Gender, "src", item.Src)
		progress.Status = SyncMissing
		s.sendProgress(progress)
		return SyncMissing, nil
	}

	select {
	case <-s.rateLimiter.C: // Rate limiting
	case <-ctx.Done():
		return s.fail(progress, ctx.Err())
	}

	progress.Status = SyncDownloading
	s.sendProgress(progress)

	if err := s.download(ctx, s.remote.URL(loc.Path), s.local.Path(target)); err != nil {
		return s.fail(progress, err)
	}

	progress.Status = SyncComplete
	s.sendProgress(progress)
	return SyncComplete, nil
}

func (s *AssetSyncer) fail(p SyncProgress, err error) (string, error) {
	p.Status = SyncError
	p.Error = err
	s.sendProgress(p)
	return SyncError, err
}

// download streams url into a temporary file next to dest and renames it
// into place once complete.
func (s *AssetSyncer) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeNetwork, "failed to fetch asset")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fgerr.Newf(fgerr.CodeAsset, "bad status: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to create asset directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".sync-*")
	if err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fgerr.Wrap(err, fgerr.CodeNetwork, "failed to read asset content")
	}
	if err := tmp.Close(); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to write asset")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fgerr.Wrap(err, fgerr.CodeStorage, "failed to store asset")
	}
	return nil
}

// sendProgress sends a progress update (non-blocking)
func (s *AssetSyncer) sendProgress(p SyncProgress) {
	select {
	case s.progressChan <- p:
	default:
		// Channel full, skip this update
	}
}

// Close stops the rate limiter and closes the progress channel. It must not
// be called while Sync is running.
func (s *AssetSyncer) Close() {
	s.closeOnce.Do(func() {
		s.rateLimiter.Stop()
		close(s.progressChan)
	})
}
