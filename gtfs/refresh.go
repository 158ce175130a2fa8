package gtfs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// requiredTables are the archive entries extracted into the dataset dir.
var requiredTables = []string{translationsFile, stopsFile, stopTimesFile}

// Refresher periodically downloads the schedule archive, extracts the
// tables the store needs and swaps the in-memory index. Failed downloads
// are retried with exponential backoff; failed cycles keep the previous
// dataset in place.
type Refresher struct {
	store      *Store
	url        string
	interval   time.Duration
	httpClient *http.Client
}

func NewRefresher(store *Store, archiveURL string, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Refresher{
		store:      store,
		url:        archiveURL,
		interval:   interval,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Run refreshes on a fixed interval until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshNow(ctx); err != nil {
				log.Error().Err(err).Msg("dataset refresh failed, keeping previous dataset")
			}
		}
	}
}

// RefreshNow downloads the archive, replaces the dataset files and
// reloads the store.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	archivePath, err := r.download(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	if err := r.extract(archivePath); err != nil {
		return err
	}
	return r.store.Reload()
}

func (r *Refresher) download(ctx context.Context) (string, error) {
	var path string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := r.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("archive download: %s", resp.Status)
		}

		tmp, err := os.CreateTemp("", "schedule-*.zip")
		if err != nil {
			return backoff.Permanent(err)
		}
		if _, err := io.Copy(tmp, resp.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return err
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return err
		}
		path = tmp.Name()
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Refresher) extract(archivePath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	extracted := 0
	for _, f := range zr.File {
		name := strings.ToLower(filepath.Base(f.Name))
		if !isRequiredTable(name) {
			continue
		}
		if err := extractFile(f, filepath.Join(r.store.dir, name)); err != nil {
			return err
		}
		extracted++
	}
	if extracted < len(requiredTables) {
		return fmt.Errorf("archive is missing required tables: got %d of %d", extracted, len(requiredTables))
	}
	log.Info().Str("url", r.url).Msg("schedule archive extracted")
	return nil
}

func isRequiredTable(name string) bool {
	for _, t := range requiredTables {
		if name == t {
			return true
		}
	}
	return false
}

// extractFile writes the entry to a temp file first so a failed extract
// never leaves a half-written table behind.
func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
