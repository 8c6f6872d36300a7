package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kerbaras/fitguide/pkg/catalog"
	fgerr "github.com/kerbaras/fitguide/pkg/errors"
	"github.com/kerbaras/fitguide/pkg/logging"
)

// Prober checks whether a servable path exists.
type Prober interface {
	Exists(ctx context.Context, p string) (bool, error)
}

// FSProber looks paths up below Root.
type FSProber struct {
	Root string
}

func (p FSProber) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if IsURL(name) {
		return false, nil
	}
	info, err := os.Stat(p.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Path maps a servable path to a file below Root. Cleaning against "/"
// keeps ".." from escaping Root.
func (p FSProber) Path(name string) string {
	clean := path.Clean("/" + name)
	return filepath.Join(p.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

// HTTPProber issues HEAD requests against BaseURL.
type HTTPProber struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPProber(baseURL string) *HTTPProber {
	return &HTTPProber{BaseURL: strings.TrimRight(baseURL, "/"), Client: http.DefaultClient}
}

// URL returns the absolute URL probed for p.
func (p *HTTPProber) URL(name string) string {
	if IsURL(name) {
		return name
	}
	return p.BaseURL + name
}

func (p *HTTPProber) Exists(ctx context.Context, name string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.URL(name), nil)
	if err != nil {
		return false, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false, fgerr.Wrap(err, fgerr.CodeNetwork, "probe failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return false, nil
	}
	return false, fgerr.Newf(fgerr.CodeAsset, "probe %s: unexpected status %d", name, resp.StatusCode)
}

// Location is the outcome of Locate.
type Location struct {
	Path        string
	Attempts    int
	Placeholder bool
}

// Locate walks the fallback cascade for src one path at a time, returning the
// first path the prober confirms. Each failure is logged; probe errors count
// as failures. Only a cancelled context aborts the walk.
func Locate(ctx context.Context, p Prober, src string, g catalog.Gender, logger *slog.Logger) (Location, error) {
	logger = logging.OrDiscard(logger)
	fb := NewFallback(src, g)

	for !fb.Exhausted() {
		if err := ctx.Err(); err != nil {
			return Location{}, err
		}
		current := fb.Current()
		ok, err := p.Exists(ctx, current)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Location{}, ctxErr
			}
			logger.Warn("asset probe failed", "path", current, "attempt", fb.Attempts(), "error", err)
		}
		if ok {
			return Location{Path: current, Attempts: fb.Attempts()}, nil
		}
		if err == nil {
			logger.Debug("asset missing", "path", current, "attempt", fb.Attempts())
		}
		fb.OnError()
	}

	logger.Warn("no asset found, using placeholder", "src", src, "attempts", fb.Attempts())
	return Location{Path: PlaceholderPath, Attempts: fb.Attempts(), Placeholder: true}, nil
}

// String renders a Location for CLI output.
func (l Location) String() string {
	if l.Placeholder {
		return fmt.Sprintf("%s (placeholder after %d attempts)", l.Path, l.Attempts)
	}
	return fmt.Sprintf("%s (%d fallback attempts)", l.Path, l.Attempts)
}
