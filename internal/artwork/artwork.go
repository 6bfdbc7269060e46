// Package artwork places card images in the engine's pics directory:
// downloading or copying the source, normalizing it to the canonical size,
// and finding, verifying or removing what is already there.
package artwork

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cardsmith.artwork")

var ErrSourceMissing = errors.New("source image not found")

// Extensions the engine accepts, in lookup order.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Defaults for the network fetch.
const (
	DefaultAttempts  = 3
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "cardsmith/1.0 (+card artwork fetch)"
)

// Options control a single placement.
type Options struct {
	Resize    bool // normalize to Width x Height JPEG
	Overwrite bool // replace an existing image for the card
}

// Placer writes card images into Dir.
type Placer struct {
	Dir       string
	Client    *http.Client
	Attempts  int
	UserAgent string
}

// NewPlacer returns a placer with the default timeout and attempt count.
func NewPlacer(dir string) *Placer {
	return &Placer{
		Dir:       dir,
		Client:    &http.Client{Timeout: DefaultTimeout},
		Attempts:  DefaultAttempts,
		UserAgent: DefaultUserAgent,
	}
}

// EnsureDir creates the pics directory if needed.
func (p *Placer) EnsureDir() error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return fmt.Errorf("error creating pics directory: %w", err)
	}
	return nil
}

// IsRemote reports whether src is an http(s) URL rather than a local path.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Place downloads a URL (with retry) or copies a local file, depending on src.
func (p *Placer) Place(src string, id int64, opts Options) (string, error) {
	if IsRemote(src) {
		return p.DownloadWithRetry(src, id, opts)
	}
	return p.CopyLocal(src, id, opts)
}

// FindExisting returns the path of an image already stored for id.
func (p *Placer) FindExisting(id int64) (string, bool) {
	for _, ext := range Extensions {
		path := p.path(id, ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (p *Placer) path(id int64, ext string) string {
	return filepath.Join(p.Dir, fmt.Sprintf("%d%s", id, ext))
}

// existing returns the current image path when it must be kept.
func (p *Placer) existing(id int64, opts Options) (string, bool) {
	if opts.Overwrite {
		return "", false
	}
	path, ok := p.FindExisting(id)
	if ok {
		log.Noticef("image already exists: %s", path)
	}
	return path, ok
}

// store writes the image data for id. With resize set the data is
// normalized to a JPEG; if it cannot be decoded the original bytes are
// kept under ext instead.
func (p *Placer) store(id int64, data []byte, ext string, resize bool) (string, error) {
	if resize {
		out, orig, err := NormalizeBytes(data)
		if err == nil {
			path, err := p.write(id, out, ".jpg")
			if err != nil {
				return "", err
			}
			log.Infof("image processed and saved: %s (from %dx%d)", path, orig.X, orig.Y)
			return path, nil
		}
		log.Warningf("could not process image, saving original: %s", err)
	}

	path, err := p.write(id, data, ext)
	if err != nil {
		return "", err
	}
	log.Infof("image saved: %s", path)
	return path, nil
}

// write saves data as the image for id. Images under other extensions are
// only removed once the new file is in place.
func (p *Placer) write(id int64, data []byte, ext string) (string, error) {
	path := p.path(id, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}
	p.clearStale(id, path)
	return path, nil
}

// clearStale removes images for id stored under another extension, so a
// replaced image is the one FindExisting reports.
func (p *Placer) clearStale(id int64, keep string) {
	for _, ext := range Extensions {
		if path := p.path(id, ext); path != keep {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed stale image: %s", path)
			}
		}
	}
}

// CopyLocal copies a local image file into place.
func (p *Placer) CopyLocal(src string, id int64, opts Options) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return "", fmt.Errorf("error reading source image: %w", err)
	}
	if path, ok := p.existing(id, opts); ok {
		return path, nil
	}

	ext := strings.ToLower(filepath.Ext(src))
	if ext == "" {
		ext = ".jpg"
	}
	return p.store(id, data, ext, opts.Resize)
}

// Info describes a stored card image.
type Info struct {
	Path      string
	Size      int64
	Dims      image.Point
	Canonical bool // already Width x Height
}

// Verify reports on the image stored for id.
func (p *Placer) Verify(id int64) (*Info, error) {
	path, ok := p.FindExisting(id)
	if !ok {
		return nil, fmt.Errorf("no image found for card ID %d", id)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	info := &Info{Path: path, Size: st.Size()}

	dims, err := Dimensions(f)
	if err != nil {
		return info, fmt.Errorf("could not read image dimensions: %w", err)
	}
	info.Dims = dims
	info.Canonical = dims.X == Width && dims.Y == Height
	return info, nil
}

// Delete removes the image stored for id.
func (p *Placer) Delete(id int64) error {
	path, ok := p.FindExisting(id)
	if !ok {
		return fmt.Errorf("no image found for card ID %d", id)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}
	log.Infof("deleted image: %s", path)
	return nil
}
