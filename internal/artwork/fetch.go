package artwork

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
)

// Download fetches src once and stores it for id.
func (p *Placer) Download(src string, id int64, opts Options) (string, error) {
	if existing, ok := p.existing(id, opts); ok {
		return existing, nil
	}

	data, contentType, err := p.fetch(src)
	if err != nil {
		return "", err
	}
	return p.store(id, data, inferExtension(src, contentType), opts.Resize)
}

// DownloadWithRetry calls Download up to p.Attempts times, stopping at the
// first success. There is no delay between attempts.
func (p *Placer) DownloadWithRetry(src string, id int64, opts Options) (string, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		path, err := p.Download(src, id, opts)
		if err == nil {
			return path, nil
		}
		lastErr = err
		log.Warningf("download attempt %d/%d failed: %s", i, attempts, err)
	}
	return "", fmt.Errorf("failed to download image after %d attempts: %w", attempts, lastErr)
}

func (p *Placer) fetch(src string) ([]byte, string, error) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequest(http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("error creating request: %w", err)
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	log.Infof("downloading image from %s", src)
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("error downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("bad status downloading image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("error reading image body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// inferExtension picks the file extension from the URL path, then from the
// response content type, falling back to .jpg.
func inferExtension(src, contentType string) string {
	if u, err := url.Parse(src); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if slices.Contains(Extensions, ext) {
			return ext
		}
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".jpg"
	}
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
