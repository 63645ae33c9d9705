// Package download fetches a source video from a media share link. The share
// page is scraped for a direct video URL, which is then streamed to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/util"
	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Downloader resolves share links to direct video URLs and downloads them.
type Downloader struct {
	client *http.Client
	logger *logging.Logger
}

// New builds a Downloader. A nil client gets a default with sane timeouts.
func New(client *http.Client, logger *logging.Logger) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Downloader{client: client, logger: logger}
}

// FromShareLink fetches the share page at shareURL, locates the direct video
// URL in its markup, and downloads the video into dir. Returns the local file
// path.
func (d *Downloader) FromShareLink(ctx context.Context, shareURL, dir string) (string, error) {
	d.logger.Info("fetching share page", "url", shareURL)

	page, err := d.get(ctx, shareURL)
	if err != nil {
		return "", err
	}
	defer page.Body.Close()

	videoURL, err := ExtractVideoURL(page.Body, shareURL)
	if err != nil {
		return "", err
	}
	d.logger.Info("resolved video url", "url", videoURL)

	return d.fetchFile(ctx, videoURL, dir)
}

// FetchDirect downloads a direct video URL into dir without page scraping.
func (d *Downloader) FetchDirect(ctx context.Context, videoURL, dir string) (string, error) {
	return d.fetchFile(ctx, videoURL, dir)
}

func (d *Downloader) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, vqcerr.NewDownloadError(fmt.Sprintf("invalid URL %q", rawURL), err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, vqcerr.NewDownloadError(fmt.Sprintf("failed to fetch %s", rawURL), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, vqcerr.NewDownloadError(
			fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, rawURL), nil)
	}
	return resp, nil
}

func (d *Downloader) fetchFile(ctx context.Context, videoURL, dir string) (string, error) {
	if err := util.EnsureDirectory(dir); err != nil {
		return "", err
	}

	resp, err := d.get(ctx, videoURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	filename := filenameFor(videoURL, resp.Header)
	dest := filepath.Join(dir, filename)

	f, err := os.Create(dest)
	if err != nil {
		return "", vqcerr.NewIOError(fmt.Sprintf("failed to create %s", dest), err)
	}
	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return "", vqcerr.NewDownloadError(fmt.Sprintf("failed to download %s", videoURL), err)
	}

	d.logger.Info("video downloaded", "path", dest, "size", util.FormatBytes(uint64(written)))
	return dest, nil
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// filenameFor derives a safe local filename from the Content-Disposition
// header or the URL path, defaulting the extension to .mp4.
func filenameFor(rawURL string, header http.Header) string {
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := path.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return filenameSanitizer.ReplaceAllString(name, "_")
			}
		}
	}

	var name string
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = "video_" + uuid.NewString()[:8]
	}
	name = filenameSanitizer.ReplaceAllString(name, "_")
	if !util.HasVideoExtension(name) {
		name += ".mp4"
	}
	return name
}

// videoURLExtensions are checked by containment rather than suffix, since
// direct links often carry query strings after the extension.
var videoURLExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".flv", ".wmv", ".webm"}

// videoURLHints are substrings that mark a URL as likely pointing at video
// content even without a file extension.
var videoURLHints = []string{"download", "stream", "media", "video"}

// IsVideoURL reports whether a URL likely points to downloadable video.
func IsVideoURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, ext := range videoURLExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	for _, hint := range videoURLHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
