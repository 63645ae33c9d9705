package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/download"
	"github.com/jerald6111/video-quality-checker/internal/metrics"
	"github.com/jerald6111/video-quality-checker/internal/processing"
	"github.com/jerald6111/video-quality-checker/internal/reporter"
	"github.com/jerald6111/video-quality-checker/internal/util"
)

type checkQualityRequest struct {
	URL        string   `json:"url"`
	Vocabulary []string `json:"vocabulary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleCheckQuality downloads the referenced video and runs the full
// quality check, returning the fused report. Bad input and download
// failures are client errors; nothing is checked until the file is local.
func (s *Server) handleCheckQuality(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize)

	var req checkQualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "No URL provided")
		return
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "Invalid URL")
		return
	}

	cfg := config.NewConfig()
	cfg.Vocabulary = req.Vocabulary
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := s.fetch(r, req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to download video: %v", err))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("could not remove downloaded file", "path", path, "error", err)
		}
	}()

	s.logger.Info("running quality check", "file", util.GetFilename(path), "vocabulary", len(req.Vocabulary))
	rpt := processing.CheckVideo(r.Context(), cfg, s.deps, path, reporter.NullReporter{})
	writeJSON(w, http.StatusOK, rpt)
}

// fetch resolves the URL to a local file, following share pages when the
// URL does not point at a video directly.
func (s *Server) fetch(r *http.Request, rawURL string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.DownloadDuration.Observe(time.Since(start).Seconds())
	}()

	if download.IsVideoURL(rawURL) {
		return s.downloader.FetchDirect(r.Context(), rawURL, s.cfg.DownloadDir)
	}
	return s.downloader.FromShareLink(r.Context(), rawURL, s.cfg.DownloadDir)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "video-quality-checker",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
