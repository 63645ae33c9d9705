package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.MP4")
	text := filepath.Join(dir, "notes.txt")
	for _, p := range []string{video, text} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if !IsVideoFile(video) {
		t.Error("IsVideoFile rejected an .MP4 file")
	}
	if IsVideoFile(text) {
		t.Error("IsVideoFile accepted a .txt file")
	}
	if IsVideoFile(dir) {
		t.Error("IsVideoFile accepted a directory")
	}
	if IsVideoFile(filepath.Join(dir, "missing.mp4")) {
		t.Error("IsVideoFile accepted a missing file")
	}
}

func TestHasVideoExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"delivery_master.mov", true},
		{"clip.MKV", true},
		{"page.html", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := HasVideoExtension(tt.name); got != tt.want {
			t.Errorf("HasVideoExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
