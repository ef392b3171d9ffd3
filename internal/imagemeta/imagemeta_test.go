package imagemeta

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestProbeCanvas(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 640, 480))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	canvas, err := ProbeCanvas(path)
	if err != nil {
		t.Fatalf("ProbeCanvas error: %v", err)
	}
	if canvas.Width != 640 || canvas.Height != 480 {
		t.Errorf("canvas = %dx%d, want 640x480", canvas.Width, canvas.Height)
	}
}

func TestProbeCanvas_CorruptHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ProbeCanvas(path); err == nil {
		t.Error("expected error for corrupt image header")
	}
}

func TestProbeCanvas_MissingFile(t *testing.T) {
	if _, err := ProbeCanvas(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
