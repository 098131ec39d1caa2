package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"staffdir/internal/storage"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestPipeline(t *testing.T) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return NewPipeline(store, 0), dir
}

func TestIngestRejectsOversizedPayload(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	// 20 MiB of garbage; the size guard must fire before any decode attempt.
	raw := make([]byte, 20<<20)
	_, err := pipeline.Ingest(context.Background(), raw, "big.jpg")
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestIngestRejectsDisallowedExtension(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	tests := []string{"notes.txt", "archive.zip", "photo.gif", "photo.webp", "noext"}
	for _, name := range tests {
		_, err := pipeline.Ingest(context.Background(), encodeTestJPEG(t, 10, 10), name)
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType for %q, got %v", name, err)
		}
	}
}

func TestIngestRejectsNonImageBytes(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	// Text file renamed to .jpg: passes the extension check, fails decode.
	_, err := pipeline.Ingest(context.Background(), []byte("this is not an image"), "renamed.jpg")
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestIngestProducesBoundedThumbnail(t *testing.T) {
	pipeline, dir := newTestPipeline(t)

	raw := encodeTestJPEG(t, 4000, 3000)
	result, err := pipeline.Ingest(context.Background(), raw, "camera.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(result.Main, ".jpg") || !strings.HasSuffix(result.Thumb, "_thumb.jpg") {
		t.Fatalf("unexpected filenames: %+v", result)
	}
	if strings.Contains(result.Main, "camera") {
		t.Fatal("stored filename must not derive from the uploaded name")
	}

	thumbFile, err := os.Open(filepath.Join(dir, result.Thumb))
	if err != nil {
		t.Fatalf("expected thumbnail on disk: %v", err)
	}
	defer thumbFile.Close()

	thumb, _, err := image.Decode(thumbFile)
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	w := thumb.Bounds().Dx()
	h := thumb.Bounds().Dy()
	if w > 400 || h > 400 {
		t.Fatalf("thumbnail exceeds bounding box: %dx%d", w, h)
	}
	// 4000x3000 fits 400x400 as 400x300; allow one pixel of rounding.
	if w != 400 || h < 299 || h > 301 {
		t.Fatalf("expected aspect-preserving 400x300 thumbnail, got %dx%d", w, h)
	}

	if _, err := os.Stat(filepath.Join(dir, result.Main)); err != nil {
		t.Fatalf("expected main image on disk: %v", err)
	}
}

func TestIngestSmallImageNotUpscaled(t *testing.T) {
	pipeline, dir := newTestPipeline(t)

	result, err := pipeline.Ingest(context.Background(), encodeTestJPEG(t, 120, 80), "small.jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	thumbFile, err := os.Open(filepath.Join(dir, result.Thumb))
	if err != nil {
		t.Fatalf("expected thumbnail on disk: %v", err)
	}
	defer thumbFile.Close()

	thumb, _, err := image.Decode(thumbFile)
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	if thumb.Bounds().Dx() != 120 || thumb.Bounds().Dy() != 80 {
		t.Fatalf("expected 120x80 thumbnail, got %dx%d", thumb.Bounds().Dx(), thumb.Bounds().Dy())
	}
}

func TestIngestNormalisesPNGWithAlpha(t *testing.T) {
	pipeline, dir := newTestPipeline(t)

	img := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	result, err := pipeline.Ingest(context.Background(), buf.Bytes(), "avatar.PNG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mainFile, err := os.Open(filepath.Join(dir, result.Main))
	if err != nil {
		t.Fatalf("expected main image on disk: %v", err)
	}
	defer mainFile.Close()

	_, format, err := image.Decode(mainFile)
	if err != nil {
		t.Fatalf("failed to decode stored image: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected stored image re-encoded as jpeg, got %s", format)
	}
}

// failingStorage fails saves whose filename matches a substring and records
// delete calls.
type failingStorage struct {
	failOn  string
	saved   []string
	deleted []string
}

func (f *failingStorage) Save(_ context.Context, _ []byte, filename string) error {
	if f.failOn != "" && strings.Contains(filename, f.failOn) {
		return fmt.Errorf("disk full")
	}
	f.saved = append(f.saved, filename)
	return nil
}

func (f *failingStorage) Delete(_ context.Context, filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func TestIngestRemovesMainImageOnThumbnailFailure(t *testing.T) {
	store := &failingStorage{failOn: "_thumb"}
	pipeline := NewPipeline(store, 0)

	_, err := pipeline.Ingest(context.Background(), encodeTestJPEG(t, 800, 600), "photo.jpg")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected exactly one save before failure, got %v", store.saved)
	}
	if len(store.deleted) != 1 || store.deleted[0] != store.saved[0] {
		t.Fatalf("expected main image %q to be deleted, got deletions %v", store.saved[0], store.deleted)
	}
}

func TestIngestFilenamesUniquePerCall(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	raw := encodeTestJPEG(t, 10, 10)
	first, err := pipeline.Ingest(context.Background(), raw, "a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pipeline.Ingest(context.Background(), raw, "a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Main == second.Main || first.Thumb == second.Thumb {
		t.Fatal("expected unique filenames per ingestion")
	}
}
