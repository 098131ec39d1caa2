package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"staffdir/internal/storage"
)

// Pipeline failure kinds, checked with errors.Is at the HTTP boundary.
var (
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidImage    = errors.New("invalid image")
	ErrStorage         = errors.New("storage failure")
)

const (
	// DefaultMaxUploadSize 上传体积上限
	DefaultMaxUploadSize = 15 << 20
	thumbnailMaxSide     = 400
	jpegQuality          = 90
)

// allowedExtensions 是扩展名白名单。它只是前置过滤：heic/heif/raw 能
// 通过白名单，但解码阶段仍会拒绝无法解析的字节。
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".heic": {},
	".heif": {},
	".raw":  {},
}

// Result names the stored image pair produced by one ingestion.
type Result struct {
	Main  string
	Thumb string
}

// Pipeline validates, normalises and persists profile photos. One ingestion
// produces a main JPEG and a bounded-box thumbnail under random filenames;
// either both files exist afterwards or neither does.
type Pipeline struct {
	store    storage.Storage
	maxBytes int
}

// NewPipeline creates an ingestion pipeline over the given storage backend.
func NewPipeline(store storage.Storage, maxBytes int) *Pipeline {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadSize
	}
	return &Pipeline{store: store, maxBytes: maxBytes}
}

// Ingest runs the full pipeline on raw upload bytes. The declared filename
// contributes only its extension to the advisory allow-list check; stored
// filenames are derived from a random identifier, never from user input.
func (p *Pipeline) Ingest(ctx context.Context, raw []byte, declaredFilename string) (Result, error) {
	if len(raw) > p.maxBytes {
		return Result{}, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrPayloadTooLarge, len(raw), p.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(declaredFilename))
	if _, ok := allowedExtensions[ext]; !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	normalized := flattenToRGB(src)

	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	result := Result{
		Main:  id + ".jpg",
		Thumb: id + "_thumb.jpg",
	}

	mainData, err := encodeJPEG(normalized)
	if err != nil {
		return Result{}, fmt.Errorf("%w: encode main image: %v", ErrStorage, err)
	}
	if err := p.store.Save(ctx, mainData, result.Main); err != nil {
		return Result{}, fmt.Errorf("%w: save main image: %v", ErrStorage, err)
	}

	thumbData, err := encodeJPEG(scaleToFit(normalized, thumbnailMaxSide))
	if err != nil {
		p.removeOrphan(ctx, result.Main)
		return Result{}, fmt.Errorf("%w: encode thumbnail: %v", ErrStorage, err)
	}
	if err := p.store.Save(ctx, thumbData, result.Thumb); err != nil {
		p.removeOrphan(ctx, result.Main)
		return Result{}, fmt.Errorf("%w: save thumbnail: %v", ErrStorage, err)
	}

	return result, nil
}

// removeOrphan deletes a half-written main image after a thumbnail failure
// so that the pair stays atomic.
func (p *Pipeline) removeOrphan(ctx context.Context, filename string) {
	if err := p.store.Delete(ctx, filename); err != nil {
		logrus.WithError(err).WithField("file", filename).Warn("failed to remove orphaned image")
	}
}

// flattenToRGB draws the source over a white background, discarding any
// alpha channel ahead of the lossy JPEG encode.
func flattenToRGB(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

// scaleToFit shrinks the image to fit within a maxSide square, preserving
// aspect ratio. Images already inside the box are returned unchanged.
func scaleToFit(src *image.RGBA, maxSide int) *image.RGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	scale := float64(maxSide) / float64(w)
	if h > w {
		scale = float64(maxSide) / float64(h)
	}
	newW := int(float64(w)*scale + 0.5)
	newH := int(float64(h)*scale + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
