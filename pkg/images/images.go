// Package images turns photos into the JPEG data URLs stored on entries.
package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Registered decoders for image.Decode.
	_ "image/gif"
	_ "image/png"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxEdge is the longest side kept after down-scaling.
	MaxEdge = 1024
	// Quality of the re-encoded JPEG.
	Quality = 80
	// MaxPixels bounds width times height of an input before it is decoded.
	MaxPixels = 50_000_000

	dataURLPrefix = "data:image/jpeg;base64,"
)

// ErrTooLarge is returned for inputs whose header declares more than
// MaxPixels pixels.
var ErrTooLarge = errors.New("images: image too large")

// Result is the outcome for one input file. Exactly one of DataURL and Err
// is set.
type Result struct {
	Path    string
	DataURL string
	Err     error
}

// Encoder converts image files concurrently.
type Encoder struct {
	// Workers bounds concurrent conversions; zero means four.
	Workers int
	Log     *zap.Logger
}

// EncodeFiles converts every path. A failing file does not stop the others;
// its Result carries the error. Results keep the order of paths.
func (e *Encoder) EncodeFiles(ctx context.Context, paths []string) []Result {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	workers := e.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]Result, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, path := range paths {
		eg.Go(func() error {
			r := Result{Path: path}
			if err := egCtx.Err(); err != nil {
				r.Err = err
			} else {
				r.DataURL, r.Err = EncodeFile(path)
			}
			if r.Err != nil {
				log.Warn("image failed", zap.String("path", path), zap.Error(r.Err))
			}
			results[i] = r
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

// EncodeFile reads one image file and returns it as a data URL.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("images: read %s: %w", path, err)
	}
	url, err := Encode(data)
	if err != nil {
		return "", fmt.Errorf("images: %s: %w", path, err)
	}
	return url, nil
}

// Encode decodes a JPEG, PNG or GIF, shrinks it so neither side exceeds
// MaxEdge and re-encodes it as a JPEG data URL.
func Encode(data []byte) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	img := Downscale(src, MaxEdge)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Downscale returns src unchanged when it fits in maxEdge, otherwise a copy
// scaled down keeping the aspect ratio.
func Downscale(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}
	if w >= h {
		h = max(h*maxEdge/w, 1)
		w = maxEdge
	} else {
		w = max(w*maxEdge/h, 1)
		h = maxEdge
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Decode returns the JPEG bytes of a data URL produced by Encode.
func Decode(dataURL string) ([]byte, error) {
	if len(dataURL) < len(dataURLPrefix) || dataURL[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("images: not a jpeg data url")
	}
	return base64.StdEncoding.DecodeString(dataURL[len(dataURLPrefix):])
}
