// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/logging"
)

// recipeSubdir holds recipe images below the media root.
const recipeSubdir = "recipes"

var (
	// ErrInvalidImage means the payload is not a decodable image data URI.
	ErrInvalidImage = errors.New("invalid image")

	// ErrImageTooLarge means the payload exceeds the byte or pixel limit.
	ErrImageTooLarge = errors.New("image too large")
)

// formats maps data URI subtypes to the stored encoding.
var formats = map[string]imaging.Format{
	"png":  imaging.PNG,
	"jpeg": imaging.JPEG,
	"jpg":  imaging.JPEG,
	"gif":  imaging.GIF,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

var extensions = map[imaging.Format]string{
	imaging.PNG:  "png",
	imaging.JPEG: "jpg",
	imaging.GIF:  "gif",
	imaging.BMP:  "bmp",
	imaging.TIFF: "tiff",
}

// Store saves recipe images under a directory and serves them by URL.
type Store struct {
	dir          string
	urlPrefix    string
	maxBytes     int64
	maxDimension int
	maxPixels    int64
}

// NewStore creates the media directories.
func NewStore(cfg *config.MediaConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(cfg.Dir, recipeSubdir), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	prefix := cfg.URLPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Store{
		dir:          cfg.Dir,
		urlPrefix:    prefix,
		maxBytes:     cfg.MaxBytes,
		maxDimension: cfg.MaxDimension,
		maxPixels:    cfg.MaxPixels,
	}, nil
}

// parseDataURI splits "data:image/<fmt>;base64,<payload>".
func parseDataURI(uri string) (imaging.Format, string, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return 0, "", fmt.Errorf("%w: expected a base64 data:image URI", ErrInvalidImage)
	}
	subtype := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(header, "data:image/"), ";base64"))
	format, ok := formats[subtype]
	if !ok {
		return 0, "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidImage, subtype)
	}
	return format, payload, nil
}

// SaveDataURI decodes a base64 image, downsizes it to the configured
// bounds and stores it. It returns the public URL of the file.
func (s *Store) SaveDataURI(uri string) (string, error) {
	format, payload, err := parseDataURI(uri)
	if err != nil {
		return "", err
	}

	if s.maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxBytes+2 {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, s.maxBytes)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if s.maxBytes > 0 && int64(len(raw)) > s.maxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrImageTooLarge, s.maxBytes)
	}

	// Header only; a tiny compressed payload can declare a huge canvas.
	header, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if s.maxPixels > 0 && int64(header.Width)*int64(header.Height) > s.maxPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, header.Width, header.Height, s.maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if b := img.Bounds(); s.maxDimension > 0 && (b.Dx() > s.maxDimension || b.Dy() > s.maxDimension) {
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	name := uuid.New().String() + "." + extensions[format]
	file, err := os.Create(filepath.Join(s.dir, recipeSubdir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if err := imaging.Encode(file, img, format, imaging.JPEGQuality(85)); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return s.urlPrefix + path.Join(recipeSubdir, name), nil
}

// IsStored reports whether url points at a file managed by the store.
func (s *Store) IsStored(url string) bool {
	_, ok := s.localPath(url)
	return ok
}

func (s *Store) localPath(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, s.urlPrefix)
	if !ok || rel == "" {
		return "", false
	}
	clean := path.Clean("/" + rel)[1:]
	if !strings.HasPrefix(clean, recipeSubdir+"/") {
		return "", false
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), true
}

// Remove deletes a stored image. Unknown URLs and missing files are ignored.
func (s *Store) Remove(url string) {
	p, ok := s.localPath(url)
	if !ok {
		return
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Str("path", p).Msg("Failed to remove image")
	}
}

// URLPrefix is the public path prefix of stored files, ending in "/".
func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// Handler serves stored files below the URL prefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix, http.FileServer(http.Dir(s.dir)))
}
