package helper

import (
	"bytes"
	"fmt"
	"image"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

/* =======================================================================
   Cover image pipeline: decode → downscale → encode WebP → local disk.
   Topics keep a public URL path; the raw upload is never stored.
======================================================================= */

const (
	coverMaxWidth  = 1600
	coverMaxHeight = 900
	coverQuality   = 80
)

// SaveCoverImage converts an uploaded image to WebP and writes it under
// uploadDir. Returns the public URL path for the stored file.
func SaveCoverImage(uploadDir, publicPrefix string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("unsupported image format: %w", err)
	}

	img = downscaleIfNeeded(img, coverMaxWidth, coverMaxHeight)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: coverQuality}); err != nil {
		return "", fmt.Errorf("webp encode failed: %w", err)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	filename := GenerateUniqueFilename(fileHeader.Filename)
	path := filepath.Join(uploadDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return strings.TrimRight(publicPrefix, "/") + "/" + filename, nil
}

// Resize helper (keep aspect). CatmullRom for quality.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func GenerateUniqueFilename(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = filenameSanitizer.ReplaceAllString(base, "-")
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s-%d-%s.webp", base, time.Now().Unix(), uuid.NewString()[:8])
}
