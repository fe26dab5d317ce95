// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"threadbox/internal/models"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

// allowedUploadTypes defines MIME types accepted by the upload proxy.
// The storefront only uploads imagery.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Upload accepts a multipart image, stores it in object storage, records
// its metadata, and returns the public URL. Admin only. The client never
// talks to the storage backend directly.
func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 50 MB.")
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("upload read failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	// Sniff the real content type; the client-declared one is advisory.
	contentType := http.DetectContentType(fileBytes)
	if strings.HasPrefix(contentType, "text/xml") || strings.HasPrefix(contentType, "text/plain") {
		// SVG sniffs as XML or plain text.
		if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") {
			contentType = "image/svg+xml"
		}
	}
	contentType = strings.Split(contentType, ";")[0]
	if !allowedUploadTypes[contentType] {
		writeError(w, http.StatusUnsupportedMediaType, "Only image uploads are accepted")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	now := time.Now()
	fileID := uuid.NewString()
	key := a.storage.Key(fmt.Sprintf("%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext))

	ctx := r.Context()
	if err := a.storage.Upload(ctx, key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("upload to storage failed", "error", err, "key", key)
		writeError(w, http.StatusBadGateway, "Storage upload failed")
		return
	}

	var thumbKey *string
	if thumbableTypes[contentType] {
		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", key)
		} else if thumbData != nil {
			tk := a.storage.Key(fmt.Sprintf("%d/%02d/%s_thumb.jpg", now.Year(), now.Month(), fileID))
			if err := a.storage.Upload(ctx, tk, "image/jpeg", bytes.NewReader(thumbData), int64(len(thumbData))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	created, err := a.media.Create(&models.Media{
		Filename:     fileID + ext,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		S3Key:        key,
		ThumbS3Key:   thumbKey,
	})
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "Failed to save file metadata")
		return
	}

	resp := map[string]any{
		"url":      a.storage.FileURL(created.S3Key),
		"publicId": created.S3Key,
	}
	if created.ThumbS3Key != nil {
		resp["thumbUrl"] = a.storage.FileURL(*created.ThumbS3Key)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// UploadDelete removes a stored object by URL or public id. Admin only.
func (a *API) UploadDelete(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured")
		return
	}

	var req struct {
		URL      string `json:"url"`
		PublicID string `json:"publicId"`
	}
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	key := req.PublicID
	if key == "" && req.URL != "" {
		var ok bool
		if key, ok = a.storage.ExtractKey(req.URL); !ok {
			writeError(w, http.StatusBadRequest, "URL does not belong to this storage")
			return
		}
	}
	if key == "" {
		writeError(w, http.StatusBadRequest, "url or publicId is required")
		return
	}

	if err := a.storage.Delete(r.Context(), key); err != nil {
		slog.Error("storage delete failed", "error", err, "key", key)
		writeError(w, http.StatusBadGateway, "Storage delete failed")
		return
	}

	// Remove the thumbnail and metadata row if we track this object.
	if m, err := a.media.FindByKey(key); err == nil && m != nil && m.ThumbS3Key != nil {
		if err := a.storage.Delete(r.Context(), *m.ThumbS3Key); err != nil {
			slog.Warn("thumbnail delete failed", "error", err, "key", *m.ThumbS3Key)
		}
	}
	if _, err := a.media.DeleteByKey(key); err != nil {
		slog.Warn("media record delete failed", "error", err, "key", key)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}

// extensionFor maps a MIME type to a file extension for sniffed uploads
// whose original filename had none.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(src io.ReadSeeker, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without full decode.
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	// Skip thumbnail if image is already small enough.
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Calculate thumbnail dimensions preserving aspect ratio.
	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
