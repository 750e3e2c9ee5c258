package util

import (
	"encoding/base64"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveBase64Image decodes a data-URI embedded image
// ("data:image/png;base64,....") and writes it under mediaRoot/subdir with a
// generated file name. It returns the path relative to the media root, which
// is what gets stored on the model.
func SaveBase64Image(data, mediaRoot, subdir string) (string, error) {
	mime, payload, ok := splitDataURI(data)
	if !ok {
		return "", ValidationError("image", "image must be a base64-encoded data URI")
	}

	ext, ok := imageExtensions[mime]
	if !ok {
		return "", ValidationError("image", "unsupported image type "+mime)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ValidationError("image", "invalid base64 image payload")
	}

	dir := filepath.Join(mediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", err
	}
	return path.Join(subdir, name), nil
}

// RemoveMediaFile deletes a stored media file; a missing file is not an
// error.
func RemoveMediaFile(mediaRoot, relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(mediaRoot, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MediaURL turns a stored relative path into the public URL path.
func MediaURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + relPath
}

func splitDataURI(data string) (mime, payload string, ok bool) {
	if !strings.HasPrefix(data, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(data, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", "", false
	}
	mime = strings.TrimSuffix(meta, ";base64")
	if mime == meta {
		// only base64 payloads are accepted
		return "", "", false
	}
	return mime, payload, true
}
