package images

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64 decodes a base64 image payload (with or without a data-URL
// prefix) and writes it into uploadDir. It returns the public /uploads path
// recorded on the owning record.
func SaveBase64(uploadDir, payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("empty image payload")
	}

	// Strip "data:image/png;base64," style prefixes.
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, "base64,")
		if idx < 0 {
			return "", fmt.Errorf("malformed data URL")
		}
		payload = payload[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	filename := uuid.NewString() + ".png"
	if err := os.WriteFile(path.Join(uploadDir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return "/uploads/" + filename, nil
}

// Remove deletes a previously stored image given its public /uploads path.
// A missing file is not an error.
func Remove(uploadDir, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	err := os.Remove(path.Join(uploadDir, filepath.Base(publicPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
