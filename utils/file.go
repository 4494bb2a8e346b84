package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxPosterSize caps poster uploads at 5 MiB.
const MaxPosterSize = 5 << 20

var posterExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidatePosterFile checks an uploaded poster before it goes to object
// storage and returns the normalized (lowercase) extension.
func ValidatePosterFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size == 0 {
		return "", fmt.Errorf("poster file is empty")
	}
	if fileHeader.Size > MaxPosterSize {
		return "", fmt.Errorf("poster file exceeds %d bytes", MaxPosterSize)
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !posterExtensions[ext] {
		return "", fmt.Errorf("unsupported poster format %q (want jpg, jpeg, png or webp)", ext)
	}
	return ext, nil
}
