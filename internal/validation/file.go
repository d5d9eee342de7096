package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// ImageConstraints defines validation rules for avatar, pet and post images.
var ImageConstraints = struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	AllowedExtensions: map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// ValidateImage checks size, extension and sniffed content type of an upload.
func ValidateImage(file multipart.File, header *multipart.FileHeader) error {
	if header.Size > ImageConstraints.MaxSize {
		return Error(fmt.Sprintf("file too large: maximum size is %d MB", ImageConstraints.MaxSize/(1<<20)))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !ImageConstraints.AllowedExtensions[ext] {
		return Error(fmt.Sprintf("file type %q is not allowed", ext))
	}

	// Sniff actual content; the declared Content-Type header is client-controlled.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if !ImageConstraints.AllowedMimeTypes[contentType] {
		return Error(fmt.Sprintf("content type %q is not allowed", contentType))
	}

	return nil
}
