package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/petpawtner/petpawtner/internal/storage"
	"github.com/petpawtner/petpawtner/internal/validation"
)

// UploadService puts avatar images into blob storage and hands back the
// stored reference. Post images go through PostService instead since their
// lifecycle is tied to the post row.
type UploadService struct {
	storage storage.Storage
}

func NewUploadService(storage storage.Storage) *UploadService {
	return &UploadService{storage: storage}
}

// SaveImage validates and stores an uploaded image under the given folder
// (profile_image, pet_images, vet_images) and returns the storage path.
func (s *UploadService) SaveImage(folder string, file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateImage(file, header)
	if err != nil {
		return "", err
	}

	path := filepath.Join(folder, uuid.New().String()+filepath.Ext(header.Filename))
	err = s.storage.Save(path, file)
	if err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return path, nil
}

func (s *UploadService) URL(path string) string {
	if path == "" {
		return ""
	}
	return s.storage.URL(path)
}
