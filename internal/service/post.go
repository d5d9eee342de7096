package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/petpawtner/petpawtner/internal/model"
	"github.com/petpawtner/petpawtner/internal/repository"
	"github.com/petpawtner/petpawtner/internal/storage"
)

var (
	ErrImageRequired  = errors.New("image and caption are required")
	ErrCaptionTooLong = errors.New("caption must be 300 characters or less")
)

type PostService struct {
	postRepository repository.PostRepository
	storage        storage.Storage
}

func NewPostService(postRepository repository.PostRepository, storage storage.Storage) *PostService {
	return &PostService{
		postRepository: postRepository,
		storage:        storage,
	}
}

// Create stores the image and inserts the post row. When the row insert
// fails the stored image is removed again so no post can exist without its
// committed image and no image lingers without its post.
func (s *PostService) Create(username, caption, filename string, image io.Reader) (*model.Post, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" || image == nil {
		return nil, ErrImageRequired
	}
	if len(caption) > model.MaxCaptionLen {
		return nil, ErrCaptionTooLong
	}

	// Random id: never sequential, so feed size and post ordering cannot be
	// inferred and the like endpoint cannot be walked.
	postID := uuid.New().String()
	storagePath := filepath.Join("post_images", postID+filepath.Ext(filename))

	err := s.storage.Save(storagePath, image)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	post := &model.Post{
		ID:       postID,
		Username: username,
		Caption:  caption,
		Image:    storagePath,
	}

	err = s.postRepository.Create(post)
	if err != nil {
		delErr := s.storage.Delete(storagePath)
		if delErr != nil {
			slog.Error("failed to delete image during rollback", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "username", username)
	return post, nil
}

// ToggleLike flips the acting user's like on the post and returns the new
// liked state with the resulting count.
func (s *PostService) ToggleLike(postID, username string) (bool, int, error) {
	liked, count, err := s.postRepository.ToggleLike(postID, username)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return false, 0, err
		}
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}
	return liked, count, nil
}

func (s *PostService) All() ([]*model.Post, error) {
	return s.postRepository.All()
}

func (s *PostService) ByUsername(username string) ([]*model.Post, error) {
	return s.postRepository.ByUsername(username)
}

// ImageURL resolves a stored image reference to a servable URL.
func (s *PostService) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return s.storage.URL(path)
}
