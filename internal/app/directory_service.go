package app

import (
	"context"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
)

type DirectoryRepository interface {
	ListResources(ctx context.Context) ([]domain.ResourceInfo, error)
}

// DirectoryService exposes the read-only resource directory.
type DirectoryService struct {
	repo DirectoryRepository
}

func NewDirectoryService(repo DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListResources(ctx context.Context) ([]domain.ResourceInfo, error) {
	return s.repo.ListResources(ctx)
}
