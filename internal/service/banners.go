package service

import (
	"context"
	"fmt"

	apperrors "gotix/internal/errors"
	"gotix/internal/models"
	"gotix/internal/repository"
)

type BannerService struct {
	banners repository.BannerRepository
}

func NewBannerService(banners repository.BannerRepository) *BannerService {
	return &BannerService{banners: banners}
}

func (s *BannerService) Create(ctx context.Context, req *models.CreateBannerRequest) (*models.Banner, error) {
	banner := &models.Banner{
		Title: req.Title,
		Image: req.Image,
	}
	if req.IsShow != nil {
		banner.IsShow = *req.IsShow
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	return banner, nil
}

func (s *BannerService) GetByID(ctx context.Context, id int64) (*models.Banner, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	if banner == nil {
		return nil, apperrors.ErrNotFound
	}
	return banner, nil
}

func (s *BannerService) Update(ctx context.Context, id int64, req *models.UpdateBannerRequest) (*models.Banner, error) {
	banner, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Image != nil {
		banner.Image = *req.Image
	}
	if req.IsShow != nil {
		banner.IsShow = *req.IsShow
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.banners.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *BannerService) List(ctx context.Context, q models.PageQuery) ([]models.Banner, models.PageMeta, error) {
	q.Normalize()

	banners, total, err := s.banners.List(ctx, q)
	if err != nil {
		return nil, models.PageMeta{}, fmt.Errorf("failed to list banners: %w", err)
	}

	return banners, q.Meta(total), nil
}
