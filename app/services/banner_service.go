package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/pkg/collection"
	"github.com/vitrine/backoffice/pkg/datauri"
	"github.com/vitrine/backoffice/pkg/logger"
)

const bannersCacheKey = "banners:all"

// Cache is the read-through cache used for the banner list. *cache.Store
// satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Forget(ctx context.Context, keys ...string) error
}

// ImagePublisher copies banner images to a public storage disk.
type ImagePublisher interface {
	Publish(ctx context.Context, banner models.Banner)
	Unpublish(ctx context.Context, banner models.Banner)
	URL(path string) string
}

// BannerInput is the body of POST /api/banners.
type BannerInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Image       string `json:"image" validate:"required"`
	Products    []uint `json:"products"`
}

// BannerUpdate is the body of PUT /api/banners/{id}. Nil fields are left
// unchanged. Products nil keeps the links; an empty list clears them.
type BannerUpdate struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	Image       *string `json:"image"`
	Products    *[]uint `json:"products"`
}

// ProductRef is the {id,name} pair shown for linked products.
type ProductRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type BannerPayload struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Active      bool         `json:"active"`
	Image       string       `json:"image"`
	MimeType    string       `json:"mime_type"`
	ImageURL    string       `json:"image_url,omitempty"`
	Products    []ProductRef `json:"products"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BannerService owns banner persistence, image marshalling and the
// banner↔product links.
type BannerService struct {
	banners   *repositories.BannerRepository
	products  *repositories.ProductRepository
	cache     *ListCache
	cacheTTL  time.Duration
	publisher ImagePublisher
}

// NewBannerService builds the service. cache and publisher may be nil.
// Pass the same *ListCache given to the publisher when there is one.
func NewBannerService(banners *repositories.BannerRepository, products *repositories.ProductRepository, cache Cache, cacheTTL time.Duration, publisher ImagePublisher) *BannerService {
	s := &BannerService{
		banners:   banners,
		products:  products,
		cacheTTL:  cacheTTL,
		publisher: publisher,
	}
	if cache != nil {
		s.cache = NewListCache(cache)
	}
	return s
}

// Store creates a banner from a data-URI image and links it to products.
func (s *BannerService) Store(ctx context.Context, in BannerInput) (uint, error) {
	data, mime, err := datauri.Decode(in.Image)
	if err != nil {
		return 0, fmt.Errorf("banner image: %w", err)
	}

	productIDs := collection.Unique(in.Products)
	if err := s.checkProducts(ctx, productIDs); err != nil {
		return 0, err
	}

	banner := models.Banner{
		Title:       in.Title,
		Description: in.Description,
		Active:      in.Active,
		Image:       data,
		MimeType:    mime,
	}

	err = s.banners.Transaction(ctx, func(repo *repositories.BannerRepository) error {
		if err := repo.Create(ctx, &banner); err != nil {
			return err
		}
		return repo.SyncProducts(ctx, banner.ID, productIDs)
	})
	if err != nil {
		return 0, fmt.Errorf("store banner: %w", err)
	}

	s.forget(ctx)
	if s.publisher != nil {
		s.publisher.Publish(ctx, banner)
	}
	return banner.ID, nil
}

// List returns every banner, served from cache when possible.
func (s *BannerService) List(ctx context.Context) ([]BannerPayload, error) {
	if s.cache == nil {
		return s.load(ctx)
	}

	var cached []BannerPayload
	if s.cache.Get(ctx, bannersCacheKey, &cached) {
		return cached, nil
	}

	gen := s.cache.generation()
	out, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, bannersCacheKey, out, s.cacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("banner cache write failed", zap.Error(err))
	}
	// A write committed while we were loading; what we stored may be stale.
	if s.cache.generation() != gen {
		s.forget(ctx)
	}
	return out, nil
}

func (s *BannerService) load(ctx context.Context) ([]BannerPayload, error) {
	banners, err := s.banners.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return collection.Map(banners, s.payload), nil
}

// Get returns one banner.
func (s *BannerService) Get(ctx context.Context, id uint) (BannerPayload, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return BannerPayload{}, err
	}
	return s.payload(banner), nil
}

// Image returns the raw image bytes and MIME type.
func (s *BannerService) Image(ctx context.Context, id uint) ([]byte, string, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return banner.Image, banner.MimeType, nil
}

// Update applies the non-nil fields of in and, when Products is set, makes
// the links exactly that set. Everything runs in one transaction.
func (s *BannerService) Update(ctx context.Context, id uint, in BannerUpdate) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Active != nil {
		fields["active"] = *in.Active
	}
	if in.Image != nil {
		data, mime, err := datauri.Decode(*in.Image)
		if err != nil {
			return fmt.Errorf("banner image: %w", err)
		}
		fields["image"] = data
		fields["mime_type"] = mime
	}

	var productIDs []uint
	if in.Products != nil {
		productIDs = collection.Unique(*in.Products)
		if err := s.checkProducts(ctx, productIDs); err != nil {
			return err
		}
	}

	err := s.banners.Transaction(ctx, func(repo *repositories.BannerRepository) error {
		if err := repo.Update(ctx, id, fields); err != nil {
			return err
		}
		if in.Products == nil {
			return nil
		}
		return repo.SyncProducts(ctx, id, productIDs)
	})
	if err != nil {
		return fmt.Errorf("update banner %d: %w", id, err)
	}

	s.forget(ctx)
	if in.Image != nil && s.publisher != nil {
		if banner, err := s.banners.FindByID(ctx, id); err == nil {
			s.publisher.Publish(ctx, banner)
		}
	}
	return nil
}

// Delete removes the banner and its links. A missing id is an error.
func (s *BannerService) Delete(ctx context.Context, id uint) error {
	var deleted models.Banner
	err := s.banners.Transaction(ctx, func(repo *repositories.BannerRepository) error {
		banner, err := repo.FindByID(ctx, id)
		if err != nil {
			return orNotFound(err, ErrBannerNotFound)
		}
		n, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrBannerNotFound
		}
		deleted = banner
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete banner %d: %w", id, err)
	}

	s.forget(ctx)
	if s.publisher != nil && deleted.ImagePath != "" {
		s.publisher.Unpublish(ctx, deleted)
	}
	return nil
}

func (s *BannerService) find(ctx context.Context, id uint) (models.Banner, error) {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return models.Banner{}, fmt.Errorf("banner %d: %w", id, orNotFound(err, ErrBannerNotFound))
	}
	return banner, nil
}

func (s *BannerService) checkProducts(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.products.ExistingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check products: %w", err)
	}
	if missing := collection.Difference(ids, found); len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownProduct, missing)
	}
	return nil
}

func (s *BannerService) forget(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Forget(ctx, bannersCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("banner cache invalidation failed", zap.Error(err))
	}
}

func (s *BannerService) payload(b models.Banner) BannerPayload {
	p := BannerPayload{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Active:      b.Active,
		Image:       datauri.Encode(b.MimeType, b.Image),
		MimeType:    b.MimeType,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Products: collection.Map(b.Products, func(bp models.BannerProduct) ProductRef {
			return ProductRef{ID: bp.ProductID, Name: bp.Product.Name}
		}),
	}
	if b.ImagePath != "" && s.publisher != nil {
		p.ImageURL = s.publisher.URL(b.ImagePath)
	}
	return p
}
