package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/pkg/datauri"
	"github.com/vitrine/backoffice/pkg/logger"
	"github.com/vitrine/backoffice/pkg/metrics"
	"github.com/vitrine/backoffice/pkg/storage"
	"github.com/vitrine/backoffice/pkg/workerpool"
)

const publishTimeout = 30 * time.Second

// DiskPublisher writes banner images to a storage disk on a worker pool and
// records the resulting path on the banner.
type DiskPublisher struct {
	disk    storage.Disk
	pool    *workerpool.Pool
	banners *repositories.BannerRepository
	cache   Cache
}

func NewDiskPublisher(disk storage.Disk, pool *workerpool.Pool, banners *repositories.BannerRepository, cache Cache) *DiskPublisher {
	return &DiskPublisher{disk: disk, pool: pool, banners: banners, cache: cache}
}

// ImagePath is the storage key for a banner image of the given MIME type.
func ImagePath(id uint, mime string) string {
	return fmt.Sprintf("banners/%d%s", id, datauri.Extension(mime))
}

// Publish queues an upload of banner's image. A full pool drops the upload
// and counts it as failed.
func (p *DiskPublisher) Publish(ctx context.Context, banner models.Banner) {
	log := logger.WithCtx(ctx).With(zap.Uint("banner_id", banner.ID))
	id, data, mime, previous := banner.ID, banner.Image, banner.MimeType, banner.ImagePath

	err := p.pool.Submit(func() {
		p.publish(log, id, data, mime, previous)
	})
	if err != nil {
		metrics.RecordBannerPublish(err)
		log.Warn("banner image publish not queued", zap.Error(err))
	}
}

func (p *DiskPublisher) publish(log *zap.Logger, id uint, data []byte, mime, previous string) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	path := ImagePath(id, mime)
	err := p.disk.Put(ctx, path, data, mime)
	metrics.RecordBannerPublish(err)
	if err != nil {
		log.Error("banner image publish failed", zap.String("path", path), zap.Error(err))
		return
	}

	if previous != "" && previous != path {
		if err := p.disk.Delete(ctx, previous); err != nil {
			log.Warn("stale banner image not removed", zap.String("path", previous), zap.Error(err))
		}
	}

	if err := p.banners.SetImagePath(ctx, id, path); err != nil {
		log.Error("banner image path not saved", zap.Error(err))
		return
	}
	if p.cache != nil {
		_ = p.cache.Forget(ctx, bannersCacheKey)
	}
	log.Debug("banner image published", zap.String("path", path))
}

// Unpublish queues removal of the banner's published image.
func (p *DiskPublisher) Unpublish(ctx context.Context, banner models.Banner) {
	log := logger.WithCtx(ctx).With(zap.Uint("banner_id", banner.ID))
	path := banner.ImagePath

	err := p.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.disk.Delete(ctx, path); err != nil {
			log.Warn("banner image not removed", zap.String("path", path), zap.Error(err))
		}
	})
	if err != nil {
		log.Warn("banner image removal not queued", zap.Error(err))
	}
}

func (p *DiskPublisher) URL(path string) string {
	return p.disk.URL(path)
}
