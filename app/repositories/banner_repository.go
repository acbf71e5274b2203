package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/pkg/orm"
)

// BannerRepository handles database operations for Banner and its
// product links.
type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// Transaction runs fn with a repository bound to a single transaction.
func (r *BannerRepository) Transaction(ctx context.Context, fn func(repo *BannerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BannerRepository{db: tx})
	})
}

// All returns every banner with its linked products.
func (r *BannerRepository) All(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := orm.New(r.db.WithContext(ctx)).
		Model(&models.Banner{}).
		Preload("Products.Product").
		Order("id").
		Get(&banners)
	return banners, err
}

// FindByID looks up a banner by primary key with its linked products.
func (r *BannerRepository) FindByID(ctx context.Context, id uint) (models.Banner, error) {
	var banner models.Banner
	err := orm.New(r.db.WithContext(ctx)).
		Model(&models.Banner{}).
		Preload("Products.Product").
		Where("id = ?", id).
		First(&banner)
	return banner, err
}

// Create inserts the banner row only. Links are written by SyncProducts.
func (r *BannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	return r.db.WithContext(ctx).Omit("Products").Create(banner).Error
}

// Update writes fields (column → value) to the banner with id.
func (r *BannerRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Banner{}).Where("id = ?", id).Updates(fields).Error
}

// SetImagePath records where the banner image was published.
func (r *BannerRepository) SetImagePath(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).Model(&models.Banner{}).Where("id = ?", id).
		UpdateColumn("image_path", path).Error
}

// SyncProducts makes the banner's links exactly productIDs: rows for other
// products are deleted and missing ones are created.
func (r *BannerRepository) SyncProducts(ctx context.Context, bannerID uint, productIDs []uint) error {
	db := r.db.WithContext(ctx)

	del := db.Where("banner_id = ?", bannerID)
	if len(productIDs) > 0 {
		del = del.Where("product_id NOT IN ?", productIDs)
	}
	if err := del.Delete(&models.BannerProduct{}).Error; err != nil {
		return err
	}

	for _, pid := range productIDs {
		link := models.BannerProduct{BannerID: bannerID, ProductID: pid}
		if err := db.Where(&link).FirstOrCreate(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the banner and its links. It returns the number of banner
// rows deleted.
func (r *BannerRepository) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)

	if err := db.Where("banner_id = ?", id).Delete(&models.BannerProduct{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Banner{}, id)
	return res.RowsAffected, res.Error
}
