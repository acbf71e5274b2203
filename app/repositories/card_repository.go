package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/pkg/orm"
)

// CardRepository handles database operations for Card.
type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (models.Card, error) {
	var card models.Card
	err := orm.New(r.db.WithContext(ctx)).Model(&models.Card{}).Where("id = ?", id).First(&card)
	return card, err
}

func (r *CardRepository) Paginate(ctx context.Context, page, limit int) ([]models.Card, orm.Pagination, error) {
	var cards []models.Card
	p, err := orm.New(r.db.WithContext(ctx)).Model(&models.Card{}).Order("id").Paginate(page, limit, &cards)
	return cards, p, err
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Save persists every column of card.
func (r *CardRepository) Save(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// Delete returns the number of rows removed.
func (r *CardRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Card{}, id)
	return res.RowsAffected, res.Error
}
