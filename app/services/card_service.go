package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/pkg/collection"
	"github.com/vitrine/backoffice/pkg/crypt"
	"github.com/vitrine/backoffice/pkg/orm"
)

// CardInput is the body of POST and PUT /api/cards. On update an empty
// security_code keeps the stored one.
type CardInput struct {
	Flag           string `json:"flag" validate:"required,max=50"`
	Number         string `json:"number" validate:"required,number,min=12,max=19"`
	SecurityCode   string `json:"security_code" validate:"omitempty,number,min=3,max=4"`
	ExpirationDate string `json:"expiration_date" validate:"omitempty,card_expiry"`
	Holder         string `json:"holder" validate:"required,max=255"`
	Type           string `json:"type" validate:"omitempty,max=20"`
}

// CardPayload never carries the full number or the security code.
type CardPayload struct {
	ID             uint      `json:"id"`
	Flag           string    `json:"flag"`
	Number         string    `json:"number"`
	LastDigits     string    `json:"last_digits"`
	ExpirationDate string    `json:"expiration_date"`
	Holder         string    `json:"holder"`
	Type           string    `json:"type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CardService struct {
	cards  *repositories.CardRepository
	cipher *crypt.Cipher
}

func NewCardService(cards *repositories.CardRepository, cipher *crypt.Cipher) *CardService {
	return &CardService{cards: cards, cipher: cipher}
}

func (s *CardService) List(ctx context.Context, page, limit int) ([]CardPayload, orm.Pagination, error) {
	cards, p, err := s.cards.Paginate(ctx, page, limit)
	if err != nil {
		return nil, p, fmt.Errorf("list cards: %w", err)
	}
	return collection.Map(cards, cardPayload), p, nil
}

func (s *CardService) Get(ctx context.Context, id uint) (CardPayload, error) {
	card, err := s.find(ctx, id)
	if err != nil {
		return CardPayload{}, err
	}
	return cardPayload(card), nil
}

// Store encrypts the number and security code and saves the card.
func (s *CardService) Store(ctx context.Context, in CardInput) (CardPayload, error) {
	var card models.Card
	if err := s.fill(&card, in); err != nil {
		return CardPayload{}, err
	}
	if err := s.cards.Create(ctx, &card); err != nil {
		return CardPayload{}, fmt.Errorf("store card: %w", err)
	}
	return cardPayload(card), nil
}

func (s *CardService) Update(ctx context.Context, id uint, in CardInput) (CardPayload, error) {
	card, err := s.find(ctx, id)
	if err != nil {
		return CardPayload{}, err
	}
	if err := s.fill(&card, in); err != nil {
		return CardPayload{}, err
	}
	if err := s.cards.Save(ctx, &card); err != nil {
		return CardPayload{}, fmt.Errorf("update card %d: %w", id, err)
	}
	return cardPayload(card), nil
}

func (s *CardService) Delete(ctx context.Context, id uint) error {
	n, err := s.cards.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete card %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("card %d: %w", id, ErrCardNotFound)
	}
	return nil
}

func (s *CardService) fill(card *models.Card, in CardInput) error {
	number := strings.TrimSpace(in.Number)
	enc, err := s.cipher.Encrypt(number)
	if err != nil {
		return fmt.Errorf("encrypt card number: %w", err)
	}
	card.Number = enc
	card.LastDigits = number[len(number)-4:]

	if in.SecurityCode != "" {
		if card.SecurityCode, err = s.cipher.Encrypt(in.SecurityCode); err != nil {
			return fmt.Errorf("encrypt security code: %w", err)
		}
	}

	card.Flag = in.Flag
	card.ExpirationDate = in.ExpirationDate
	card.Holder = in.Holder
	card.Type = in.Type
	return nil
}

func (s *CardService) find(ctx context.Context, id uint) (models.Card, error) {
	card, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return models.Card{}, fmt.Errorf("card %d: %w", id, orNotFound(err, ErrCardNotFound))
	}
	return card, nil
}

// MaskNumber renders the last four digits behind a fixed mask.
func MaskNumber(last string) string {
	return "**** **** **** " + last
}

func cardPayload(c models.Card) CardPayload {
	return CardPayload{
		ID:             c.ID,
		Flag:           c.Flag,
		Number:         MaskNumber(c.LastDigits),
		LastDigits:     c.LastDigits,
		ExpirationDate: c.ExpirationDate,
		Holder:         c.Holder,
		Type:           c.Type,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
