package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"cafeapi/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("cafe not found")
	ErrConflict        = errors.New("cafe already exists")
	ErrInvalidInput    = errors.New("invalid cafe")
	ErrEmptyCollection = errors.New("no cafes stored")
)

type CafeRepository struct {
	db *gorm.DB
	// pick returns an index in [0, n).
	pick func(n int) int
}

func NewCafeRepository(db *gorm.DB) *CafeRepository {
	return &CafeRepository{
		db:   db,
		pick: rand.Intn,
	}
}

func (r *CafeRepository) ListAll(ctx context.Context) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	if err := r.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("r.db.Find -> %w", err)
	}
	return cafes, nil
}

// Random returns a uniformly chosen cafe from ListAll.
func (r *CafeRepository) Random(ctx context.Context) (model.Cafe, error) {
	cafes, err := r.ListAll(ctx)
	if err != nil {
		return model.Cafe{}, fmt.Errorf("r.ListAll -> %w", err)
	}
	if len(cafes) == 0 {
		return model.Cafe{}, ErrEmptyCollection
	}
	return cafes[r.pick(len(cafes))], nil
}

// FindByLocation matches location exactly. No match is an empty slice.
func (r *CafeRepository) FindByLocation(ctx context.Context, location string) ([]model.Cafe, error) {
	cafes := []model.Cafe{}
	err := r.db.WithContext(ctx).
		Where("location = ?", location).
		Order("id").
		Find(&cafes).Error
	if err != nil {
		return nil, fmt.Errorf("r.db.Find -> %w", err)
	}
	return cafes, nil
}

func (r *CafeRepository) GetByID(ctx context.Context, id uint) (model.Cafe, error) {
	var cafe model.Cafe
	if err := r.db.WithContext(ctx).First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Cafe{}, ErrNotFound
		}
		return model.Cafe{}, fmt.Errorf("r.db.First -> %w", err)
	}
	return cafe, nil
}

// Create inserts a new cafe. The id is assigned by the store and any id set
// on the argument is ignored.
func (r *CafeRepository) Create(ctx context.Context, cafe model.Cafe) (model.Cafe, error) {
	if err := cafe.Validate(); err != nil {
		return model.Cafe{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cafe.ID = 0
	if err := r.db.WithContext(ctx).Create(&cafe).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Cafe{}, ErrConflict
		}
		return model.Cafe{}, fmt.Errorf("r.db.Create -> %w", err)
	}
	return cafe, nil
}

// UpdatePrice sets coffee_price and leaves every other column untouched.
func (r *CafeRepository) UpdatePrice(ctx context.Context, id uint, price string) (model.Cafe, error) {
	var cafe model.Cafe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cafe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("tx.First -> %w", err)
		}
		if err := tx.Model(&cafe).Update("coffee_price", price).Error; err != nil {
			return fmt.Errorf("tx.Update -> %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Cafe{}, err
	}

	cafe.CoffeePrice = &price
	return cafe, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
