package boosts

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
)

// Repository provides DB operations used by the boost service.
type Repository interface {
	FindActivePlan(ctx context.Context, accountType, tier string) (*models.SubscriptionPlan, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	LatestActiveSubscription(ctx context.Context, sellerID string) (*models.Subscription, error)
	UpdateLedger(ctx context.Context, sellerID string, l Ledger) error
	SetBoostsRemaining(ctx context.Context, sellerID string, remaining int) error
	SetStripeCustomerID(ctx context.Context, profileID, customerID string) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	MarkProductBoosted(ctx context.Context, productID string, expiresAt time.Time) error
	CreateListingBoost(ctx context.Context, b *models.ListingBoost) error
	GetBoostPrice(ctx context.Context, durationDays int) (*models.BoostPrice, error)
	ExpireBoosts(ctx context.Context, now time.Time) ([]models.Product, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a boost repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindActivePlan(ctx context.Context, accountType, tier string) (*models.SubscriptionPlan, error) {
	var p models.SubscriptionPlan
	err := r.db.WithContext(ctx).
		Where("account_type = ? AND tier = ? AND is_active = ?", accountType, tier, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) LatestActiveSubscription(ctx context.Context, sellerID string) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, models.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormRepository) UpdateLedger(ctx context.Context, sellerID string, l Ledger) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", sellerID).Updates(map[string]interface{}{
		"boosts_allocated": l.Allocated,
		"boosts_remaining": l.Remaining,
		"boosts_reset_at":  l.ResetAt,
	}).Error
}

func (r *gormRepository) SetBoostsRemaining(ctx context.Context, sellerID string, remaining int) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", sellerID).
		Update("boosts_remaining", remaining).Error
}

func (r *gormRepository) SetStripeCustomerID(ctx context.Context, profileID, customerID string) error {
	return r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profileID).
		Update("stripe_customer_id", customerID).Error
}

func (r *gormRepository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) MarkProductBoosted(ctx context.Context, productID string, expiresAt time.Time) error {
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"is_boosted":       true,
		"boost_expires_at": expiresAt,
		"listing_type":     models.ListingTypeBoosted,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) CreateListingBoost(ctx context.Context, b *models.ListingBoost) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *gormRepository) GetBoostPrice(ctx context.Context, durationDays int) (*models.BoostPrice, error) {
	var p models.BoostPrice
	err := r.db.WithContext(ctx).
		Where("duration_days = ? AND is_active = ?", durationDays, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ExpireBoosts un-boosts expired listings and deactivates their boost rows.
func (r *gormRepository) ExpireBoosts(ctx context.Context, now time.Time) ([]models.Product, error) {
	var expired []models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id", "seller_id").
			Where("is_boosted = ? AND (boost_expires_at IS NULL OR boost_expires_at <= ?)", true, now).
			Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]string, 0, len(expired))
		for _, p := range expired {
			ids = append(ids, p.ID)
		}
		if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Updates(map[string]interface{}{
			"is_boosted":       false,
			"boost_expires_at": nil,
			"listing_type":     models.ListingTypeStandard,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.ListingBoost{}).
			Where("is_active = ? AND expires_at <= ?", true, now).
			Update("is_active", false).Error
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}
