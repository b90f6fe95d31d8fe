package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNotAuthorized = errors.New("caller is neither the owner nor an approved operator")
)

// Asset rows are append-only except for owner_id, which changes only through
// Transfer or the escrow moves in ListingDAO. The primary key doubles as the
// dense sequential asset id.
type Asset struct {
	ID uint `gorm:"primaryKey"`

	OwnerID uint   `gorm:"not null;index"`
	URI     string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Approval is one capability grant row per (owner, operator) pair. A grant is
// active while all_assets is true; revocation flips it back to false.
type Approval struct {
	OwnerID    uint `gorm:"primaryKey;autoIncrement:false"`
	OperatorID uint `gorm:"primaryKey;autoIncrement:false"`
	AllAssets  bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AssetDAO struct {
	db *gorm.DB
}

func NewAssetDAO(db *gorm.DB) *AssetDAO {
	return &AssetDAO{
		db: db,
	}
}

func (d *AssetDAO) Insert(ctx context.Context, asset Asset) (Asset, error) {
	result := d.db.WithContext(ctx).Create(&asset)
	if result.Error != nil {
		return Asset{}, result.Error
	}

	return asset, nil
}

func (d *AssetDAO) FindByID(ctx context.Context, id uint) (Asset, error) {
	var asset Asset

	result := d.db.WithContext(ctx).First(&asset, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Asset{}, ErrAssetNotFound
		}

		return Asset{}, result.Error
	}

	return asset, nil
}

func (d *AssetDAO) FindByOwnerID(ctx context.Context, ownerID uint) ([]Asset, error) {
	var assets []Asset

	result := d.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&assets)
	if result.Error != nil {
		return nil, result.Error
	}

	return assets, nil
}

// UpsertApproval creates or updates the (owner, operator) grant row.
func (d *AssetDAO) UpsertApproval(ctx context.Context, approval Approval) (Approval, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "operator_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"all_assets", "updated_at"}),
	}).Create(&approval)
	if result.Error != nil {
		return Approval{}, result.Error
	}

	return approval, nil
}

func (d *AssetDAO) FindApproval(ctx context.Context, ownerID, operatorID uint) (Approval, error) {
	var approval Approval

	result := d.db.WithContext(ctx).
		Where("owner_id = ? AND operator_id = ?", ownerID, operatorID).
		First(&approval)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Approval{AllAssets: false}, nil
		}

		return Approval{}, result.Error
	}

	return approval, nil
}

// Transfer reassigns ownership of an asset. The caller must be the current
// owner or hold an active grant from them. All checks and the owner update
// run inside one transaction; the guarded UPDATE makes sure the row still
// belongs to `from` at commit time.
func (d *AssetDAO) Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (Asset, error) {
	var asset Asset

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asset, assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssetNotFound
			}

			return err
		}

		if asset.OwnerID != fromID {
			return ErrNotAuthorized
		}

		if callerID != fromID {
			var approval Approval
			err := tx.Where("owner_id = ? AND operator_id = ? AND all_assets = ?", fromID, callerID, true).
				First(&approval).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotAuthorized
				}

				return err
			}
		}

		result := tx.Model(&Asset{}).
			Where("id = ? AND owner_id = ?", assetID, fromID).
			Update("owner_id", toID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotAuthorized
		}

		asset.OwnerID = toID

		return nil
	})
	if err != nil {
		return Asset{}, err
	}

	return asset, nil
}
