package repository

import (
	"context"
	"fmt"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/repository/dao"
)

var (
	ErrAssetNotFound = dao.ErrAssetNotFound
	ErrNotAuthorized = dao.ErrNotAuthorized
)

type AssetDAO interface {
	Insert(ctx context.Context, asset dao.Asset) (dao.Asset, error)
	FindByID(ctx context.Context, id uint) (dao.Asset, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]dao.Asset, error)
	UpsertApproval(ctx context.Context, approval dao.Approval) (dao.Approval, error)
	FindApproval(ctx context.Context, ownerID, operatorID uint) (dao.Approval, error)
	Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (dao.Asset, error)
}

type AssetRepository struct {
	dao AssetDAO
}

func NewAssetRepository(dao AssetDAO) *AssetRepository {
	return &AssetRepository{
		dao: dao,
	}
}

func (r *AssetRepository) Create(ctx context.Context, asset domain.Asset) (domain.Asset, error) {
	created, err := r.dao.Insert(ctx, dao.Asset{
		OwnerID: asset.OwnerID,
		URI:     asset.URI,
	})
	if err != nil {
		return domain.Asset{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id uint) (domain.Asset, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AssetRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	found, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	assets := make([]domain.Asset, len(found))
	for i, a := range found {
		assets[i] = r.daoToDomain(a)
	}

	return assets, nil
}

func (r *AssetRepository) SetApproval(ctx context.Context, approval domain.Approval) (domain.Approval, error) {
	saved, err := r.dao.UpsertApproval(ctx, dao.Approval{
		OwnerID:    approval.OwnerID,
		OperatorID: approval.OperatorID,
		AllAssets:  approval.AllAssets,
	})
	if err != nil {
		return domain.Approval{}, fmt.Errorf("r.dao.UpsertApproval -> %w", err)
	}

	return domain.Approval{
		OwnerID:    saved.OwnerID,
		OperatorID: saved.OperatorID,
		AllAssets:  saved.AllAssets,
	}, nil
}

func (r *AssetRepository) FindApproval(ctx context.Context, ownerID, operatorID uint) (domain.Approval, error) {
	found, err := r.dao.FindApproval(ctx, ownerID, operatorID)
	if err != nil {
		return domain.Approval{}, fmt.Errorf("r.dao.FindApproval -> %w", err)
	}

	return domain.Approval{
		OwnerID:    found.OwnerID,
		OperatorID: found.OperatorID,
		AllAssets:  found.AllAssets,
	}, nil
}

func (r *AssetRepository) Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (domain.Asset, error) {
	moved, err := r.dao.Transfer(ctx, callerID, fromID, toID, assetID)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("r.dao.Transfer -> %w", err)
	}

	return r.daoToDomain(moved), nil
}

func (r *AssetRepository) daoToDomain(a dao.Asset) domain.Asset {
	return domain.Asset{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		URI:       a.URI,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
