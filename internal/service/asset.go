package service

import (
	"context"
	"fmt"

	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/pkg/metadata"
	"github.com/artmarkt/marketplace-api/internal/repository"
)

var (
	ErrAssetNotFound = repository.ErrAssetNotFound
	ErrNotAuthorized = repository.ErrNotAuthorized
)

type AssetRepository interface {
	Create(ctx context.Context, asset domain.Asset) (domain.Asset, error)
	FindByID(ctx context.Context, id uint) (domain.Asset, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]domain.Asset, error)
	SetApproval(ctx context.Context, approval domain.Approval) (domain.Approval, error)
	FindApproval(ctx context.Context, ownerID, operatorID uint) (domain.Approval, error)
	Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (domain.Asset, error)
}

type MetadataResolver interface {
	Resolve(ctx context.Context, uri string) (metadata.AssetMetadata, error)
}

// AssetService is the asset registry: it owns asset identity, ownership and
// transfer-capability grants.
type AssetService struct {
	repo     AssetRepository
	resolver MetadataResolver
}

func NewAssetService(repo AssetRepository, resolver MetadataResolver) *AssetService {
	return &AssetService{
		repo:     repo,
		resolver: resolver,
	}
}

// Mint registers a new asset owned by the caller. The id is the next value
// of the dense sequence; the URI is fixed for good.
func (s *AssetService) Mint(ctx context.Context, callerID uint, uri string) (domain.Asset, error) {
	created, err := s.repo.Create(ctx, domain.Asset{
		OwnerID: callerID,
		URI:     uri,
	})
	if err != nil {
		return domain.Asset{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AssetService) GetAsset(ctx context.Context, id uint) (domain.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return asset, nil
}

func (s *AssetService) GetAssetsByOwner(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	assets, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByOwnerID -> %w", err)
	}

	return assets, nil
}

// SetApprovalForAll grants or revokes the operator's right to move every
// asset the caller owns, current and future.
func (s *AssetService) SetApprovalForAll(ctx context.Context, callerID, operatorID uint, enabled bool) (domain.Approval, error) {
	approval, err := s.repo.SetApproval(ctx, domain.Approval{
		OwnerID:    callerID,
		OperatorID: operatorID,
		AllAssets:  enabled,
	})
	if err != nil {
		return domain.Approval{}, fmt.Errorf("s.repo.SetApproval -> %w", err)
	}

	return approval, nil
}

func (s *AssetService) Transfer(ctx context.Context, callerID, fromID, toID, assetID uint) (domain.Asset, error) {
	moved, err := s.repo.Transfer(ctx, callerID, fromID, toID, assetID)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("s.repo.Transfer -> %w", err)
	}

	return moved, nil
}

// ResolveMetadata fetches the off-chain {name, description, image} document
// behind an asset's URI. Reporting only; settlement never depends on it.
func (s *AssetService) ResolveMetadata(ctx context.Context, assetID uint) (metadata.AssetMetadata, error) {
	asset, err := s.repo.FindByID(ctx, assetID)
	if err != nil {
		return metadata.AssetMetadata{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	meta, err := s.resolver.Resolve(ctx, asset.URI)
	if err != nil {
		return metadata.AssetMetadata{}, fmt.Errorf("s.resolver.Resolve -> %w", err)
	}

	return meta, nil
}
