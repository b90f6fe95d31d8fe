package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/artmarkt/marketplace-api/internal/api"
	"github.com/artmarkt/marketplace-api/internal/config"
	"github.com/artmarkt/marketplace-api/internal/db"
	"github.com/artmarkt/marketplace-api/internal/domain"
	"github.com/artmarkt/marketplace-api/internal/logger"
	"github.com/artmarkt/marketplace-api/internal/repository"
	"github.com/artmarkt/marketplace-api/internal/repository/dao"
	"github.com/artmarkt/marketplace-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	accounts, err := bootstrapSystemAccounts(postgresDB, conf.Market)
	if err != nil {
		return fmt.Errorf("failed to bootstrap system accounts -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, accounts)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// bootstrapSystemAccounts makes sure the fee recipient and the escrow holder
// exist. Their ids become deployment constants of the marketplace.
func bootstrapSystemAccounts(gormDB *gorm.DB, conf *config.MarketConfig) (api.SystemAccounts, error) {
	repo := repository.NewUserRepository(dao.NewUserDAO(gormDB))
	authSvc := service.NewAuthService(repo)

	feeAccountID, err := ensureAccount(repo, authSvc, conf.FeeAccountEmail, "Marketplace fees")
	if err != nil {
		return api.SystemAccounts{}, err
	}

	escrowAccountID, err := ensureAccount(repo, authSvc, conf.EscrowAccountEmail, "Marketplace escrow")
	if err != nil {
		return api.SystemAccounts{}, err
	}

	return api.SystemAccounts{
		FeeAccountID:    feeAccountID,
		EscrowAccountID: escrowAccountID,
	}, nil
}

func ensureAccount(repo *repository.UserRepository, authSvc *service.AuthService, email, name string) (uint, error) {
	ctx := context.Background()

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, fmt.Errorf("repo.FindByEmail -> %w", err)
	}

	// System accounts are never logged into; give them a throwaway password.
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return 0, fmt.Errorf("rand.Read -> %w", err)
	}

	created, err := authSvc.Signup(ctx, domain.User{
		Email:    email,
		Name:     name,
		Password: hex.EncodeToString(buf),
	})
	if err != nil {
		return 0, fmt.Errorf("authSvc.Signup -> %w", err)
	}

	zap.L().Info("created system account",
		zap.String("email", email),
		zap.Uint("id", created.ID),
	)

	return created.ID, nil
}
