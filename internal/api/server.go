package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/artmarkt/marketplace-api/docs"
	v1 "github.com/artmarkt/marketplace-api/internal/api/handler/v1"
	"github.com/artmarkt/marketplace-api/internal/api/middleware"
	"github.com/artmarkt/marketplace-api/internal/config"
	"github.com/artmarkt/marketplace-api/internal/pkg/metadata"
	"github.com/artmarkt/marketplace-api/internal/repository"
	"github.com/artmarkt/marketplace-api/internal/repository/dao"
	"github.com/artmarkt/marketplace-api/internal/service"
)

const metadataTimeout = 10 * time.Second

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

// SystemAccounts carries the ids of the two accounts bootstrapped at
// startup: the fee recipient and the escrow holder.
type SystemAccounts struct {
	FeeAccountID    uint
	EscrowAccountID uint
}

func NewServer(conf *config.AppConfig, db *gorm.DB, accounts SystemAccounts) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	assetHandler := s.initAssetHandler(db)
	marketHandler := s.initMarketHandler(db, accounts)
	walletHandler := s.initWalletHandler(db)
	s.MountHandlers(authHandler, userHandler, assetHandler, marketHandler, walletHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initAssetHandler(db *gorm.DB) *v1.AssetHandler {
	assetDAO := dao.NewAssetDAO(db)
	repo := repository.NewAssetRepository(assetDAO)
	resolver := metadata.NewClient(metadataTimeout)
	svc := service.NewAssetService(repo, resolver)
	handler := v1.NewAssetHandler(svc)

	return handler
}

func (s *Server) initMarketHandler(db *gorm.DB, accounts SystemAccounts) *v1.MarketHandler {
	listingDAO := dao.NewListingDAO(db)
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewMarketRepository(listingDAO, eventDAO)
	svc := service.NewMarketService(repo, s.Config.Market.FeePercent, accounts.FeeAccountID, accounts.EscrowAccountID)
	handler := v1.NewMarketHandler(svc)

	return handler
}

func (s *Server) initWalletHandler(db *gorm.DB) *v1.WalletHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewWalletService(repo, s.Config.Stripe)
	handler := v1.NewWalletHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	assetHandler *v1.AssetHandler,
	marketHandler *v1.MarketHandler,
	walletHandler *v1.WalletHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.POST("/assets", assetHandler.HandleMintAsset)
		authenticated.GET("/assets", assetHandler.HandleListAssets)
		authenticated.GET("/assets/:assetID", assetHandler.HandleGetAsset)
		authenticated.GET("/assets/:assetID/metadata", assetHandler.HandleGetAssetMetadata)
		authenticated.POST("/assets/approvals", assetHandler.HandleSetApproval)
		authenticated.POST("/assets/transfer", assetHandler.HandleTransferAsset)

		authenticated.POST("/listings", marketHandler.HandleCreateListing)
		authenticated.GET("/listings", marketHandler.HandleGetListings)
		authenticated.GET("/listings/:itemID", marketHandler.HandleGetListing)
		authenticated.GET("/listings/:itemID/total-price", marketHandler.HandleGetTotalPrice)
		authenticated.POST("/listings/:itemID/purchase", marketHandler.HandlePurchase)

		authenticated.GET("/market", marketHandler.HandleGetMarketInfo)
		authenticated.GET("/events", marketHandler.HandleGetEvents)

		authenticated.POST("/wallet/deposit", walletHandler.HandleDeposit)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "NFT marketplace ledger API"
	docs.SwaggerInfo.Description = "Fixed-price marketplace with atomic settlement."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
