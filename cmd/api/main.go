package main

import (
	"context"
	"log"
	"os"
	"time"

	_ "commerce/api/swagger" // swagger docs
	"commerce/internal/authz"
	"commerce/internal/database"
	"commerce/internal/handler"
	"commerce/internal/middleware"
	"commerce/internal/repository"
	"commerce/internal/service"
	"commerce/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Commerce Administration API
// @version         1.0
// @description     Permission-gated CRUD backend for catalog, clients, logistics and stock entries.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// WebSocket hub for the live stock-entry feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Authorization: DB resolver behind a short-TTL snapshot cache
	resolver := authz.NewCachedResolver(authz.NewDBResolver(db), 30*time.Second)
	auth := middleware.NewAuth(resolver)

	// Repositories
	txMgr := repository.NewTransactionManager(db)
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	villeRepo := repository.NewVilleRepository(db)
	secteurRepo := repository.NewSecteurRepository(db)
	commercialRepo := repository.NewCommercialRepository(db)
	clientRepo := repository.NewClientRepository(db)
	livreurRepo := repository.NewLivreurRepository(db)
	transporteurRepo := repository.NewTransporteurRepository(db)
	entryRepo := repository.NewStockEntryRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Services
	auditService := service.NewAuditService(auditRepo)
	brandService := service.NewBrandService(brandRepo)
	categoryService := service.NewCategoryService(categoryRepo, brandRepo)
	productService := service.NewProductService(productRepo, brandRepo, categoryRepo, auditService)
	promotionService := service.NewPromotionService(promotionRepo, productRepo, auditService)
	villeService := service.NewVilleService(villeRepo)
	secteurService := service.NewSecteurService(secteurRepo, villeRepo)
	commercialService := service.NewCommercialService(commercialRepo)
	clientService := service.NewClientService(clientRepo, villeRepo, secteurRepo, commercialRepo)
	livreurService := service.NewLivreurService(livreurRepo)
	transporteurService := service.NewTransporteurService(transporteurRepo)
	entryService := service.NewEntryService(entryRepo, productRepo, transporteurRepo, auditService, wsHub)
	roleService := service.NewRoleService(roleRepo, txMgr, resolver)
	userService := service.NewUserService(userRepo, roleRepo, txMgr, resolver, middleware.GetJWTSecret())
	dashboardService := service.NewDashboardService(
		brandRepo, categoryRepo, productRepo, promotionRepo,
		clientRepo, villeRepo, commercialRepo,
		livreurRepo, transporteurRepo, entryRepo,
	)

	// Seed the permission vocabulary, built-in roles and initial admin
	ctx := context.Background()
	if err := roleService.SeedDefaults(ctx); err != nil {
		log.Fatalf("Role seeding failed: %v", err)
	}
	if err := userService.SeedAdmin(ctx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}

	// Handlers
	handlers := []interface {
		RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth)
	}{
		handler.NewUserHandler(userService),
		handler.NewRoleHandler(roleService),
		handler.NewBrandHandler(brandService),
		handler.NewCategoryHandler(categoryService),
		handler.NewProductHandler(productService),
		handler.NewPromotionHandler(promotionService),
		handler.NewVilleHandler(villeService),
		handler.NewSecteurHandler(secteurService),
		handler.NewCommercialHandler(commercialService),
		handler.NewClientHandler(clientService),
		handler.NewLivreurHandler(livreurService),
		handler.NewTransporteurHandler(transporteurService),
		handler.NewEntryHandler(entryService),
		handler.NewAuditHandler(auditService),
		handler.NewDashboardHandler(dashboardService),
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public landing page
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Commerce Administration API",
			"docs":    "/swagger/index.html",
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	root := router.Group("")
	for _, h := range handlers {
		h.RegisterRoutes(root, auth)
	}

	port := envOr("PORT", "8080")
	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
