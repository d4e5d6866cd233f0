package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"petstock/config"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/database"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/middleware"
	"petstock/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"petstock/internal/api/product" // Handlers
	"petstock/internal/api/router"  // Roteador central
	"petstock/internal/api/stock"
	"petstock/internal/api/user"
	"petstock/internal/repository/productrepo" // Acesso a Dados
	"petstock/internal/repository/userrepo"
	"petstock/internal/service/productservice" // Lógica de Negócio
	"petstock/internal/service/stockservice"
	"petstock/internal/service/userservice"
)

// @title Petstock API
// @version 1.0
// @description API de inventário de produtos para mascotas com controle de estoque mínimo.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço petstock...")
	// O .env é opcional: em Docker as variáveis já vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}
	appLog := logger.New(logger.Config{Env: cfg.Environment, Level: cfg.LogLevel})
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Infraestrutura

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		// Sem Redis o cache vira miss e o rate limit global deixa passar.
		appLog.Warn("Redis indisponível; seguindo sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		appLog.Info("Conexão Redis estabelecida.", nil)
	}
	cancelPing()

	// 2. Injeção de dependências: Repository -> Service -> Handler

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	productSvc := productservice.NewService(productRepo, appLog)
	stockSvc := stockservice.NewService(productRepo, appLog)
	userSvc := userservice.NewService(userRepo, tokenSvc, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	productHandler := product.NewHandler(productSvc, appLog)
	stockHandler := stock.NewHandler(stockSvc, appLog)
	userHandler := user.NewHandler(userSvc, appLog)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	loginLimiter := middleware.NewLoginLimiter(cfg.LoginRatePerSec, cfg.LoginBurst, appLog)
	go loginLimiter.StartCleanupLoop(ctx, time.Minute, 3*time.Minute)

	// 3. Roteador e servidor

	r := router.NewRouter(router.Deps{
		ProductHandler:       productHandler,
		StockHandler:         stockHandler,
		UserHandler:          userHandler,
		Auth:                 userSvc,
		LoginLimiter:         loginLimiter,
		Cache:                cacheClient,
		Logger:               appLog,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		CORSAllowedOrigin:    cfg.CORSAllowedOrigin,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("🚀 Servidor petstock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
