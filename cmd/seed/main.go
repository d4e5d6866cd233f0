package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"petstock/config"
	"petstock/internal/domain"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/database"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/token"
	"petstock/internal/repository/productrepo"
	"petstock/internal/repository/userrepo"
	"petstock/internal/service/productservice"
	"petstock/internal/service/userservice"
)

var seedUsers = []domain.UserRegistration{
	{Name: "Admin Sistema", Email: "admin@mascotas.com", Password: "admin123", IsActive: true},
	{Name: "Juan Pérez", Email: "juan.perez@mascotas.com", Password: "empleado123", IsActive: true},
	{Name: "María García", Email: "maria.garcia@mascotas.com", Password: "empleado123", IsActive: true},
	{Name: "Carlos López", Email: "carlos.lopez@mascotas.com", Password: "empleado123", IsActive: false}, // inativo para testes
}

func seedProduct(name, description string, price int64, category string, stock, minimum int, active bool) domain.Product {
	return domain.Product{
		Name:         name,
		Description:  description,
		Price:        decimal.NewFromInt(price),
		Category:     category,
		Stock:        stock,
		StockMinimum: minimum,
		IsActive:     active,
	}
}

var seedProducts = []domain.Product{
	seedProduct("Alimento Premium para Perros Adultos", "Alimento balanceado rico en proteínas para perros adultos de todas las razas", 45000, "Alimento", 50, 10, true),
	seedProduct("Alimento para Gatos Cachorros", "Alimento especializado para gatos cachorros hasta 12 meses", 38000, "Alimento", 25, 5, true),
	seedProduct("Correa Retráctil para Perros", "Correa retráctil de 5 metros, resistente y cómoda", 25000, "Accesorios", 15, 3, true),
	seedProduct("Shampoo para Mascotas", "Shampoo hipoalergénico para perros y gatos", 18000, "Higiene", 30, 8, true),
	seedProduct("Juguete Pelota Interactiva", "Pelota con sonido para entretenimiento de mascotas", 12000, "Juguetes", 8, 5, true),
	seedProduct("Vitamina Completa para Perros", "Suplemento vitamínico para fortalecer el sistema inmunológico", 35000, "Medicamentos", 12, 4, true),
	seedProduct("Arena Sanitaria para Gatos", "Arena aglomerante con control de olores", 28000, "Higiene", 20, 6, true),
	seedProduct("Cama Ortopédica para Perros", "Cama ergonómica para perros de todas las edades", 85000, "Accesorios", 5, 2, true),
	seedProduct("Producto con Stock Bajo", "Producto para probar alertas de stock bajo", 15000, "Alimento", 2, 5, true),
	seedProduct("Producto Inactivo", "Producto descontinuado para pruebas", 10000, "Juguetes", 0, 3, false),
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: .env não encontrado, usando apenas o ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}
	appLog := logger.New(logger.Config{Env: cfg.Environment, Level: cfg.LogLevel})

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	// O Redis é usado só para descartar produtos em cache de um seed anterior.
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	defer cacheClient.Close()

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	userSvc := userservice.NewService(userRepo, token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry), appLog)
	productSvc := productservice.NewService(productRepo, appLog)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	appLog.Info("🚀 Iniciando seed...", nil)

	if err := userRepo.DeleteAll(ctx); err != nil {
		appLog.Fatal("Falha ao limpar usuários.", err)
	}
	for _, u := range seedUsers {
		if _, err := userSvc.CreateUser(ctx, u); err != nil {
			appLog.Fatal("Falha ao criar usuário "+u.Email, err)
		}
	}
	appLog.Info("👥 Usuários criados.", map[string]interface{}{"total": len(seedUsers)})

	if err := productRepo.DeleteAll(ctx); err != nil {
		appLog.Fatal("Falha ao limpar produtos.", err)
	}
	for _, p := range seedProducts {
		if _, err := productSvc.CreateProduct(ctx, p); err != nil {
			appLog.Fatal("Falha ao criar produto "+p.Name, err)
		}
	}
	appLog.Info("🛍️ Produtos criados.", map[string]interface{}{"total": len(seedProducts)})

	fmt.Println("\n📋 Credenciais de teste:")
	for _, u := range seedUsers {
		status := ""
		if !u.IsActive {
			status = " (inativo)"
		}
		fmt.Printf("  %s / %s%s\n", u.Email, u.Password, status)
	}
	fmt.Printf("\n🛍️ %d produtos (1 inativo, 1 com estoque baixo)\n", len(seedProducts))
}
