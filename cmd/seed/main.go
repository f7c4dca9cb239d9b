// Seed de datos de demostración: usuarios, productos, clientes y unas
// órdenes de ejemplo. Las órdenes se crean a través del workflow real para
// que stock y acumuladores de gasto queden consistentes.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/order"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type seedProduct struct {
	name, description, supplier, category, price string
	stock, alertStock                            int64
}

type seedCustomer struct {
	licenseNo, name, contact string
}

var products = []seedProduct{
	{"Guantes de nitrilo (caja x100)", "Talla M, sin polvo", "MedSupply SA", entity.CategoryInsumo, "45.00", 120, 30},
	{"Jeringas 5ml (caja x50)", "Estériles, descartables", "MedSupply SA", entity.CategoryInsumo, "28.50", 200, 50},
	{"Gasas estériles (paquete x20)", "10x10 cm", "Insumos del Norte", entity.CategoryInsumo, "12.00", 300, 80},
	{"Alcohol antiséptico 1L", "70% v/v", "Insumos del Norte", entity.CategoryInsumo, "9.90", 150, 40},
	{"Tensiómetro digital", "Brazo, validado clínicamente", "BioTech Instruments", entity.CategoryInstrumento, "185.00", 25, 5},
	{"Estetoscopio doble campana", "Acero inoxidable", "BioTech Instruments", entity.CategoryInstrumento, "96.00", 40, 10},
	{"Oxímetro de pulso", "Pantalla OLED", "BioTech Instruments", entity.CategoryInstrumento, "75.50", 35, 8},
	{"Bisturí N°11 (caja x10)", "Hoja de carbono", "Quirúrgicos del Sur", entity.CategoryInstrumento, "22.00", 60, 15},
	{"Amoxicilina 500mg (caja x21)", "Antibiótico oral", "Farma Andina", entity.CategoryMedicamento, "18.75", 180, 45},
	{"Paracetamol 500mg (caja x100)", "Analgésico", "Farma Andina", entity.CategoryMedicamento, "8.40", 400, 100},
	{"Omeprazol 20mg (caja x28)", "Inhibidor de bomba", "Farma Andina", entity.CategoryMedicamento, "14.20", 220, 55},
	{"Suero fisiológico 500ml", "Cloruro de sodio 0.9%", "Laboratorios Vida", entity.CategoryMedicamento, "6.80", 260, 60},
}

var customers = []seedCustomer{
	{"LIC-HOSP-0001", "Hospital Central", "compras@hospitalcentral.example — Tel 555-0101"},
	{"LIC-CLIN-0002", "Clínica Santa María", "logistica@santamaria.example — Tel 555-0102"},
	{"LIC-CSAL-0003", "Centro de Salud Norte", "adquisiciones@csnorte.example — Tel 555-0103"},
	{"LIC-HOSP-0004", "Hospital Regional del Sur", "almacen@hregionalsur.example — Tel 555-0104"},
	{"LIC-CLIN-0005", "Clínica La Merced", "compras@lamerced.example — Tel 555-0105"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	orderUC := order.NewUseCase(txRunner, productRepo, customerRepo, orderRepo, nil, log)

	now := time.Now()

	// Usuarios base: admin / vendedor (password igual al username, solo demo).
	seedUsers := []struct{ username, nickname, email, role string }{
		{"admin", "Administrador", "admin@ventas.example", entity.RoleAdmin},
		{"vendedor1", "Ana Rojas", "ana.rojas@ventas.example", entity.RoleVendedor},
		{"vendedor2", "Luis Paredes", "luis.paredes@ventas.example", entity.RoleVendedor},
	}
	userIDs := make(map[string]int64)
	for _, u := range seedUsers {
		existing, err := userRepo.GetByUsername(u.username)
		if err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("buscar usuario")
		}
		if existing != nil {
			userIDs[u.username] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.username), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		user := &entity.User{
			Username:     u.username,
			PasswordHash: string(hash),
			Nickname:     u.nickname,
			Email:        u.email,
			Role:         u.role,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
		userIDs[u.username] = user.ID
		log.Info().Str("username", u.username).Str("role", u.role).Msg("usuario creado")
	}

	var productIDs []int64
	for _, p := range products {
		product := &entity.Product{
			Name:        p.name,
			Description: p.description,
			Supplier:    p.supplier,
			Category:    p.category,
			Price:       decimal.RequireFromString(p.price),
			Stock:       p.stock,
			AlertStock:  p.alertStock,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(product); err != nil {
			log.Fatal().Err(err).Str("name", p.name).Msg("crear producto")
		}
		productIDs = append(productIDs, product.ID)
	}
	log.Info().Int("count", len(productIDs)).Msg("productos creados")

	var customerIDs []int64
	for _, c := range customers {
		customer := &entity.Customer{
			LicenseNo:  c.licenseNo,
			Name:       c.name,
			Contact:    c.contact,
			TotalSpent: decimal.Zero,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := customerRepo.Create(customer); err != nil {
			log.Fatal().Err(err).Str("name", c.name).Msg("crear cliente")
		}
		customerIDs = append(customerIDs, customer.ID)
	}
	log.Info().Int("count", len(customerIDs)).Msg("clientes creados")

	// Órdenes de ejemplo a través del workflow real.
	sellerID := userIDs["vendedor1"]
	seedOrders := []dto.CreateOrderRequest{
		{CustomerID: customerIDs[0], Items: []dto.OrderItemRequest{
			{ProductID: productIDs[0], Quantity: 10},
			{ProductID: productIDs[1], Quantity: 20},
			{ProductID: productIDs[9], Quantity: 15},
		}},
		{CustomerID: customerIDs[1], Items: []dto.OrderItemRequest{
			{ProductID: productIDs[4], Quantity: 2},
			{ProductID: productIDs[6], Quantity: 3},
		}},
		{CustomerID: customerIDs[2], Items: []dto.OrderItemRequest{
			{ProductID: productIDs[2], Quantity: 30},
			{ProductID: productIDs[3], Quantity: 12},
			{ProductID: productIDs[11], Quantity: 25},
		}},
		{CustomerID: customerIDs[0], Items: []dto.OrderItemRequest{
			{ProductID: productIDs[8], Quantity: 8},
		}},
	}
	for _, req := range seedOrders {
		resp, err := orderUC.Create(ctx, &sellerID, req)
		if err != nil {
			log.Fatal().Err(err).Int64("customer_id", req.CustomerID).Msg("crear orden")
		}
		log.Info().Int64("order_id", resp.ID).Str("total", resp.Total.String()).Msg("orden creada")
	}

	log.Info().Msg("seed completado")
}
