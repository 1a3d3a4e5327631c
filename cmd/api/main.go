// @title                       Fulfillment API
// @version                     1.0
// @description                 API de inventario de materiales, productos con BOM y órdenes de fulfillment.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/Fulfillment-api/docs"
	appanalytics "github.com/jhoicas/Fulfillment-api/internal/application/analytics"
	"github.com/jhoicas/Fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/Fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/Fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	infrakafka "github.com/jhoicas/Fulfillment-api/internal/infrastructure/kafka"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/memory"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/redisx"
	httpRouter "github.com/jhoicas/Fulfillment-api/internal/interfaces/http"
	"github.com/jhoicas/Fulfillment-api/pkg/config"
	"github.com/jhoicas/Fulfillment-api/pkg/jwt"
	"github.com/jhoicas/Fulfillment-api/pkg/logger"
	"github.com/joho/godotenv"
)

// repos adaptadores de almacenamiento según DB_DRIVER.
type repos struct {
	materials repository.MaterialRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	tx        fulfillment.TxRunner
	close     func()
}

func main() {
	token := flag.Bool("token", false, "emite un JWT de operador y termina")
	tokenUser := flag.String("user", "ops", "user_id del token emitido con -token")
	tokenRole := flag.String("role", jwt.RoleOperator, "rol del token emitido con -token (admin, operator, viewer)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	if *token {
		tok, err := jwt.Generate(cfg.JWT.Secret, *tokenUser, *tokenRole, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			fmt.Fprintln(os.Stderr, "generar token:", err)
			os.Exit(1)
		}
		fmt.Println(tok)
		return
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var events fulfillment.EventPublisher
	if cfg.Kafka.Enabled() {
		publisher := infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		defer publisher.Close()
		events = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos activa")
	}

	var guard fulfillment.ImportGuard
	if cfg.Redis.Enabled() {
		rdb, err := redisx.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		guard = redisx.NewGuard(rdb, cfg.Redis.LockTTL, log.Component("import-guard"))
	}

	zl := log.Zerolog()
	materialUC := usecase.NewMaterialUseCase(store.materials, store.products)
	productUC := usecase.NewProductUseCase(store.products, store.materials, zl)
	ledgerUC := inventory.NewLedgerUseCase(store.materials, events, zl)
	replenishmentUC := inventory.NewReplenishmentUseCase(store.materials)
	orderUC := fulfillment.NewOrderUseCase(store.orders, store.products, store.tx, events, zl)
	importUC := fulfillment.NewImportUseCase(store.orders, store.products, store.tx, guard, events, zl)
	dashboardUC := appanalytics.NewDashboardUseCase(store.orders, store.materials, store.products)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Import.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fulfillment API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:    materialUC,
		ProductUC:     productUC,
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		OrderUC:       orderUC,
		ImportUC:      importUC,
		DashboardUC:   dashboardUC,
		Import: httpRouter.ImportOptions{
			MaxBytes:       int64(cfg.Import.MaxUploadBytes),
			DefaultCharset: cfg.Import.DefaultCharset,
		},
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre el backend configurado. "memory" no persiste entre reinicios.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repos, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &repos{
			materials: memory.NewMaterialRepository(s),
			products:  memory.NewProductRepository(s),
			orders:    memory.NewOrderRepository(s),
			tx:        memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("aplicar esquema: %w", err)
		}
		log.Info().Msg("esquema verificado")
	}
	return &repos{
		materials: postgres.NewMaterialRepository(pool),
		products:  postgres.NewProductRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
