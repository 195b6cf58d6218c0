package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"truckscout/cms"
	"truckscout/config"
	"truckscout/database"
	accountRoutes "truckscout/routers/accountRoutes"
	authRoutes "truckscout/routers/authRoutes"
	carrierRoutes "truckscout/routers/carrierRoutes"
	contentRoutes "truckscout/routers/contentRoutes"
	factoringRoutes "truckscout/routers/factoringRoutes"
	invoiceRoutes "truckscout/routers/invoiceRoutes"
	loadRoutes "truckscout/routers/loadRoutes"
	"truckscout/utils"
)

func main() {
	cfg := config.Load()
	database.ConnectDb(cfg)

	mailer, err := utils.NewMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	cmsClient, err := cms.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize CMS client: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, cfg)
	accountRoutes.SetupAccountRoutes(app, cfg, mailer)
	carrierRoutes.SetupCarrierRoutes(app, cfg)
	factoringRoutes.SetupFactoringRoutes(app, cfg)
	loadRoutes.SetupLoadRoutes(app, cfg)
	invoiceRoutes.SetupInvoiceRoutes(app, cfg)
	contentRoutes.SetupContentRoutes(app, cmsClient)

	// Hourly purge of expired invitations
	utils.InitializeInviteScheduler()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
