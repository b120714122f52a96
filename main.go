package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"statreport/adapters/chart"
	"statreport/adapters/excel"
	"statreport/app"
	"statreport/internal/config"
	"statreport/internal/statistics"
	"statreport/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load(os.Getenv("STATREPORT_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := appConfig.NewLogger()

	engine := statistics.NewEngine(logger)
	renderer := chart.NewRenderer(appConfig.ChartOptions(), logger)
	reports := app.NewReportService(engine, renderer, app.ServiceOptions{
		Report:        appConfig.ReportOptions(),
		RenderWorkers: appConfig.Charts.RenderWorkers,
	}, logger)
	reader := excel.NewDataReader(appConfig.ReaderConfig())

	server, err := ui.NewServer(ui.Config{
		GinMode:     appConfig.Server.GinMode,
		MaxUploadMB: appConfig.Server.MaxUploadMB,
		UploadTTL:   appConfig.Server.UploadTTL,
	}, reader, reports, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
