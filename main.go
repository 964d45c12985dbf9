// @title ABA Assessment API
// @version 1.0
// @description Backend for administering behavioral assessment questionnaires (ABLLS-R, AFLLS, DAYC-2, Behavior Therapy) with VB-MAPP aligned scoring and Excel report generation.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"aba_assessment_backend/internal/app"
	"aba_assessment_backend/internal/config"
	"aba_assessment_backend/pkg/configwatcher"
	"aba_assessment_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	// Hot-reload for tunables that are safe to change at runtime.
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if updated, ok := newCfg.(*config.Config); ok {
			cfg.Report.Archive = updated.Report.Archive
			cfg.RateLimit = updated.RateLimit
			logger.Log.Info("Configuration reloaded",
				zap.Bool("reportArchive", cfg.Report.Archive))
		}
	})

	application.Run()
}
