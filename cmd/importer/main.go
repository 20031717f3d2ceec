package main

import (
	"fmt"
	"log"
	"os"

	"finsight/internal/entity"
	"finsight/internal/importer/config"
	"finsight/internal/importer/repository"
	"finsight/internal/importer/service"
	"finsight/internal/importer/stockcache"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"github.com/spf13/cobra"
)

var (
	configPath string
	csvPath    string
)

// deps bundles everything an import run needs.
type deps struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *postgres.DB
	close  func()
}

func setup() (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	})
	if err != nil {
		appLogger.Error("Failed to initialize database", logger.ErrorField(err))
		return nil, err
	}

	closeFn := func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			sqlDB.Close()
		}
		_ = appLogger.Sync()
	}
	return &deps{cfg: cfg, logger: appLogger, db: db, close: closeFn}, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the schema and seed the configured source row",
	Run: func(cmd *cobra.Command, args []string) {
		d, err := setup()
		if err != nil {
			log.Fatal(err)
		}
		defer d.close()

		if err := d.db.DB.AutoMigrate(
			&entity.Source{},
			&entity.Stock{},
			&entity.StockPriceCandle{},
			&entity.HotTopic{},
			&entity.StockDailyRecommendation{},
		); err != nil {
			d.logger.Fatal("Failed to create schema", logger.ErrorField(err))
		}

		sourceRepo := repository.NewSourcesRepository(d.db.DB)
		source := &entity.Source{Code: d.cfg.Importer.SourceCode, Name: d.cfg.Importer.SourceCode}
		if err := sourceRepo.Upsert(cmd.Context(), source); err != nil {
			d.logger.Fatal("Failed to seed source", logger.ErrorField(err))
		}

		d.logger.Info("Schema ready", logger.StringField("source_code", d.cfg.Importer.SourceCode))
	},
}

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Import a price candle CSV",
	Run: func(cmd *cobra.Command, args []string) {
		runImport(func(d *deps) (service.Summary, string, error) {
			stocks := stockcache.New(repository.NewStocksRepository(d.db.DB))
			svc := service.NewPriceImportService(
				repository.NewPriceCandlesRepository(d.db.DB), stocks, d.cfg, d.logger)
			path := pathOrDefault(d.cfg.Importer.PriceCSV)
			summary, err := svc.Run(cmd.Context(), path)
			return summary, path, err
		})
	},
}

var hotTopicsCmd = &cobra.Command{
	Use:   "hot-topics",
	Short: "Import a hot-topic mention metrics CSV",
	Run: func(cmd *cobra.Command, args []string) {
		runImport(func(d *deps) (service.Summary, string, error) {
			stocks := stockcache.New(repository.NewStocksRepository(d.db.DB))
			svc := service.NewHotTopicImportService(
				repository.NewHotTopicsRepository(d.db.DB),
				repository.NewSourcesRepository(d.db.DB),
				stocks, d.cfg, d.logger)
			path := pathOrDefault(d.cfg.Importer.HotTopicCSV)
			summary, err := svc.Run(cmd.Context(), path)
			return summary, path, err
		})
	},
}

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Import a daily recommendation signal CSV",
	Run: func(cmd *cobra.Command, args []string) {
		runImport(func(d *deps) (service.Summary, string, error) {
			stocks := stockcache.New(repository.NewStocksRepository(d.db.DB))
			svc := service.NewRecommendationImportService(
				repository.NewRecommendationsRepository(d.db.DB),
				repository.NewSourcesRepository(d.db.DB),
				stocks, d.cfg, d.logger)
			path := pathOrDefault(d.cfg.Importer.RecommendationCSV)
			summary, err := svc.Run(cmd.Context(), path)
			return summary, path, err
		})
	},
}

func runImport(run func(d *deps) (service.Summary, string, error)) {
	d, err := setup()
	if err != nil {
		log.Fatal(err)
	}
	defer d.close()

	summary, path, err := run(d)
	if err != nil {
		d.logger.Fatal("Import failed",
			logger.StringField("csv", path),
			logger.ErrorField(err),
			logger.IntField("upserted_before_failure", summary.Upserted))
	}

	d.logger.Info("Import finished",
		logger.StringField("csv", path),
		logger.IntField("upserted", summary.Upserted),
		logger.IntField("skipped_stock", summary.SkippedStock),
		logger.IntField("skipped_row", summary.SkippedRow))
}

func pathOrDefault(configured string) string {
	if csvPath != "" {
		return csvPath
	}
	return configured
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "finsight-importer",
		Short: "CSV import drivers for the finsight store",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-importer.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&csvPath, "file", "f", "", "CSV file path (overrides the configured path)")

	rootCmd.AddCommand(initCmd, pricesCmd, hotTopicsCmd, recommendationsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing finsight-importer CLI: %s\n", err)
		os.Exit(1)
	}
}
