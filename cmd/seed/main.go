package main

import (
	"context"
	"fmt"
	"os"

	"cafeapi/config"
	"cafeapi/database"
	"cafeapi/logger"
	"cafeapi/repository"
	"cafeapi/seed"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	file := flags.String("file", "", "path to the .xlsx workbook to import")
	sheet := flags.String("sheet", "", "sheet to read (default: first sheet)")
	flags.Bool("debug", false, "verbose logging")
	_ = flags.Parse(os.Args[1:])

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: seed --file cafes.xlsx [--sheet Cafes] [--debug]")
		os.Exit(2)
	}

	if err := run(*file, *sheet, flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file, sheet string, flags *pflag.FlagSet) error {
	conf, err := config.Load(config.Path(), flags)
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	log, _, err := logger.New(conf.Log.Level, conf.Debug)
	if err != nil {
		return fmt.Errorf("logger.New -> %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(conf.Database, conf.Debug, log)
	if err != nil {
		return fmt.Errorf("database.Open -> %w", err)
	}
	defer func() { _ = database.Close(db) }()

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("os.Open -> %w", err)
	}
	defer f.Close()

	importer := seed.NewImporter(repository.NewCafeRepository(db), log)
	res, err := importer.ImportWorkbook(context.Background(), f, sheet)
	if err != nil {
		return fmt.Errorf("importer.ImportWorkbook -> %w", err)
	}

	log.Info("import finished",
		zap.String("file", file),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("invalid", res.Invalid),
	)
	return nil
}
