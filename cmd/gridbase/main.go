package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MCB-SMART-BOY/gridbase/internal/config"
	"github.com/MCB-SMART-BOY/gridbase/internal/database"
	"github.com/MCB-SMART-BOY/gridbase/internal/executor"
	"github.com/MCB-SMART-BOY/gridbase/internal/history"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
	"github.com/MCB-SMART-BOY/gridbase/internal/tui"
)

func main() {
	csvPath := flag.String("csv", "", "edit a CSV file offline instead of a database table")
	dbPath := flag.String("db", "", "sqlite database path (overrides config)")
	tableName := flag.String("table", "", "table to open (overrides config)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *tableName != "" {
		cfg.Database.Table = *tableName
	}

	var app *tui.App
	if *csvPath != "" {
		res, err := table.LoadCSV(*csvPath)
		if err != nil {
			log.Fatalf("load csv: %v", err)
		}
		name := strings.TrimSuffix(filepath.Base(*csvPath), filepath.Ext(*csvPath))
		app = tui.NewOffline(ctx, cfg, res, name)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
		if err := database.RunMigrations(cfg.Database.Path, migrationsPath(cfg)); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		if err := database.SeedDemo(ctx, db); err != nil {
			log.Fatalf("seed demo: %v", err)
		}

		hist := history.NewRepo(db)
		if cfg.History.Limit > 0 {
			_ = hist.Prune(ctx, cfg.History.Limit)
		}
		exec := &executor.Executor{DB: db, History: hist}
		app = tui.New(ctx, cfg, db, exec)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func migrationsPath(cfg config.Config) string {
	if cfg.Database.MigrationsPath != "" {
		return cfg.Database.MigrationsPath
	}
	return "internal/database/migrations"
}
