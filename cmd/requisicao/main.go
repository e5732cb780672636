package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	_ "time/tzdata"

	"github.com/develop-ac/requisicao-backend/internal/cache"
	"github.com/develop-ac/requisicao-backend/internal/config"
	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/export"
	"github.com/develop-ac/requisicao-backend/internal/repository/postgres"
	"github.com/develop-ac/requisicao-backend/internal/requisicao"
	"github.com/develop-ac/requisicao-backend/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newTimezoneFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "timezone",
		Usage:   "Time zone used to compute the sales window",
		Value:   "America/Fortaleza",
		EnvVars: []string{"REQUISICAO_TIMEZONE"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Connect(c.String("driver"), c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.WrapDB(db, int64(c.Int("concurrency"))*2))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	logger.SetOutput(os.Stderr)

	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "requisicao",
		Usage: "Compute stock-transfer viability for products",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Compute stock, giro and viability per branch",
				ArgsUsage: "CODE [CODE...]",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTimezoneFlag(),
					&cli.StringFlag{
						Name:    "driver",
						Usage:   "database/sql driver (pgx or postgres)",
						Value:   "pgx",
						EnvVars: []string{"DB_DRIVER"},
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Usage:   "Products processed at once",
						Value:   requisicao.DefaultConcurrency,
						EnvVars: []string{"REQUISICAO_CONCURRENCY"},
					},
					&cli.IntFlag{
						Name:    "max",
						Usage:   "Batch cap; extra codes are ignored",
						Value:   requisicao.DefaultMaxProducts,
						EnvVars: []string{"REQUISICAO_MAX_PRODUTOS"},
					},
					&cli.StringFlag{
						Name:  "xlsx",
						Usage: "Also write the result workbook to this path",
					},
					&cli.BoolFlag{
						Name:  "table",
						Usage: "Print a table instead of JSON",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runRequisicao,
			},
			{
				Name:   "cache-flush",
				Usage:  "Drop every cached batch result (run after the stock/sales tables are refreshed)",
				Action: flushCacheCommand,
			},
			{
				Name:  "janela",
				Usage: "Print the current sales window",
				Flags: []cli.Flag{
					newTimezoneFlag(),
				},
				Action: printWindow,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("requisicao failed")
	}
}

func runRequisicao(c *cli.Context) error {
	codes := c.Args().Slice()
	if len(codes) == 0 {
		return cli.Exit("at least one product code is required", 2)
	}

	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok || db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	clock, err := requisicao.ClockIn(c.String("timezone"))
	if err != nil {
		return err
	}

	engine := requisicao.NewEngine(
		postgres.NewStockRepository(db, domain.DefaultBranches),
		postgres.NewSalesRepository(db),
		requisicao.WithMaxProducts(c.Int("max")),
		requisicao.WithConcurrency(c.Int("concurrency")),
		requisicao.WithClock(clock),
	)

	result, err := engine.Run(c.Context, codes)
	if err != nil {
		return err
	}

	if path := c.String("xlsx"); path != "" {
		window := engine.Window()
		data, err := export.Bytes(result, engine.Branches(), export.Meta{
			WindowStart: window.StartText(),
			WindowEnd:   window.EndText(),
			GeneratedAt: clock(),
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed writing %s: %w", path, err)
		}
		logger.Log.Info().Str("path", path).Msg("workbook written")
	}

	if c.Bool("table") {
		return printTable(result, engine.Branches())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printTable(result *domain.BatchResult, branches []domain.BranchCode) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "processados: %d\tencontrados: %d\n\n", result.TotalProcessed, result.TotalFound)
	for _, report := range result.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", report.Code, report.Name, report.Supplier)
		fmt.Fprintln(w, "FILIAL\tESTOQUE\tGIRO\tVIABILIDADE")
		for _, r := range report.Results(branches) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				r.Branch,
				export.FormatBRFloat(float64(r.Stock), 0),
				export.FormatBRFloat(r.Giro, 2),
				strings.ToUpper(r.Viability.Label()),
			)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func flushCacheCommand(c *cli.Context) error {
	cfg := config.Load()
	if !cfg.Cache.Enabled {
		return cli.Exit("CACHE_ENABLED is false; nothing to flush", 1)
	}

	requisicaoCache, err := cache.NewRequisicaoCache(cfg.Cache)
	if err != nil {
		return err
	}
	return flushCache(c.Context, requisicaoCache, c.App.Writer)
}

func flushCache(ctx context.Context, requisicaoCache cache.RequisicaoCache, out io.Writer) error {
	removed, err := requisicaoCache.InvalidateAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush requisicao cache: %w", err)
	}
	logger.Log.Info().Int("removed", removed).Msg("requisicao cache flushed")
	fmt.Fprintf(out, "%d cached batches removed\n", removed)
	return nil
}

func printWindow(c *cli.Context) error {
	clock, err := requisicao.ClockIn(c.String("timezone"))
	if err != nil {
		return err
	}
	window := requisicao.WindowFor(clock())
	fmt.Printf("%s - %s\n", window.StartText(), window.EndText())
	return nil
}
