// seed_taxpayers genera el script SQL que crea y puebla taxpayer_classifications
// a partir del CSV de clasificaciones fiscales (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_taxpayers [ruta/tax-info.csv] [utf-8|latin1] [apply]
// Por defecto lee testdata/tax-info.csv en UTF-8.
// Escribe: internal/infrastructure/postgres/migrations/001_seed_taxpayers.sql
// Con "apply" además inserta los registros en la base configurada (DATABASE_URL / DB_*) en una sola transacción.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/csvloader"
	"github.com/jhoicas/Impuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Impuestos-api/pkg/config"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
)

func main() {
	csvPath := filepath.Join("testdata", "tax-info.csv")
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	encoding := csvloader.EncodingUTF8
	if len(os.Args) > 2 {
		encoding = os.Args[2]
	}

	// El cargador valida cada fila igual que al arrancar la API.
	records, err := csvloader.NewTaxpayerLoader(csvPath, encoding, logger.Nop()).Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outDir := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "001_seed_taxpayers.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Clasificaciones fiscales (append-only)\n")
	fmt.Fprintf(out, "-- Generado desde %s\n", filepath.Base(csvPath))
	out.WriteString(postgres.Schema)
	out.WriteString("\n")

	for _, r := range records {
		out.WriteString(postgres.InsertStatement(r))
	}

	fmt.Printf("Generado %s: %d clasificaciones\n", outPath, len(records))

	if len(os.Args) > 3 && os.Args[3] == "apply" {
		if err := apply(context.Background(), records); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar en PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Insertadas %d clasificaciones\n", len(records))
	}
}

func apply(ctx context.Context, records []*entity.TaxpayerClassification) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	return postgres.NewTxRunner(pool).Run(ctx, func(w *postgres.TaxpayerWriter) error {
		for _, r := range records {
			if err := w.Append(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
