// seed_demand carga historial de demanda semanal (tabla weekly_demand) a partir de un
// CSV exportado del ERP: sku;week;quantity[;promo].
//
// Uso: go run ./cmd/seed_demand [-charset latin1] [-sep ';'] [-out demanda.sql] [-apply] demanda.csv
// Sin -apply escribe un script SQL (stdout por defecto). Con -apply carga directo en la base
// configurada por DATABASE_URL / DB_*.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
)

// demandWriter destino de la carga directa.
type demandWriter interface {
	UpsertWeekly(ctx context.Context, sku string, points []entity.WeeklyDemandPoint) error
}

func main() {
	charset := flag.String("charset", "utf8", "codificación del archivo: utf8 | latin1 | windows1252")
	sep := flag.String("sep", ";", "separador de columnas")
	outPath := flag.String("out", "", "archivo SQL de salida (vacío = stdout)")
	apply := flag.Bool("apply", false, "cargar directamente en PostgreSQL")
	flag.Parse()

	csvPath := "demanda.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	comma, size := utf8.DecodeRuneInString(*sep)
	if size == 0 || size != len(*sep) {
		fail("separador inválido %q", *sep)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fail("abrir CSV: %v", err)
	}
	defer f.Close()

	in, err := decoderFor(*charset, f)
	if err != nil {
		fail("%v", err)
	}
	demand, err := parseDemandCSV(in, comma)
	if err != nil {
		fail("%s: %v", filepath.Base(csvPath), err)
	}

	if *apply {
		if err := applyToDatabase(demand); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cargados %d SKUs desde %s\n", len(demand), csvPath)
		return
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fail("crear archivo: %v", err)
		}
		defer file.Close()
		out = file
	}
	if err := writeSQL(out, demand, filepath.Base(csvPath)); err != nil {
		fail("escribir SQL: %v", err)
	}
	if *outPath != "" {
		fmt.Printf("Generado %s: %d SKUs\n", *outPath, len(demand))
	}
}

func applyToDatabase(demand demandBySKU) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	return loadDemand(ctx, postgres.NewDemandRepository(pool), demand)
}

func loadDemand(ctx context.Context, w demandWriter, demand demandBySKU) error {
	for _, sku := range demand.SKUs() {
		if err := w.UpsertWeekly(ctx, sku, demand[sku]); err != nil {
			return fmt.Errorf("sku %s: %w", sku, err)
		}
	}
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
