package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Formatos de fecha aceptados en la columna week.
var weekLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// decoderFor devuelve el lector transcodificado a UTF-8 según el charset del archivo.
// Exportes de ERP locales suelen venir en Latin-1 o Windows-1252.
func decoderFor(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "-", "")) {
	case "", "utf8":
		// quita el BOM si viene
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "latin1", "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %q (utf8|latin1|windows1252)", charset)
}

// demandBySKU demanda semanal agrupada por SKU, semanas ordenadas.
type demandBySKU map[string][]entity.WeeklyDemandPoint

// SKUs claves ordenadas para salida estable.
func (d demandBySKU) SKUs() []string {
	out := make([]string, 0, len(d))
	for sku := range d {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

// parseDemandCSV lee filas sku;week;quantity[;promo]. Cada fecha se lleva al lunes
// de su semana y las filas de la misma semana se suman (un export diario queda semanal).
func parseDemandCSV(r io.Reader, sep rune) (demandBySKU, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("el CSV debe tener encabezado y al menos una fila")
	}

	cols, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	type weekKey struct {
		sku  string
		week time.Time
	}
	agg := make(map[weekKey]*entity.WeeklyDemandPoint)
	for i, rec := range records[1:] {
		line := i + 2
		if isBlank(rec) {
			continue
		}
		sku := strings.TrimSpace(field(rec, cols["sku"]))
		if sku == "" {
			return nil, fmt.Errorf("fila %d: sku vacío", line)
		}
		week, err := parseWeek(field(rec, cols["week"]))
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		qty, err := parseQuantity(field(rec, cols["quantity"]))
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		promo := false
		if idx, ok := cols["promo"]; ok {
			promo = parsePromo(field(rec, idx))
		}

		k := weekKey{sku: sku, week: week}
		p, ok := agg[k]
		if !ok {
			p = &entity.WeeklyDemandPoint{Week: week}
			agg[k] = p
		}
		p.Quantity += qty
		p.Promo = p.Promo || promo
	}

	out := make(demandBySKU)
	for k, p := range agg {
		out[k.sku] = append(out[k.sku], *p)
	}
	for sku := range out {
		points := out[sku]
		sort.Slice(points, func(i, j int) bool { return points[i].Week.Before(points[j].Week) })
	}
	return out, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case "semana":
			name = "week"
		case "cantidad":
			name = "quantity"
		case "promocion", "promoción":
			name = "promo"
		}
		cols[name] = i
	}
	for _, required := range []string{"sku", "week", "quantity"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("encabezado sin columna %q: %v", required, header)
		}
	}
	return cols, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseWeek devuelve el lunes (UTC) de la semana de la fecha.
func parseWeek(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range weekLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset), nil
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// parseQuantity acepta coma decimal ("12,5") además del punto.
func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cantidad inválida %q", s)
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("cantidad no finita %q", s)
	}
	if q < 0 {
		return 0, fmt.Errorf("cantidad negativa %q", s)
	}
	return q, nil
}

func parsePromo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "si", "sí", "s", "x", "yes", "y":
		return true
	}
	return false
}

// writeSQL escribe el script de carga de weekly_demand.
func writeSQL(w io.Writer, demand demandBySKU, source string) error {
	var b strings.Builder
	b.WriteString("-- Demanda semanal por SKU\n")
	fmt.Fprintf(&b, "-- Generado desde %s\n\n", source)
	for _, sku := range demand.SKUs() {
		for _, p := range demand[sku] {
			fmt.Fprintf(&b, "INSERT INTO weekly_demand (sku, week, quantity, promo) VALUES ('%s', '%s', %s, %t)\n",
				escapeSQL(sku), p.Week.Format("2006-01-02"), strconv.FormatFloat(p.Quantity, 'f', -1, 64), p.Promo)
			b.WriteString("ON CONFLICT (sku, week) DO UPDATE SET quantity = EXCLUDED.quantity, promo = EXCLUDED.promo;\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
