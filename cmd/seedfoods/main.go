// Command seedfoods converts a food composition Excel workbook into a SQL
// seed file for the food_reference table. The workbook is expected to carry
// one food per row with per-100g nutrient columns.
// Usage: go run ./cmd/seedfoods <workbook.xlsx>
// Output: db/seeds/food_reference.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

// Column layout of the workbook's first sheet, data starting at row index 1:
// A(0)=name, B(1)=calories, C(2)=protein, D(3)=fat, E(4)=carbs,
// F(5)=fiber, G(6)=sugar. All nutrient values are per 100g.
type foodEntry struct {
	name     string
	calories float64
	protein  float64
	fat      float64
	carbs    float64
	fiber    float64
	sugar    float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedfoods <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/food_reference.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseFoodSheet(f)
	if err != nil {
		return fmt.Errorf("parse food sheet: %w", err)
	}
	log.Printf("parsed %d food entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- Food reference seed data generated from %s.\n-- %d entries in batches of %d.\n-- Run: make seed-foods\nBEGIN;\n\n",
		xlsxPath, len(entries), batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

func parseFoodSheet(f *excelize.File) ([]foodEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []foodEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.ToLower(strings.TrimSpace(cellVal(row, 0)))
		if name == "" || seen[name] {
			continue
		}

		calories, ok := numVal(row, 1)
		if !ok {
			continue
		}

		seen[name] = true
		e := foodEntry{name: name, calories: calories}
		e.protein, _ = numVal(row, 2)
		e.fat, _ = numVal(row, 3)
		e.carbs, _ = numVal(row, 4)
		e.fiber, _ = numVal(row, 5)
		e.sugar, _ = numVal(row, 6)
		entries = append(entries, e)
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []foodEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO food_reference (id, name, calories, protein, fat, carbs, fiber, sugar) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  (gen_random_uuid(), '%s', %.2f, %.2f, %.2f, %.2f, %.2f, %.2f)",
			escapeSQL(e.name), e.calories, e.protein, e.fat, e.carbs, e.fiber, e.sugar)
	}

	b.WriteString("\nON CONFLICT (name) DO UPDATE SET\n")
	b.WriteString("  calories = EXCLUDED.calories, protein = EXCLUDED.protein, fat = EXCLUDED.fat,\n")
	b.WriteString("  carbs = EXCLUDED.carbs, fiber = EXCLUDED.fiber, sugar = EXCLUDED.sugar;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func numVal(row []string, idx int) (float64, bool) {
	s := strings.TrimSpace(cellVal(row, idx))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
