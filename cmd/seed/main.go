// seed genera un script SQL para poblar materials y products a partir de un catálogo
// en CSV o XLSX (exportado de la hoja de cálculo de bodega).
//
// Uso: go run ./cmd/seed [-charset windows-1252] [-out ruta.sql] catalogo.csv
// Por defecto escribe internal/infrastructure/postgres/seed.sql.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Fulfillment-api/internal/infrastructure/spreadsheet"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	charset := flag.String("charset", os.Getenv("IMPORT_DEFAULT_CHARSET"), "utf-8, windows-1252 o iso-8859-1 (solo CSV)")
	outFlag := flag.String("out", "", "ruta del script de salida")
	flag.Parse()

	catalogPath := "catalogo.csv"
	if flag.NArg() > 0 {
		catalogPath = flag.Arg(0)
	}
	f, err := os.Open(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir catálogo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := spreadsheet.Read(catalogPath, f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}
	cat, err := parseCatalog(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo inválido: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seed.sql")
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d materiales, %d productos\n", outPath, len(cat.materials), len(cat.products))
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
