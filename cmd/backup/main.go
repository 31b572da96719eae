package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ellarises/internal/config"
	"ellarises/internal/database"
	"ellarises/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	backup := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		output := exportCmd.String("output", "", "output file path (default: backup-<timestamp>.json)")
		exportCmd.Parse(os.Args[2:])

		path := *output
		if path == "" {
			path = fmt.Sprintf("backup-%s.json", time.Now().Format("20060102-150405"))
		}
		if err := backup.Export(path); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Exported to %s", path)

	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		input := importCmd.String("input", "", "backup file to import (required)")
		clear := importCmd.Bool("clear", false, "delete existing rows before importing")
		importCmd.Parse(os.Args[2:])

		if *input == "" {
			importCmd.Usage()
			os.Exit(1)
		}
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *input, err)
		}
		defer f.Close()

		if err := backup.Import(f, *clear); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Imported from %s", *input)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: backup <export|import> [flags]")
	fmt.Fprintln(os.Stderr, "  export -output <file>")
	fmt.Fprintln(os.Stderr, "  import -input <file> [-clear]")
}
