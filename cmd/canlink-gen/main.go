// Command canlink-gen generates pkg/can's kernel constant tables from the
// YAML transcription of linux/can/netlink.h.
//
// Usage:
//
//	canlink-gen -tables docs/kernel/can-netlink.yaml -output pkg/can/kernel_gen.go
//
// The pkg/can package invokes it through go generate.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	tablesPath := flag.String("tables", "", "Path to the kernel constant tables YAML")
	outputPath := flag.String("output", "", "Output path for the generated Go file")
	flag.Parse()

	if *tablesPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: canlink-gen -tables <path> -output <path>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*tablesPath, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(tablesPath, outputPath string) error {
	tables, err := LoadTables(tablesPath)
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	code, err := GenerateKernelTables(tables)
	if err != nil {
		return fmt.Errorf("generating tables: %w", err)
	}

	if err := writeFormatted(outputPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Printf("  generated %s\n", outputPath)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
