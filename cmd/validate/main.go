package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/pokedex-engine/internal/seed"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <seed.yaml> [more.yaml ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

func validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("seed file must have a .yaml or .yml extension: %s", filepath.Base(filename))
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	data, err := seed.Parse(f)
	if err != nil {
		return fmt.Errorf("file %s failed strict YAML unmarshaling: %w", filename, err)
	}

	var v seed.Validator
	err = v.Validate(data)
	for _, w := range v.Warnings() {
		fmt.Printf("  warning: %s\n", w)
	}
	if err != nil {
		return fmt.Errorf("validation errors in %s: %w", filename, err)
	}

	fmt.Printf("  %d species, %d moves, %d items, %d trainers\n",
		len(data.Species), len(data.Moves), len(data.Items), len(data.Trainers))
	return nil
}
