// Command generator writes the Register method of the registry struct embedding godi.EmptyRegistry,
// from the @provider, @decorator and @config annotations found in the module.
//
// It is meant to be run through go:generate, next to the registry:
//
//	//go:generate go run ../cmd/generator
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-peyrard/hello-godi/slices"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	if err := run(&logger); err != nil {
		logger.Error().Err(err).Msg("Generation failed")
		os.Exit(1)
	}
}

func run(logger *zerolog.Logger) error {
	dryRun := os.Getenv("DRY_RUN") == "true"

	// the target file is the one holding the go:generate directive
	targetFile := os.Getenv("GOFILE")
	if targetFile == "" {
		return fmt.Errorf("GOFILE is not set, the generator must be run through go:generate")
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory:\n\t%w", err)
	}
	targetFilePath := filepath.Join(currentDir, targetFile)

	// scan the whole module, not only the target package
	if err := os.Chdir(findModuleRoot(currentDir)); err != nil {
		return fmt.Errorf("failed to change directory to module root:\n\t%w", err)
	}

	startScan := time.Now()
	scan, err := scanModule(logger, targetFilePath)
	if err != nil {
		return err
	}
	if scan.Registry == nil {
		return fmt.Errorf(
			"no Registry struct found in %s, make sure you have a struct like this:\ntype Registry struct {\n    godi.EmptyRegistry\n}",
			targetFilePath,
		)
	}

	logger.Info().Msgf("👨‍🔧 Registry found: %+v", *scan.Registry)
	logger.Info().Msgf("🎯 %d providers found in the module", len(scan.Providers))
	logger.Debug().Msgf("Providers:\n%s", strings.Join(slices.Map(scan.Providers, ProviderDefinition.String), "\n----\n"))
	logger.Info().Msgf("🎯 %d decorators found in the module", len(scan.Decorators))
	logger.Debug().Msgf("Decorators:\n%s", strings.Join(slices.Map(scan.Decorators, DecoratorDefinition.String), "\n----\n"))
	logger.Info().Msgf("🎯 %d configs found in the module", len(scan.Configs))
	logger.Debug().Msgf("Configs:\n%s", strings.Join(slices.Map(scan.Configs, ConfigDefinition.String), "\n----\n"))
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", time.Since(startScan))

	code, err := generateCode(scan)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(
		filepath.Dir(targetFilePath),
		strings.TrimSuffix(filepath.Base(targetFilePath), ".go")+"_gen.go",
	)
	if dryRun {
		outputPath = filepath.Join(os.TempDir(), filepath.Base(outputPath))
	}
	if err := os.WriteFile(outputPath, code, 0o644); err != nil {
		return fmt.Errorf("failed to write generated code in %s:\n\t%w", outputPath, err)
	}
	logger.Info().Msgf("✅ Code generated successfully in %s", outputPath)

	return nil
}

func scanModule(logger *zerolog.Logger, targetFilePath string) (*Scan, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages:\n\t%w", err)
	}

	scan := &Scan{}
	for _, pkg := range pkgs {
		logger := logger.With().Str("package", pkg.PkgPath).Logger()
		logger.Debug().Msg("Scanning package")
		for _, file := range pkg.Syntax {
			filePath := pkg.Fset.Position(file.Pos()).Filename
			scan.scanFile(&logger, pkg.Fset, file, pkg.PkgPath, filePath == targetFilePath)
		}
	}
	return scan, nil
}

func findModuleRoot(dir string) string {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
