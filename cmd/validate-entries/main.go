package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Gunvolt24/calllog/pkg/validate"
)

// validateCmd — проверка выгрузки записей журнала (JSON или JSONL).
type validateCmd struct {
	In     string `short:"i" type:"existingfile" help:"Файл .json или .jsonl; без него JSONL читается из stdin."`
	Format string `default:"auto" enum:"auto,json,jsonl" help:"Формат входа."`
}

// Run — валидные записи печатаются в stdout, сводка — в stderr.
func (c *validateCmd) Run() error {
	ctx := context.Background()
	validator := validate.NewEntryValidator()

	var (
		res validate.StreamResult
		err error
	)
	if c.In == "" {
		res, err = validate.ValidateStream(ctx, validator, os.Stdin, os.Stdout)
	} else {
		res, err = validate.ValidateFile(ctx, validator, c.In, validate.InputFormat(c.Format), os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("validation: %w (%s)", err, res)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", res)
	return nil
}

func main() {
	var cmd validateCmd
	kctx := kong.Parse(&cmd,
		kong.Name("validate-entries"),
		kong.Description("Проверить выгрузку записей журнала."),
	)
	kctx.FatalIfErrorf(kctx.Run())
}
