package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/calllog/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// StreamResult — статистика валидации потока JSONL.
type StreamResult struct {
	Valid   int
	Invalid int
}

func (r StreamResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// ValidateStream — читает JSONL, валидирует каждую строку, валидные пишет в writer
// каноническим JSON. Пустые строки пропускаются, невалидные только считаются.
func ValidateStream(ctx context.Context, validator ports.EntryValidator, in io.Reader, out io.Writer) (StreamResult, error) {
	var res StreamResult

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 2*MaxMessageLen)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		entry, err := EntryFromJSON(ctx, validator, line)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := writeLine(out, entry); err != nil {
			return res, err
		}
		res.Valid++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

// ValidateFile — валидирует файл как JSON (одна запись) или JSONL; формат auto выбирается по расширению.
func ValidateFile(ctx context.Context, validator ports.EntryValidator, path string, format InputFormat, out io.Writer) (StreamResult, error) {
	if format == FormatAuto {
		format = FormatJSON
		if strings.EqualFold(filepath.Ext(path), ".jsonl") {
			format = FormatJSONL
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return StreamResult{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return StreamResult{}, fmt.Errorf("read file: %w", err)
		}
		entry, err := EntryFromJSON(ctx, validator, raw)
		if err != nil {
			return StreamResult{Invalid: 1}, err
		}
		if err := writeLine(out, entry); err != nil {
			return StreamResult{}, err
		}
		return StreamResult{Valid: 1}, nil

	case FormatJSONL:
		return ValidateStream(ctx, validator, file, out)

	default:
		return StreamResult{}, fmt.Errorf("unsupported format: %s", format)
	}
}

func writeLine(out io.Writer, v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	line = append(line, '\n')
	if _, err := out.Write(line); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
