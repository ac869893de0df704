package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"

	"rentdash/internal/models"
)

// LoadOptions selects how a table file is read.
type LoadOptions struct {
	// Format overrides detection from the file extension ("json", "csv", "xlsx").
	Format string
	// Sheet is the workbook sheet to read; empty means the first sheet.
	Sheet string
}

// rows between context checks
const checkEvery = 1024

// --- 1. ROW BUILDER ---

// newRecord maps one source row onto a Record. Dimension columns are
// lifted into their fields; everything else, quarters included, lands in
// Cells. Columns lists the header in source order.
func newRecord(columns []string) models.Record {
	return models.Record{
		Columns: columns,
		Cells:   make(map[string]string, len(columns)),
	}
}

func setField(rec *models.Record, column, value string) {
	switch column {
	case ColGeography:
		rec.Geography = value
	case ColProvince:
		rec.Province = value
	case ColUnitType:
		rec.RentalUnitType = value
	default:
		rec.Cells[column] = value
	}
}

func checkHeader(header []string) error {
	for _, want := range []string{ColGeography, ColUnitType} {
		found := false
		for _, h := range header {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrMissingColumn, want)
		}
	}
	return nil
}

// --- 2. MAIN LOADER ---

// LoadRecords reads every record of a table file.
func LoadRecords(ctx context.Context, path string, opts LoadOptions) ([]models.Record, error) {
	start := time.Now()
	log.Infof("Loading data from %s...", path)

	format := opts.Format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	var (
		records []models.Record
		err     error
	)
	switch format {
	case "json":
		records, err = loadJSONFile(ctx, path)
	case "csv":
		records, err = loadCSVFile(ctx, path)
	case "xlsx", "xlsm":
		records, err = loadXLSXFile(ctx, path, opts.Sheet)
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}
	if err != nil {
		return nil, err
	}

	log.Infof("Load Complete. Rows: %d. Time: %v", len(records), time.Since(start))
	return records, nil
}

// LoadTable reads a table file and builds the immutable Table from it.
func LoadTable(ctx context.Context, path string, loadOpts LoadOptions, opts ...Option) (*Table, error) {
	records, err := LoadRecords(ctx, path, loadOpts)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithSource(path)}, opts...)
	t, err := NewTable(records, opts...)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return t, nil
}

// --- 3. JSON ---

func loadJSONFile(ctx context.Context, path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := DecodeJSON(ctx, f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}

// DecodeJSON reads a JSON array of flat objects. Object keys keep their
// document order, which is what the schema inspector relies on.
// Strings are taken verbatim, numbers and booleans as their literal text,
// and null as an absent cell. A leading UTF-8 byte order mark is skipped.
func DecodeJSON(ctx context.Context, r io.Reader) ([]models.Record, error) {
	dec := json.NewDecoder(skipBOM(r))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, 256)
	for row := 1; dec.More(); row++ {
		if row%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		records = append(records, rec)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	return records, nil
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte("\xef\xbb\xbf")) {
		br.Discard(3)
	}
	return br
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func decodeObject(dec *json.Decoder) (models.Record, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return models.Record{}, err
	}

	var columns []string
	seen := make(map[string]struct{})
	rec := newRecord(nil)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return models.Record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return models.Record{}, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return models.Record{}, fmt.Errorf("field %q: %w", key, err)
		}
		// a repeated key keeps its first position and value
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		columns = append(columns, key)

		value, present, err := rawCell(raw)
		if err != nil {
			return models.Record{}, fmt.Errorf("field %q: %w", key, err)
		}
		if present {
			setField(&rec, key, value)
		}
	}
	rec.Columns = columns

	if err := expectDelim(dec, '}'); err != nil {
		return models.Record{}, err
	}
	return rec, nil
}

func rawCell(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", false, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	default:
		return string(raw), true, nil
	}
}

// --- 4. CSV ---

func loadCSVFile(ctx context.Context, path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := DecodeCSV(ctx, f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}

// DecodeCSV reads a header row followed by data rows. Short rows leave
// their trailing columns absent.
func DecodeCSV(ctx context.Context, r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, 256)
	for row := 1; ; row++ {
		if row%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		records = append(records, rowRecord(header, fields))
	}
	return records, nil
}

func rowRecord(header, fields []string) models.Record {
	rec := newRecord(header)
	for i, col := range header {
		if i >= len(fields) {
			break
		}
		setField(&rec, col, fields[i])
	}
	return rec
}

// --- 5. XLSX ---

func loadXLSXFile(ctx context.Context, path, sheet string) ([]models.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	records, err := DecodeWorkbook(ctx, f, sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}

// DecodeWorkbook reads a sheet laid out like the CSV form: header in the
// first row, one record per following row.
func DecodeWorkbook(ctx context.Context, f *excelize.File, sheet string) ([]models.Record, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return []models.Record{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []models.Record{}, nil
	}

	header := rows[0]
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows)-1)
	for i, fields := range rows[1:] {
		if (i+1)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if len(fields) == 0 {
			continue
		}
		records = append(records, rowRecord(header, fields))
	}
	return records, nil
}
