// Package stocksource downloads and parses the supplier's stock spreadsheet.
//
// The supplier publishes a zip archive containing a single legacy .xls file.
// The first 17 rows of the sheet are preamble; row 17 (zero-based) holds the
// column headers, data rows follow.
package stocksource

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/extrame/xls"

	"github.com/dvloznov/seller-sync/internal/logger"
)

var (
	// ErrFetch reports a failed download of the inventory archive.
	ErrFetch = errors.New("inventory download failed")
	// ErrFormat reports an archive or spreadsheet that does not match the
	// expected layout.
	ErrFormat = errors.New("inventory format invalid")
)

// headerRowIndex is the zero-based row holding the column headers.
const headerRowIndex = 17

// Header cell names in the supplier's sheet.
const (
	headerCode     = "Код"
	headerQuantity = "Количество"
	headerPrice    = "Цена"
)

// Fetcher downloads the supplier archive and turns it into records.
type Fetcher struct {
	httpClient *http.Client
	url        string
}

// NewFetcher creates a Fetcher for the given archive URL.
func NewFetcher(url string, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{httpClient: httpClient, url: url}
}

// Fetch downloads the archive, extracts the spreadsheet into a temporary
// file and parses it. The temporary file is removed on every exit path,
// including parse failures.
func (f *Fetcher) Fetch(ctx context.Context) ([]Record, error) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetch, f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}

	log.Debug().Int("archive_bytes", len(body)).Str("url", f.url).Msg("Downloaded inventory archive")

	path, err := extractSpreadsheet(body)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	records, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	log.Info().Int("record_count", len(records)).Msg("Parsed inventory records")
	return records, nil
}

// extractSpreadsheet writes the archive's single .xls entry to a temporary
// file and returns its path. The caller owns the file.
func extractSpreadsheet(archive []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", fmt.Errorf("%w: open zip: %v", ErrFormat, err)
	}

	var entry *zip.File
	for _, zf := range zr.File {
		if strings.HasSuffix(strings.ToLower(zf.Name), ".xls") {
			entry = zf
			break
		}
	}
	if entry == nil {
		return "", fmt.Errorf("%w: no .xls entry in archive", ErrFormat)
	}

	src, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrFormat, entry.Name, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "ostatki-*.xls")
	if err != nil {
		return "", fmt.Errorf("extractSpreadsheet: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: extract %s: %v", ErrFormat, entry.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("extractSpreadsheet: %w", err)
	}

	return tmp.Name(), nil
}

// ParseFile reads a spreadsheet from disk and converts its data rows into
// records. Exported so the standalone upload commands can work from a
// locally saved file.
func ParseFile(path string) ([]Record, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet: %v", ErrFormat, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: spreadsheet has no sheets", ErrFormat)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}

	return parseRows(rows)
}

// parseRows maps raw sheet rows to records. The header row is located at a
// fixed offset; columns are resolved by header name so column order in the
// supplier file may change.
func parseRows(rows [][]string) ([]Record, error) {
	if len(rows) <= headerRowIndex {
		return nil, fmt.Errorf("%w: sheet has %d rows, header expected at row %d",
			ErrFormat, len(rows), headerRowIndex)
	}

	header := rows[headerRowIndex]
	codeCol, quantityCol, priceCol := -1, -1, -1
	for i, cell := range header {
		switch strings.TrimSpace(cell) {
		case headerCode:
			codeCol = i
		case headerQuantity:
			quantityCol = i
		case headerPrice:
			priceCol = i
		}
	}
	if codeCol < 0 || quantityCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("%w: header row missing required columns %q, %q, %q",
			ErrFormat, headerCode, headerQuantity, headerPrice)
	}

	records := make([]Record, 0, len(rows)-headerRowIndex-1)
	for _, row := range rows[headerRowIndex+1:] {
		records = append(records, Record{
			Code:     cellAt(row, codeCol),
			Quantity: cellAt(row, quantityCol),
			Price:    cellAt(row, priceCol),
		})
	}
	return records, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
