package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// ErrSourceUnreadable marks ingestion failures: missing file, bad format,
// missing columns or unparseable values.
var ErrSourceUnreadable = errors.New("source unreadable")

// Ingestor loads the raw ticket table from CSV or XLSX.
type Ingestor struct {
	logger   *zap.Logger
	location *time.Location
}

// NewIngestor builds an ingestor. Zone-less Created At values are read in loc
// (time.Local when nil).
func NewIngestor(logger *zap.Logger, loc *time.Location) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Ingestor{logger: logger, location: loc}
}

// Load reads the file at path into a table.
func (in *Ingestor) Load(ctx context.Context, path string) (domain.Table, error) {
	in.logger.Info("loading customer data", zap.String("path", path))

	rows, err := readRows(path)
	if err != nil {
		in.logger.Warn("load failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := in.decode(rows)
	if err != nil {
		in.logger.Warn("load failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}

	in.logger.Info("loaded records", zap.Int("count", len(table)))
	return table, nil
}

func (in *Ingestor) decode(rows [][]string) (domain.Table, error) {
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range domain.InputColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	table := make(domain.Table, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		created, err := domain.ParseTimestamp(cell(row, domain.ColumnCreatedAt), in.location)
		if err != nil {
			// n+2: one for the header, one for 1-based line numbers
			return nil, fmt.Errorf("row %d: %s: %w", n+2, domain.ColumnCreatedAt, err)
		}
		table = append(table, domain.Ticket{
			ID:           strings.TrimSpace(cell(row, domain.ColumnTicketID)),
			CustomerName: cell(row, domain.ColumnCustomerName),
			Email:        strings.TrimSpace(cell(row, domain.ColumnEmail)),
			Description:  cell(row, domain.ColumnIssueDescription),
			Status:       domain.TicketStatus(strings.TrimSpace(cell(row, domain.ColumnStatus))),
			CreatedAt:    created,
		})
	}
	if len(table) == 0 {
		return nil, errors.New("no records")
	}
	return table, nil
}

func readRows(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
