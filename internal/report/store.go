// Package report persists the processed ticket table and reads it back.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// ErrNoReport means nothing has been written to the output path yet.
var ErrNoReport = errors.New("no processed data available")

// Store reads and writes the processed table at a fixed path.
type Store struct {
	path     string
	location *time.Location
}

// NewStore returns a store for path. Timestamps are written in loc
// (time.Local when nil).
func NewStore(path string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{path: path, location: loc}
}

// Path returns the output file location.
func (s *Store) Path() string { return s.path }

// Exists reports whether an output file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the table, replacing any previous file. The content is written
// to a sibling temp file and renamed into place so readers never see a
// partial file.
func (s *Store) Save(table domain.Table) (err error) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = s.encode(tmp, table); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// Load reads the persisted table. Returns ErrNoReport when the file is
// missing.
func (s *Store) Load() (domain.Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoReport
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.decode(f)
}

func (s *Store) encode(w io.Writer, table domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.OutputColumns); err != nil {
		return err
	}
	for _, t := range table {
		if err := cw.Write([]string{
			t.ID,
			t.CustomerName,
			t.Email,
			t.Description,
			string(t.Status),
			domain.FormatTimestamp(t.CreatedAt, s.location),
			string(t.Category),
			formatFloat(t.DaysOpen),
			formatFloat(t.PriorityScore),
			string(t.Priority),
			t.SuggestedResponse,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) decode(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range domain.OutputColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("processed file missing column %q", col)
		}
	}

	table := domain.Table{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		get := func(col string) string { return rec[index[col]] }

		created, err := domain.ParseTimestamp(get(domain.ColumnCreatedAt), s.location)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", get(domain.ColumnTicketID), err)
		}
		days, err := parseFloat(get(domain.ColumnDaysOpen))
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %s: %w", get(domain.ColumnTicketID), domain.ColumnDaysOpen, err)
		}
		score, err := parseFloat(get(domain.ColumnPriorityScore))
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %s: %w", get(domain.ColumnTicketID), domain.ColumnPriorityScore, err)
		}
		table = append(table, domain.Ticket{
			ID:                get(domain.ColumnTicketID),
			CustomerName:      get(domain.ColumnCustomerName),
			Email:             get(domain.ColumnEmail),
			Description:       get(domain.ColumnIssueDescription),
			Status:            domain.TicketStatus(get(domain.ColumnStatus)),
			CreatedAt:         created,
			Category:          domain.Category(get(domain.ColumnCategory)),
			DaysOpen:          days,
			PriorityScore:     score,
			Priority:          domain.TicketPriority(get(domain.ColumnPriority)),
			SuggestedResponse: get(domain.ColumnSuggestedResponse),
		})
	}
	return table, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
