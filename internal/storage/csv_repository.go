package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// CSVRepository owns the comma-delimited transaction file. Every call opens
// and closes the file; nothing is cached and no locking is done, so two
// processes appending at once can interleave rows.
type CSVRepository struct {
	path   string
	logger *log.Logger
}

func NewCSVRepository(path string, logger *log.Logger) *CSVRepository {
	if logger == nil {
		logger = log.Discard()
	}
	return &CSVRepository{
		path:   path,
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// Path returns the transaction file location.
func (r *CSVRepository) Path() string {
	return r.path
}

// Initialize creates the file with its header row if it does not exist yet.
// A zero-length file, left behind by an interrupted create, gets the header
// too. A file with content is left untouched.
func (r *CSVRepository) Initialize(ctx context.Context) error {
	info, err := os.Stat(r.path)
	switch {
	case err == nil && info.Size() > 0:
		return nil
	case err == nil:
		return r.writeHeader(ctx, os.O_WRONLY|os.O_APPEND)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat transaction file: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create transaction directory: %w", err)
		}
	}
	return r.writeHeader(ctx, os.O_WRONLY|os.O_CREATE|os.O_EXCL)
}

func (r *CSVRepository) writeHeader(ctx context.Context, flags int) error {
	f, err := os.OpenFile(r.path, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create transaction file: %w", err)
	}
	if err := writeRow(f, core.Header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close transaction file: %w", err)
	}

	r.logger.InfoContext(ctx, "Transaction file initialized",
		log.FieldOperation, log.OpInit,
		log.FieldPath, r.path)
	return nil
}

// Append validates the draft and appends it as one row. Nothing is written
// when validation fails.
func (r *CSVRepository) Append(ctx context.Context, d core.Draft) (core.Transaction, error) {
	tx, err := d.Parse()
	if err != nil {
		return core.Transaction{}, err
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, 0)
	if errors.Is(err, os.ErrNotExist) {
		return core.Transaction{}, fmt.Errorf("%w: %s", core.ErrStoreMissing, r.path)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("open transaction file: %w", err)
	}
	if err := writeRow(f, tx.Record()); err != nil {
		f.Close()
		return core.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	if err := f.Close(); err != nil {
		return core.Transaction{}, fmt.Errorf("close transaction file: %w", err)
	}

	r.logger.WithFields(log.NewFields().
		WithOperation(log.OpAppend).
		WithTransaction(string(tx.Type), tx.Amount.String(), tx.Category)).
		InfoContext(ctx, "Transaction appended")

	return tx, nil
}

// ReadAll returns every record after the header, oldest first. Rows that
// cannot be decoded, such as a half-written last line, are skipped.
func (r *CSVRepository) ReadAll(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrStoreMissing, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("open transaction file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	out := make([]core.Transaction, 0)
	for n := 1; ; n++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.logger.WarnContext(ctx, "Skipping unreadable row", log.FieldRow, n, log.FieldError, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read transaction file: %w", err)
		}
		if n == 1 {
			continue
		}
		tx, err := decodeRow(row)
		if err != nil {
			r.logger.WarnContext(ctx, "Skipping malformed transaction row", log.FieldRow, n, log.FieldError, err)
			continue
		}
		out = append(out, tx)
	}

	r.logger.DebugContext(ctx, "Transactions read",
		log.FieldOperation, log.OpRead,
		log.FieldCount, len(out))
	return out, nil
}

// Export copies the transaction file byte for byte to dest.
func (r *CSVRepository) Export(ctx context.Context, dest string) (int64, error) {
	src, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", core.ErrStoreMissing, r.path)
	}
	if err != nil {
		return 0, fmt.Errorf("open transaction file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		return n, fmt.Errorf("copy transactions: %w", err)
	}
	if err := dst.Close(); err != nil {
		return n, fmt.Errorf("close export file: %w", err)
	}

	r.logger.InfoContext(ctx, "Transactions exported",
		log.FieldOperation, log.OpExport,
		log.FieldDestination, dest,
		log.FieldBytes, n)
	return n, nil
}

func writeRow(w io.Writer, row []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func decodeRow(row []string) (core.Transaction, error) {
	if len(row) != len(core.Header) {
		return core.Transaction{}, fmt.Errorf("expected %d fields, got %d", len(core.Header), len(row))
	}
	amount, err := core.ParseAmount(row[1])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", row[1], err)
	}
	return core.Transaction{
		Type:        core.TransactionType(row[0]),
		Amount:      amount,
		Category:    row[2],
		Description: row[3],
	}, nil
}
