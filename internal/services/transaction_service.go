package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/ports"
)

// TransactionService orchestrates the record store with the optional event
// publisher and spreadsheet mirror.
type TransactionService struct {
	store     ports.TransactionStore
	publisher ports.EventPublisher
	sheets    ports.SheetWriter
	logger    *log.Logger
}

// Option configures optional collaborators.
type Option func(*TransactionService)

func WithPublisher(p ports.EventPublisher) Option {
	return func(s *TransactionService) { s.publisher = p }
}

func WithSheetWriter(w ports.SheetWriter) Option {
	return func(s *TransactionService) { s.sheets = w }
}

func WithLogger(l *log.Logger) Option {
	return func(s *TransactionService) { s.logger = l }
}

func NewTransactionService(store ports.TransactionStore, opts ...Option) *TransactionService {
	s := &TransactionService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.WithComponent(log.ComponentService)
	return s
}

// Initialize prepares the store. Safe to call on every start.
func (s *TransactionService) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

// Record persists a draft and then announces it. A failed publish is logged
// and does not fail the call since the record is already on disk.
func (s *TransactionService) Record(ctx context.Context, d core.Draft) (core.Transaction, error) {
	tx, err := s.store.Append(ctx, d)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	if err := s.publish(ctx, tx); err != nil {
		s.logger.WithFields(log.NewFields().
			WithOperation(log.OpPublish).
			WithTransaction(string(tx.Type), tx.Amount.String(), tx.Category).
			WithError(err)).
			ErrorContext(ctx, "Failed to publish transaction event")
	}
	return tx, nil
}

// List returns all records in file order.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Filter returns the records whose description mentions the given month.
func (s *TransactionService) Filter(ctx context.Context, month, year string) ([]core.Transaction, error) {
	// Check the selection first so a bad pick never touches the file.
	if _, err := core.MonthKey(month, year); err != nil {
		return nil, err
	}
	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out, err := core.FilterByMonthYear(txs, month, year)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(log.NewFields().
		WithOperation(log.OpFilter).
		WithSelection(month, year)).
		DebugContext(ctx, "Transactions filtered", log.FieldCount, len(out))
	return out, nil
}

// Report sums income and expenses over the whole ledger.
func (s *TransactionService) Report(ctx context.Context) (core.Summary, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return core.Summary{}, err
	}
	sum := core.Summarize(txs)
	s.logger.DebugContext(ctx, "Report computed",
		log.FieldOperation, log.OpReport,
		log.FieldCount, len(txs))
	return sum, nil
}

// Export copies the raw file to dest.
func (s *TransactionService) Export(ctx context.Context, dest string) (int64, error) {
	n, err := s.store.Export(ctx, dest)
	if err != nil {
		return 0, fmt.Errorf("export transactions: %w", err)
	}
	return n, nil
}

// MirrorToSheets writes the whole ledger to the configured spreadsheet.
func (s *TransactionService) MirrorToSheets(ctx context.Context) (string, int, error) {
	if s.sheets == nil {
		return "", 0, errors.New("sheets mirror is not configured")
	}
	txs, err := s.List(ctx)
	if err != nil {
		return "", 0, err
	}
	ref, err := s.sheets.WriteTransactions(ctx, txs)
	if err != nil {
		return "", 0, fmt.Errorf("mirror to sheets: %w", err)
	}
	s.logger.InfoContext(ctx, "Ledger mirrored to sheets", log.FieldSheetsRef, ref, log.FieldCount, len(txs))
	return ref, len(txs), nil
}

// Close releases the publisher connection, if any.
func (s *TransactionService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}

func (s *TransactionService) publish(ctx context.Context, tx core.Transaction) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not configured, skipping transaction event")
		return nil
	}
	return s.publisher.PublishTransactionRecorded(ctx, tx)
}
