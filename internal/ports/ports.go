package ports

import (
	"context"

	"fintrack/internal/core"
)

// Ports between the transaction service and its adapters.
type (
	TransactionStore interface {
		Initialize(ctx context.Context) error
		Append(ctx context.Context, d core.Draft) (core.Transaction, error)
		ReadAll(ctx context.Context) ([]core.Transaction, error)
		// Export copies the raw transaction file to dest and returns the bytes written.
		Export(ctx context.Context, dest string) (int64, error)
	}

	// EventPublisher announces transactions that were persisted.
	EventPublisher interface {
		PublishTransactionRecorded(ctx context.Context, tx core.Transaction) error
		Close() error
	}

	// SheetWriter mirrors the full ledger into a spreadsheet.
	SheetWriter interface {
		WriteTransactions(ctx context.Context, txs []core.Transaction) (rowRef string, err error)
	}
)
