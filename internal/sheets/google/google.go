package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors the ledger into one sheet of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// Ensure interface conformance
var _ ports.SheetWriter = (*Client)(nil)

// NewFromConfig creates a Sheets client authenticated with service account
// credentials, taken inline from GOOGLE_SERVICE_ACCOUNT_JSON or read from
// GOOGLE_SERVICE_ACCOUNT_FILE.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Client, error) {
	if err := cfg.ValidateSheets(); err != nil {
		return nil, err
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.GoogleServiceAccountJSON) != "":
		credentialsJSON = []byte(cfg.GoogleServiceAccountJSON)
	default:
		b, err := os.ReadFile(cfg.GoogleServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return New(svc, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger), nil
}

// New wraps an existing Sheets service.
func New(svc *gsheet.Service, spreadsheetID, sheetName string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

// WriteTransactions writes the header and every record starting at A1 as raw
// text, so descriptions are never read as dates or formulas. The ledger only
// grows, so overwriting from the top always covers what the sheet held before.
func (c *Client) WriteTransactions(ctx context.Context, txs []core.Transaction) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A1", quoteSheetName(c.sheetName))
	vr := &gsheet.ValueRange{Values: toValues(txs)}

	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update sheet %s: %w", c.sheetName, err)
	}

	c.logger.InfoContext(ctx, "Sheet updated",
		log.FieldSheetsRef, resp.UpdatedRange,
		log.FieldCount, resp.UpdatedRows)
	return resp.UpdatedRange, nil
}

func toValues(txs []core.Transaction) [][]any {
	values := make([][]any, 0, len(txs)+1)
	header := make([]any, len(core.Header))
	for i, h := range core.Header {
		header[i] = h
	}
	values = append(values, header)
	for _, tx := range txs {
		values = append(values, []any{string(tx.Type), tx.Amount.String(), tx.Category, tx.Description})
	}
	return values
}

// quoteSheetName wraps names that A1 notation cannot take bare.
func quoteSheetName(name string) string {
	if strings.ContainsAny(name, " '!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}
