// Package google implements the sheets ports against the Google Sheets
// API using service-account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"grana/internal/core"
	"grana/internal/sheets"
)

// Default sheet tab names inside the target spreadsheet. The expenses tab
// is configurable (GOOGLE_SHEET_NAME); income rows always land in Income.
const (
	defaultExpensesSheet = "Expenses"
	incomeSheet          = "Income"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	expensesSheet string
}

var _ sheets.Exporter = (*Client)(nil)

// New creates a client for one spreadsheet. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON (inline) or GOOGLE_SERVICE_ACCOUNT_FILE /
// GOOGLE_APPLICATION_CREDENTIALS (path). expensesSheet names the tab
// expense rows are written to; empty means the default.
func New(ctx context.Context, spreadsheetID, expensesSheet string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	credentials, err := loadCredentials()
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		expensesSheet: expensesTabName(expensesSheet),
	}, nil
}

func expensesTabName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return defaultExpensesSheet
}

func loadCredentials() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), nil
	}
	path := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if path == "" {
		path = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if path == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	credentials, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return credentials, nil
}

func (c *Client) UpsertExpense(ctx context.Context, e core.Expense) error {
	return c.upsertRow(ctx, c.expensesSheet, e.ID, expenseRow(e))
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.deleteRow(ctx, c.expensesSheet, id)
}

func (c *Client) UpsertIncome(ctx context.Context, a core.AdditionalIncome) error {
	return c.upsertRow(ctx, incomeSheet, a.ID, incomeRow(a))
}

func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	return c.deleteRow(ctx, incomeSheet, id)
}

// upsertRow rewrites the record's existing row when its id is already in
// column A, otherwise appends. The id column makes replays idempotent.
func (c *Client) upsertRow(ctx context.Context, sheet, id string, row []any) error {
	rowNum, err := c.findRow(ctx, sheet, id)
	if err != nil {
		return err
	}
	values := &gsheet.ValueRange{Values: [][]any{row}}
	if rowNum > 0 {
		target := fmt.Sprintf("%s!A%d", sheet, rowNum)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, target, values).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update row %s: %w", target, err)
		}
		return nil
	}
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:Z", values).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	return nil
}

func (c *Client) deleteRow(ctx context.Context, sheet, id string) error {
	rowNum, err := c.findRow(ctx, sheet, id)
	if err != nil {
		return err
	}
	if rowNum == 0 {
		// Already gone; deletes replay safely.
		return nil
	}
	target := fmt.Sprintf("%s!A%d:Z%d", sheet, rowNum, rowNum)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, target, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear row %s: %w", target, err)
	}
	return nil
}

// findRow returns the 1-based row whose first cell equals id, or 0.
func (c *Client) findRow(ctx context.Context, sheet, id string) (int, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read id column of %s: %w", sheet, err)
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if cell, ok := row[0].(string); ok && cell == id {
			return i + 1, nil
		}
	}
	return 0, nil
}
