// Package export ships a project's financial records to a Google
// spreadsheet, one tab per project.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"farmdash/internal/core"
	"farmdash/internal/log"
)

// Exporter writes project records to a spreadsheet.
type Exporter interface {
	ExportRecords(ctx context.Context, project core.Project, records []core.FinancialRecord) (rowCount int, err error)
}

// SheetsExporter implements Exporter against the Google Sheets API.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *log.Logger
}

var _ Exporter = (*SheetsExporter)(nil)

// NewSheetsExporter builds an exporter from a service-account credentials
// file and a spreadsheet ID.
func NewSheetsExporter(ctx context.Context, spreadsheetID, credentialsFile string, logger *log.Logger) (*SheetsExporter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	svc, err := newSheetsService(ctx, credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

func newSheetsService(ctx context.Context, credentialsFile string) (*gsheet.Service, error) {
	if credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if credentialsFile == "" {
		return nil, errors.New("missing service account credentials file")
	}

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ExportRecords appends a header plus one row per record to the tab named
// after the project, creating the tab when missing. It returns the number
// of data rows written.
func (e *SheetsExporter) ExportRecords(ctx context.Context, project core.Project, records []core.FinancialRecord) (int, error) {
	if e.svc == nil {
		return 0, errors.New("sheets service not initialized")
	}

	sheetName := sanitizeSheetName(project.Name)
	if err := e.ensureSheet(ctx, sheetName); err != nil {
		return 0, err
	}

	values := make([][]any, 0, len(records)+1)
	values = append(values, []any{"Date", "Type", "Category", "Description", "Amount"})
	for _, r := range records {
		values = append(values, []any{
			r.Date,
			r.Type.String(),
			r.Category.String(),
			r.Description,
			core.FormatAmount(r.Amount),
		})
	}

	rng := fmt.Sprintf("%s!A1", sheetName)
	vr := &gsheet.ValueRange{Values: values}

	_, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("write records to sheet %s: %w", sheetName, err)
	}

	e.logger.InfoContext(ctx, "Exported records to spreadsheet",
		log.FieldProjectID, project.ID,
		"sheet", sheetName,
		"rows", len(records))

	return len(records), nil
}

func (e *SheetsExporter) ensureSheet(ctx context.Context, sheetName string) error {
	spreadsheet, err := e.svc.Spreadsheets.Get(e.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheetName},
			},
		}},
	}
	if _, err := e.svc.Spreadsheets.BatchUpdate(e.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", sheetName, err)
	}
	return nil
}

// sanitizeSheetName strips characters Sheets rejects in tab titles.
func sanitizeSheetName(name string) string {
	replacer := strings.NewReplacer(
		"[", "", "]", "", "*", "", "?", "", ":", "", "/", "-", "\\", "-", "'", "",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		cleaned = "Project"
	}
	// Sheets caps tab titles at 100 characters.
	if len(cleaned) > 100 {
		cleaned = cleaned[:100]
	}
	return cleaned
}
