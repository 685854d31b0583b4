package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
	"farmdash/internal/log"
)

type productivityData struct {
	ProjectID    int64
	TotalExpense string
	TotalIncome  string
	Balance      string
	ExpenseByCat []core.CategoryAmount
	IncomeByCat  []core.CategoryAmount
	ExpenseCount int
	IncomeCount  int
}

// fetchBothTypes loads expense and income records concurrently.
func (s *Server) fetchBothTypes(r *http.Request, projectID int64) (expenses, incomes []core.FinancialRecord, err error) {
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		expenses, err = s.backend.ListRecords(ctx, projectID, core.Expense)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.backend.ListRecords(ctx, projectID, core.Income)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return expenses, incomes, nil
}

// handleProductivity serves the totals partial for a project.
func (s *Server) handleProductivity(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseProjectID(r)
	if !ok {
		NotFoundError("Unknown project").Write(w)
		return
	}

	expenses, incomes, err := s.fetchBothTypes(r, projectID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Productivity fetch failed",
			log.FieldOperation, log.OpList,
			log.FieldProjectID, projectID,
			log.FieldError, err.Error())
		InternalServerError(farmapi.UserMessage(err, "Failed to compute productivity")).Write(w)
		return
	}

	totalExpense := core.Total(expenses)
	totalIncome := core.Total(incomes)

	s.render(w, r, "productivity.html", productivityData{
		ProjectID:    projectID,
		TotalExpense: core.FormatAmount(totalExpense),
		TotalIncome:  core.FormatAmount(totalIncome),
		Balance:      core.FormatAmount(totalIncome - totalExpense),
		ExpenseByCat: core.TotalsByCategory(expenses),
		IncomeByCat:  core.TotalsByCategory(incomes),
		ExpenseCount: len(expenses),
		IncomeCount:  len(incomes),
	})
}

// handleReportPNG renders a chart for the project. type=pie (default)
// draws the expense category breakdown; type=bars compares income against
// expenses.
func (s *Server) handleReportPNG(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseProjectID(r)
	if !ok {
		NotFoundError("Unknown project").Write(w)
		return
	}

	expenses, incomes, err := s.fetchBothTypes(r, projectID)
	if err != nil {
		InternalServerError(farmapi.UserMessage(err, "Failed to build report")).Write(w)
		return
	}

	var png []byte
	switch r.URL.Query().Get("type") {
	case "bars":
		png, err = s.reports.IncomeExpenseBars(expenses, incomes)
	default:
		png, err = s.reports.CategoryPie(expenses)
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Chart render failed",
			log.FieldOperation, log.OpRender,
			log.FieldProjectID, projectID,
			log.FieldError, err.Error())
		InternalServerError("Failed to render chart").Write(w)
		return
	}
	if png == nil {
		NotFoundError("No data to chart yet").Write(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// handleExport ships the project's records to the configured spreadsheet.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		NotFoundError("Export is not configured").Write(w)
		return
	}

	projectID, ok := parseProjectID(r)
	if !ok {
		NotFoundError("Unknown project").Write(w)
		return
	}

	projects, _, err := s.loadProjects(r)
	if err != nil {
		InternalServerError(farmapi.UserMessage(err, "Could not load the project.")).Write(w)
		return
	}

	var project core.Project
	found := false
	for _, p := range projects {
		if p.ID == projectID {
			project = p
			found = true
			break
		}
	}
	if !found {
		NotFoundError("Unknown project").Write(w)
		return
	}

	expenses, incomes, err := s.fetchBothTypes(r, projectID)
	if err != nil {
		InternalServerError(farmapi.UserMessage(err, "Failed to fetch records for export")).Write(w)
		return
	}

	records := core.SortByDateDesc(append(expenses, incomes...))
	rows, err := s.exporter.ExportRecords(r.Context(), project, records)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Export failed",
			log.FieldOperation, log.OpExport,
			log.FieldProjectID, projectID,
			log.FieldError, err.Error())
		msg := "Export failed. Please try again."
		InternalServerError(msg).TriggerErrorNotification(msg).Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Export completed",
		log.FieldOperation, log.OpExport,
		log.FieldProjectID, projectID,
		"rows", rows)

	NewHTMXResponse().
		TriggerSuccessNotification("Export complete").
		Write(w)
}
