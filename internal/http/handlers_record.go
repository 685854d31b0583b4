package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
	"farmdash/internal/log"
)

type recordListData struct {
	ProjectID  int64
	Type       core.RecordType
	Category   string
	Sort       core.SortDirection
	NextSort   core.SortDirection
	Records    []core.FinancialRecord
	Total      string
	Categories []core.Category
}

// handleRecordList serves the records partial for one tab. Every request
// refetches from the backend; filtering and sorting are applied in memory
// per request, never cached.
func (s *Server) handleRecordList(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseProjectID(r)
	if !ok {
		NotFoundError("Unknown project").Write(w)
		return
	}

	q := parseListQuery(r)

	records, err := s.backend.ListRecords(r.Context(), projectID, q.Type)
	if err != nil {
		// A failed fetch renders an empty list rather than an error state;
		// the tab stays usable and the next refetch can recover.
		s.logger.WarnContext(r.Context(), "Record list fetch failed, rendering empty list",
			log.FieldOperation, log.OpList,
			log.FieldProjectID, projectID,
			log.FieldRecordType, q.Type.String(),
			log.FieldError, err.Error())
		records = nil
	}

	filtered := core.FilterByCategory(records, q.Category)
	if q.ByAmount {
		filtered = core.SortByAmount(filtered, q.Sort)
	} else {
		filtered = core.SortByDateDesc(filtered)
	}

	s.render(w, r, "records.html", recordListData{
		ProjectID:  projectID,
		Type:       q.Type,
		Category:   q.Category,
		Sort:       q.Sort,
		NextSort:   q.Sort.Toggle(),
		Records:    filtered,
		Total:      core.FormatAmount(core.Total(filtered)),
		Categories: core.Categories(),
	})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	projectID, ok := parseProjectID(r)
	if !ok {
		NotFoundError("Unknown project").Write(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	draft := core.RecordDraft{
		ProjectID:   projectID,
		Type:        core.RecordType(strings.TrimSpace(r.Form.Get("type"))),
		Description: sanitizeInput(r.Form.Get("description")),
		Category:    core.Category(strings.TrimSpace(r.Form.Get("category"))),
		Date:        strings.TrimSpace(r.Form.Get("date")),
	}

	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		s.writeCreateRecordError(w, r, draft, &farmapi.ValidationError{Err: core.ErrInvalidAmount})
		return
	}
	draft.Amount = core.Money{Cents: cents}.Units()

	// Collapse double submits of the same draft into one backend call.
	key := fmt.Sprintf("%s:create-record:%d:%s:%s:%s:%s",
		sess.SID, projectID, draft.Type, amountStr, draft.Description, draft.Date)
	result, err, _ := s.submitGroup.Do(key, func() (interface{}, error) {
		return s.backend.CreateRecord(r.Context(), draft)
	})
	if err != nil {
		s.writeCreateRecordError(w, r, draft, err)
		return
	}

	record := result.(core.FinancialRecord)

	if s.publisher != nil {
		userID, lookupErr := s.backend.UserID(r.Context(), sess.Email)
		if lookupErr != nil {
			userID = 0
		}
		if pubErr := s.publisher.PublishRecordCreated(r.Context(), userID, record); pubErr != nil {
			s.logger.WarnContext(r.Context(), "Audit publish failed",
				log.FieldOperation, log.OpPublish,
				log.FieldRecordID, record.ID,
				log.FieldError, pubErr.Error())
		}
	}

	s.logger.InfoContext(r.Context(), "Record created",
		log.FieldOperation, log.OpCreate,
		log.FieldProjectID, projectID,
		log.FieldRecordID, record.ID,
		log.FieldRecordType, record.Type.String(),
		log.FieldCategory, record.Category.String(),
		log.FieldAmount, record.Amount,
		log.FieldDate, record.Date)

	NewHTMXResponse().
		TriggerRecordCreated(projectID, record.Type.String()).
		TriggerFormReset().
		TriggerSuccessNotification(fmt.Sprintf("%s recorded: %s", capitalize(record.Type.String()), core.FormatAmount(record.Amount))).
		Write(w)
}

// writeCreateRecordError responds without a form:reset trigger so the
// browser keeps the draft for retry.
func (s *Server) writeCreateRecordError(w http.ResponseWriter, r *http.Request, draft core.RecordDraft, err error) {
	s.logger.ErrorContext(r.Context(), "Record creation failed",
		log.FieldOperation, log.OpCreate,
		log.FieldProjectID, draft.ProjectID,
		log.FieldRecordType, draft.Type.String(),
		log.FieldError, err.Error())

	var valErr *farmapi.ValidationError
	if errors.As(err, &valErr) {
		UnprocessableEntityError(valErr.Error()).
			TriggerErrorNotification(valErr.Error()).
			Write(w)
		return
	}

	msg := farmapi.UserMessage(err, "Failed to save record")
	InternalServerError(msg).TriggerErrorNotification(msg).Write(w)
}
