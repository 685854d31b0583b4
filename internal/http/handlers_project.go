package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"farmdash/internal/core"
	"farmdash/internal/farmapi"
	"farmdash/internal/log"
)

type projectsPageData struct {
	Email    string
	Projects []core.Project
	Search   string
	LoadErr  string
}

type projectPageData struct {
	Email      string
	Project    core.Project
	Categories []core.Category
	Today      string
	CanExport  bool
}

// loadProjects resolves the session's user ID and fetches their projects.
// A failed list fetch degrades to an empty list so the page still renders;
// the lookup failure is surfaced because nothing works without a user ID.
func (s *Server) loadProjects(r *http.Request) ([]core.Project, int64, error) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		return nil, 0, errors.New("no session in context")
	}

	userID, err := s.backend.UserID(r.Context(), sess.Email)
	if err != nil {
		return nil, 0, err
	}

	projects, err := s.backend.ListProjects(r.Context(), userID)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Project list fetch failed, rendering empty list",
			log.FieldOperation, log.OpList,
			log.FieldUserID, userID,
			log.FieldError, err.Error())
		return nil, userID, nil
	}
	return projects, userID, nil
}

func (s *Server) handleProjectsPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	data := projectsPageData{Email: sess.Email}

	projects, _, err := s.loadProjects(r)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "User lookup failed",
			log.FieldOperation, log.OpLookup,
			log.FieldUserEmail, sess.Email,
			log.FieldError, err.Error())
		data.LoadErr = farmapi.UserMessage(err, "Could not load your projects.")
		s.render(w, r, "projects.html", data)
		return
	}

	data.Projects = core.SortProjectsByID(projects)
	s.render(w, r, "projects.html", data)
}

// handleProjectList serves the project list partial, filtered by the
// search query.
func (s *Server) handleProjectList(w http.ResponseWriter, r *http.Request) {
	search := sanitizeInput(r.URL.Query().Get("q"))

	projects, _, err := s.loadProjects(r)
	if err != nil {
		InternalServerError(farmapi.UserMessage(err, "Could not load your projects.")).Write(w)
		return
	}

	filtered := core.FilterProjectsByName(projects, search)
	s.render(w, r, "project_list.html", projectsPageData{
		Projects: core.SortProjectsByID(filtered),
		Search:   search,
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))

	// Collapse double submits of the same form into one backend call.
	key := sess.SID + ":create-project:" + name
	result, err, _ := s.submitGroup.Do(key, func() (interface{}, error) {
		userID, err := s.backend.UserID(r.Context(), sess.Email)
		if err != nil {
			return nil, err
		}

		today := time.Now().Format(core.DateLayout)
		return s.backend.CreateProject(r.Context(), core.ProjectDraft{
			Name:      name,
			StartDate: today,
			EndDate:   today,
			UserID:    userID,
		})
	})
	if err != nil {
		s.writeCreateProjectError(w, r, name, err)
		return
	}

	project := result.(core.Project)

	if s.publisher != nil {
		if pubErr := s.publisher.PublishProjectCreated(r.Context(), project); pubErr != nil {
			s.logger.WarnContext(r.Context(), "Audit publish failed",
				log.FieldOperation, log.OpPublish,
				log.FieldProjectID, project.ID,
				log.FieldError, pubErr.Error())
		}
	}

	s.logger.InfoContext(r.Context(), "Project created",
		log.FieldOperation, log.OpCreate,
		log.FieldProjectID, project.ID,
		log.FieldProjectName, project.Name)

	NewHTMXResponse().
		TriggerProjectCreated(project.ID).
		TriggerFormReset().
		TriggerSuccessNotification(fmt.Sprintf("Project %q created", project.Name)).
		Write(w)
}

func (s *Server) writeCreateProjectError(w http.ResponseWriter, r *http.Request, name string, err error) {
	s.logger.ErrorContext(r.Context(), "Project creation failed",
		log.FieldOperation, log.OpCreate,
		log.FieldProjectName, name,
		log.FieldError, err.Error())

	var valErr *farmapi.ValidationError
	if errors.As(err, &valErr) {
		UnprocessableEntityError(valErr.Error()).
			TriggerErrorNotification(valErr.Error()).
			Write(w)
		return
	}

	msg := farmapi.UserMessage(err, "Failed to create project")
	InternalServerError(msg).TriggerErrorNotification(msg).Write(w)
}

func (s *Server) handleProjectPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

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

	for _, p := range projects {
		if p.ID == projectID {
			s.render(w, r, "project.html", projectPageData{
				Email:      sess.Email,
				Project:    p,
				Categories: core.Categories(),
				Today:      time.Now().Format(core.DateLayout),
				CanExport:  s.exporter != nil,
			})
			return
		}
	}

	NotFoundError(template.HTMLEscapeString(fmt.Sprintf("Project %d not found", projectID))).Write(w)
}
