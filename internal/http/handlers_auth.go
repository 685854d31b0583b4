package http

import (
	"net/http"
	"strings"

	"farmdash/internal/farmapi"
	"farmdash/internal/log"
	"farmdash/internal/session"
)

type authPageData struct {
	Error string
	Email string
	Name  string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authPageData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "login.html", authPageData{Error: "Invalid request format"})
		return
	}

	email := strings.TrimSpace(r.Form.Get("email"))
	password := r.Form.Get("password")
	if email == "" || password == "" {
		s.render(w, r, "login.html", authPageData{
			Error: "Email and password are required",
			Email: email,
		})
		return
	}

	token, err := s.backend.Login(r.Context(), email, password)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Login failed",
			log.FieldOperation, log.OpLogin,
			log.FieldUserEmail, email,
			log.FieldError, err.Error())
		s.render(w, r, "login.html", authPageData{
			Error: farmapi.UserMessage(err, "Login failed. Please try again."),
			Email: email,
		})
		return
	}

	sid, err := s.sessions.Login(r.Context(), token, email)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Session creation failed",
			log.FieldOperation, log.OpLogin,
			log.FieldError, err.Error())
		s.render(w, r, "login.html", authPageData{
			Error: "Login failed. Please try again.",
			Email: email,
		})
		return
	}

	s.logger.InfoContext(r.Context(), "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserEmail, email,
		log.FieldSessionID, sid)

	setSessionCookie(w, sid)
	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", authPageData{})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, "signup.html", authPageData{Error: "Invalid request format"})
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	email := strings.TrimSpace(r.Form.Get("email"))
	password := r.Form.Get("password")

	if name == "" || email == "" || password == "" {
		s.render(w, r, "signup.html", authPageData{
			Error: "All fields are required",
			Name:  name,
			Email: email,
		})
		return
	}

	if err := s.backend.Register(r.Context(), name, email, password); err != nil {
		s.logger.WarnContext(r.Context(), "Registration failed",
			log.FieldOperation, log.OpRegister,
			log.FieldUserEmail, email,
			log.FieldError, err.Error())
		s.render(w, r, "signup.html", authPageData{
			Error: farmapi.UserMessage(err, "Registration failed. Please try again."),
			Name:  name,
			Email: email,
		})
		return
	}

	s.logger.InfoContext(r.Context(), "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserEmail, email)

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		s.sessions.Logout(r.Context(), cookie.Value)
		s.logger.InfoContext(r.Context(), "User logged out",
			log.FieldOperation, log.OpLogout,
			log.FieldSessionID, cookie.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
