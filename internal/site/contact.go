package site

import (
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	mailer "github.com/jisub/folio/internal/mail"
	"github.com/jisub/folio/internal/store"
)

// ContactForm holds a contact submission and its validation errors.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
	Errors  map[string]string
}

// Validate checks field lengths and email shape, recording one error per
// field. Returns true when the form is acceptable.
func (f *ContactForm) Validate() bool {
	f.Errors = make(map[string]string)

	name := utf8.RuneCountInString(f.Name)
	if name < 2 {
		f.Errors["name"] = "Name must be at least 2 characters."
	} else if name > 50 {
		f.Errors["name"] = "Name must be at most 50 characters."
	}

	if _, err := mail.ParseAddress(f.Email); err != nil || f.Email == "" {
		f.Errors["email"] = "Enter a valid email address."
	}

	if utf8.RuneCountInString(f.Subject) > 100 {
		f.Errors["subject"] = "Subject must be at most 100 characters."
	}

	msg := utf8.RuneCountInString(f.Message)
	if msg < 10 {
		f.Errors["message"] = "Message must be at least 10 characters."
	} else if msg > 5000 {
		f.Errors["message"] = "Message must be at most 5000 characters."
	}

	return len(f.Errors) == 0
}

type contactData struct {
	Meta siteMeta
	Form ContactForm
	Sent bool
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	data := contactData{Meta: s.meta(), Sent: r.URL.Query().Get("sent") == "1"}
	s.render(w, http.StatusOK, "contact", data)
}

func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := ContactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Subject: strings.TrimSpace(r.PostFormValue("subject")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}

	if !form.Validate() {
		s.render(w, http.StatusUnprocessableEntity, "contact", contactData{
			Meta: s.meta(),
			Form: form,
		})
		return
	}

	msg, err := s.db.InsertContactMessage(store.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		s.serverError(w, "store contact message", err)
		return
	}

	if s.mailer != nil && s.mailer.Enabled() {
		err := s.mailer.SendContactNotification(r.Context(), mailer.ContactNotification{
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
			Message: msg.Message,
			SentAt:  msg.CreatedAt,
		})
		if err != nil {
			// The message is stored; a failed notification should not
			// surface as a visitor-facing error.
			s.logger.Error("send contact notification", "err", err)
		}
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}
