// Package capture runs the lead submission and OTP verification flow.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"lead-capture/internal/models"
	"lead-capture/internal/session"
	"lead-capture/internal/verify"
)

const (
	EventLeadSubmitted = "lead_submitted"
	EventLeadVerified  = "lead_verified"
)

type LeadRepository interface {
	Insert(ctx context.Context, name, phone string, catalogCode *string) (uint, error)
}

type Verifier interface {
	SendCode(ctx context.Context, phone string) (verify.Handle, error)
	CheckCode(ctx context.Context, phone, code string) (verify.Result, error)
}

type SessionStore interface {
	Begin(name, phone string) session.Session
	MarkVerified(phone string) bool
	Get(phone string) (session.Session, bool)
}

// Notifier receives lead events. *ws.Hub satisfies it.
type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

type SubmitInput struct {
	Name        string
	Phone       string
	CatalogCode string
}

type Service struct {
	leads    LeadRepository
	verifier Verifier
	sessions SessionStore
	notifier Notifier
}

// NewService wires the flow. notifier may be nil.
func NewService(leads LeadRepository, verifier Verifier, sessions SessionStore, notifier Notifier) *Service {
	return &Service{leads: leads, verifier: verifier, sessions: sessions, notifier: notifier}
}

// SubmitLead records the lead and sends an OTP to its phone. A storage
// failure is logged and does not stop the code from being sent.
func (s *Service) SubmitLead(ctx context.Context, in SubmitInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return required("name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return required("phone")
	}
	phone := NormalizePhone(in.Phone)
	if phone == "" {
		return &ValidationError{Field: "phone", Msg: "must contain digits"}
	}

	var catalogCode *string
	if code := strings.TrimSpace(in.CatalogCode); code != "" {
		catalogCode = &code
	}

	s.sessions.Begin(name, phone)

	lead := models.Lead{Name: name, Phone: phone, CatalogCode: catalogCode}
	id, err := s.leads.Insert(ctx, name, phone, catalogCode)
	if err != nil {
		log.Printf("ERROR: lead not stored (name=%q phone=%s): %v", name, phone, err)
	} else {
		lead.ID = id
	}

	handle, err := s.verifier.SendCode(ctx, phone)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendOTP, err)
	}
	log.Printf("OTP sent to %s (verification %s)", phone, handle.SID)

	s.notify(EventLeadSubmitted, lead)
	return nil
}

// VerifyLead checks code against the provider. Verifying a phone that was
// never submitted is allowed; there is just no session to mark.
func (s *Service) VerifyLead(ctx context.Context, phone, code string) error {
	if strings.TrimSpace(phone) == "" {
		return required("phone")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return required("otp")
	}
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return &ValidationError{Field: "phone", Msg: "must contain digits"}
	}

	result, err := s.verifier.CheckCode(ctx, normalized, code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	if result != verify.Approved {
		return ErrInvalidCode
	}

	if s.sessions.MarkVerified(normalized) {
		sess, _ := s.sessions.Get(normalized)
		s.notify(EventLeadVerified, sess)
	}
	return nil
}

// Session returns the verification state for phone.
func (s *Service) Session(phone string) session.Session {
	normalized := NormalizePhone(phone)
	if sess, ok := s.sessions.Get(normalized); ok {
		return sess
	}
	return session.Session{Phone: normalized, State: session.StateNone}
}

func (s *Service) notify(eventType string, data interface{}) {
	if s.notifier != nil {
		s.notifier.BroadcastEvent(eventType, data)
	}
}

// IsClientError reports whether err is caused by the caller's input.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidCode)
}
