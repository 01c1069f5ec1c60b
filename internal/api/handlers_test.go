package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead-capture/internal/capture"
	"lead-capture/internal/export"
	"lead-capture/internal/models"
	"lead-capture/internal/session"
	dto "lead-capture/pkg/models"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCapturer struct {
	submitErr error
	verifyErr error
	submitted []capture.SubmitInput
	sess      session.Session
}

func (f *fakeCapturer) SubmitLead(ctx context.Context, in capture.SubmitInput) error {
	f.submitted = append(f.submitted, in)
	return f.submitErr
}

func (f *fakeCapturer) VerifyLead(ctx context.Context, phone, code string) error {
	return f.verifyErr
}

func (f *fakeCapturer) Session(phone string) session.Session {
	return f.sess
}

type fakeLister struct {
	leads []models.Lead
	err   error
}

func (f fakeLister) ListAll(ctx context.Context) ([]models.Lead, error) {
	return f.leads, f.err
}

type fakeExporter struct {
	doc export.Document
	err error
}

func (f fakeExporter) ExportAll(ctx context.Context, format string) (export.Document, error) {
	return f.doc, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func newTestRouter(c *fakeCapturer, l fakeLister, e fakeExporter) *gin.Engine {
	return NewRouter(RouterDeps{
		Leads:  NewLeadHandler(c, l),
		Export: NewExportHandler(e),
		Health: fakePinger{},
	})
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestSendOTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"ok", nil, http.StatusOK, "OTP sent"},
		{"validation", &capture.ValidationError{Field: "name", Msg: "is required"}, http.StatusBadRequest, "name is required"},
		{"provider", errors.Join(capture.ErrSendOTP, errors.New("twilio said no")), http.StatusInternalServerError, "Failed to send OTP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCapturer{submitErr: tt.err}
			r := newTestRouter(c, fakeLister{}, fakeExporter{})

			w := doJSON(r, http.MethodPost, "/api/send-otp", dto.SendOTPRequest{Name: "Alice", Phone: "+1 555 111 2222", CatalogCode: "SPRING"})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decode(t, w)
			if resp.Success != (tt.err == nil) || resp.Message != tt.wantMsg {
				t.Errorf("resp = %+v", resp)
			}
			if len(c.submitted) != 1 || c.submitted[0].CatalogCode != "SPRING" {
				t.Errorf("submitted = %+v", c.submitted)
			}
		})
	}
}

func TestSendOTP_MalformedBody(t *testing.T) {
	c := &fakeCapturer{}
	r := newTestRouter(c, fakeLister{}, fakeExporter{})

	req := httptest.NewRequest(http.MethodPost, "/api/send-otp", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if len(c.submitted) != 0 {
		t.Error("malformed body reached the service")
	}
}

func TestVerifyOTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ok", nil, http.StatusOK},
		{"invalid code", capture.ErrInvalidCode, http.StatusBadRequest},
		{"missing otp", &capture.ValidationError{Field: "otp", Msg: "is required"}, http.StatusBadRequest},
		{"provider", errors.Join(capture.ErrVerificationFailed, errors.New("timeout")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeCapturer{verifyErr: tt.err}, fakeLister{}, fakeExporter{})
			w := doJSON(r, http.MethodPost, "/api/verify-otp", dto.VerifyOTPRequest{Phone: "+15551112222", OTP: "123456"})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			resp := decode(t, w)
			if resp.Success != (tt.err == nil) {
				t.Errorf("resp = %+v", resp)
			}
			if tt.wantStatus == http.StatusInternalServerError && resp.Message != "Failed to verify OTP" {
				t.Errorf("internal detail leaked: %q", resp.Message)
			}
		})
	}
}

func TestExportLeads(t *testing.T) {
	doc := export.Document{Filename: "leads_2024-03-09.xlsx", ContentType: "application/x-test", Data: []byte("PK")}
	r := newTestRouter(&fakeCapturer{}, fakeLister{}, fakeExporter{doc: doc})

	w := doJSON(r, http.MethodGet, "/api/export-leads", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=leads_2024-03-09.xlsx" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "application/x-test" {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Body.String() != "PK" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExportLeads_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{export.ErrNoData, http.StatusBadRequest},
		{export.ErrUnsupportedFormat, http.StatusBadRequest},
		{errors.Join(export.ErrExport, errors.New("disk")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newTestRouter(&fakeCapturer{}, fakeLister{}, fakeExporter{err: tt.err})
		w := doJSON(r, http.MethodGet, "/api/export-leads", nil)
		if w.Code != tt.wantStatus {
			t.Errorf("%v: status = %d, want %d", tt.err, w.Code, tt.wantStatus)
		}
		if resp := decode(t, w); resp.Success {
			t.Errorf("%v: success = true", tt.err)
		}
	}
}

func TestGetLeads(t *testing.T) {
	leads := []models.Lead{{ID: 1, Name: "Alice", Phone: "+15551112222"}}
	r := newTestRouter(&fakeCapturer{}, fakeLister{leads: leads}, fakeExporter{})

	w := doJSON(r, http.MethodGet, "/api/leads", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got []models.Lead
	json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 1 || got[0].Phone != "+15551112222" {
		t.Errorf("leads = %+v", got)
	}

	r = newTestRouter(&fakeCapturer{}, fakeLister{err: errors.New("down")}, fakeExporter{})
	if w := doJSON(r, http.MethodGet, "/api/leads", nil); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
}

func TestGetSession(t *testing.T) {
	c := &fakeCapturer{sess: session.Session{Phone: "+15551112222", State: session.StateVerified}}
	r := newTestRouter(c, fakeLister{}, fakeExporter{})

	w := doJSON(r, http.MethodGet, "/api/sessions/15551112222", nil)
	var got dto.SessionStatus
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.State != "VERIFIED" || !got.Verified || got.Phone != "+15551112222" {
		t.Errorf("status = %+v", got)
	}
}

func TestMiddleware(t *testing.T) {
	r := newTestRouter(&fakeCapturer{}, fakeLister{}, fakeExporter{})

	w := doJSON(r, http.MethodOptions, "/api/send-otp", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request id not issued")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("healthz = %d, request id %q", w.Code, w.Header().Get("X-Request-ID"))
	}
}

func TestHealthz_Unavailable(t *testing.T) {
	r := NewRouter(RouterDeps{
		Leads:  NewLeadHandler(&fakeCapturer{}, fakeLister{}),
		Export: NewExportHandler(fakeExporter{}),
		Health: fakePinger{err: errors.New("down")},
	})
	w := doJSON(r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", w.Code)
	}
}
