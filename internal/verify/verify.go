// Package verify adapts the Twilio Verify API to the two calls the lead
// flow needs: send a code and check a code. It keeps no local state.
package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	verifyv2 "github.com/twilio/twilio-go/rest/verify/v2"
)

const statusApproved = "approved"

// Result is the outcome of a code check.
type Result int

const (
	Denied Result = iota
	Approved
)

func (r Result) String() string {
	if r == Approved {
		return "approved"
	}
	return "denied"
}

// Handle identifies a verification started with SendCode.
type Handle struct {
	SID     string
	To      string
	Channel string
	Status  string
}

// ProviderError is returned when Twilio rejects or fails a request.
type ProviderError struct {
	Op     string
	Status int // HTTP status from Twilio, 0 if the request never got a response
	Code   int // Twilio error code
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("verify %s: status=%d code=%d: %v", e.Op, e.Status, e.Code, e.Err)
	}
	return fmt.Sprintf("verify %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// verifyAPI is the subset of the Twilio Verify v2 service used here.
type verifyAPI interface {
	CreateVerification(serviceSid string, params *verifyv2.CreateVerificationParams) (*verifyv2.VerifyV2Verification, error)
	CreateVerificationCheck(serviceSid string, params *verifyv2.CreateVerificationCheckParams) (*verifyv2.VerifyV2VerificationCheck, error)
}

type Options struct {
	AccountSID string
	AuthToken  string
	ServiceSID string
	Channel    string        // defaults to "sms"
	Timeout    time.Duration // defaults to 10s
}

type Client struct {
	api        verifyAPI
	serviceSID string
	channel    string
}

// NewClient builds a Twilio-backed client.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: opts.AccountSID,
		Password: opts.AuthToken,
	})
	rest.SetTimeout(opts.Timeout)
	return newClient(rest.VerifyV2, opts.ServiceSID, opts.Channel)
}

func newClient(api verifyAPI, serviceSID, channel string) *Client {
	if channel == "" {
		channel = "sms"
	}
	return &Client{api: api, serviceSID: serviceSID, channel: channel}
}

// SendCode asks Twilio to deliver a code to phone (E.164).
func (c *Client) SendCode(ctx context.Context, phone string) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, &ProviderError{Op: "send", Err: err}
	}

	params := &verifyv2.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel(c.channel)

	resp, err := c.api.CreateVerification(c.serviceSID, params)
	if err != nil {
		return Handle{}, providerError("send", err)
	}
	return Handle{
		SID:     deref(resp.Sid),
		To:      phone,
		Channel: c.channel,
		Status:  deref(resp.Status),
	}, nil
}

// CheckCode submits code for the latest verification sent to phone.
// A wrong or expired code is Denied, not an error.
func (c *Client) CheckCode(ctx context.Context, phone, code string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Denied, &ProviderError{Op: "check", Err: err}
	}

	params := &verifyv2.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := c.api.CreateVerificationCheck(c.serviceSID, params)
	if err != nil {
		var restErr *twclient.TwilioRestError
		// Twilio answers 404 once the verification has expired, been approved or never existed.
		if errors.As(err, &restErr) && restErr.Status == http.StatusNotFound {
			return Denied, nil
		}
		return Denied, providerError("check", err)
	}
	if deref(resp.Status) == statusApproved {
		return Approved, nil
	}
	return Denied, nil
}

func providerError(op string, err error) *ProviderError {
	pe := &ProviderError{Op: op, Err: err}
	var restErr *twclient.TwilioRestError
	if errors.As(err, &restErr) {
		pe.Status = restErr.Status
		pe.Code = restErr.Code
	}
	return pe
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
