package models

// SendOTPRequest is the lead form submission
type SendOTPRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CatalogCode string `json:"catalogCode"`
}

// VerifyOTPRequest carries the code the lead received by SMS
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// APIResponse is the body of every JSON reply from the lead endpoints
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SessionStatus reports where a phone number is in the OTP flow
type SessionStatus struct {
	Phone    string `json:"phone"`
	State    string `json:"state"` // NONE, PENDING, VERIFIED
	Verified bool   `json:"verified"`
}
