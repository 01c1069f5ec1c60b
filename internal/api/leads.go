package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"lead-capture/internal/capture"
	"lead-capture/internal/models"
	"lead-capture/internal/session"
	dto "lead-capture/pkg/models"

	"github.com/gin-gonic/gin"
)

type LeadCapturer interface {
	SubmitLead(ctx context.Context, in capture.SubmitInput) error
	VerifyLead(ctx context.Context, phone, code string) error
	Session(phone string) session.Session
}

type LeadLister interface {
	ListAll(ctx context.Context) ([]models.Lead, error)
}

type LeadHandler struct {
	capture LeadCapturer
	leads   LeadLister
}

func NewLeadHandler(lc LeadCapturer, leads LeadLister) *LeadHandler {
	return &LeadHandler{capture: lc, leads: leads}
}

func (h *LeadHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: "Invalid request body"})
		return
	}

	err := h.capture.SubmitLead(c.Request.Context(), capture.SubmitInput{
		Name:        req.Name,
		Phone:       req.Phone,
		CatalogCode: req.CatalogCode,
	})
	if err != nil {
		respondError(c, err, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Message: "OTP sent"})
}

func (h *LeadHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: "Invalid request body"})
		return
	}

	if err := h.capture.VerifyLead(c.Request.Context(), req.Phone, req.OTP); err != nil {
		respondError(c, err, "Failed to verify OTP")
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Message: "Phone verified"})
}

func (h *LeadHandler) GetLeads(c *gin.Context) {
	leads, err := h.leads.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("Error listing leads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetSession(c *gin.Context) {
	sess := h.capture.Session(c.Param("phone"))
	c.JSON(http.StatusOK, dto.SessionStatus{
		Phone:    sess.Phone,
		State:    string(sess.State),
		Verified: sess.Verified(),
	})
}

// respondError maps capture errors to a status. Server-side causes are
// logged and replaced by fallback.
func respondError(c *gin.Context, err error, fallback string) {
	var ve *capture.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: ve.Error()})
	case errors.Is(err, capture.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: "Invalid OTP"})
	default:
		log.Printf("[%s] %s %s: %v", requestID(c), c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, dto.APIResponse{Message: fallback})
	}
}
