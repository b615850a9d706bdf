package v1

import (
	"github.com/carebridge/hms/internal/service"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing       *service.BillingService
	prescriptions *service.PrescriptionService
}

func NewBillingHandler(billing *service.BillingService, prescriptions *service.PrescriptionService) *BillingHandler {
	return &BillingHandler{billing: billing, prescriptions: prescriptions}
}

// ListInvoices is the billing history: a patient sees their own invoices, a
// doctor the invoices on their appointments, an admin everything.
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	invoices, err := h.billing.List(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, invoices)
}

func (h *BillingHandler) Revenue(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	summary, err := h.billing.Revenue(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, summary)
}

func (h *BillingHandler) ListPrescriptions(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	prescriptions, err := h.prescriptions.List(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, prescriptions)
}
