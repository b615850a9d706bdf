package v1

import (
	"net/http"
	"time"

	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/prescription"
	"github.com/carebridge/hms/internal/service"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointments  *service.AppointmentService
	billing       *service.BillingService
	prescriptions *service.PrescriptionService
	collector     *metrics.Collector
}

func NewAppointmentHandler(
	appointments *service.AppointmentService,
	billing *service.BillingService,
	prescriptions *service.PrescriptionService,
	collector *metrics.Collector,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointments:  appointments,
		billing:       billing,
		prescriptions: prescriptions,
		collector:     collector,
	}
}

type bookAppointmentRequest struct {
	DoctorID    uuid.UUID `json:"doctor_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Reason      string    `json:"reason"`
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.appointments.Book(c.Request.Context(), claims, &appointment.BookAppointmentCommand{
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondCreated(c, a)
}

type appointmentListResponse struct {
	Appointments []*appointment.Appointment `json:"appointments"`
	Counts       appointment.StatusCounts   `json:"counts"`
}

func (h *AppointmentHandler) List(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	list, err := h.appointments.List(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	counts, err := h.appointments.Counts(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, appointmentListResponse{Appointments: list, Counts: *counts})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.appointments.Get(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.appointments.Confirm(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondOK(c, a)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.appointments.Cancel(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.AppointmentsTotal.WithLabelValues(string(a.Status)).Inc()
	respondOK(c, a)
}

type issueInvoiceRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (h *AppointmentHandler) IssueInvoice(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req issueInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.billing.IssueOrUpdate(c.Request.Context(), claims, id, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.InvoicesIssued.Inc()
	respondOK(c, inv)
}

func (h *AppointmentHandler) GetInvoice(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	inv, err := h.billing.GetByAppointment(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, inv)
}

func (h *AppointmentHandler) PayInvoice(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	inv, err := h.billing.Pay(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.InvoicesPaid.Inc()
	c.JSON(http.StatusOK, APIResponse[any]{Data: inv, Message: "payment recorded"})
}

type upsertPrescriptionRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
	Medicines string `json:"medicines" binding:"required"`
	Notes     string `json:"notes"`
}

func (h *AppointmentHandler) UpsertPrescription(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req upsertPrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.prescriptions.Upsert(c.Request.Context(), claims, id, &prescription.UpsertPrescriptionCommand{
		Diagnosis: req.Diagnosis,
		Medicines: req.Medicines,
		Notes:     req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.PrescriptionsIssued.Inc()
	respondOK(c, p)
}

func (h *AppointmentHandler) GetPrescription(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.prescriptions.GetByAppointment(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}
