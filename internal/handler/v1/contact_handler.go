package v1

import (
	"net/http"
	"time"

	"github.com/carebridge/hms/internal/domain/contact"
	"github.com/carebridge/hms/internal/service"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contact   *service.ContactService
	collector *metrics.Collector
}

func NewContactHandler(contactService *service.ContactService, collector *metrics.Collector) *ContactHandler {
	return &ContactHandler{contact: contactService, collector: collector}
}

type submitQueryRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         *int   `json:"age"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Address     string `json:"address"`
	Problem     string `json:"problem" binding:"required"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req submitQueryRequest
	if !bindJSON(c, &req) {
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		respondError(c, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	q, err := h.contact.Submit(c.Request.Context(), &contact.SubmitQueryCommand{
		Name:        req.Name,
		Age:         req.Age,
		DateOfBirth: dob,
		Address:     req.Address,
		Problem:     req.Problem,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.ContactQueriesTotal.Inc()
	respondCreated(c, q)
}

func (h *ContactHandler) List(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	queries, err := h.contact.List(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, queries)
}

func (h *ContactHandler) Get(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	q, err := h.contact.Get(c.Request.Context(), claims, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, q)
}

type replyRequest struct {
	Reply string `json:"reply"`
}

func (h *ContactHandler) Reply(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req replyRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.contact.Reply(c.Request.Context(), claims, id, req.Reply)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, q)
}
