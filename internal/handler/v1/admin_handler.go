package v1

import (
	"net/http"

	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"github.com/carebridge/hms/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler covers staff management: the doctor approval queue and
// profile maintenance for both roles.
type AdminHandler struct {
	directory *service.DirectoryService
}

func NewAdminHandler(directory *service.DirectoryService) *AdminHandler {
	return &AdminHandler{directory: directory}
}

func (h *AdminHandler) ListDoctors(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	entries, err := h.directory.ListDoctors(c.Request.Context(), claims, c.Query("specialization"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *AdminHandler) ListPatients(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}

	entries, err := h.directory.ListPatients(c.Request.Context(), claims)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *AdminHandler) ApproveDoctor(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.directory.ApproveDoctor(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse[any]{Message: "doctor approved"})
}

func (h *AdminHandler) RejectDoctor(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.directory.RejectDoctor(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse[any]{Message: "doctor rejected and removed"})
}

type updateDoctorRequest struct {
	Specialization *string `json:"specialization"`
	LicenseNumber  *string `json:"license_number"`
}

func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.directory.UpdateDoctor(c.Request.Context(), claims, id, &doctor.UpdateDoctorCommand{
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.directory.RemoveDoctor(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updatePatientRequest struct {
	Gender        *string `json:"gender"`
	ContactNumber *string `json:"contact_number"`
}

func (h *AdminHandler) UpdatePatient(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &patient.UpdatePatientCommand{ContactNumber: req.ContactNumber}
	if req.Gender != nil {
		g := patient.Gender(*req.Gender)
		cmd.Gender = &g
	}

	updated, err := h.directory.UpdatePatient(c.Request.Context(), claims, id, cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, updated)
}

func (h *AdminHandler) DeletePatient(c *gin.Context) {
	claims := mustClaims(c)
	if claims == nil {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.directory.RemovePatient(c.Request.Context(), claims, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
