package v1

import (
	"net/http"
	"time"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/patient"
	"github.com/carebridge/hms/internal/service"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService  *service.AuthService
	registration *service.RegistrationService
	collector    *metrics.Collector
}

func NewAuthHandler(authService *service.AuthService, registration *service.RegistrationService, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		registration: registration,
		collector:    collector,
	}
}

type registerRequest struct {
	Role            string `json:"role" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`

	// Patient fields.
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`

	// Doctor fields.
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"license_number"`
}

type userResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		DoctorID:  u.DoctorID,
		PatientID: u.PatientID,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &service.RegisterCommand{
		Role:            domain.Role(req.Role),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Gender:          patient.Gender(req.Gender),
		ContactNumber:   req.ContactNumber,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			respondError(c, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		cmd.DateOfBirth = &dob
	}

	user, err := h.registration.Register(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.collector.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()

	message := "registration successful"
	if !user.IsActive {
		message = "registration received; awaiting admin approval"
	}
	c.JSON(http.StatusCreated, APIResponse[userResponse]{Data: toUserResponse(user), Message: message})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, pair)
}
