package v1

import (
	"github.com/carebridge/hms/internal/service"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler is the authenticated booking directory: the doctors a
// patient can pick from.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
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

func (h *DirectoryHandler) Specializations(c *gin.Context) {
	specs, err := h.directory.Specializations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, specs)
}
