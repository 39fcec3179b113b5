package handler

import (
	"errors"
	"net/http"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BaseHandler provides the response helpers shared by all handlers.
// Every endpoint answers 200 with an envelope on success and 400 with
// an envelope on any failure. Clients branch on the status code first
// and then on the envelope title.
type BaseHandler struct{}

// OK sends a 200 response with a default envelope.
func (h *BaseHandler) OK(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewEnvelope())
}

// OKDto sends a 200 response carrying a payload.
func (h *BaseHandler) OKDto(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, dto.NewDtoEnvelope(payload))
}

// OKMessage sends a 200 response carrying a message only.
func (h *BaseHandler) OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageEnvelope(message))
}

// OKEnvelope sends a 200 response with a fully built envelope.
func (h *BaseHandler) OKEnvelope(c *gin.Context, env dto.Envelope) {
	c.JSON(http.StatusOK, env)
}

// Fail sends a 400 response with the given title and message.
func (h *BaseHandler) Fail(c *gin.Context, title, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope(title, message))
}

// BadRequest sends a 400 response with a message only.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope("", message))
}

// HandleError maps an application error to a 400 envelope. Domain
// errors surface their code as the envelope title; anything else is
// reported as an internal failure without leaking detail.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorEnvelope("INTERNAL_ERROR", "An unexpected error occurred"))
}
