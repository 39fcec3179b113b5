package handler

import (
	appwork "github.com/beamworkflow/backend/internal/application/work"
	"github.com/gin-gonic/gin"
)

// WorkHandler serves the work item endpoints mounted under /api/work.
type WorkHandler struct {
	BaseHandler
	workService *appwork.WorkService
}

// NewWorkHandler creates a new work handler
func NewWorkHandler(workService *appwork.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// RegisterRoutes registers work routes on the given router group
func (h *WorkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	works := rg.Group("/work")
	{
		works.POST("", h.Create)
		works.GET("/overviews", h.Overviews)
		works.GET("/details", h.Detail)
		works.PUT("", h.Update)
		works.PATCH("/done", h.MarkDone)
		works.DELETE("", h.Delete)
	}
}

type workCreateRequest struct {
	Title              string `form:"title" binding:"required,max=30"`
	Description        string `form:"description" binding:"required,max=10000"`
	CreatedBy          string `form:"createdBy" binding:"required"`
	AssignedTo         string `form:"assignedTo" binding:"required"`
	RelatedWorkgroupID string `form:"relatedWorkgroupId" binding:"required"`
	Priority           string `form:"priority"`
	DueDate            string `form:"dueDate" binding:"required"`
}

// Create records a new work item from a multipart or urlencoded form
func (h *WorkHandler) Create(c *gin.Context) {
	var req workCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid work form")
		return
	}

	result, err := h.workService.Create(c.Request.Context(), appwork.CreateWorkInput{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
		AssignedTo:  req.AssignedTo,
		WorkgroupID: req.RelatedWorkgroupID,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, result)
}

// Overviews lists the work items where email is creator or assignee
func (h *WorkHandler) Overviews(c *gin.Context) {
	email := c.Query("email")

	rows, err := h.workService.Overviews(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, rows)
}

// Detail returns a single work item. Reading your own assignment
// marks it seen.
func (h *WorkHandler) Detail(c *gin.Context) {
	workID := c.Query("workId")
	email := c.Query("email")

	detail, err := h.workService.Detail(c.Request.Context(), workID, email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, detail)
}

type workUpdateRequest struct {
	WorkID      string `form:"workId" binding:"required"`
	UpdatedBy   string `form:"updatedBy" binding:"required,email"`
	ToUpdate    string `form:"toUpdate" binding:"required,max=20"`
	UpdateValue string `form:"updateValue" binding:"required,max=10000"`
}

// Update changes one work attribute
func (h *WorkHandler) Update(c *gin.Context) {
	var req workUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid update form")
		return
	}

	err := h.workService.Update(c.Request.Context(), appwork.UpdateWorkInput{
		WorkID:    req.WorkID,
		UpdatedBy: req.UpdatedBy,
		Field:     req.ToUpdate,
		Value:     req.UpdateValue,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKMessage(c, req.ToUpdate+" is updated")
}

// MarkDone flags a work item as completed
func (h *WorkHandler) MarkDone(c *gin.Context) {
	workID := c.Query("workId")
	email := c.Query("email")

	if err := h.workService.MarkDone(c.Request.Context(), workID, email); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

// Delete removes a work item. Only its creator may delete it.
func (h *WorkHandler) Delete(c *gin.Context) {
	workID := c.Query("workId")
	deletedBy := c.Query("deletedBy")

	if err := h.workService.Delete(c.Request.Context(), workID, deletedBy); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}
