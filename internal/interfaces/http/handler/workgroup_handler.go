package handler

import (
	"fmt"

	appworkgroup "github.com/beamworkflow/backend/internal/application/workgroup"
	"github.com/gin-gonic/gin"
)

// WorkgroupHandler serves the workgroup and membership endpoints
// mounted under /api/workgroup.
type WorkgroupHandler struct {
	BaseHandler
	groupService *appworkgroup.WorkgroupService
}

// NewWorkgroupHandler creates a new workgroup handler
func NewWorkgroupHandler(groupService *appworkgroup.WorkgroupService) *WorkgroupHandler {
	return &WorkgroupHandler{groupService: groupService}
}

// RegisterRoutes registers workgroup routes on the given router group
func (h *WorkgroupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	groups := rg.Group("/workgroup")
	{
		groups.POST("", h.Create)
		groups.GET("/overviews", h.Overviews)
		groups.GET("/details", h.Detail)
		groups.PUT("", h.Update)
		groups.DELETE("", h.Delete)
		groups.POST("/new_member", h.AddMember)
		groups.GET("/workgroups_and_members", h.WorkgroupsAndJuniors)
		groups.GET("/members", h.Members)
		groups.GET("/juniors", h.Juniors)
		groups.PUT("/member", h.UpdateMemberRole)
		groups.DELETE("/member", h.RemoveMember)
	}
}

type workgroupCreateRequest struct {
	WorkgroupName string `form:"workgroupName" binding:"max=50"`
	Description   string `form:"description" binding:"max=10000"`
	CreatedBy     string `form:"createdBy" binding:"required,email"`
}

// Create opens a new workgroup with the creator as its admin
func (h *WorkgroupHandler) Create(c *gin.Context) {
	var req workgroupCreateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid workgroup form")
		return
	}

	result, err := h.groupService.Create(c.Request.Context(), appworkgroup.CreateGroupInput{
		Name:        req.WorkgroupName,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, result)
}

// Overviews lists the workgroups the user belongs to
func (h *WorkgroupHandler) Overviews(c *gin.Context) {
	email := c.Query("userEmail")

	rows, err := h.groupService.Overviews(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, rows)
}

// Detail returns one workgroup with its admin role view
func (h *WorkgroupHandler) Detail(c *gin.Context) {
	workgroupID := c.Query("workgroupId")

	detail, err := h.groupService.Detail(c.Request.Context(), workgroupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, detail)
}

type workgroupUpdateRequest struct {
	ToUpdate    string `form:"toUpdate" binding:"required,max=50"`
	UpdateValue string `form:"updateValue" binding:"required,max=10000"`
	WorkgroupID string `form:"workgroupId" binding:"required"`
	UpdatedBy   string `form:"updatedBy" binding:"required,email"`
	Password    string `form:"password" binding:"required"`
}

// Update changes one workgroup attribute
func (h *WorkgroupHandler) Update(c *gin.Context) {
	var req workgroupUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid update form")
		return
	}

	err := h.groupService.Update(c.Request.Context(), appworkgroup.UpdateGroupInput{
		WorkgroupID: req.WorkgroupID,
		UpdatedBy:   req.UpdatedBy,
		Password:    req.Password,
		Field:       req.ToUpdate,
		Value:       req.UpdateValue,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKMessage(c, fmt.Sprintf("%s is updated to %s", req.ToUpdate, req.UpdateValue))
}

// Delete removes a workgroup and everything hanging off it
func (h *WorkgroupHandler) Delete(c *gin.Context) {
	workgroupID := c.Query("workgroupId")
	deletedBy := c.Query("deletedBy")
	password := c.Query("password")

	if err := h.groupService.Delete(c.Request.Context(), workgroupID, deletedBy, password); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

type newMemberRequest struct {
	WorkgroupID string `form:"workgroupId" binding:"required"`
	MemberEmail string `form:"memberEmail" binding:"required,email"`
	AddedBy     string `form:"addedBy" binding:"required,email"`
	Role        string `form:"role"`
}

// AddMember adds a registered account to the workgroup
func (h *WorkgroupHandler) AddMember(c *gin.Context) {
	var req newMemberRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid member form")
		return
	}

	view, err := h.groupService.AddMember(c.Request.Context(), appworkgroup.AddMemberInput{
		WorkgroupID: req.WorkgroupID,
		MemberEmail: req.MemberEmail,
		AddedBy:     req.AddedBy,
		Role:        req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, view)
}

// WorkgroupsAndJuniors returns the user's workgroups together with
// the juniors they supervise anywhere
func (h *WorkgroupHandler) WorkgroupsAndJuniors(c *gin.Context) {
	email := c.Query("userEmail")

	result, err := h.groupService.WorkgroupsAndJuniors(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, result)
}

// Members lists the workgroup membership with profile projections
func (h *WorkgroupHandler) Members(c *gin.Context) {
	workgroupID := c.Query("workgroupId")

	rows, err := h.groupService.ListMembers(c.Request.Context(), workgroupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, rows)
}

// Juniors lists the juniors the user supervises in one workgroup
func (h *WorkgroupHandler) Juniors(c *gin.Context) {
	workgroupID := c.Query("workgroupId")
	email := c.Query("userEmail")

	rows, err := h.groupService.ListJuniors(c.Request.Context(), workgroupID, email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, rows)
}

// UpdateMemberRole changes a member's role. Only the full admin may
// do this.
func (h *WorkgroupHandler) UpdateMemberRole(c *gin.Context) {
	updatedTo := c.Query("updatedTo")
	updatedBy := c.Query("updatedBy")
	role := c.Query("role")
	workgroupID := c.Query("workgroupId")

	if err := h.groupService.UpdateMemberRole(c.Request.Context(), workgroupID, updatedTo, updatedBy, role); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKMessage(c, fmt.Sprintf("%s is now %s", updatedTo, role))
}

// RemoveMember drops a member and their relations from the workgroup
func (h *WorkgroupHandler) RemoveMember(c *gin.Context) {
	workgroupID := c.Query("workgroupId")
	removedBy := c.Query("removedBy")
	emailToRemove := c.Query("emailToRemove")

	if err := h.groupService.RemoveMember(c.Request.Context(), workgroupID, emailToRemove, removedBy); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}
