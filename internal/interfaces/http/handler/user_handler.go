package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	appidentity "github.com/beamworkflow/backend/internal/application/identity"
	appworkgroup "github.com/beamworkflow/backend/internal/application/workgroup"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the account, profile and relation endpoints
// mounted under /api/user.
type UserHandler struct {
	BaseHandler
	userService     *appidentity.UserService
	relationService *appworkgroup.RelationService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService, relationService *appworkgroup.RelationService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		relationService: relationService,
	}
}

// RegisterRoutes registers user routes on the given router group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/user")
	{
		users.POST("/signup", h.SignUp)
		users.GET("/signin", h.SignIn)
		users.DELETE("", h.DeleteAccount)
		users.PUT("/user-info", h.UpdateUserInfo)
		users.POST("/new_relation", h.CreateRelation)
		users.GET("/relations", h.ListRelations)
		users.GET("/relation", h.GetRelation)
		users.DELETE("/relation", h.DeleteRelation)
		users.GET("/image", h.GetImage)
	}
}

type signUpRequest struct {
	Email    string                `form:"email" binding:"required,email"`
	Username string                `form:"username"`
	Password string                `form:"password" binding:"required"`
	Gender   string                `form:"gender" binding:"required,max=7"`
	Image    *multipart.FileHeader `form:"image"`
}

// SignUp registers a new account from a multipart form
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid sign up form")
		return
	}

	input := appidentity.SignUpInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Gender:   req.Gender,
	}

	if req.Image != nil {
		file, err := req.Image.Open()
		if err != nil {
			h.BadRequest(c, "Cannot read the uploaded image")
			return
		}
		defer file.Close()
		input.Image = &appidentity.ImageUpload{
			FileName: req.Image.Filename,
			Content:  file,
		}
	}

	if _, err := h.userService.SignUp(c.Request.Context(), input); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			h.BadRequest(c, fmt.Sprintf("%s is taken.", req.Email))
			return
		}
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

// SignIn verifies credentials and returns the profile with a token
func (h *UserHandler) SignIn(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")

	result, err := h.userService.SignIn(c.Request.Context(), email, password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, result)
}

// DeleteAccount removes the account and everything it owns
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	email := c.Query("email")
	password := c.Query("password")

	if err := h.userService.DeleteAccount(c.Request.Context(), email, password); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

type userInfoUpdateRequest struct {
	ToUpdate    string                `form:"toUpdate" binding:"required"`
	UpdateValue string                `form:"updateValue"`
	UserEmail   string                `form:"userEmail" binding:"required,email"`
	Password    string                `form:"password" binding:"required"`
	UpdateImage *multipart.FileHeader `form:"updateImage"`
}

// UpdateUserInfo changes one profile attribute
func (h *UserHandler) UpdateUserInfo(c *gin.Context) {
	var req userInfoUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid update form")
		return
	}

	input := appidentity.UpdateProfileInput{
		Email:    req.UserEmail,
		Password: req.Password,
		Field:    req.ToUpdate,
		Value:    req.UpdateValue,
	}

	if req.UpdateImage != nil {
		file, err := req.UpdateImage.Open()
		if err != nil {
			h.BadRequest(c, "Cannot read the uploaded image")
			return
		}
		defer file.Close()
		input.Image = &appidentity.ImageUpload{
			FileName: req.UpdateImage.Filename,
			Content:  file,
		}
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.Fail(c, "update failed", "User verification error.")
			return
		}
		h.HandleError(c, err)
		return
	}

	// An image update answers with the stored file name so the client
	// can refresh without a second request.
	if input.Field == "userImage" {
		env := dto.NewEnvelope()
		env.Message = fmt.Sprintf("userImage is %s updated", profile.UserImage)
		env.Dto = profile.UserImage
		h.OKEnvelope(c, env)
		return
	}

	h.OKMessage(c, fmt.Sprintf("%s is updated to %s", req.ToUpdate, req.UpdateValue))
}

type newRelationRequest struct {
	WorkgroupID string `form:"workgroupId" binding:"required"`
	CreatedBy   string `form:"createdBy" binding:"required,email"`
	SeniorEmail string `form:"seniorEmail" binding:"required,email"`
	JuniorEmail string `form:"juniorEmail" binding:"required,email"`
}

// CreateRelation records a senior/junior relation
func (h *UserHandler) CreateRelation(c *gin.Context) {
	var req newRelationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Invalid relation form")
		return
	}

	result, err := h.relationService.Create(c.Request.Context(), appworkgroup.CreateRelationInput{
		WorkgroupID: req.WorkgroupID,
		CreatedBy:   req.CreatedBy,
		SeniorEmail: req.SeniorEmail,
		JuniorEmail: req.JuniorEmail,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, result)
}

// ListRelations returns the workgroup relations the user takes part in
func (h *UserHandler) ListRelations(c *gin.Context) {
	workgroupID := c.Query("workgroupId")
	email := c.Query("userEmail")

	rows, err := h.relationService.ListForParticipant(c.Request.Context(), workgroupID, email)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, rows)
}

// GetRelation returns a single relation looked up by its exact
// senior/junior order. A missing relation is not an error; the client
// receives a default envelope.
func (h *UserHandler) GetRelation(c *gin.Context) {
	seniorEmail := c.Query("seniorEmail")
	juniorEmail := c.Query("juniorEmail")

	view, err := h.relationService.GetByPair(c.Request.Context(), seniorEmail, juniorEmail)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.OK(c)
			return
		}
		h.HandleError(c, err)
		return
	}

	h.OKDto(c, view)
}

// DeleteRelation removes a relation by id
func (h *UserHandler) DeleteRelation(c *gin.Context) {
	relationID := c.Query("relationId")
	workgroupID := c.Query("relatedWorkgroupId")
	deletedBy := c.Query("deletedBy")

	if err := h.relationService.Delete(c.Request.Context(), relationID, workgroupID, deletedBy); err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c)
}

// GetImage streams a stored profile image. This is the one endpoint
// that answers 404 instead of a 400 envelope, so that plain <img>
// tags behave.
func (h *UserHandler) GetImage(c *gin.Context) {
	imageID := c.Query("imageId")

	file, err := h.userService.FetchImage(c.Request.Context(), imageID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
