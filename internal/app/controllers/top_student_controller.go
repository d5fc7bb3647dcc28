package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
)

// TopStudentController handles achievers board operations
type TopStudentController struct {
	topStudentService services.TopStudentService
}

// NewTopStudentController creates a new TopStudentController
func NewTopStudentController(topStudentService services.TopStudentService) *TopStudentController {
	return &TopStudentController{topStudentService: topStudentService}
}

// List returns the achievers board, ordered by score descending
// @Summary List top students
// @Tags top-students
// @Produce json
// @Param featured query bool false "Only featured entries"
// @Success 200 {object} dto.APIResponse{data=[]dto.TopStudentResponse}
// @Router /top-students [get]
func (c *TopStudentController) List(ctx *gin.Context) {
	featuredOnly := ctx.Query("featured") == "true"
	board, err := c.topStudentService.List(ctx.Request.Context(), featuredOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(board))
}

// Create promotes a student onto the achievers board
// @Summary Add a top student
// @Tags top-students
// @Accept json
// @Produce json
// @Param request body dto.CreateTopStudentRequest true "Achievement entry"
// @Success 201 {object} dto.APIResponse{data=dto.TopStudentResponse}
// @Failure 400 {object} dto.APIResponse "User is not a student"
// @Router /top-students [post]
// @Security BearerAuth
func (c *TopStudentController) Create(ctx *gin.Context) {
	var req dto.CreateTopStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entry, err := c.topStudentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(entry))
}

// Update edits an achievers board entry
// @Summary Update a top student
// @Tags top-students
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.UpdateTopStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TopStudentResponse}
// @Failure 404 {object} dto.APIResponse "Entry not found"
// @Router /top-students/{id} [put]
// @Security BearerAuth
func (c *TopStudentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTopStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entry, err := c.topStudentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entry))
}

// UploadImage stores an achievement image for a board entry
// @Summary Upload a top student image
// @Tags top-students
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Entry ID"
// @Param file formData file true "Achievement image"
// @Success 200 {object} dto.APIResponse{data=dto.TopStudentResponse}
// @Failure 404 {object} dto.APIResponse "Entry not found"
// @Router /top-students/{id}/image [post]
// @Security BearerAuth
func (c *TopStudentController) UploadImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Image file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	entry, err := c.topStudentService.UploadImage(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entry))
}

// Delete removes an achievers board entry
// @Summary Delete a top student
// @Tags top-students
// @Param id path int true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} dto.APIResponse "Entry not found"
// @Router /top-students/{id} [delete]
// @Security BearerAuth
func (c *TopStudentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.topStudentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
