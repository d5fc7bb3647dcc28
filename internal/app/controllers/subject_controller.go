package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
)

// SubjectController handles course catalog operations
type SubjectController struct {
	subjectService services.SubjectService
}

// NewSubjectController creates a new SubjectController
func NewSubjectController(subjectService services.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// ListCatalog returns all active courses with discounted prices
// @Summary List courses
// @Tags subjects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SubjectResponse}
// @Router /subjects [get]
func (c *SubjectController) ListCatalog(ctx *gin.Context) {
	catalog, err := c.subjectService.ListCatalog(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(catalog))
}

// GetByID returns a single course
// @Summary Get a course
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectResponse}
// @Failure 404 {object} dto.APIResponse "Subject not found"
// @Router /subjects/{id} [get]
func (c *SubjectController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	subject, err := c.subjectService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject))
}

// Create adds a course to the catalog
// @Summary Create a course
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body dto.CreateSubjectRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.SubjectResponse}
// @Router /subjects [post]
// @Security BearerAuth
func (c *SubjectController) Create(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	subject, err := c.subjectService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(subject))
}

// Update edits a course
// @Summary Update a course
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateSubjectRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.SubjectResponse}
// @Failure 404 {object} dto.APIResponse "Subject not found"
// @Router /subjects/{id} [put]
// @Security BearerAuth
func (c *SubjectController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	subject, err := c.subjectService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subject))
}

// Delete removes a course
// @Summary Delete a course
// @Tags subjects
// @Param id path int true "Subject ID"
// @Success 204 "Subject deleted"
// @Failure 404 {object} dto.APIResponse "Subject not found"
// @Router /subjects/{id} [delete]
// @Security BearerAuth
func (c *SubjectController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.subjectService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
