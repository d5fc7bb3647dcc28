package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
	"github.com/manassa/platform/internal/pkg/helpers"
)

// TeacherController handles admin operations on teacher accounts
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// Create onboards a teacher account with its subject in one transaction
// @Summary Create a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherResponse}
// @Failure 409 {object} dto.APIResponse "Email already registered"
// @Router /teachers [post]
// @Security BearerAuth
func (c *TeacherController) Create(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacher, err := c.teacherService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(teacher))
}

// List returns teachers with their subjects
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData}
// @Router /teachers [get]
func (c *TeacherController) List(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	teachers, pagination, err := c.teacherService.List(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(teachers, pagination))
}

// GetByID returns a single teacher with their subjects
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse}
// @Failure 404 {object} dto.APIResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher))
}

// Update applies admin edits to a teacher account
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse}
// @Failure 404 {object} dto.APIResponse "Teacher not found"
// @Router /teachers/{id} [put]
// @Security BearerAuth
func (c *TeacherController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	teacher, err := c.teacherService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher))
}

// Delete removes a teacher account
// @Summary Delete a teacher
// @Tags teachers
// @Param id path int true "Teacher ID"
// @Success 204 "Teacher deleted"
// @Failure 404 {object} dto.APIResponse "Teacher not found"
// @Router /teachers/{id} [delete]
// @Security BearerAuth
func (c *TeacherController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.teacherService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parseIDParam reads the :id path parameter, writing a 400 on failure
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid ID parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
