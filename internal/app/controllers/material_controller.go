package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
)

// MaterialController handles course material operations
type MaterialController struct {
	materialService services.MaterialService
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService services.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

// List returns materials matching the filter
// @Summary List materials
// @Tags materials
// @Produce json
// @Param subjectId query int false "Filter by subject"
// @Param teacherId query int false "Filter by teacher"
// @Param type query string false "Filter by type" Enums(video, document, exam, quiz, summary)
// @Param publishedOnly query bool false "Only published materials"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData}
// @Router /materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	var filter dto.MaterialFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	materials, pagination, err := c.materialService.List(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(materials, pagination))
}

// GetByID returns a single material
// @Summary Get a material
// @Tags materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 404 {object} dto.APIResponse "Material not found"
// @Router /materials/{id} [get]
func (c *MaterialController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	material, err := c.materialService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(material))
}

// Create adds a material with an optional file attachment. The request
// is multipart: a "payload" JSON part and an optional "file" part.
// @Summary Create a material
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Param payload formData string true "Material JSON payload"
// @Param file formData file false "Material file"
// @Success 201 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 403 {object} dto.APIResponse "Subject belongs to another teacher"
// @Router /materials [post]
// @Security BearerAuth
func (c *MaterialController) Create(ctx *gin.Context) {
	var req dto.CreateMaterialRequest
	if err := bindMultipartPayload(ctx, &req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	material, err := c.materialService.Create(ctx.Request.Context(), middleware.UserID(ctx), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(material))
}

// Update edits a material
// @Summary Update a material
// @Tags materials
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.MaterialResponse}
// @Failure 403 {object} dto.APIResponse "Not the owning teacher"
// @Failure 404 {object} dto.APIResponse "Material not found"
// @Router /materials/{id} [put]
// @Security BearerAuth
func (c *MaterialController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	material, err := c.materialService.Update(ctx.Request.Context(), middleware.UserID(ctx), middleware.Role(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(material))
}

// RecordView bumps a material's view counter
// @Summary Record a material view
// @Description Increments the view counter atomically and returns the new count.
// @Tags materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse{data=dto.ViewCountResponse}
// @Failure 404 {object} dto.APIResponse "Material not found"
// @Router /materials/{id}/views [post]
// @Security BearerAuth
func (c *MaterialController) RecordView(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	views, err := c.materialService.RecordView(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(views))
}

// Delete removes a material and its stored file
// @Summary Delete a material
// @Tags materials
// @Param id path int true "Material ID"
// @Success 204 "Material deleted"
// @Failure 403 {object} dto.APIResponse "Not the owning teacher"
// @Failure 404 {object} dto.APIResponse "Material not found"
// @Router /materials/{id} [delete]
// @Security BearerAuth
func (c *MaterialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.materialService.Delete(ctx.Request.Context(), middleware.UserID(ctx), middleware.Role(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
