package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
)

// EnrollmentController handles student enrollment operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// Enroll joins the student to a free subject
// @Summary Enroll in a free subject
// @Description Paid subjects are rejected with 402 and must go through checkout.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollRequest true "Subject to enroll in"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 402 {object} dto.APIResponse "Subject requires payment"
// @Failure 409 {object} dto.APIResponse "Already enrolled"
// @Router /enrollments [post]
// @Security BearerAuth
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), middleware.UserID(ctx), req.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(enrollment))
}

// ListMine returns the caller's enrollments
// @Summary List own enrollments
// @Tags enrollments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse}
// @Router /enrollments [get]
// @Security BearerAuth
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListMine(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollments))
}

// UpdateProgress sets the caller's progress in a subject
// @Summary Update enrollment progress
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body dto.UpdateProgressRequest true "Progress percentage"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 404 {object} dto.APIResponse "Enrollment not found"
// @Router /enrollments/{id}/progress [put]
// @Security BearerAuth
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	subjectID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.UpdateProgress(ctx.Request.Context(), middleware.UserID(ctx), subjectID, req.Progress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(enrollment))
}
