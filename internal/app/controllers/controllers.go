package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/manassa/platform/internal/app/services"
)

// Controllers bundles every controller for route wiring
type Controllers struct {
	Auth       *AuthController
	Teacher    *TeacherController
	Subject    *SubjectController
	Material   *MaterialController
	TopStudent *TopStudentController
	Enrollment *EnrollmentController
	Payment    *PaymentController
	Message    *MessageController
}

// NewControllers creates all controllers over the given services
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svc.Auth),
		Teacher:    NewTeacherController(svc.Teacher),
		Subject:    NewSubjectController(svc.Subject),
		Material:   NewMaterialController(svc.Material),
		TopStudent: NewTopStudentController(svc.TopStudent),
		Enrollment: NewEnrollmentController(svc.Enrollment),
		Payment:    NewPaymentController(svc.Payment),
		Message:    NewMessageController(svc.Message),
	}
}

// bindMultipartPayload decodes the "payload" form field as JSON into
// obj and runs the standard binding validation on it
func bindMultipartPayload(ctx *gin.Context, obj interface{}) error {
	payload := ctx.PostForm("payload")
	if payload == "" {
		return fmt.Errorf("payload form field is required")
	}
	if err := json.Unmarshal([]byte(payload), obj); err != nil {
		return fmt.Errorf("invalid payload JSON: %w", err)
	}
	return binding.Validator.ValidateStruct(obj)
}
