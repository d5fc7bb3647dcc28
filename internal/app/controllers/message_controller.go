package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/services"
	"github.com/manassa/platform/internal/middleware"
	"github.com/manassa/platform/internal/pkg/helpers"
)

// MessageController handles messaging operations
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// Send delivers a message or a threaded reply
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Failure 404 {object} dto.APIResponse "Receiver not found"
// @Router /messages [post]
// @Security BearerAuth
func (c *MessageController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	message, err := c.messageService.Send(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// Inbox returns the caller's received messages
// @Summary List inbox
// @Tags messages
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedData}
// @Router /messages [get]
// @Security BearerAuth
func (c *MessageController) Inbox(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	messages, pagination, err := c.messageService.Inbox(ctx.Request.Context(), middleware.UserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(messages, pagination))
}

// Thread returns a conversation the caller participates in
// @Summary Get a message thread
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse}
// @Failure 403 {object} dto.APIResponse "Not a participant"
// @Failure 404 {object} dto.APIResponse "Message not found"
// @Router /messages/{id}/thread [get]
// @Security BearerAuth
func (c *MessageController) Thread(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	thread, err := c.messageService.Thread(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// MarkRead transitions a received message to the read state
// @Summary Mark a message read
// @Tags messages
// @Param id path int true "Message ID"
// @Success 204 "Marked read"
// @Failure 404 {object} dto.APIResponse "Message not found"
// @Router /messages/{id}/read [put]
// @Security BearerAuth
func (c *MessageController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.messageService.MarkRead(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CountUnread returns the caller's unread message count
// @Summary Count unread messages
// @Tags messages
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Router /messages/unread [get]
// @Security BearerAuth
func (c *MessageController) CountUnread(ctx *gin.Context) {
	unread, err := c.messageService.CountUnread(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{Unread: unread}))
}
