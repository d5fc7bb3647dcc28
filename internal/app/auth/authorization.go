// Package auth holds the authorization policies that sit above the
// role middleware: who may touch which resource once the role gate has
// passed.
package auth

import (
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

// ValidateSubjectOwnership checks that a teacher owns the subject
// before content can be attached to it
func ValidateSubjectOwnership(subject *models.Subject, teacherID int64) error {
	if subject.TeacherID == nil || *subject.TeacherID != teacherID {
		return apperrors.NewForbiddenError("materials can only be added to your own subjects")
	}
	return nil
}

// ValidateMaterialOwnership checks that the actor may modify the
// material. Admins may modify anything; teachers only their own.
func ValidateMaterialOwnership(material *models.Material, actorID int64, actorRole models.Role) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	if material.TeacherID != actorID {
		return apperrors.NewForbiddenError("you can only manage your own materials")
	}
	return nil
}

// ValidateConversationAccess checks that the user participates in a
// message exchange
func ValidateConversationAccess(message *models.Message, userID int64) error {
	if message.SenderID != userID && message.ReceiverID != userID {
		return apperrors.NewForbiddenError("you can only view your own conversations")
	}
	return nil
}
