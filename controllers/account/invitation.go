package accountController

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"truckscout/config"
	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
	"truckscout/utils"
)

// invitationTTL is how long an invitation stays usable.
const invitationTTL = 7 * 24 * time.Hour

// InviteMember creates an invitation and emails an accept link.
func InviteMember(cfg *config.Config, mailer utils.Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		account, ok := middleware.AccountFromLocals(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account context missing!", nil)
		}

		reqData, ok := c.Locals("validatedMember").(*struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		db := database.Database.Db

		var invitation models.Invitation
		err := rbac.Guard(db, userID, account.ID, "invitations.create", func(tx *gorm.DB) error {
			if err := validateRole(tx, account.ID, reqData.Role); err != nil {
				return err
			}

			// One pending invitation per email per account
			var existing models.Invitation
			err := tx.Scopes(rbac.ScopeAccount(account.ID)).
				Where("email = ? AND accepted_at IS NULL AND expires_at > ?", reqData.Email, time.Now()).
				First(&existing).Error
			if err == nil {
				return ErrDuplicateMembership
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			invitation = models.Invitation{
				AccountID: account.ID,
				Email:     reqData.Email,
				Role:      reqData.Role,
				InvitedBy: userID,
				ExpiresAt: time.Now().Add(invitationTTL),
			}
			return tx.Create(&invitation).Error
		})
		if err != nil {
			if errors.Is(err, ErrDuplicateMembership) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "An invitation for this email is already pending!", nil)
			}
			return membershipErrorResponse(c, err)
		}

		// Send the invitation email asynchronously, the invitation row is
		// already committed.
		go func(inv models.Invitation, accountName string) {
			link := fmt.Sprintf("%s/invitations/accept?token=%s", cfg.AppBaseURL, inv.Token)
			body := utils.InvitationEmailBody(accountName, inv.Role, link)
			if err := mailer.Send(inv.Email, "You have been invited to "+accountName, body); err != nil {
				log.Printf("Error sending invitation email to %s: %v", inv.Email, err)
			}
		}(invitation, account.Name)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Invitation sent successfully!", fiber.Map{
			"id":         invitation.ID,
			"email":      invitation.Email,
			"role":       invitation.Role,
			"expires_at": invitation.ExpiresAt,
		})
	}
}

// AcceptInvitation redeems an invitation token for the authenticated user and
// creates the membership.
func AcceptInvitation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedInvitation").(*struct {
		Token string `json:"token"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var membership models.Membership
	err := db.Transaction(func(tx *gorm.DB) error {
		var invitation models.Invitation
		err := tx.Where("token = ?", reqData.Token).First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipNotFound
			}
			return err
		}

		if invitation.AcceptedAt != nil || time.Now().After(invitation.ExpiresAt) {
			return ErrMembershipNotFound
		}
		if invitation.Email != user.Email {
			return rbac.ErrUnauthorized
		}

		membership, err = AddMembership(tx, invitation.AccountID, user.ID, invitation.Role)
		if err != nil {
			return err
		}

		now := time.Now()
		invitation.AcceptedAt = &now
		return tx.Save(&invitation).Error
	})
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invitation not found or expired!", nil)
		}
		if errors.Is(err, rbac.ErrUnauthorized) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This invitation was issued for a different email!", nil)
		}
		return membershipErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Invitation accepted successfully!", membership)
}
