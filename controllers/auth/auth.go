package authController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"truckscout/config"
	"truckscout/database"
	"truckscout/middleware"
	"truckscout/models"
	"truckscout/rbac"
)

// Signup registers a user and provisions their personal account with an
// owner membership, in one transaction.
func Signup(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedUser").(*struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		db := database.Database.Db

		// Check if email already exists
		if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}

		// Hash Password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), cfg.SaltRound)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		newUser := models.User{
			Name:     reqData.Name,
			Email:    reqData.Email,
			Password: string(hashedPassword),
		}

		var account models.Account
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&newUser).Error; err != nil {
				return err
			}

			account = models.Account{
				Name:               reqData.Name,
				Slug:               personalSlug(reqData.Email),
				IsPersonalAccount:  true,
				PrimaryOwnerUserID: newUser.ID,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}

			membership := models.Membership{
				UserID:    newUser.ID,
				AccountID: account.ID,
				Role:      rbac.RoleOwner,
			}
			return tx.Create(&membership).Error
		})
		if err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
		}

		// Clean Response
		newUser.Password = ""

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
			"user":    newUser,
			"account": account,
		})
	}
}

// personalSlug builds a unique slug for a personal account from the email
// local part.
func personalSlug(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	local = strings.ToLower(strings.ReplaceAll(local, ".", "-"))
	return fmt.Sprintf("%s-%s", local, uuid.NewString()[:8])
}

// Login authenticates a user and issues a JWT.
func Login(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedUser").(*struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		db := database.Database.Db

		var user models.User
		if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
			now := time.Now()
			user.FailedLoginAttempts++
			user.LastFailedLogin = &now
			db.Save(&user)
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}

		now := time.Now()
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		user.LastLogin = &now
		db.Save(&user)

		token, err := middleware.GenerateJWT(cfg, user.ID, user.Name, user.Email)
		if err != nil {
			log.Printf("Error generating JWT: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
		}

		user.Password = ""

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
			"token": token,
			"user":  user,
		})
	}
}
