package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"truckscout/database"
	"truckscout/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[INVITE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredInvitations deletes unaccepted invitations past their expiry.
func purgeExpiredInvitations() {
	db := database.Database.Db

	result := db.Where("accepted_at IS NULL AND expires_at < ?", time.Now()).
		Delete(&models.Invitation{})
	if result.Error != nil {
		logScheduler("Error purging expired invitations: " + result.Error.Error())
		return
	}

	if result.RowsAffected > 0 {
		logScheduler("Purged expired invitations")
	}
}

// InitializeInviteScheduler starts the hourly purge of expired invitations.
func InitializeInviteScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", purgeExpiredInvitations); err != nil {
		logScheduler("Failed to register purge job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Invitation scheduler started")
	return c
}
