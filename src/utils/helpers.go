package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"evp/src/config"
	"evp/src/lib"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// GenerateInvitationCode builds the guest credential for one invitation:
// event id, millisecond timestamp and a random suffix. Uniqueness is
// statistical; the unique index on invitations.code is the backstop.
func GenerateInvitationCode(eventId uint) string {
	suffix := strings.Split(uuid.NewString(), "-")[4]
	return fmt.Sprintf("%d-%x-%s", eventId, time.Now().UnixMilli(), suffix)
}

// InvitationLink is the scannable registration URL for a code.
func InvitationLink(code string) string {
	return fmt.Sprintf("%s/invitation/%s", config.AppHost(), code)
}

func EventSlug(name string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", slug.Make(name), suffix)
}

func GenerateJWT(email string, userId uint, role string) (string, error) {
	claims := &jwt.MapClaims{
		"iss":      "evp",
		"sub":      fmt.Sprint(userId),
		"username": email,
		"role":     role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// SendInvitationMail delivers the registration link to one invited guest.
// Mail delivery is best effort and independent of the saga result.
func SendInvitationMail(eventName string, email string, code string) {
	link := InvitationLink(code)
	body := fmt.Sprintf("You have been invited to %s.\n\nRegister here: %s\n", eventName, link)
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: "Event Planner",
		To:       []string{email},
		Subject:  fmt.Sprintf("Invitation: %s", eventName),
		Body:     body,
	})
	if err != nil {
		log.Printf("Could not send invitation to %s: %s\n", email, err.Error())
	}
}
