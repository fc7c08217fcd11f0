package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"evp/src/db"
	"evp/src/dietary"
	"evp/src/guests"
	"evp/src/lib"
	"evp/src/models"
	"evp/src/types"
	"evp/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
)

// guestRoutes are reachable without authentication: the invitation code is
// the guest's sole credential.
func guestRoutes(router *gin.Engine) {
	processor := guests.NewProcessor(guests.NewGormStore(), guests.NewFeedNotifier())

	router.GET("/conditions", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"data": dietary.Predefined})
	})

	g := router.Group("/invitation")
	g.
		GET("/:code", func(ctx *gin.Context) {
			code := ctx.Params.ByName("code")
			invitation, err := findInvitation(code)
			if err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": invitation})
		}).
		GET("/:code/qr", func(ctx *gin.Context) {
			code := ctx.Params.ByName("code")
			if _, err := findInvitation(code); err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			filepath, err := invitationQRFile(code)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.FileAttachment(filepath, "invitation.jpeg")
		}).
		POST("/:code/register", func(ctx *gin.Context) {
			code := ctx.Params.ByName("code")
			invitation, err := findInvitation(code)
			if err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			var body types.GuestRegistrationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			submission := guests.Submission{
				InvitationCode:      code,
				FullName:            body.FullName,
				Email:               body.Email,
				DietaryTags:         body.DietaryTags,
				Allergies:           body.Allergies,
				PlusOne:             body.PlusOne,
				PlusOneName:         body.PlusOneName,
				AttendanceConfirmed: *body.Attending,
			}
			registration, err := processor.Register(ctx, invitation.EventID, submission)
			if err != nil {
				var vErr *guests.ValidationError
				if errors.As(err, &vErr) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason, "field": vErr.Field})
					return
				}
				if errors.Is(err, guests.ErrDuplicateRegistration) {
					ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing registration"})
				return
			}

			newStatus := types.INVITATION_ACCEPTED
			if !submission.AttendanceConfirmed {
				newStatus = types.INVITATION_DECLINED
			}
			if err := db.GetDb().
				Model(&models.Invitation{}).
				Where(&models.Invitation{ID: invitation.ID}).
				Update("status", newStatus).
				Error; err != nil {
				log.Printf("Could not update invitation %s: %s\n", code, err.Error())
			}

			ctx.JSON(http.StatusCreated, gin.H{"data": registration})
		})
}

func findInvitation(code string) (*models.Invitation, error) {
	var invitation models.Invitation
	db := db.GetDb()
	if err := db.
		Model(&models.Invitation{}).
		Where(&models.Invitation{Code: code}).
		First(&invitation).
		Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// invitationQRFile renders the registration link as a QR image, caching the
// file path for repeated downloads.
func invitationQRFile(code string) (string, error) {
	rd := lib.GetRedisClient()
	cacheKey := fmt.Sprintf("evp:qr:%s", code)
	if rd != nil {
		if cached, err := rd.Get(context.Background(), cacheKey).Result(); err == nil {
			if _, statErr := os.Stat(cached); statErr == nil {
				return cached, nil
			}
		}
	}
	dir := path.Join(os.TempDir(), "evp-qr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	qrc, err := qrcode.New(utils.InvitationLink(code))
	if err != nil {
		return "", err
	}
	filepath := path.Join(dir, fmt.Sprintf("%s.jpeg", code))
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	if rd != nil {
		rd.SetEx(context.Background(), cacheKey, filepath, 2*time.Hour)
	}
	return filepath, nil
}
