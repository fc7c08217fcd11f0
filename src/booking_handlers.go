package main

import (
	"errors"
	"log"
	"net/http"

	"evp/src/db"
	"evp/src/middlewares"
	"evp/src/models"
	"evp/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	providerOnly := middlewares.RequireRole(types.ROLE_PROVIDER)
	g.
		GET("/bookings", providerOnly, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			providerIds, err := providerIdsForUser(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var bookings []models.Booking
			db := db.GetDb()
			if err := db.
				Model(&models.Booking{}).
				Where("provider_id IN (?)", providerIds).
				Preload("Event").
				Order("created_at desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", providerOnly, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			providerIds, err := providerIdsForUser(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Model(&models.Booking{}).
				Where("id = ? AND provider_id IN (?)", params.ID, providerIds).
				Preload("Event").
				Preload("Provider").
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id/status", providerOnly, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateBookingStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			providerIds, err := providerIdsForUser(userId)
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var booking models.Booking
				if err := tx.
					Model(&models.Booking{}).
					Where("id = ? AND provider_id IN (?)", params.ID, providerIds).
					First(&booking).
					Error; err != nil {
					return err
				}
				if !booking.CanTransition(body.NewStatus) {
					return errInvalidTransition
				}
				return tx.
					Model(&models.Booking{}).
					Where("id = ?", booking.ID).
					Update("status", body.NewStatus).
					Error
			})
			if err != nil {
				if errors.Is(err, errInvalidTransition) {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				log.Printf("Could not update booking %d: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

var errInvalidTransition = errors.New("booking status transition is not allowed")

func providerIdsForUser(userId uint) ([]uint, error) {
	var providerIds []uint
	db := db.GetDb()
	err := db.
		Model(&models.Provider{}).
		Where(&models.Provider{UserID: userId}).
		Pluck("id", &providerIds).
		Error
	return providerIds, err
}
