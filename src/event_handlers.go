package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"evp/src/catalog"
	"evp/src/db"
	"evp/src/dietary"
	"evp/src/guests"
	"evp/src/models"
	"evp/src/saga"
	"evp/src/types"
	"evp/src/utils"
	"evp/src/wizard"

	"github.com/gin-gonic/gin"
)

type wizardRequestBody struct {
	Variant string       `json:"variant,omitempty"`
	Draft   wizard.Draft `json:"draft"`
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	cat := catalog.Default()
	detector := dietary.NewDetector(cat)
	orchestrator := saga.NewOrchestrator(saga.NewGormStore(), cat)

	g.
		GET("/events/draft", func(ctx *gin.Context) {
			machine := wizard.NewMachine(wizard.Variant(ctx.Query("variant")), cat)
			ctx.JSON(http.StatusOK, gin.H{
				"draft":   wizard.NewDraft(),
				"variant": machine.Variant(),
				"steps":   machine.Steps(),
			})
		}).
		POST("/events/draft/next", func(ctx *gin.Context) {
			var body wizardRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			machine := wizard.NewMachine(wizard.Variant(body.Variant), cat)
			draft, preview, err := machine.Next(body.Draft)
			var vErr *wizard.ValidationError
			if errors.As(err, &vErr) {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Reason, "field": vErr.Field, "step": vErr.Step})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"draft": draft, "preview": preview})
		}).
		POST("/events/draft/previous", func(ctx *gin.Context) {
			var body wizardRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			machine := wizard.NewMachine(wizard.Variant(body.Variant), cat)
			draft := machine.Previous(body.Draft)
			ctx.JSON(http.StatusOK, gin.H{"draft": draft, "preview": machine.Preview(draft)})
		}).
		POST("/events", func(ctx *gin.Context) {
			organizerId := ctx.GetUint("id")
			var body wizardRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			machine := wizard.NewMachine(wizard.Variant(body.Variant), cat)
			draft, err := machine.Submit(body.Draft)
			var vErr *wizard.ValidationError
			if errors.As(err, &vErr) {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Reason, "field": vErr.Field, "step": vErr.Step})
				return
			}

			result, err := orchestrator.Submit(ctx, organizerId, draft)
			if err != nil {
				var fatal *saga.FatalError
				if errors.As(err, &fatal) {
					ctx.JSON(http.StatusBadGateway, gin.H{"error": "Event could not be created, please resubmit"})
					return
				}
				var partial *saga.PartialFailure
				if errors.As(err, &partial) {
					go sendInvitationMails(result.EventID, draft.Name)
					ctx.JSON(http.StatusCreated, gin.H{"data": result, "warnings": partial.Items})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			go sendInvitationMails(result.EventID, draft.Name)
			ctx.JSON(http.StatusCreated, gin.H{"data": result})
		}).
		GET("/events", func(ctx *gin.Context) {
			organizerId := ctx.GetUint("id")
			var events []models.Event
			db := db.GetDb()
			if err := db.
				Where(&models.Event{OrganizerID: organizerId}).
				Order("created_at desc").
				Limit(50).
				Find(&events).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			organizerId := ctx.GetUint("id")
			var event models.Event
			db := db.GetDb()
			if err := db.
				Where(&models.Event{ID: params.ID, OrganizerID: organizerId}).
				Preload("Services").
				Preload("Bookings").
				Preload("DietaryRecords").
				Preload("PerGuestItems").
				Preload("GiftSuggestions").
				First(&event).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/events/:id/registrations", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			registrations, err := eventRegistrations(ctx, params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": registrations, "count": len(registrations)})
		}).
		GET("/events/:id/dietary-summary", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			registrations, err := eventRegistrations(ctx, params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			summary := guests.AggregateForOrganizer(registrations)
			ctx.JSON(http.StatusOK, gin.H{
				"data":         summary,
				"show_warning": dietary.HasHighSeverity(summary),
			})
		}).
		GET("/events/:id/registrations/:rid/conflicts", func(ctx *gin.Context) {
			var params types.RegistrationConflictURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var registration models.GuestRegistration
			if err := db.
				Where(&models.GuestRegistration{ID: params.RegistrationID, EventID: params.ID}).
				First(&registration).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			var serviceIds []uint
			if err := db.
				Model(&models.EventService{}).
				Where(&models.EventService{EventID: params.ID}).
				Order("position asc").
				Pluck("service_id", &serviceIds).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Recomputed on demand, never stored.
			categories := detector.ConflictingCategories(registration.DietaryTags, serviceIds)
			ctx.JSON(http.StatusOK, gin.H{
				"guest_id":               registration.ID,
				"conflicting_categories": categories,
				"has_conflict":           len(categories) > 0,
			})
		}).
		GET("/events/:id/notifications", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var notifications []models.Notification
			db := db.GetDb()
			if err := db.
				Where(&models.Notification{EventID: params.ID}).
				Order("created_at desc").
				Limit(100).
				Find(&notifications).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		})
	return g
}

func eventRegistrations(ctx *gin.Context, eventId uint) ([]models.GuestRegistration, error) {
	organizerId := ctx.GetUint("id")
	db := db.GetDb()
	var event models.Event
	if err := db.
		Where(&models.Event{ID: eventId, OrganizerID: organizerId}).
		First(&event).
		Error; err != nil {
		return nil, err
	}
	var registrations []models.GuestRegistration
	if err := db.
		Where(&models.GuestRegistration{EventID: eventId}).
		Order("created_at asc").
		Find(&registrations).
		Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

// sendInvitationMails delivers registration links for every invitation the
// saga managed to create. Mail failures are logged only, they are not saga
// failures.
func sendInvitationMails(eventId uint, eventName string) {
	var invitations []models.Invitation
	db := db.GetDb()
	if err := db.
		WithContext(context.Background()).
		Where(&models.Invitation{EventID: eventId, Status: types.INVITATION_SENT}).
		Find(&invitations).
		Error; err != nil {
		log.Printf("Could not load invitations for event %d: %s\n", eventId, err.Error())
		return
	}
	for _, invitation := range invitations {
		utils.SendInvitationMail(eventName, invitation.GuestEmail, invitation.Code)
	}
}
