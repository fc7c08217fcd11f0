package main

import (
	"evp/src/catalog"
	"evp/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func catalogHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	cat := catalog.Default()
	g.
		GET("/catalog", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"data": cat.Items(), "count": len(cat.Items())})
		}).
		GET("/catalog/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			item, ok := cat.Lookup(params.ID)
			if !ok {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": item})
		}).
		POST("/events/estimate", func(ctx *gin.Context) {
			var body types.EstimateRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			total := cat.Estimate(body.Services, body.GuestCount)
			ctx.JSON(http.StatusOK, gin.H{
				"estimated_total":      total,
				"requires_guest_count": cat.RequiresGuestCount(body.Services),
			})
		})
	return g
}
