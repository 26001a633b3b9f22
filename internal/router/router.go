// Package router maps the HTTP API onto the handlers.
package router

import (
	"github.com/duccv/whereisit/internal/handler"
	"github.com/duccv/whereisit/internal/middleware"
	"github.com/duccv/whereisit/internal/repository"
	"github.com/duccv/whereisit/internal/session"
	"github.com/duccv/whereisit/internal/validation"
	"github.com/gin-gonic/gin"
)

// TokenService issues session tokens at login and verifies them at the gate.
type TokenService interface {
	handler.TokenIssuer
	middleware.TokenVerifier
}

// Deps is everything the routes need. Nothing is read from globals.
type Deps struct {
	Tokens          TokenService
	Cookies         *session.Transport
	Items           repository.ItemRepository
	Recoveries      repository.RecoveryRepository
	RecoveryService handler.RecoveryCreator
	// StrictRoutes puts the item write routes, the single item read and recovery
	// creation behind the session gate as well.
	StrictRoutes bool
}

func Register(r gin.IRouter, deps Deps) {
	gate := middleware.AuthGate(deps.Tokens)
	guarded := func(h ...gin.HandlerFunc) []gin.HandlerFunc {
		return append([]gin.HandlerFunc{gate}, h...)
	}
	open := func(h ...gin.HandlerFunc) []gin.HandlerFunc {
		if deps.StrictRoutes {
			return guarded(h...)
		}
		return h
	}

	auth := handler.NewAuthHandler(deps.Tokens, deps.Cookies)
	items := handler.NewItemHandler(deps.Items)
	recoveries := handler.NewRecoveryHandler(deps.Recoveries, deps.RecoveryService)

	byID := validation.Bind[handler.ItemParams, validation.None]()
	byEmail := validation.Bind[validation.None, handler.MyItemsQuery]()

	r.POST("/jwt", auth.IssueToken)
	r.POST("/logout", auth.Logout)

	r.GET("/allItems", guarded(items.ListItems)...)
	r.POST("/allItems", open(items.CreateItem)...)
	r.GET("/allItems/:id", open(byID, items.GetItem)...)
	r.PUT("/allItems/:id", open(byID, items.UpdateItem)...)
	r.GET("/latestItems", items.LatestItems)

	r.POST("/recoveries", open(recoveries.CreateRecovery)...)
	r.GET("/recoveries", guarded(recoveries.ListRecoveries)...)

	r.GET("/myItems", guarded(byEmail, items.MyItems)...)
	r.DELETE("/myItems/:id", open(byID, items.DeleteItem)...)

	r.GET("/", handler.Root)
}
