package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/sirupsen/logrus"
)

// Services bundles the command and query sides every adapter is built on.
type Services struct {
	AccountCommands AccountCommander
	AccountQueries  AccountQuerier
	HolidayCommands HolidayCommander
	HolidayQueries  HolidayQuerier
}

// NewRouter mounts the REST, RPC and form adapters on one engine.
func NewRouter(svc Services, log logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts := NewAccountHandler(svc.AccountCommands, svc.AccountQueries, log)
	a := router.Group("/accounts")
	{
		a.GET("", accounts.ListAccounts)
		a.POST("", accounts.CreateAccount)
		a.GET("/:id", accounts.GetAccount)
		a.PUT("/:id", accounts.UpdateUsername)
		a.DELETE("/:id", accounts.DeleteAccount)
		a.PUT("/about/:id", accounts.UpdateAboutMe)
		a.DELETE("/about/:id", accounts.DeleteAboutMe)
	}

	holidays := NewHolidayHandler(svc.HolidayCommands, svc.HolidayQueries, log)
	h := router.Group("/holidays")
	{
		h.GET("", holidays.ListHolidays)
		h.POST("", holidays.CreateHoliday)
		h.GET("/:id", holidays.GetHoliday)
		h.DELETE("/:id", holidays.DeleteHoliday)
		h.POST("/:id/attend", holidays.Attend)
		h.GET("/:id/attendees", holidays.ListAttendees)
	}
	router.GET("/users/:id/holidays", holidays.ListAccountHolidays)

	rpc := NewRPCHandler(svc.AccountCommands, svc.AccountQueries, log)
	router.POST("/rpc", rpc.Serve)

	forms := NewFormHandler(svc.AccountCommands, log)
	router.POST("/forms/accounts", forms.CreateAccount)

	return router
}
