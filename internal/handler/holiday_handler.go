package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/holidayhub/directory/shared/models"
	"github.com/sirupsen/logrus"
)

type HolidayCommander interface {
	CreateHoliday(context.Context, cqrs.CreateHolidayCommand) (*models.Holiday, error)
	DeleteHoliday(context.Context, cqrs.DeleteHolidayCommand) error
	RegisterAttendance(context.Context, cqrs.RegisterAttendanceCommand) (*models.Attendance, error)
}

type HolidayQuerier interface {
	GetHoliday(context.Context, cqrs.GetHolidayQuery) (*models.Holiday, error)
	ListHolidays(context.Context, cqrs.ListHolidaysQuery) ([]models.Holiday, error)
	ListAttendees(context.Context, cqrs.ListAttendeesQuery) ([]models.AccountView, error)
	ListAccountHolidays(context.Context, cqrs.ListAccountHolidaysQuery) ([]models.Holiday, error)
}

type HolidayHandler struct {
	commands HolidayCommander
	queries  HolidayQuerier
	log      logrus.FieldLogger
}

type CreateHolidayRequest struct {
	StartTime string `json:"start_time"`
	Location  string `json:"location"`
	Title     string `json:"title"`
}

type AttendRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

func NewHolidayHandler(commands HolidayCommander, queries HolidayQuerier, log logrus.FieldLogger) *HolidayHandler {
	return &HolidayHandler{commands: commands, queries: queries, log: log}
}

func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.queries.ListHolidays(c.Request.Context(), cqrs.ListHolidaysQuery{})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	holiday, err := h.commands.CreateHoliday(c.Request.Context(), cqrs.CreateHolidayCommand{
		StartTime: req.StartTime,
		Location:  req.Location,
		Title:     req.Title,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) GetHoliday(c *gin.Context) {
	id, ok := holidayID(c)
	if !ok {
		return
	}

	holiday, err := h.queries.GetHoliday(c.Request.Context(), cqrs.GetHolidayQuery{HolidayID: id})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, holiday)
}

func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id, ok := holidayID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteHoliday(c.Request.Context(), cqrs.DeleteHolidayCommand{HolidayID: id}); err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted"})
}

func (h *HolidayHandler) Attend(c *gin.Context) {
	id, ok := holidayID(c)
	if !ok {
		return
	}
	var req AttendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithValidationError(c, map[string]string{"user_id": "user_id must be a positive integer"})
		return
	}

	link, err := h.commands.RegisterAttendance(c.Request.Context(), cqrs.RegisterAttendanceCommand{
		AccountID: req.UserID,
		HolidayID: id,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *HolidayHandler) ListAttendees(c *gin.Context) {
	id, ok := holidayID(c)
	if !ok {
		return
	}

	views, err := h.queries.ListAttendees(c.Request.Context(), cqrs.ListAttendeesQuery{HolidayID: id})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ListAccountHolidays serves GET /users/:id/holidays.
func (h *HolidayHandler) ListAccountHolidays(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	holidays, err := h.queries.ListAccountHolidays(c.Request.Context(), cqrs.ListAccountHolidaysQuery{AccountID: id})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, holidays)
}

func holidayID(c *gin.Context) (int64, bool) {
	return pathID(c, "Invalid holiday id")
}
