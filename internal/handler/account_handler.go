package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/holidayhub/directory/shared/models"
	"github.com/holidayhub/directory/shared/utils"
	"github.com/sirupsen/logrus"
)

// AccountCommander defines the write-side operations used by the account adapters.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (*models.AccountView, error)
	UpdateUsername(context.Context, cqrs.UpdateUsernameCommand) (*models.AccountView, error)
	UpdateAboutMe(context.Context, cqrs.UpdateAboutMeCommand) (*models.AccountView, error)
	DeleteAboutMe(context.Context, cqrs.DeleteAboutMeCommand) (*models.AccountView, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by the account adapters.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

// AccountHandler routes requests to the command or query service as appropriate.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
	log      logrus.FieldLogger
}

type CreateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUsernameRequest struct {
	NewUsername string `json:"new_username"`
}

type UpdateAboutMeRequest struct {
	AboutMe *string `json:"about_me"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries, log: log}
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Method:   models.MethodREST,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: id})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateUsername(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.commands.UpdateUsername(c.Request.Context(), cqrs.UpdateUsernameCommand{
		AccountID: id,
		Username:  req.NewUsername,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) UpdateAboutMe(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req UpdateAboutMeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AboutMe == nil {
		middleware.RespondWithValidationError(c, map[string]string{"about_me": "About me is required"})
		return
	}

	view, err := h.commands.UpdateAboutMe(c.Request.Context(), cqrs.UpdateAboutMeCommand{
		AccountID: id,
		AboutMe:   *req.AboutMe,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) DeleteAboutMe(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	view, err := h.commands.DeleteAboutMe(c.Request.Context(), cqrs.DeleteAboutMeCommand{AccountID: id})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{AccountID: id}); err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

func accountID(c *gin.Context) (int64, bool) {
	return pathID(c, "Invalid account id")
}

// pathID parses the :id segment, writing a 400 when it is not a positive integer.
func pathID(c *gin.Context, message string) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, message)
	}
	return id, ok
}
