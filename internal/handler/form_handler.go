package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/holidayhub/directory/shared/models"
	"github.com/sirupsen/logrus"
)

// FormHandler accepts sign-ups posted from the HTML interface.
type FormHandler struct {
	commands AccountCommander
	log      logrus.FieldLogger
}

type SignupForm struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func NewFormHandler(commands AccountCommander, log logrus.FieldLogger) *FormHandler {
	return &FormHandler{commands: commands, log: log}
}

func (h *FormHandler) CreateAccount(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	view, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Method:   models.MethodInterface,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}
