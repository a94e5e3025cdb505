package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/holidayhub/directory/shared/models"
	"github.com/sirupsen/logrus"
)

// Fault codes follow the SOAP 1.1 convention: Client when the caller must
// change the request, Server when the request could succeed on retry.
const (
	FaultClient = "Client"
	FaultServer = "Server"
)

type RPCRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type Fault struct {
	Code   string `json:"faultcode"`
	String string `json:"faultstring"`
	Detail any    `json:"detail,omitempty"`
}

type userIDParams struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

type createUserParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUsernameParams struct {
	UserID      int64  `json:"user_id" binding:"required,gt=0"`
	NewUsername string `json:"new_username"`
}

type updateAboutMeParams struct {
	UserID  int64   `json:"user_id" binding:"required,gt=0"`
	AboutMe *string `json:"about_me" binding:"required"`
}

type procedure func(ctx context.Context, params []byte) (any, error)

var errBadParams = errors.New("malformed params")

// RPCHandler exposes the account operations as named procedures over a JSON
// envelope on a single endpoint.
type RPCHandler struct {
	commands   AccountCommander
	queries    AccountQuerier
	log        logrus.FieldLogger
	procedures map[string]procedure
}

func NewRPCHandler(commands AccountCommander, queries AccountQuerier, log logrus.FieldLogger) *RPCHandler {
	h := &RPCHandler{commands: commands, queries: queries, log: log}
	h.procedures = map[string]procedure{
		"get_user_by_id":  h.getUserByID,
		"get_all_users":   h.getAllUsers,
		"create_user":     h.createUser,
		"update_username": h.updateUsername,
		"update_about_me": h.updateAboutMe,
		"delete_about_me": h.deleteAboutMe,
		"delete_user":     h.deleteUser,
	}
	return h
}

func (h *RPCHandler) Serve(c *gin.Context) {
	var req RPCRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Method == "" {
		h.fault(c, Fault{Code: FaultClient, String: "Malformed request envelope"})
		return
	}

	proc, ok := h.procedures[req.Method]
	if !ok {
		h.fault(c, Fault{Code: FaultClient, String: "Unknown method: " + req.Method})
		return
	}

	result, err := proc(c.Request.Context(), req.Params)
	if err != nil {
		h.fault(c, h.faultFor(c, req.Method, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *RPCHandler) fault(c *gin.Context, f Fault) {
	c.JSON(http.StatusInternalServerError, gin.H{"fault": f})
}

func (h *RPCHandler) faultFor(c *gin.Context, method string, err error) Fault {
	var (
		verr *service.ValidationError
		nerr *service.NotFoundError
		cerr *service.ConflictError
	)
	switch {
	case errors.Is(err, errBadParams):
		return Fault{Code: FaultClient, String: "Invalid params for " + method}
	case errors.As(err, &verr):
		return Fault{Code: FaultClient, String: "Invalid request data", Detail: verr.Fields}
	case errors.As(err, &nerr):
		return Fault{Code: FaultClient, String: notFoundMessage(nerr.Entity)}
	case errors.As(err, &cerr):
		f := Fault{Code: FaultClient, String: cerr.Message}
		if cerr.Field != "" {
			f.Detail = map[string]string{"field": cerr.Field}
		}
		return f
	default:
		_ = c.Error(err)
		middleware.RequestLogger(c, h.log).WithError(err).WithField("rpc_method", method).Error("procedure failed")
		return Fault{Code: FaultServer, String: msgInternalError}
	}
}

func decodeParams(params []byte, dst any) error {
	if len(params) == 0 || string(params) == "null" {
		params = []byte("{}")
	}
	if err := binding.JSON.BindBody(params, dst); err != nil {
		return errors.Join(errBadParams, err)
	}
	return nil
}

func (h *RPCHandler) getUserByID(ctx context.Context, params []byte) (any, error) {
	var p userIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return h.queries.GetAccount(ctx, cqrs.GetAccountQuery{AccountID: p.UserID})
}

func (h *RPCHandler) getAllUsers(ctx context.Context, _ []byte) (any, error) {
	return h.queries.ListAccounts(ctx, cqrs.ListAccountsQuery{})
}

func (h *RPCHandler) createUser(ctx context.Context, params []byte) (any, error) {
	var p createUserParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return h.commands.CreateAccount(ctx, cqrs.CreateAccountCommand{
		Username: p.Username,
		Email:    p.Email,
		Password: p.Password,
		Method:   models.MethodSOAP,
	})
}

func (h *RPCHandler) updateUsername(ctx context.Context, params []byte) (any, error) {
	var p updateUsernameParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return h.commands.UpdateUsername(ctx, cqrs.UpdateUsernameCommand{AccountID: p.UserID, Username: p.NewUsername})
}

func (h *RPCHandler) updateAboutMe(ctx context.Context, params []byte) (any, error) {
	var p updateAboutMeParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return h.commands.UpdateAboutMe(ctx, cqrs.UpdateAboutMeCommand{AccountID: p.UserID, AboutMe: *p.AboutMe})
}

func (h *RPCHandler) deleteAboutMe(ctx context.Context, params []byte) (any, error) {
	var p userIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return h.commands.DeleteAboutMe(ctx, cqrs.DeleteAboutMeCommand{AccountID: p.UserID})
}

func (h *RPCHandler) deleteUser(ctx context.Context, params []byte) (any, error) {
	var p userIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := h.commands.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountID: p.UserID}); err != nil {
		return nil, err
	}
	return gin.H{"user_id": p.UserID, "deleted": true}, nil
}
