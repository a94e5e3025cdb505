package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/cqrs"
	"github.com/holidayhub/directory/shared/models"
)

type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Fault  *Fault          `json:"fault"`
}

func callRPC(t *testing.T, svc Services, body string) (int, rpcEnvelope) {
	t.Helper()
	w := doRequest(t, svc, http.MethodPost, "/rpc", body)
	var env rpcEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w.Code, env
}

func rpcServices() Services {
	accounts := map[int64]*models.AccountView{1: {ID: 1, Username: "alice", Email: "alice@example.com"}}
	return Services{
		AccountQueries: &mockAccountQuerier{
			getFn: func(q cqrs.GetAccountQuery) (*models.AccountView, error) {
				if v, ok := accounts[q.AccountID]; ok {
					return v, nil
				}
				return nil, &service.NotFoundError{Entity: "account", ID: q.AccountID}
			},
			listFn: func(cqrs.ListAccountsQuery) ([]models.AccountView, error) {
				return nil, service.Storage("list accounts", errors.New("pool exhausted"))
			},
		},
		AccountCommands: &mockAccountCommander{
			createFn: func(cmd cqrs.CreateAccountCommand) (*models.AccountView, error) {
				if cmd.Username == "alice" {
					return nil, &service.ConflictError{Field: "username", Message: "Username already exists"}
				}
				if len(cmd.Password) < 6 {
					return nil, service.Invalid("password", "Password must be at least 6 characters")
				}
				return &models.AccountView{ID: 2, Username: cmd.Username, CreationMethod: cmd.Method}, nil
			},
			updateUsernameFn: func(cmd cqrs.UpdateUsernameCommand) (*models.AccountView, error) {
				return &models.AccountView{ID: cmd.AccountID, Username: cmd.Username}, nil
			},
			updateAboutMeFn: func(cmd cqrs.UpdateAboutMeCommand) (*models.AccountView, error) {
				return &models.AccountView{ID: cmd.AccountID, AboutMe: cmd.AboutMe}, nil
			},
			deleteAboutMeFn: func(cmd cqrs.DeleteAboutMeCommand) (*models.AccountView, error) {
				return &models.AccountView{ID: cmd.AccountID}, nil
			},
			deleteFn: func(cmd cqrs.DeleteAccountCommand) error { return nil },
		},
	}
}

func TestRPCResults(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"get_user_by_id", `{"method":"get_user_by_id","params":{"user_id":1}}`, "alice"},
		{"create_user", `{"method":"create_user","params":{"username":"bob","email":"bob@example.com","password":"secret1"}}`, `"soap"`},
		{"update_username", `{"method":"update_username","params":{"user_id":1,"new_username":"carol"}}`, "carol"},
		{"update_about_me", `{"method":"update_about_me","params":{"user_id":1,"about_me":"hi there"}}`, "hi there"},
		{"delete_about_me", `{"method":"delete_about_me","params":{"user_id":1}}`, `"about_me":""`},
		{"delete_user", `{"method":"delete_user","params":{"user_id":1}}`, `"deleted":true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := callRPC(t, rpcServices(), tt.body)
			if code != http.StatusOK || env.Fault != nil {
				t.Fatalf("expected result, got %d %+v", code, env.Fault)
			}
			if !json.Valid(env.Result) || !containsJSON(env.Result, tt.want) {
				t.Errorf("result %s does not contain %s", env.Result, tt.want)
			}
		})
	}
}

func TestRPCFaults(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"unknown method", `{"method":"drop_tables","params":{}}`, FaultClient},
		{"malformed envelope", `{"method":`, FaultClient},
		{"missing method", `{"params":{}}`, FaultClient},
		{"bad params", `{"method":"get_user_by_id","params":{"user_id":"one"}}`, FaultClient},
		{"missing user id", `{"method":"delete_user"}`, FaultClient},
		{"missing about_me", `{"method":"update_about_me","params":{"user_id":1}}`, FaultClient},
		{"not found", `{"method":"get_user_by_id","params":{"user_id":42}}`, FaultClient},
		{"conflict", `{"method":"create_user","params":{"username":"alice","email":"a@b.c","password":"secret1"}}`, FaultClient},
		{"invalid input", `{"method":"create_user","params":{"username":"bob","email":"a@b.c","password":"1"}}`, FaultClient},
		{"storage failure", `{"method":"get_all_users","params":{}}`, FaultServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := callRPC(t, rpcServices(), tt.body)
			if code != http.StatusInternalServerError {
				t.Errorf("expected 500, got %d", code)
			}
			if env.Fault == nil {
				t.Fatalf("expected a fault")
			}
			if env.Fault.Code != tt.wantCode {
				t.Errorf("expected faultcode %s, got %s (%s)", tt.wantCode, env.Fault.Code, env.Fault.String)
			}
		})
	}
}

func containsJSON(raw json.RawMessage, fragment string) bool {
	return strings.Contains(string(raw), fragment)
}
