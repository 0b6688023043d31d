package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-service/internal/domain"
	"account-service/internal/service"
	httpez "account-service/internal/transport/http/ez"
	resp "account-service/internal/transport/http/response"
)

//go:generate mockgen -package mocks -destination mocks/account_service_mock.go account-service/internal/transport/http/handler AccountService

// AccountService 账号业务能力
type AccountService interface {
	CreateAccount(ctx context.Context, in service.CreateAccountInput) (*domain.Account, error)
	ListAccounts(ctx context.Context) (*service.AccountList, error)
	UpdateAccount(ctx context.Context, in service.UpdateAccountInput) error
	RemoveAccount(ctx context.Context, in service.AccountIDInput) error
	SuspendAccount(ctx context.Context, in service.AccountIDInput) error
	ReactivateAccount(ctx context.Context, in service.AccountIDInput) error
}

const (
	MsgAdded       = "User has been added successfully"
	MsgUpdated     = "User has been updated successfully"
	MsgDeleted     = "User has been deleted successfully"
	MsgSuspended   = "User account has been suspended successfully"
	MsgReactivated = "User account has been reactivated successfully"
)

type AccountHandler struct {
	svc AccountService
	log *zap.Logger
}

func NewAccountHandler(svc AccountService, l *zap.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, log: l}
}

// updateRequest 字段先按任意 JSON 值接收，类型不对的字段交给业务校验统一报错
type updateRequest struct {
	ID        any `json:"id"`
	FullName  any `json:"fullName"`
	BirthDate any `json:"birthDate"`
	Status    any `json:"status"`
}

func (h *AccountHandler) Priority() int { return 10 }

// MountAPI 挂载账号接口
func (h *AccountHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g, h.log)

	httpez.RegisterAction(ez, httpez.Action[service.CreateAccountInput, resp.Message]{
		Method: http.MethodPost,
		Path:   "/add-user-account",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateAccountInput) (resp.Message, error) {
			if _, err := h.svc.CreateAccount(c.Request.Context(), *in); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: MsgAdded}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *service.AccountList]{
		Method: http.MethodGet,
		Path:   "/list-user-accounts",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.AccountList, error) {
			return h.svc.ListAccounts(c.Request.Context())
		},
	})

	httpez.RegisterAction(ez, httpez.Action[updateRequest, resp.Message]{
		Method: http.MethodPut,
		Path:   "/update-user-account",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *updateRequest) (resp.Message, error) {
			err := h.svc.UpdateAccount(c.Request.Context(), service.UpdateAccountInput{
				ID:        idString(in.ID),
				FullName:  str(in.FullName),
				BirthDate: str(in.BirthDate),
				Status:    str(in.Status),
			})
			if err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: MsgUpdated}, nil
		},
	})

	h.idAction(ez, http.MethodDelete, "/remove-user-account", h.svc.RemoveAccount, MsgDeleted)
	h.idAction(ez, http.MethodPatch, "/suspend-user-account", h.svc.SuspendAccount, MsgSuspended)
	h.idAction(ez, http.MethodPatch, "/reactivate-user-account", h.svc.ReactivateAccount, MsgReactivated)
}

func (h *AccountHandler) idAction(ez httpez.EZ, method, path string, op func(context.Context, service.AccountIDInput) error, msg string) {
	httpez.RegisterAction(ez, httpez.Action[service.AccountIDInput, resp.Message]{
		Method: method,
		Path:   path,
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.AccountIDInput) (resp.Message, error) {
			if err := op(c.Request.Context(), *in); err != nil {
				return resp.Message{}, err
			}
			return resp.Message{Message: msg}, nil
		},
	})
}

// str 非字符串按缺失处理，由必填规则给出该字段的提示
func str(v any) string {
	s, _ := v.(string)
	return s
}

// idString 把 JSON 中的 id 统一转成字符串，交给业务层校验
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
