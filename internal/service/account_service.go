package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"account-service/internal/core/cache"
	"account-service/internal/domain"
	"account-service/pkg/utils"
)

// listCacheKey 未归档账号列表的缓存键，任何写操作后失效
const listCacheKey = "accounts:visible"

// AccountList 列表结果
type AccountList struct {
	Rows  []domain.Account `json:"rows"`
	Count int64            `json:"count"`
}

type AccountService struct {
	repo        domain.AccountRepository
	log         *zap.Logger
	cache       *cache.Cache
	cacheTTL    time.Duration
	now         func() time.Time
	newUsername func() string
	validate    *validator.Validate
}

type Option func(*AccountService)

// WithCache 启用列表读穿缓存
func WithCache(c *cache.Cache, ttl time.Duration) Option {
	return func(s *AccountService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

func WithUsernameGenerator(gen func() string) Option {
	return func(s *AccountService) { s.newUsername = gen }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *AccountService) { s.log = l }
}

func NewAccountService(repo domain.AccountRepository, opts ...Option) *AccountService {
	s := &AccountService{
		repo:        repo,
		log:         zap.NewNop(),
		cacheTTL:    30 * time.Second,
		now:         time.Now,
		newUsername: utils.NewUsername,
	}
	for _, o := range opts {
		o(s)
	}
	s.validate = s.newValidator()
	return s
}

func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (*domain.Account, error) {
	if err := s.check(in, nil); err != nil {
		return nil, err
	}
	birthDate, err := domain.ParseDate(in.BirthDate)
	if err != nil {
		return nil, domain.FieldError("birthDate", fieldMessageDate)
	}
	a := &domain.Account{
		FullName:  in.FullName,
		Email:     in.Email,
		BirthDate: birthDate,
		Username:  s.newUsername(),
		Status:    domain.StatusActive,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("account created", zap.Uint("id", a.ID), zap.String("username", a.Username))
	return a, nil
}

func (s *AccountService) ListAccounts(ctx context.Context) (*AccountList, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, listCacheKey, s.cacheTTL, func(ctx context.Context) (*AccountList, error) {
		rows, total, err := s.repo.ListVisible(ctx)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []domain.Account{}
		}
		return &AccountList{Rows: rows, Count: total}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

// UpdateAccount 覆盖 fullName/birthDate/status；id 不存在时静默成功
func (s *AccountService) UpdateAccount(ctx context.Context, in UpdateAccountInput) error {
	if err := s.check(in, s.updateMessages()); err != nil {
		return err
	}
	id, _ := parseAccountID(in.ID)
	birthDate, _ := domain.ParseDate(in.BirthDate)
	if err := s.repo.UpdateProfile(ctx, id, in.FullName, birthDate, domain.Status(in.Status)); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("account updated", zap.Uint("id", id), zap.String("status", in.Status))
	return nil
}

func (s *AccountService) RemoveAccount(ctx context.Context, in AccountIDInput) error {
	id, err := s.existing(ctx, in)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove account: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("account removed", zap.Uint("id", id))
	return nil
}

// SuspendAccount 无论当前状态如何都置为 suspended（幂等）
func (s *AccountService) SuspendAccount(ctx context.Context, in AccountIDInput) error {
	return s.setStatus(ctx, in, domain.StatusSuspended)
}

func (s *AccountService) ReactivateAccount(ctx context.Context, in AccountIDInput) error {
	return s.setStatus(ctx, in, domain.StatusActive)
}

func (s *AccountService) setStatus(ctx context.Context, in AccountIDInput, status domain.Status) error {
	id, err := s.existing(ctx, in)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set account status: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("account status changed", zap.Uint("id", id), zap.String("status", status.String()))
	return nil
}

// existing 校验 id 并确认记录存在
func (s *AccountService) existing(ctx context.Context, in AccountIDInput) (uint, error) {
	if err := s.check(in, nil); err != nil {
		return 0, err
	}
	id := uint(*in.ID)
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("find account: %w", err)
	}
	if a == nil {
		return 0, domain.ErrAccountNotFound
	}
	return id, nil
}

// Ping 健康检查
func (s *AccountService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *AccountService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("invalidate account list cache", zap.Error(err))
	}
}
