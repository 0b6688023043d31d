package domain

import "context"

// Status 账号生命周期状态
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusArchived  Status = "archived"
)

// Statuses 全部合法状态（顺序固定，用于校验提示）
var Statuses = []Status{StatusActive, StatusSuspended, StatusArchived}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusArchived:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

type Account struct {
	ID        uint   `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	BirthDate Date   `json:"birthDate"`
	Username  string `json:"username"`
	Status    Status `json:"status"`
}

// AccountRepository 持久化端口；FindByID 查不到返回 (nil, nil)
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id uint) (*Account, error)
	// ListVisible 返回 status != archived 的全部账号及其数量
	ListVisible(ctx context.Context) ([]Account, int64, error)
	UpdateProfile(ctx context.Context, id uint, fullName string, birthDate Date, status Status) error
	UpdateStatus(ctx context.Context, id uint, status Status) error
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}
