package account

import (
	"account-service/internal/domain"
)

// AccountModel users 表的行模型（硬删除，无 DeletedAt）
type AccountModel struct {
	ID        uint          `gorm:"primaryKey;autoIncrement"`
	FullName  string        `gorm:"size:100;not null"`
	Email     string        `gorm:"uniqueIndex;size:200;not null"`
	BirthDate domain.Date   `gorm:"type:date"`
	Username  string        `gorm:"size:24;not null"`
	Status    domain.Status `gorm:"type:varchar(16);not null;default:active;index"`
}

func (AccountModel) TableName() string { return "users" }

func FromDomain(a *domain.Account) *AccountModel {
	return &AccountModel{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		BirthDate: a.BirthDate,
		Username:  a.Username,
		Status:    a.Status,
	}
}

func (m *AccountModel) ToDomain() domain.Account {
	return domain.Account{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		BirthDate: m.BirthDate,
		Username:  m.Username,
		Status:    m.Status,
	}
}
