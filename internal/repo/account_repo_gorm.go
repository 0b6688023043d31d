package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"account-service/internal/domain"
	"account-service/internal/feature/account"
)

type AccountRepo struct{ db *gorm.DB }

var _ domain.AccountRepository = (*AccountRepo)(nil)

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	m := account.FromDomain(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	a.ID = m.ID
	return nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var m account.AccountModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account %d: %w", id, err)
	}
	a := m.ToDomain()
	return &a, nil
}

func (r *AccountRepo) ListVisible(ctx context.Context) ([]domain.Account, int64, error) {
	q := r.db.WithContext(ctx).Model(&account.AccountModel{}).
		Where("status <> ?", domain.StatusArchived).
		Session(&gorm.Session{}) // Count 与 Find 复用同一条件

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	var rows []account.AccountModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]domain.Account, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, total, nil
}

// UpdateProfile 按 id 覆盖 full_name/birth_date/status；id 不存在时不报错
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint, fullName string, birthDate domain.Date, status domain.Status) error {
	err := r.db.WithContext(ctx).Model(&account.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name":  fullName,
			"birth_date": birthDate,
			"status":     status,
		}).Error
	if err != nil {
		return fmt.Errorf("update account %d: %w", id, err)
	}
	return nil
}

func (r *AccountRepo) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("set account %d status: invalid status %q", id, status)
	}
	err := r.db.WithContext(ctx).Model(&account.AccountModel{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("set account %d status: %w", id, err)
	}
	return nil
}

func (r *AccountRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&account.AccountModel{}).Error; err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

func (r *AccountRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 各驱动未开启 TranslateError 时按错误文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
