package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"account-service/internal/domain"
)

// CreateAccountInput 创建账号入参
type CreateAccountInput struct {
	FullName  string `json:"fullName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=200"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
}

// UpdateAccountInput 更新账号入参；ID 允许数字或数字字符串，由调用方转成字符串
type UpdateAccountInput struct {
	ID        string `json:"id"        validate:"required,accountid"`
	FullName  string `json:"fullName"  validate:"required,max=100"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02,adult"`
	Status    string `json:"status"    validate:"required,oneof=active suspended archived"`
}

// AccountIDInput 删除/封禁/恢复入参
type AccountIDInput struct {
	ID *int64 `json:"id" validate:"required,min=1"`
}

// AdultAge 更新时出生日期需满足的最小年龄
const AdultAge = 18

const fieldMessageDate = `Invalid date, format should be "YYYY-MM-DD"`

func (s *AccountService) newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "accountid", func(fl validator.FieldLevel) bool {
		_, ok := parseAccountID(fl.Field().String())
		return ok
	})
	mustRegister(v, "adult", func(fl validator.FieldLevel) bool {
		d, err := domain.ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return !d.After(s.adultCutoff())
	})
	return v
}

// mustRegister 注册自定义规则；失败说明规则定义有误，启动即报错
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// adultCutoff 今天往前推 18 年；出生日期不得晚于该日
func (s *AccountService) adultCutoff() domain.Date {
	return domain.DateOf(s.now()).AddYears(-AdultAge)
}

func parseAccountID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 || n > uint64(^uint(0)) {
		return 0, false
	}
	return uint(n), true
}

// check 执行规则集并收集全部失败字段；override 可按字段替换提示
func (s *AccountService) check(in any, override map[string]string) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if msg, ok := override[fe.Field()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return domain.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "max":
		return fmt.Sprintf("Maximum length allowed is %s", fe.Param())
	case "min":
		return fmt.Sprintf("Value must be greater than or equal to %s", fe.Param())
	case "datetime":
		return fieldMessageDate
	default:
		return "Invalid value"
	}
}

func (s *AccountService) updateMessages() map[string]string {
	return map[string]string{
		"id":       "Please provide id to update.",
		"fullName": "Please provide valid full name, maximum length allowed is 100.",
		"birthDate": fmt.Sprintf(`Please provide valid date of birth, format should be "YYYY-MM-DD" and should be before %s.`,
			s.adultCutoff()),
		"status": `Please provide valid status, status can only be one of "active", "suspended", "archived".`,
	}
}
