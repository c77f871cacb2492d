package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// 与 gin 的 binding 标签保持一致，服务层可复用 DTO 上的规则
	validate.SetTagName("binding")
}

// ValidateDTO 按 binding 标签校验，只返回第一个失败字段
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return errors.New(ValidationMessage(vErrs))
		}
		return err
	}
	return nil
}

func ValidationMessage(vErrs validator.ValidationErrors) string {
	if len(vErrs) == 0 {
		return ""
	}
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", vErrs[0].Field(), vErrs[0].Tag())
}
