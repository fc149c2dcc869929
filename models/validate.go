package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/blog-site/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags and turns the first failure into a field error.
func validateStruct(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		details := fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
		if fe.Param() != "" {
			details = fmt.Sprintf("%s failed on the '%s=%s' rule", field, fe.Tag(), fe.Param())
		}
		return errs.NewBadRequestErrorWithField("invalid "+entity, field, details)
	}
	return errs.NewBadRequestErrorWithField("invalid "+entity, "", err.Error())
}

// Validate checks the tag after normalization, so " Travel " is measured as "travel".
func (t *Tag) Validate() error {
	normalized := *t
	normalized.Title = NormalizeTagTitle(t.Title)
	return validateStruct("tag", &normalized)
}

func (p *Post) Validate() error {
	return validateStruct("post", p)
}

func (c *Comment) Validate() error {
	return validateStruct("comment", c)
}

func (u *User) Validate() error {
	return validateStruct("user", u)
}
