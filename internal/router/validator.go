package router

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
)

// maxPrice bounds prices to what a decimal(10,2) column holds.
var maxPrice = decimal.NewFromInt(100_000_000)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator that reports JSON field names and
// understands decimal amounts.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("price", validPrice)
	_ = v.RegisterValidation("jsonvalue", validJSONValue)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}
	return apperrors.NewValidation(fields)
}

// validPrice accepts amounts with at most two decimal places below maxPrice.
// The decimal is read from the parent struct because the registered type
// func hands validators a float64.
func validPrice(fl validator.FieldLevel) bool {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return false
	}
	field := parent.FieldByName(fl.StructFieldName())
	for field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxPrice)
}

// validJSONValue rejects a missing document and the JSON literal null.
func validJSONValue(fl validator.FieldLevel) bool {
	doc, ok := fl.Field().Interface().(model.JSON)
	return ok && !doc.IsNull()
}
