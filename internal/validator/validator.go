// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ymd_date", validateYMDDate)
		_ = v.RegisterValidation("year_month", validateYearMonth)
	}
}

// validateYMDDate accepts calendar dates in YYYY-MM-DD form. time.Parse
// rejects out-of-range components such as month 13 or February 30.
func validateYMDDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateYearMonth accepts calendar months in YYYY-MM form.
func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}
