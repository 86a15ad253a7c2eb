// Package validation checks user-entered items and command arguments before
// they reach a collection.
package validation

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"eip/internal/models"
	"eip/internal/parsererror"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// WarnZeroPrice is reported when an item is accepted without a unit price.
const WarnZeroPrice = "unit price is zero; a unit price is recommended"

// ItemInput is an item as typed by the user, every field still text.
type ItemInput struct {
	PartNumber             string `json:"part_number" validate:"max=64"`
	ManufacturerPartNumber string `json:"manufacturer_part_number" validate:"max=64"`
	Description            string `json:"description" validate:"notblank"`
	CustomerReference      string `json:"customer_reference"`
	UnitPrice              string `json:"unit_price" validate:"omitempty,unit_price"`
	Quantity               string `json:"quantity" validate:"omitempty,quantity"`
}

// Validator wraps the go-playground validator with the item rules.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom item rules registered.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("unit_price", validateUnitPrice)
	_ = v.RegisterValidation("quantity", validateQuantity)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// validateUnitPrice accepts any non-negative price ParsePrice understands.
func validateUnitPrice(fl validator.FieldLevel) bool {
	d, err := models.ParsePrice(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// validateQuantity accepts a non-negative whole number.
func validateQuantity(fl validator.FieldLevel) bool {
	q, err := models.ParseQuantity(fl.Field().String())
	return err == nil && q >= 0
}

// Item validates input and converts it. On failure it returns a
// *parsererror.ValidationError naming every rejected field. Warnings list
// accepted but questionable values.
func (v *Validator) Item(input ItemInput) (models.Item, []string, error) {
	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.Item{}, nil, fmt.Errorf("error validating item: %w", err)
		}
		problems := make([]parsererror.FieldProblem, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, parsererror.FieldProblem{
				Field:  fe.Field(),
				Reason: formatFieldError(fe),
			})
		}
		return models.Item{}, nil, &parsererror.ValidationError{Problems: problems}
	}

	// Both parse cleanly once validation passed.
	price, _ := models.ParsePrice(input.UnitPrice)
	qty, _ := models.ParseQuantity(input.Quantity)

	item := models.Item{
		PartNumber:             strings.TrimSpace(input.PartNumber),
		ManufacturerPartNumber: strings.TrimSpace(input.ManufacturerPartNumber),
		Description:            strings.TrimSpace(input.Description),
		CustomerReference:      strings.TrimSpace(input.CustomerReference),
		UnitPrice:              price,
		Quantity:               qty,
	}

	var warnings []string
	if price.IsZero() {
		warnings = append(warnings, WarnZeroPrice)
	}
	return item, warnings, nil
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "unit_price":
		return fmt.Sprintf("must be a non-negative price, got '%v'", fe.Value())
	case "quantity":
		return fmt.Sprintf("must be a non-negative whole number, got '%v'", fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml'", format)
	}
}
