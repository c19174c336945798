package category

import (
	"booklib/internal/validation"
)

const (
	minNameLen        = 2
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Validate runs the category field checks in a fixed order and returns
// the first failure: required name, then name, then description.
func (in CreateInput) Validate() error {
	if err := validation.RequiredString(in.Name, "name", "category name"); err != nil {
		return err
	}
	if err := validateName(in.Name); err != nil {
		return err
	}
	if in.Description != nil {
		if err := validation.StringLength(*in.Description, "description", "category description", -1, maxDescriptionLen); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if err := validation.NotBlank(name, "name", "category name"); err != nil {
		return err
	}
	if err := validation.StringLength(name, "name", "category name", minNameLen, maxNameLen); err != nil {
		return err
	}
	return validation.NotAllDigits(name, "name", "category name")
}
