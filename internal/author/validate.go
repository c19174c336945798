package author

import (
	"booklib/internal/validation"
)

const (
	minNameLen    = 2
	maxNameLen    = 200
	maxBioLen     = 2000
	maxCountryLen = 100
)

// Validate runs the author field checks in a fixed order and returns the
// first failure: required name, then name, bio, country.
func (in CreateInput) Validate() error {
	if err := validation.RequiredString(in.Name, "name", "author name"); err != nil {
		return err
	}
	return validateFields(&in.Name, in.Bio, in.Country)
}

// Validate checks only the fields present in the update.
func (in UpdateInput) Validate() error {
	return validateFields(in.Name, in.Bio, in.Country)
}

func validateFields(name, bio, country *string) error {
	if name != nil {
		if err := validateName(*name); err != nil {
			return err
		}
	}
	if bio != nil {
		if err := validation.StringLength(*bio, "bio", "biography", -1, maxBioLen); err != nil {
			return err
		}
	}
	if country != nil {
		if err := validateCountry(*country); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if err := validation.NotBlank(name, "name", "author name"); err != nil {
		return err
	}
	if err := validation.StringLength(name, "name", "author name", minNameLen, maxNameLen); err != nil {
		return err
	}
	return validation.NotAllDigits(name, "name", "author name")
}

func validateCountry(country string) error {
	if err := validation.StringLength(country, "country", "country name", -1, maxCountryLen); err != nil {
		return err
	}
	return validation.NotAllDigits(country, "country", "country name")
}
