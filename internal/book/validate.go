package book

import (
	"booklib/internal/apperr"
	"booklib/internal/validation"
)

const (
	minPages          = 1
	maxPages          = 50000
	maxTitleLen       = 300
	maxDescriptionLen = 5000
	maxCategories     = 10
)

// Validate checks a create payload. Required fields are checked first,
// then formats in a fixed order so the reported error is deterministic.
func (in CreateInput) Validate() error {
	if err := validation.RequiredString(in.Title, "title", "title"); err != nil {
		return err
	}
	if err := validation.RequiredString(in.ISBN, "isbn", "isbn"); err != nil {
		return err
	}
	if in.Year == nil {
		return apperr.Validation("year", "Missing required field: year")
	}
	if in.AuthorID == nil {
		return apperr.Validation("author_id", "Missing required field: author_id")
	}
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := validation.ISBN(in.ISBN); err != nil {
		return err
	}
	if err := validation.Year(*in.Year); err != nil {
		return err
	}
	if in.Pages != nil {
		if err := validatePages(*in.Pages); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return err
		}
	}
	return validateCategoryIDs(in.CategoryIDs)
}

// Validate checks an update payload. Only supplied fields are checked,
// in the same order as create.
func (in UpdateInput) Validate() error {
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return err
		}
	}
	if in.ISBN != nil {
		if err := validation.ISBN(*in.ISBN); err != nil {
			return err
		}
	}
	if in.Year != nil {
		if err := validation.Year(*in.Year); err != nil {
			return err
		}
	}
	if in.Pages != nil {
		if err := validatePages(*in.Pages); err != nil {
			return err
		}
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return err
		}
	}
	if in.CategoryIDs != nil {
		return validateCategoryIDs(*in.CategoryIDs)
	}
	return nil
}

func validateTitle(title string) error {
	if err := validation.NotBlank(title, "title", "title"); err != nil {
		return err
	}
	return validation.StringLength(title, "title", "title", 1, maxTitleLen)
}

func validatePages(pages int) error {
	return validation.IntRange(pages, "pages", "pages", minPages, maxPages)
}

func validateDescription(description string) error {
	return validation.StringLength(description, "description", "description", -1, maxDescriptionLen)
}

func validateCategoryIDs(ids []int64) error {
	if err := validation.UniqueInt64s(ids, "category_ids", "category IDs"); err != nil {
		return err
	}
	if len(ids) > maxCategories {
		return apperr.Validation("category_ids", "A book can have a maximum of %d categories", maxCategories)
	}
	return nil
}
