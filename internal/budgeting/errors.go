package budgeting

import "errors"

// Validation errors
var (
	ErrCategoryRequired  = errors.New("every expense needs a category, set either categoryId or category")
	ErrCategoryNameEmpty = errors.New("the category name must not be empty")
	ErrDateRange         = errors.New("the end date of a budget must not be before its start date")
	ErrAmountNotPositive = errors.New("amounts must be greater than 0")
	ErrInvalidStatus     = errors.New("the expense status must be one of PENDING, PAID")
)
