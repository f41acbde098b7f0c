package models

import "github.com/go-playground/validator/v10"

// Validate is the shared struct validator used for form validation.
var Validate = validator.New()
