package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("picker session not found")
	ErrInvalidSelection = errors.New("invalid selection payload")
	ErrUnknownIndustry  = errors.New("industry not in taxonomy")
	ErrUnknownCommand   = errors.New("unknown selection command")
	ErrTaxonomyLoad     = errors.New("taxonomy could not be loaded")
)
