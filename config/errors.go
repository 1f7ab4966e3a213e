package config

import "errors"

var (
	// ErrLoad indicates the configuration file could not be read
	ErrLoad = errors.New("failed to load configuration")
	// ErrNotFound indicates no configuration file exists
	ErrNotFound = errors.New("config file not found")
	// ErrMalformed indicates the file is not a valid properties file
	ErrMalformed = errors.New("malformed properties file")
	// ErrInvalid indicates a required setting is missing or has a bad value
	ErrInvalid = errors.New("invalid configuration")
)
