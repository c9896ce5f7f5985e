package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the server entry against its struct tags and returns the
// first violation as a readable error.
func (s *ServerConfig) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	switch fe.Field() {
	case "Host":
		return fmt.Errorf("server host is required")
	case "User":
		return fmt.Errorf("server user is required")
	case "Port":
		return fmt.Errorf("server port must be between 0 and 65535")
	default:
		return fmt.Errorf("invalid server config: %s", fe.Field())
	}
}
