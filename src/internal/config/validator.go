package config

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.Controller == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "controller",
			Message:   "configuration must contain 'controller' section",
		})
	} else if err := validate.Struct(c.Controller); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "controller", "controller")...)
	}

	if c.API != nil {
		if err := validate.Struct(c.API); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "api", "api")...)
		}
	}

	if c.Network != nil {
		if err := validate.Struct(c.Network); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "network", "network")...)
		}
	}

	if c.Controller != nil && c.Controller.AuthToken != "" && c.Controller.AuthTokenFile != "" {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  "controller",
			FieldPath: "controller.auth_token",
			Message:   "auth_token and auth_token_file are mutually exclusive",
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}
