package network

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/miekg/dns"

	zterrors "github.com/maksimkurb/ztproxy/src/internal/errors"
)

var networkIDRegexp = regexp.MustCompile(`^[0-9a-fA-F]{16}$`)

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "routes.1.via", "dns.domain")
	Message   string // Human-readable error message
	Cause     error  // Typed core error behind the entry, if any
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

// ErrorCode reports the aggregate as a validation failure.
func (ve ValidationErrors) ErrorCode() zterrors.ErrorCode {
	return zterrors.ErrCodeValidation
}

// Is matches zterrors.ErrValidation.
func (ve ValidationErrors) Is(target error) bool {
	t, ok := target.(*zterrors.Error)
	return ok && t.Code == zterrors.ErrCodeValidation
}

// Unwrap exposes the typed causes, so errors.As finds for example a
// *NoCarryingNetworkError inside the aggregate.
func (ve ValidationErrors) Unwrap() []error {
	var causes []error
	for _, e := range ve {
		if e.Cause != nil {
			causes = append(causes, e.Cause)
		}
	}
	return causes
}

// Fields returns field path -> message, for API error details.
func (ve ValidationErrors) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(ve))
	for _, e := range ve {
		fields[e.FieldPath] = e.Message
	}
	return fields
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("network_id", validateNetworkID); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("dns_domain", validateDNSDomain); err != nil {
		panic(err)
	}

	// Report fields by their wire names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateNetworkID(fl validator.FieldLevel) bool {
	return networkIDRegexp.MatchString(fl.Field().String())
}

func validateDNSDomain(fl validator.FieldLevel) bool {
	_, ok := dns.IsDomainName(fl.Field().String())
	return ok
}

// IsNetworkID reports whether id looks like a controller network id
// (16 hex characters).
func IsNetworkID(id string) bool {
	return networkIDRegexp.MatchString(id)
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "network_id":
		return "must be 16 hexadecimal characters"
	case "dns_domain":
		return "must be a valid DNS domain name"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// Validate runs every check that must pass before the network is submitted
// to the controller: field constraints, route targets and gateway carriers,
// pool consistency and DNS settings. All problems are returned together as
// ValidationErrors.
func (n *Network) Validate() error {
	var validationErrors ValidationErrors

	if err := validate.Struct(n); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err)...)
	}

	validationErrors = append(validationErrors, n.validateRoutes()...)
	validationErrors = append(validationErrors, n.validatePools()...)
	validationErrors = append(validationErrors, n.validateDNS()...)

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}

func (n *Network) validateRoutes() ValidationErrors {
	var validationErrors ValidationErrors

	for i, r := range n.Routes {
		if !r.Target.IsValid() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fmt.Sprintf("routes.%d.target", i),
				Message:   "must be a valid CIDR",
			})
		}
		if r.Via != nil && !r.Via.IsValid() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fmt.Sprintf("routes.%d.via", i),
				Message:   "must be a valid IP address or null",
			})
		}
	}

	for _, i := range n.uncarriedRoutes() {
		gw := *n.Routes[i].Via
		if !gw.IsValid() {
			continue
		}
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: fmt.Sprintf("routes.%d.via", i),
			Message:   fmt.Sprintf("no carrying network for gateway %s", gw),
			Cause:     &NoCarryingNetworkError{RouteIndex: i, Gateway: gw},
		})
	}

	return validationErrors
}

func (n *Network) validatePools() ValidationErrors {
	var validationErrors ValidationErrors

	for i, pool := range n.IPAssignmentPools {
		path := fmt.Sprintf("ipAssignmentPools.%d", i)

		if !pool.Start.IsValid() || !pool.End.IsValid() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: path,
				Message:   "ipRangeStart and ipRangeEnd must be valid IP addresses",
			})
			continue
		}
		if !pool.SameFamily() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("range %s mixes IPv4 and IPv6", pool),
			})
			continue
		}
		if !pool.Ordered() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("ipRangeStart %s is after ipRangeEnd %s", pool.Start, pool.End),
			})
			continue
		}

		inside := false
		for _, r := range n.Routes {
			if r.Target.IsValid() && pool.Within(r.Target) {
				inside = true
				break
			}
		}
		if !inside {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: path,
				Message:   fmt.Sprintf("range %s is not inside any route target", pool),
			})
		}
	}

	return validationErrors
}

func (n *Network) validateDNS() ValidationErrors {
	if n.DNS == nil {
		return nil
	}

	var validationErrors ValidationErrors
	for i, server := range n.DNS.Servers {
		if !server.IsValid() {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fmt.Sprintf("dns.servers.%d", i),
				Message:   "must be a valid IP address",
			})
		}
	}
	if n.DNS.Domain == "" && len(n.DNS.Servers) > 0 {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "dns.domain",
			Message:   "field is required when dns.servers is set",
		})
	}
	return validationErrors
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return ValidationErrors{{FieldPath: "network", Message: err.Error()}}
	}

	for _, e := range validatorErrs {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: fieldPath(e.Namespace()),
			Message:   getValidationMessage(e),
		})
	}
	return validationErrors
}

// fieldPath turns a validator namespace like "Network.rules[2].type" into
// "rules.2.type".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}
