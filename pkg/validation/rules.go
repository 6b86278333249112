package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate

	reasonsMu     sync.RWMutex
	customReasons = map[string]string{}
)

func rulesEngine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New()
	})
	return engine
}

// RegisterRule adds a custom go-playground/validator tag usable with Rule.
// reason is reported when the tag fails; "%s" in it receives the tag param.
func RegisterRule(tag string, fn validator.Func, reason string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" || fn == nil {
		return errors.New("validation: rule tag and function are required")
	}
	if err := rulesEngine().RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("validation: register rule %q: %w", tag, err)
	}
	if reason != "" {
		reasonsMu.Lock()
		customReasons[tag] = reason
		reasonsMu.Unlock()
	}
	return nil
}

// Rule checks a value against a go-playground/validator tag expression such
// as "min=2,max=40" or "email". Failures become Errors with a readable
// reason; a malformed tag is a hard error.
func Rule[T any](tag string) Validator[T] {
	return RuleWithReason[T](tag, "")
}

// RuleWithReason is Rule with a fixed reason replacing the generated one.
func RuleWithReason[T any](tag, reason string) Validator[T] {
	return func(value T) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("validation: rule %q: %v", tag, r)
			}
		}()

		verr := rulesEngine().Var(value, tag)
		if verr == nil {
			return nil
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(verr, &fieldErrs) || len(fieldErrs) == 0 {
			return fmt.Errorf("validation: rule %q: %w", tag, verr)
		}
		if reason != "" {
			return Error{Reason: reason}
		}
		return Error{Reason: reasonFor(fieldErrs[0])}
	}
}

func reasonFor(fe validator.FieldError) string {
	tag, param := fe.Tag(), fe.Param()

	reasonsMu.RLock()
	custom, ok := customReasons[tag]
	reasonsMu.RUnlock()
	if ok {
		if strings.Contains(custom, "%s") {
			return fmt.Sprintf(custom, param)
		}
		return custom
	}

	text := isText(fe.Kind())
	switch tag {
	case "required":
		return "may not be empty"
	case "min", "gte":
		if text {
			return fmt.Sprintf("is less than required minimum of %s characters", param)
		}
		return fmt.Sprintf("is less than required minimum of %s", param)
	case "max", "lte":
		if text {
			return fmt.Sprintf("is greater than required maximum of %s characters", param)
		}
		return fmt.Sprintf("is greater than required maximum of %s", param)
	case "len":
		if text {
			return fmt.Sprintf("must be exactly %s characters", param)
		}
		return fmt.Sprintf("must be exactly %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "lt":
		return fmt.Sprintf("must be less than %s", param)
	case "email":
		return "is not a valid email address"
	case "url", "http_url":
		return "is not a valid URL"
	case "uuid", "uuid4":
		return "is not a valid UUID"
	case "oneof":
		return fmt.Sprintf("is not one of: %s", strings.Join(strings.Fields(param), ", "))
	case "alphanum":
		return "may only contain letters and numbers"
	case "numeric", "number":
		return "is not a number"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s=%s", tag, param)
		}
		return fmt.Sprintf("failed %s", tag)
	}
}

func isText(kind reflect.Kind) bool {
	switch kind {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// MinLength requires at least n characters.
func MinLength(n int) Validator[string] {
	return Rule[string](fmt.Sprintf("min=%d", n))
}

// MaxLength allows at most n characters.
func MaxLength(n int) Validator[string] {
	return Rule[string](fmt.Sprintf("max=%d", n))
}

// LengthBetween bounds the character count on both sides.
func LengthBetween(minimum, maximum int) Validator[string] {
	lower, upper := MinLength(minimum), MaxLength(maximum)
	return func(value string) error {
		if err := lower(value); err != nil {
			return err
		}
		return upper(value)
	}
}

// Email requires a syntactically valid email address.
func Email() Validator[string] {
	return Rule[string]("email")
}

// URL requires an absolute URL.
func URL() Validator[string] {
	return Rule[string]("url")
}

// Number is the set of types Min and Max operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Min requires value >= n.
func Min[T Number](n T) Validator[T] {
	return Rule[T](fmt.Sprintf("gte=%v", n))
}

// Max requires value <= n.
func Max[T Number](n T) Validator[T] {
	return Rule[T](fmt.Sprintf("lte=%v", n))
}

// In requires the value to be one of allowed.
func In[T comparable](allowed ...T) Validator[T] {
	set := slices.Clone(allowed)
	return func(value T) error {
		if slices.Contains(set, value) {
			return nil
		}
		names := make([]string, 0, len(set))
		for _, candidate := range set {
			names = append(names, Describe(candidate))
		}
		return Errorf("is not one of: %s", strings.Join(names, ", "))
	}
}

// Match requires the value to match pattern, reporting reason otherwise.
func Match(pattern *regexp.Regexp, reason string) Validator[string] {
	return func(value string) error {
		if pattern == nil {
			return errors.New("validation: match pattern is nil")
		}
		if pattern.MatchString(value) {
			return nil
		}
		return Error{Reason: reason}
	}
}
