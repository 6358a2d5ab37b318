// Package validate checks request inputs against rules declared in the
// `validate` struct tag. Rules are comma-separated; the first failing rule
// per field wins. Field names in the error map come from the json tag.
//
//	type Input struct {
//	    Title    string `json:"title"    validate:"required,min=3,max=100"`
//	    Category string `json:"category" validate:"nullable,in=coding,sports,social"`
//	}
//
// Supported rules: required, nullable (empty value skips the rest), email,
// url, alpha_dash, numeric, integer, min=N, max=N, gte=N, lte=N,
// between=lo,hi and in=a,b,c. For strings min/max/between bound the rune
// length; for numbers they bound the value.
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Struct validates every exported field of v carrying a validate tag and
// returns fieldName → message. An empty map means the input is valid.
func Struct(v interface{}) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := fieldName(rt.Field(i))
		if msg := checkField(parseRules(tag), name, rv.Field(i)); msg != "" {
			errs[name] = msg
		}
	}

	return errs
}

// HasErrors reports whether errs contains any failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func checkField(rules []rule, name string, v reflect.Value) string {
	for _, r := range rules {
		if r.name == "nullable" {
			if isEmpty(v) {
				return ""
			}
			continue
		}
		if msg := r.check(name, v); msg != "" {
			return msg
		}
	}
	return ""
}

type rule struct {
	name  string
	param string
}

func (r rule) check(field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())

	switch r.name {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
	case "integer":
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
	case "min":
		if size(v, raw) < number(r.param) {
			if isNumeric(v) {
				return fmt.Sprintf("The %s must be at least %s.", field, r.param)
			}
			return fmt.Sprintf("The %s must be at least %s characters.", field, r.param)
		}
	case "max":
		if size(v, raw) > number(r.param) {
			if isNumeric(v) {
				return fmt.Sprintf("The %s must not be greater than %s.", field, r.param)
			}
			return fmt.Sprintf("The %s must not exceed %s characters.", field, r.param)
		}
	case "gte":
		if toFloat(v) < number(r.param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, r.param)
		}
	case "lte":
		if toFloat(v) > number(r.param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, r.param)
		}
	case "between":
		lo, hi, ok := strings.Cut(r.param, ",")
		if !ok {
			return ""
		}
		n := size(v, raw)
		if n < number(lo) || n > number(hi) {
			if isNumeric(v) {
				return fmt.Sprintf("The %s must be between %s and %s.", field, lo, hi)
			}
			return fmt.Sprintf("The %s must be between %s and %s characters.", field, lo, hi)
		}
	case "in":
		for _, allowed := range strings.Split(r.param, ",") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// size is the comparable magnitude of a value: the value itself for numeric
// kinds, the rune length for everything else.
func size(v reflect.Value, raw string) float64 {
	if isNumeric(v) {
		return toFloat(v)
	}
	return float64(len([]rune(raw)))
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a value, not an omission
		return false
	default:
		return isNumeric(v) && toFloat(v) == 0
	}
}

func isNumeric(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(fmt.Sprintf("%v", v.Interface()), 64)
	return f
}

func number(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

var ruleNames = []string{
	"required", "nullable", "email", "url", "alpha_dash", "numeric",
	"integer", "min=", "max=", "gte=", "lte=", "in=", "between=",
}

func startsRule(s string) bool {
	for _, n := range ruleNames {
		if strings.HasPrefix(s, n) {
			return true
		}
	}
	return false
}

// parseRules splits the tag on commas, folding tokens that do not start a
// known rule back into the parameter of the preceding in= or between= rule,
// so "required,in=coding,sports,max=20" yields three rules.
func parseRules(tag string) []rule {
	var rules []rule
	for _, token := range strings.Split(tag, ",") {
		if len(rules) > 0 && !startsRule(token) {
			last := &rules[len(rules)-1]
			if last.name == "in" || last.name == "between" {
				last.param += "," + token
				continue
			}
		}
		name, param, _ := strings.Cut(token, "=")
		rules = append(rules, rule{name: name, param: param})
	}
	return rules
}
