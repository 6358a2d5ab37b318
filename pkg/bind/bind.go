// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES (default 4 MB) to prevent memory exhaustion.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Form populates dest from urlencoded or multipart form values. Field
// names come from the `json` tag (falling back to the lowercased Go
// name). Supported field kinds: string, int, float, bool.
//
// Unlike JSON, Form does not validate: form inputs are often normalized
// (lowercased, defaulted) before their rules apply, so validation is the
// caller's step.
func Form(r *http.Request, dest interface{}) (err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err = r.ParseMultipartForm(maxBodyBytes()); err != nil {
			return fmt.Errorf("invalid multipart form: %w", err)
		}
	} else {
		if err = r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form: %w", err)
		}
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return errors.New("bind: dest must be a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)
		if !value.CanSet() {
			continue
		}

		name := field.Tag.Get("json")
		if idx := strings.Index(name, ","); idx != -1 {
			name = name[:idx]
		}
		if name == "" || name == "-" {
			name = strings.ToLower(field.Name)
		}

		raw := r.FormValue(name)
		if raw == "" {
			continue
		}

		switch value.Kind() {
		case reflect.String:
			value.SetString(raw)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, perr := strconv.ParseInt(raw, 10, 64)
			if perr != nil {
				return fmt.Errorf("field %s: %w", name, perr)
			}
			value.SetInt(n)
		case reflect.Float32, reflect.Float64:
			f, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				return fmt.Errorf("field %s: %w", name, perr)
			}
			value.SetFloat(f)
		case reflect.Bool:
			b, perr := strconv.ParseBool(raw)
			if perr != nil {
				return fmt.Errorf("field %s: %w", name, perr)
			}
			value.SetBool(b)
		}
	}

	return nil
}
