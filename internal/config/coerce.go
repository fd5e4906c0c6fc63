package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// coerce converts merged layer values to the kinds of the Config fields
// they decode into. Environment values arrive as strings, and a TOML
// file may write 1 for true or a bare number for a puzzle ID.
func coerce(m map[string]any) error {
	return coerceStruct(m, reflect.TypeOf(Config{}), "")
}

func coerceStruct(m map[string]any, t reflect.Type, prefix string) error {
	var errs []error
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			continue
		}
		val, ok := m[name]
		if !ok {
			continue
		}

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			section, ok := val.(map[string]any)
			if !ok {
				errs = append(errs, &ValidationError{Path: path, Message: "expected a table", Value: val})
				continue
			}
			if err := coerceStruct(section, field.Type, path); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		converted, err := coerceValue(field.Type.Kind(), val)
		if err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: err.Error(), Value: val})
			continue
		}
		m[name] = converted
	}
	return errors.Join(errs...)
}

func coerceValue(kind reflect.Kind, val any) (any, error) {
	switch kind {
	case reflect.String:
		switch v := val.(type) {
		case string:
			return v, nil
		case int64, int, float64, bool:
			return fmt.Sprint(v), nil
		}
		return nil, errors.New("expected a string")

	case reflect.Bool:
		switch v := val.(type) {
		case bool:
			return v, nil
		case string:
			return parseBool(v)
		case int64:
			if v == 0 || v == 1 {
				return v == 1, nil
			}
		case int:
			if v == 0 || v == 1 {
				return v == 1, nil
			}
		}
		return nil, errors.New("expected a boolean")

	case reflect.Int:
		switch v := val.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, errors.New("expected an integer")
			}
			return n, nil
		}
		return nil, errors.New("expected an integer")
	}
	return val, nil
}

// parseBool accepts the words people put in environment variables.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, errors.New("expected a boolean")
}
