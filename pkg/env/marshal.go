package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MarshalEnv reflects over a config struct (or pointer to one) and renders
// .env content from its `env` tags, in field order. Empty strings and nil
// slices are skipped; booleans are always written since their default may be
// true.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", fmt.Errorf("marshal env: nil %T", c)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("marshal env: expected struct, got %s", v.Kind())
	}
	t := v.Type()

	var lines []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("env")

		if tag == "" || !field.IsExported() {
			continue
		}

		// "KEY,required,notEmpty" or "KEY"
		key := strings.Split(tag, ",")[0]
		if key == "" {
			continue
		}

		val := v.Field(i)
		if isEmptyValue(val) {
			continue
		}

		sep := field.Tag.Get("envSeparator")
		if sep == "" {
			sep = ","
		}
		strVal, err := formatValue(val, sep)
		if err != nil {
			return "", fmt.Errorf("marshal env: %s: %w", key, err)
		}
		quoted, err := quote(strVal)
		if err != nil {
			return "", fmt.Errorf("marshal env: %s: %w", key, err)
		}
		lines = append(lines, fmt.Sprintf("%s=%s", key, quoted))
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func formatValue(v reflect.Value, sep string) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Slice:
		items := make([]string, v.Len())
		for i := range items {
			s, err := formatValue(v.Index(i), sep)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return strings.Join(items, sep), nil
	case reflect.Ptr:
		return formatValue(v.Elem(), sep)
	}
	return "", fmt.Errorf("unsupported kind %s", v.Kind())
}

// quote wraps values godotenv would otherwise split, truncate or expand.
// Single quotes are read back literally; double quotes are the fallback for
// values holding a single quote, and only when nothing in them gets unescaped
// or expanded.
func quote(s string) (string, error) {
	if s == "" || !strings.ContainsAny(s, " \t#\"'=\n\r\\$") {
		return s, nil
	}
	if !strings.Contains(s, "'") && !strings.HasSuffix(s, `\`) {
		return "'" + s + "'", nil
	}
	if !strings.ContainsAny(s, "\"\\$") {
		return `"` + s + `"`, nil
	}
	return "", fmt.Errorf("value mixes quotes and escapes that .env files cannot hold: %q", s)
}
