package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// withEnvKeys rewrites env parse errors, which name the Go field, so they
// name the environment variable instead. Other errors pass through.
func withEnvKeys(cfg any, err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}

	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	errs := make([]error, 0, len(agg.Errors))
	for _, e := range agg.Errors {
		var parseErr env.ParseError
		if errors.As(e, &parseErr) {
			if key := envKey(t, parseErr.Name); key != "" {
				e = fmt.Errorf("%s: invalid %s value: %w", key, parseErr.Type, parseErr.Err)
			}
		}
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

func envKey(t reflect.Type, field string) string {
	f, ok := t.FieldByName(field)
	if !ok {
		return ""
	}
	return strings.Split(f.Tag.Get("env"), ",")[0]
}
