package util

import (
	"encoding"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// LoadConfig sets the fields of the struct pointed to by c from the environment.
// The variable name is prefix + field name unless overridden with an `env` tag.
// Fields without a variable keep their value; fields tagged `required:"true"`
// must be set by either. Durations use time.ParseDuration syntax ("1s"), fields
// implementing encoding.TextUnmarshaler decode themselves and any other
// non-string field is decoded as JSON.
func LoadConfig(prefix string, c any) error {
	rt, rc := reflect.TypeOf(c).Elem(), reflect.ValueOf(c).Elem()
	for i := 0; i < rt.NumField(); i++ {
		rft := rt.Field(i)
		if !rft.IsExported() {
			continue
		}
		k := rft.Tag.Get("env")
		if k == "" {
			k = prefix + rft.Name
		}
		s, ok := os.LookupEnv(k)
		if !ok && rft.Tag.Get("required") == "true" && rc.Field(i).IsZero() {
			return fmt.Errorf("failed to lookup required field %q in env (%s)", rft.Name, k)
		} else if !ok {
			continue
		}
		if err := setField(rc.Field(i), s); err != nil {
			return fmt.Errorf("failed to unmarshal %q(%s) from %q: %w", k, rft.Type, s, err)
		}
	}
	return nil
}

func setField(v reflect.Value, s string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(s))
	}
	if v.Kind() == reflect.String {
		v.SetString(s)
		return nil
	}
	return json.Unmarshal([]byte(s), v.Addr().Interface())
}
