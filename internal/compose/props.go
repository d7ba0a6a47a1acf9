// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// props.go decodes component attributes into typed props structs via
// reflection, the same way encoding/json maps keys to fields. Fields match
// by `md` tag or lower-cased name; a Children-typed field receives the
// deferred subtree. Unknown props and unparsable values are skipped with a
// warning so a component always renders with whatever props were valid.
package compose

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

var childrenType = reflect.TypeOf(Children{})

// Component adapts a typed renderer into a Renderer. P must be a struct;
// registration panics otherwise, since that is a programming error rather
// than a document error.
func Component[P any](fn func(props *P) View) Renderer {
	rt := reflect.TypeOf((*P)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("compose: props type %s is not a struct", rt))
	}

	// Resolve prop names to field indices once, at registration.
	fields := make(map[string]int, rt.NumField())
	childrenIdx := -1
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Type == childrenType {
			childrenIdx = i
			continue
		}
		name := f.Tag.Get("md")
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fields[name] = i
	}

	return func(attrs []Attribute, children Children) View {
		var props P
		rv := reflect.ValueOf(&props).Elem()
		for _, a := range attrs {
			idx, ok := fields[a.Name]
			if !ok {
				slog.Warn("unknown component prop", "type", rt.String(), "prop", a.Name)
				continue
			}
			if err := setProp(rv.Field(idx), a.Value); err != nil {
				slog.Warn("component prop value not usable",
					"type", rt.String(), "prop", a.Name, "value", a.Value, "error", err)
			}
		}
		if childrenIdx >= 0 {
			rv.Field(childrenIdx).Set(reflect.ValueOf(children))
		}
		return fn(&props)
	}
}

// setProp converts an attribute string into the field's type. Only scalar
// prop kinds are supported; anything richer belongs in an untyped Renderer.
func setProp(v reflect.Value, s string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		// A bare attribute with no value means true, per HTML convention.
		if s == "" {
			v.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported prop kind %s", v.Kind())
	}
	return nil
}
