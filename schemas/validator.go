package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	SourceBody     = "body"
	SourcePath     = "path"
	SourceResponse = "response"
)

var validate *validator.Validate

func init() {
	// Prices and ratings go out as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})

	mustRegister("dgte", decimalGTE)
	mustRegister("dlte", decimalLTE)
	mustRegister("dplaces", decimalPlaces)
	mustRegister("dmaxdigits", decimalMaxDigits)
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// FieldError describes one failed field. Loc starts with the source
// ("body", "path" or "response") followed by the field name and, for list
// items, the index.
type FieldError struct {
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
	Type string        `json:"type"`
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		loc := make([]string, 0, len(fe.Loc))
		for _, l := range fe.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+": "+fe.Msg)
	}
	noun := "errors"
	if len(e.Errors) == 1 {
		noun = "error"
	}
	return fmt.Sprintf("%d validation %s: %s", len(e.Errors), noun, strings.Join(parts, "; "))
}

// Fields returns the field name of every error, in order.
func (e *ValidationError) Fields() []string {
	names := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if len(fe.Loc) > 1 {
			names = append(names, fmt.Sprint(fe.Loc[1]))
		}
	}
	return names
}

func (e *ValidationError) add(fe FieldError) {
	e.Errors = append(e.Errors, fe)
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewFieldError builds a single-field ValidationError.
func NewFieldError(source, field, msg, typ string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{
		Loc:  []interface{}{source, field},
		Msg:  msg,
		Type: typ,
	}}}
}

// Decode reads a JSON object into dst field by field, so that every type
// mismatch is reported rather than only the first one, then applies the
// validate tags. Unknown keys are ignored and null leaves the field at the
// value dst already holds.
func Decode(body []byte, dst interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return &ValidationError{Errors: []FieldError{{
			Loc:  []interface{}{SourceBody},
			Msg:  "Input should be a valid JSON object",
			Type: "model_attributes_type",
		}}}
	}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	verr := &ValidationError{}
	failed := make(map[string]bool)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if name == "" {
			continue
		}
		value, ok := raw[name]
		if !ok || string(value) == "null" {
			continue
		}
		if err := json.Unmarshal(value, rv.Field(i).Addr().Interface()); err != nil {
			verr.add(typeError(name, sf.Type))
			failed[name] = true
		}
	}

	if err := check(SourceBody, dst); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve.Errors {
			if len(fe.Loc) > 1 && failed[fmt.Sprint(fe.Loc[1])] {
				continue
			}
			verr.add(fe)
		}
	}
	return verr.orNil()
}

// check runs the validate tags of v and reports failures under source.
func check(source string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		msg, typ := describe(fe)
		verr.add(FieldError{Loc: location(source, fe.Namespace()), Msg: msg, Type: typ})
	}
	return verr
}

// location turns "OrderCreate.product_ids[2]" into [source, "product_ids", 2].
func location(source, namespace string) []interface{} {
	loc := []interface{}{source}
	segments := strings.Split(namespace, ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	for _, seg := range segments {
		name, rest, found := strings.Cut(seg, "[")
		loc = append(loc, name)
		for found {
			var idx string
			idx, rest, _ = strings.Cut(rest, "]")
			if n, err := strconv.Atoi(idx); err == nil {
				loc = append(loc, n)
			} else {
				loc = append(loc, idx)
			}
			_, rest, found = strings.Cut(rest, "[")
		}
	}
	return loc
}

func describe(fe validator.FieldError) (string, string) {
	isList := fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		return "Field required", "missing"
	case "min":
		if isList {
			return fmt.Sprintf("List should have at least %s items", fe.Param()), "too_short"
		}
		return fmt.Sprintf("String should have at least %s characters", fe.Param()), "string_too_short"
	case "max":
		if isList {
			return fmt.Sprintf("List should have at most %s items", fe.Param()), "too_long"
		}
		return fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long"
	case "len":
		return fmt.Sprintf("String should have exactly %s characters", fe.Param()), "string_length"
	case "gt":
		return fmt.Sprintf("Input should be greater than %s", fe.Param()), "greater_than"
	case "gte", "dgte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal"
	case "dlte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param()), "less_than_equal"
	case "dplaces":
		return fmt.Sprintf("Decimal input should have no more than %s decimal places", fe.Param()), "decimal_max_places"
	case "dmaxdigits":
		return fmt.Sprintf("Decimal input should have no more than %s digits in total", fe.Param()), "decimal_max_digits"
	case "required_if":
		return "Field required when " + strings.Replace(fe.Param(), " ", " is ", 1), "missing"
	default:
		return fmt.Sprintf("Value failed the %q check", fe.Tag()), fe.Tag()
	}
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	flagType    = reflect.TypeOf(Flag(false))
	timeType    = reflect.TypeOf(time.Time{})
)

func typeError(name string, t reflect.Type) FieldError {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fe := FieldError{Loc: []interface{}{SourceBody, name}}
	switch {
	case t == flagType:
		fe.Msg, fe.Type = "Input should be a valid integer flag (0 or 1)", "int_parsing"
	case t == decimalType:
		fe.Msg, fe.Type = "Input should be a valid number", "decimal_parsing"
	case t == timeType:
		fe.Msg, fe.Type = "Input should be a valid datetime", "datetime_parsing"
	case t.Kind() == reflect.String:
		fe.Msg, fe.Type = "Input should be a valid string", "string_type"
	case t.Kind() == reflect.Bool:
		fe.Msg, fe.Type = "Input should be a valid boolean", "bool_parsing"
	case t.Kind() == reflect.Slice:
		fe.Msg, fe.Type = "Input should be a valid list of integers", "list_type"
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		fe.Msg, fe.Type = "Input should be a valid integer", "int_parsing"
	default:
		fe.Msg, fe.Type = "Input has an invalid type", "type_error"
	}
	return fe
}

func jsonName(sf reflect.StructField) string {
	if !sf.IsExported() {
		return ""
	}
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

func decimalString(v reflect.Value) interface{} {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func decimalGTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	return err == nil && d.GreaterThanOrEqual(bound)
}

func decimalLTE(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	bound, err := decimal.NewFromString(fl.Param())
	return err == nil && d.LessThanOrEqual(bound)
}

func decimalPlaces(fl validator.FieldLevel) bool {
	_, places, ok := digits(fl)
	if !ok {
		return false
	}
	limit, err := strconv.Atoi(fl.Param())
	return err == nil && places <= limit
}

func decimalMaxDigits(fl validator.FieldLevel) bool {
	whole, places, ok := digits(fl)
	if !ok {
		return false
	}
	limit, err := strconv.Atoi(fl.Param())
	return err == nil && whole+places <= limit
}

// digits counts the significant integer digits and the fractional digits of
// a decimal field, ignoring sign and trailing zeros.
func digits(fl validator.FieldLevel) (int, int, bool) {
	d, ok := fieldDecimal(fl)
	if !ok {
		return 0, 0, false
	}
	whole, frac, _ := strings.Cut(d.Abs().String(), ".")
	whole = strings.TrimLeft(whole, "0")
	return len(whole), len(frac), true
}
