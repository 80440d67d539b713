package quote

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidParticipantSplit = errors.New("at least one adult is required")
	ErrNextID                  = errors.New("get next id from generator")
	ErrLogic                   = errors.New("logic error")
	ErrItemNotFound            = errors.New("item not found")
)

type ParseError struct {
	Field string
	Value string
	err   error
}

func newParseError(field, value string, err error) *ParseError {
	return &ParseError{Field: field, Value: value, err: err}
}

func IsParseError(err error) *ParseError {
	if err == nil {
		return nil
	}

	var parseError *ParseError

	if errors.As(err, &parseError) {
		return parseError
	}

	return nil
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %v: invalid value %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

type RangeUnavailableError struct {
	Date time.Time
}

func IsRangeUnavailableError(err error) *RangeUnavailableError {
	if err == nil {
		return nil
	}

	var rangeErr *RangeUnavailableError

	if errors.As(err, &rangeErr) {
		return rangeErr
	}

	return nil
}

func (e *RangeUnavailableError) Error() string {
	return fmt.Sprintf("date %v is unavailable", e.Date.Format(DateLayout))
}

type UnknownAddOnError struct {
	Name string
}

func IsUnknownAddOnError(err error) *UnknownAddOnError {
	if err == nil {
		return nil
	}

	var addOnErr *UnknownAddOnError

	if errors.As(err, &addOnErr) {
		return addOnErr
	}

	return nil
}

func (e *UnknownAddOnError) Error() string {
	return fmt.Sprintf("add-on %q is not offered for this item", e.Name)
}

type ParticipantRangeError struct {
	Count int
	Min   int
	Max   int
}

func IsParticipantRangeError(err error) *ParticipantRangeError {
	if err == nil {
		return nil
	}

	var rangeErr *ParticipantRangeError

	if errors.As(err, &rangeErr) {
		return rangeErr
	}

	return nil
}

func (e *ParticipantRangeError) Error() string {
	return fmt.Sprintf("participant count %v is outside allowed range [%v, %v]", e.Count, e.Min, e.Max)
}

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
