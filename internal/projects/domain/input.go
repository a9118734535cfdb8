package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input carries the client-supplied project fields. A nil field was omitted
// from the payload and keeps its previous value on update. Image fields and
// authorship are never taken from the client.
type Input struct {
	Title               *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string                `json:"description"`
	DetailedDescription *string                `json:"detailed_description"`
	Category            *string                `json:"category" validate:"omitempty,max=100"`
	Status              *Status                `json:"status" validate:"omitempty,oneof=Development Active Inactive Archived"`
	Tags                []string               `json:"tags" validate:"omitempty,max=100,dive,min=1,max=100"`
	TechStack           []string               `json:"tech_stack" validate:"omitempty,max=100,dive,min=1,max=100"`
	Metrics             map[string]interface{} `json:"metrics"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseInput decodes and validates a project_data payload. Every failure
// wraps ErrMalformedInput. Metric numbers are kept as json.Number so large
// integers survive unchanged.
func ParseInput(payload []byte) (*Input, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: project_data is required", ErrMalformedInput)
	}

	var in Input
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedInput, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedInput)
	}

	in.normalize()

	if err := validate.Struct(&in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedInput, describe(err))
	}
	return &in, nil
}

func (in *Input) normalize() {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		in.Category = &c
	}
	in.Tags = trimAll(in.Tags)
	in.TechStack = trimAll(in.TechStack)
}

// NewProject builds a project for insertion. Title is required.
func NewProject(in *Input, createdBy string) (*Project, error) {
	if in == nil || in.Title == nil || *in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrMalformedInput)
	}

	p := &Project{
		Status:    StatusDevelopment,
		Tags:      []string{},
		TechStack: []string{},
		Metrics:   map[string]interface{}{},
	}
	if createdBy != "" {
		p.CreatedBy = &createdBy
	}
	if err := in.Apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply copies the supplied fields onto p. Empty optional strings clear the
// field.
func (in *Input) Apply(p *Project) error {
	if in.Title != nil {
		if *in.Title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrMalformedInput)
		}
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = optional(*in.Description)
	}
	if in.DetailedDescription != nil {
		p.DetailedDescription = optional(*in.DetailedDescription)
	}
	if in.Category != nil {
		p.Category = optional(*in.Category)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.TechStack != nil {
		p.TechStack = in.TechStack
	}
	if in.Metrics != nil {
		p.Metrics = in.Metrics
	}
	return nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
