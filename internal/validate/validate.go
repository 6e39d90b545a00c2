// Package validate checks each wizard step's slice of the draft before it is
// saved and returns the normalized value the save should use.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Validator runs the per-step schemas.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// EnsureFour pads items with empty strings up to four entries and drops
// anything past the fourth.
func EnsureFour(items []string) []string {
	out := make([]string, domain.ListSlots)
	copy(out, items)
	return out
}

// BasicInfo trims text fields and validates them.
func (v *Validator) BasicInfo(b domain.BasicInfo) (domain.BasicInfo, error) {
	out := b.Clone()
	out.Title = strings.TrimSpace(out.Title)
	out.Subtitle = strings.TrimSpace(out.Subtitle)
	out.Category = strings.TrimSpace(out.Category)
	out.SubCategory = strings.TrimSpace(out.SubCategory)
	out.Topic = strings.TrimSpace(out.Topic)
	out.PrimaryLanguage = strings.TrimSpace(out.PrimaryLanguage)
	out.SubtitleLanguage = strings.TrimSpace(out.SubtitleLanguage)

	schema := basicInfoSchema{
		Title:            out.Title,
		Subtitle:         out.Subtitle,
		Category:         out.Category,
		SubCategory:      out.SubCategory,
		Topic:            out.Topic,
		PrimaryLanguage:  out.PrimaryLanguage,
		SubtitleLanguage: out.SubtitleLanguage,
		Level:            string(out.Level),
		DurationValue:    out.DurationValue,
		DurationUnit:     string(out.DurationUnit),
	}
	if err := v.check(domain.StepBasicInfo, &schema); err != nil {
		return b, err
	}
	return out, nil
}

// AdvancedInfo normalizes the three lists to exactly four entries and then
// validates, so a failure always points at a slot that is too short.
func (v *Validator) AdvancedInfo(a domain.AdvancedInfo) (domain.AdvancedInfo, error) {
	out := a.Clone()
	out.Description = strings.TrimSpace(out.Description)
	out.WhatYouWillLearn = trimAll(EnsureFour(out.WhatYouWillLearn))
	out.TargetAudience = trimAll(EnsureFour(out.TargetAudience))
	out.Requirements = trimAll(EnsureFour(out.Requirements))

	schema := advancedInfoSchema{
		Description:      out.Description,
		WhatYouWillLearn: out.WhatYouWillLearn,
		TargetAudience:   out.TargetAudience,
		Requirements:     out.Requirements,
	}
	if err := v.check(domain.StepAdvancedInfo, &schema); err != nil {
		return a, err
	}
	return out, nil
}

// Curriculum validates section and lecture titles and the cardinality floors.
func (v *Validator) Curriculum(c domain.Curriculum) (domain.Curriculum, error) {
	out := c.Clone()
	schema := curriculumSchema{Sections: make([]sectionSchema, len(out.Sections))}
	for i := range out.Sections {
		sec := &out.Sections[i]
		sec.Title = strings.TrimSpace(sec.Title)
		schema.Sections[i] = sectionSchema{
			Title:    sec.Title,
			Lectures: make([]lectureSchema, len(sec.Lectures)),
		}
		for j := range sec.Lectures {
			sec.Lectures[j].Title = strings.TrimSpace(sec.Lectures[j].Title)
			schema.Sections[i].Lectures[j] = lectureSchema{Title: sec.Lectures[j].Title}
		}
	}
	if err := v.check(domain.StepCurriculum, &schema); err != nil {
		return c, err
	}
	return out, nil
}

// Step validates the slice of d that belongs to step and returns d with that
// slice normalized. The review step has nothing to validate.
func (v *Validator) Step(step domain.Step, d domain.CourseDraft) (domain.CourseDraft, error) {
	out := d.Clone()
	var err error
	switch step {
	case domain.StepBasicInfo:
		out.BasicInfo, err = v.BasicInfo(d.BasicInfo)
	case domain.StepAdvancedInfo:
		out.AdvancedInfo, err = v.AdvancedInfo(d.AdvancedInfo)
	case domain.StepCurriculum:
		out.Curriculum, err = v.Curriculum(d.Curriculum)
	case domain.StepReview:
	default:
		return d, fmt.Errorf("validating unknown step %d", int(step))
	}
	if err != nil {
		return d, err
	}
	return out, nil
}

func (v *Validator) check(step domain.Step, schema any) error {
	err := v.v.Struct(schema)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %s: %w", step, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe)
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = message(fe)
	}
	return &ValidationError{Step: step, Fields: fields}
}

// fieldKey drops the schema type name from the namespace, leaving paths such
// as "sections[1].lectures[0].title".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must contain exactly %s entries", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func trimAll(items []string) []string {
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}
