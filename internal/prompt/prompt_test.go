package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cmstheme/pkg/forms"
	"github.com/goliatone/go-cmstheme/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputCfgs    []InputConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func carouselForm() model.Form {
	return model.Form{
		Component: "LogoCarousel",
		Label:     "Logo Carousel",
		Fields: []model.Field{
			{Name: "title", Type: model.FieldTypeText, Label: "Title"},
			{Name: "autoplay", Type: model.FieldTypeBoolean, Label: "Autoplay", Default: true},
			{
				Name:        "delay",
				Type:        model.FieldTypeInteger,
				Label:       "Delay",
				Default:     3000,
				Validations: []model.ValidationRule{model.MinRule(500)},
			},
			{
				Name:    "background",
				Type:    model.FieldTypeChoice,
				Label:   "Background",
				Default: "light",
				Choices: []model.Choice{{Value: "light", Label: "Light"}, {Value: "dark", Label: "Dark"}},
			},
			{Name: "intro", Type: model.FieldTypeRichText, Label: "Intro"},
			{Name: "attributes", Type: model.FieldTypeAttributes, Label: "Attributes"},
		},
	}
}

func TestConfigureCollectsAndCleansAnswers(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Partners", "750", "data-role=logos"},
		confirm:   []bool{false},
		selectIdx: []int{1},
		textAreas: []string{"<p>Hello</p><script>x()</script>"},
	}

	got, err := Configure(context.Background(), driver, carouselForm())
	if err != nil {
		t.Fatalf("configure: %v", err)
	}

	want := map[string]any{
		"title":      "Partners",
		"autoplay":   false,
		"delay":      750,
		"background": "dark",
		"intro":      "<p>Hello</p>",
		"attributes": map[string]string{"data-role": "logos"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
	if driver.inputCfgs[1].Default != "3000" {
		t.Fatalf("expected integer default offered, got %q", driver.inputCfgs[1].Default)
	}
}

func TestConfigureBlankAnswersKeepDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", ""},
		confirm:   []bool{true},
		selectIdx: []int{0},
		textAreas: []string{""},
	}

	got, err := Configure(context.Background(), driver, carouselForm())
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if got["delay"] != 3000 || got["background"] != "light" {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestIntegerValidatorEnforcesMinimum(t *testing.T) {
	field, _ := carouselForm().Field("delay")
	validate := integerValidator(field)

	if err := validate("499"); err == nil || err.Error() != forms.MessageMinValue(500) {
		t.Fatalf("expected min message, got %v", err)
	}
	if err := validate("1.5"); err == nil || err.Error() != forms.MessageWholeNumber {
		t.Fatalf("expected whole number message, got %v", err)
	}
	if err := validate("500"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigureReportsValidationErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Partners", "100", ""},
		confirm:   []bool{true},
		selectIdx: []int{0},
		textAreas: []string{""},
	}

	_, err := Configure(context.Background(), driver, carouselForm())
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	last := driver.infoMessages[len(driver.infoMessages)-1]
	if last != "delay: "+forms.MessageMinValue(500) {
		t.Fatalf("unexpected info message %q", last)
	}
}
