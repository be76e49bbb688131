package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(validateDelayBonus, DeckConfig{})
	if err := validate.RegisterTranslation("delay_bonus", trans, func(ut ut.Translator) error {
		return ut.Add("delay_bonus", "{0} must not be set when per_day is false", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("delay_bonus", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register delay_bonus translation: %w", err)
	}

	return validate, trans, nil
}

// validateDelayBonus rejects a mature failure bonus without a day cutoff to anchor it to.
// 600 is the legacy value for no bonus.
func validateDelayBonus(sl validator.StructLevel) {
	deck := sl.Current().Interface().(DeckConfig)
	if deck.PerDay {
		return
	}
	if deck.Delay1 != 0 && deck.Delay1 != 600 {
		sl.ReportError(deck.Delay1, "delay1", "Delay1", "delay_bonus", "")
	}
}
