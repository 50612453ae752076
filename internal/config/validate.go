package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

func validatorInstance() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("abspath", func(fl validator.FieldLevel) bool {
			return filepath.IsAbs(fl.Field().String())
		})
		_ = v.RegisterTranslation("abspath", trans,
			func(ut ut.Translator) error {
				return ut.Add("abspath", "{0} must be an absolute path", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("abspath", fe.Field())
				return msg
			},
		)

		vInst, vTrans = v, trans
	})
	return vInst, vTrans
}

// Validate checks cfg and returns every violation as one error
func Validate(cfg *Config) error {
	v, trans := validatorInstance()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, errors.New(fe.Translate(trans)))
	}
	return errors.Join(msgs...)
}
