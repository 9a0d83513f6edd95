package validation

import (
	"errors"
	"fmt"
	"strings"

	"storesync/internal/logger"
	"storesync/internal/services/wix"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func New(logger *logger.Logger) *Validator {
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateProduct checks the catalog payload before it is sent.
func (v *Validator) ValidateProduct(product *wix.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}

	err := v.validate.Struct(product)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid product %q: %s", product.Name, strings.Join(msgs, ", "))
	}
	return fmt.Errorf("invalid product %q: %w", product.Name, err)
}

// FilterMedia drops entries that are not absolute URLs.
func (v *Validator) FilterMedia(urls []string) []string {
	valid := make([]string, 0, len(urls))
	for _, u := range urls {
		if err := v.validate.Var(u, "required,url"); err != nil {
			v.logger.Debug("Dropping invalid media URL %q", u)
			continue
		}
		valid = append(valid, u)
	}
	if dropped := len(urls) - len(valid); dropped > 0 {
		v.logger.Warn("Dropped %d invalid media URLs", dropped)
	}
	return valid
}
