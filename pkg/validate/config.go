package validate

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/foodsync/pkg/errors"
)

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func instance() *validator.Validate {
	validatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// Config checks a configuration struct against its `validate` tags and
// reports every failing field in one configuration error.
func Config(component string, cfg any) error {
	err := instance().Struct(cfg)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !stderrors.As(err, &invalid) || len(invalid) == 0 {
		return errors.NewConfigError(component, "invalid configuration", err)
	}

	problems := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.NewConfigError(component, strings.Join(problems, "; "), invalid)
}

// Fields maps each failing field of an error returned by Config to its
// failed tag.
func Fields(err error) map[string]string {
	out := make(map[string]string)
	var invalid validator.ValidationErrors
	if !stderrors.As(err, &invalid) {
		return out
	}
	for _, fe := range invalid {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
