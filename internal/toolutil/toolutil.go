// Package toolutil provides shared helpers for go_tldr MCP tools:
// input validation and per-call request IDs.
package toolutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the `validate` struct tags of a tool input and returns a
// single readable error listing every failing field.
func Validate(input any) error {
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return errors.New(strings.Join(FormatValidationErrors(verrs), ", "))
}

// FormatValidationErrors renders one message per failing field.
func FormatValidationErrors(verrs validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s (param: %s)", msg, fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

type requestIDKey struct{}

// WithRequestID attaches a fresh request ID to ctx, along with a logger that
// carries it, so engine logs for the call are correlated.
func WithRequestID(ctx context.Context, tool string) (context.Context, *slog.Logger) {
	id := uuid.NewString()
	log := slog.With(slog.String("request_id", id), slog.String("tool", tool))
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return engine.ContextWithLogger(ctx, log), log
}

// RequestID returns the request ID attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
