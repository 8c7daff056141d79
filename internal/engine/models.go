package engine

import (
	"context"
	"errors"
	"strings"
)

// ModelClient lists the models of a Text Generation Service and applies the
// default-selection policy. Model lists are fetched fresh on every call.
type ModelClient struct {
	preference string
}

// NewModelClient returns a ModelClient preferring models whose name contains
// preference (case-insensitive).
func NewModelClient(preference string) *ModelClient {
	return &ModelClient{preference: preference}
}

// ListModels fails with NoModelsAvailable when the call errors or the set is empty.
func (m *ModelClient) ListModels(ctx context.Context, gen TextGenerator) ([]string, error) {
	metrics.ModelListRequests.Add(1)
	models, err := gen.ListModels(ctx)
	if err != nil {
		return nil, newError(KindNoModelsAvailable, err)
	}
	if len(models) == 0 {
		return nil, newError(KindNoModelsAvailable, errors.New("empty model list"))
	}
	return models, nil
}

// Default lists models and picks one with SelectDefaultModel.
func (m *ModelClient) Default(ctx context.Context, gen TextGenerator) (string, error) {
	models, err := m.ListModels(ctx, gen)
	if err != nil {
		return "", err
	}
	return SelectDefaultModel(models, m.preference), nil
}

// SelectDefaultModel returns the first model containing preference
// (case-insensitive), else the first model. First match wins, in listed order.
func SelectDefaultModel(models []string, preference string) string {
	if len(models) == 0 {
		return ""
	}
	pref := strings.ToLower(preference)
	if pref != "" {
		for _, name := range models {
			if strings.Contains(strings.ToLower(name), pref) {
				return name
			}
		}
	}
	return models[0]
}
