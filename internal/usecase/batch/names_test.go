package batch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appops-dev/appops/internal/domain"
)

func TestNormalizeAppNames(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "single name", input: "blog", want: []string{"blog"}},
		{name: "single name with spaces", input: "  blog ", want: []string{"blog"}},
		{name: "app value", input: domain.App{Name: "blog"}, want: []string{"blog"}},
		{name: "app pointer", input: &domain.App{Name: "api"}, want: []string{"api"}},
		{name: "string slice keeps order and duplicates", input: []string{"b-app", "a-app", "b-app"}, want: []string{"b-app", "a-app", "b-app"}},
		{name: "blank entries dropped", input: []string{"blog", "", "  ", "api"}, want: []string{"blog", "api"}},
		{name: "app slice", input: []domain.App{{Name: "blog"}, {Name: "api"}}, want: []string{"blog", "api"}},
		{name: "namer slice", input: []domain.AppNamer{domain.App{Name: "blog"}}, want: []string{"blog"}},
		{name: "mixed slice", input: []any{"blog", domain.App{Name: "api"}, []string{"web", ""}}, want: []string{"blog", "api", "web"}},
		{name: "nil", input: nil, want: []string{}},
		{name: "nil app pointer", input: (*domain.App)(nil), want: []string{}},
		{name: "nil app pointer in namer slice", input: []domain.AppNamer{(*domain.App)(nil), domain.App{Name: "blog"}}, want: []string{"blog"}},
		{name: "empty slice", input: []string{}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAppNames(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAppNames_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "invalid single", input: "-bad"},
		{name: "one invalid among valid", input: []string{"blog", "Has_Upper", "api"}},
		{name: "injection attempt", input: "blog; apps:destroy blog"},
		{name: "invalid app value", input: domain.App{Name: "a"}},
		{name: "unsupported type", input: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAppNames(tt.input)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, domain.ErrInvalidName), "got %v", err)
		})
	}
}
