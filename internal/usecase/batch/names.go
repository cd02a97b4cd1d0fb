package batch

import (
	"fmt"
	"strings"

	"github.com/appops-dev/appops/internal/domain"
)

// NormalizeAppNames turns what a caller hands in into a flat, ordered list of
// validated app names. Accepted inputs are a name, a domain.AppNamer, or a
// slice of either (including []any mixing both, nested slices included).
// Names are trimmed, empty entries and nil apps are dropped, duplicates are kept. The first
// invalid name fails the whole call with a *domain.InvalidNameError.
func NormalizeAppNames(input any) ([]string, error) {
	var names []string
	if err := flattenAppNames(input, &names); err != nil {
		return nil, err
	}

	apps := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			apps = append(apps, name)
		}
	}
	if err := domain.MustBeValidResourceNames(apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func flattenAppNames(input any, names *[]string) error {
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		*names = append(*names, v)
	case *domain.App:
		if v == nil {
			return nil
		}
		*names = append(*names, v.Name)
	case domain.AppNamer:
		*names = append(*names, v.AppName())
	case []string:
		*names = append(*names, v...)
	case []domain.App:
		for _, app := range v {
			*names = append(*names, app.Name)
		}
	case []domain.AppNamer:
		for _, app := range v {
			if err := flattenAppNames(app, names); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := flattenAppNames(item, names); err != nil {
				return err
			}
		}
	default:
		return &domain.InvalidNameError{Name: fmt.Sprintf("%v", input)}
	}
	return nil
}
