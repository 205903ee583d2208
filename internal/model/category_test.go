package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		want   Category
		wantOk bool
	}{
		{name: "exact match", label: "Dining", want: CategoryDining, wantOk: true},
		{name: "case insensitive", label: "dining", want: CategoryDining, wantOk: true},
		{name: "surrounding whitespace", label: "  Gas  ", want: CategoryGas, wantOk: true},
		{name: "unknown label coerces to Other", label: "Cryptocurrency", want: CategoryOther, wantOk: false},
		{name: "empty label", label: "", want: CategoryOther, wantOk: false},
		{name: "wildcard is not a classification", label: "All", want: CategoryOther, wantOk: false},
		{name: "Other itself is valid", label: "Other", want: CategoryOther, wantOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestCategoriesExcludesWildcard(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEqual(t, CategoryAll, c)
	}
	assert.Len(t, Categories(), 11)
}
