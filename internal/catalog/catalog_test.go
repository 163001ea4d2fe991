package catalog_test

import (
	"testing"

	"github.com/JaimeStill/prism/internal/catalog"
)

func ptr(s string) *string { return &s }

func TestCategories(t *testing.T) {
	t.Run("skips nil levels", func(t *testing.T) {
		d := &catalog.ProductDetail{
			Category0: ptr("Home"),
			Category2: ptr("Lighting"),
		}

		got := d.Categories()
		if len(got) != 2 || got[0] != "Home" || got[1] != "Lighting" {
			t.Errorf("Categories = %v, want [Home Lighting]", got)
		}
	})

	t.Run("skips empty-string levels", func(t *testing.T) {
		d := &catalog.ProductDetail{
			Category0: ptr("Home"),
			Category1: ptr(""),
			Category2: ptr("Lighting"),
		}

		got := d.Categories()
		if len(got) != 2 || got[0] != "Home" || got[1] != "Lighting" {
			t.Errorf("Categories = %v, want [Home Lighting]", got)
		}
	})

	t.Run("no categories", func(t *testing.T) {
		d := &catalog.ProductDetail{}
		if got := d.Categories(); len(got) != 0 {
			t.Errorf("Categories = %v, want empty", got)
		}
	})

	t.Run("preserves level order", func(t *testing.T) {
		d := &catalog.ProductDetail{
			Category0: ptr("Home"),
			Category1: ptr("Furniture"),
			Category2: ptr("Tables"),
			Category3: ptr("Dining"),
		}

		got := d.Categories()
		want := []string{"Home", "Furniture", "Tables", "Dining"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Categories[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})
}
