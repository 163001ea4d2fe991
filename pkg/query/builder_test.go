package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/prism/pkg/query"
)

func ptr(s string) *string { return &s }

func projection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "image_prediction", "ip").
		Project("batch_key", "BatchKey").
		Project("product_key", "ProductKey").
		Project("colour_status", "ColourStatus")
}

func TestBuild(t *testing.T) {
	t.Run("no conditions", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).Build()

		want := "SELECT ip.batch_key, ip.product_key, ip.colour_status FROM public.image_prediction ip"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("conditions number parameters in order", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereEquals("BatchKey", "b-1").
			WhereEquals("ColourStatus", "MISMATCH").
			Build()

		want := "SELECT ip.batch_key, ip.product_key, ip.colour_status " +
			"FROM public.image_prediction ip " +
			"WHERE ip.batch_key = $1 AND ip.colour_status = $2"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 || args[0] != "b-1" || args[1] != "MISMATCH" {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("default sort applies", func(t *testing.T) {
		sql, _ := query.NewBuilder(projection(), query.SortField{Field: "BatchKey", Descending: true}).Build()

		want := "SELECT ip.batch_key, ip.product_key, ip.colour_status " +
			"FROM public.image_prediction ip ORDER BY ip.batch_key DESC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("explicit sort overrides default", func(t *testing.T) {
		sql, _ := query.NewBuilder(projection(), query.SortField{Field: "BatchKey", Descending: true}).
			OrderByFields([]query.SortField{{Field: "ColourStatus"}}).
			Build()

		want := "SELECT ip.batch_key, ip.product_key, ip.colour_status " +
			"FROM public.image_prediction ip ORDER BY ip.colour_status ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})
}

func TestBuildCount(t *testing.T) {
	sql, args := query.NewBuilder(projection()).
		WhereEquals("BatchKey", "b-1").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.image_prediction ip WHERE ip.batch_key = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(projection()).BuildPage(3, 20)

	want := "SELECT ip.batch_key, ip.product_key, ip.colour_status " +
		"FROM public.image_prediction ip LIMIT 20 OFFSET 40"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(projection()).BuildSingle("ProductKey", "p-1")

	want := "SELECT ip.batch_key, ip.product_key, ip.colour_status " +
		"FROM public.image_prediction ip WHERE ip.product_key = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "p-1" {
		t.Errorf("args = %v", args)
	}
}

func TestConditions(t *testing.T) {
	t.Run("contains wraps with wildcards", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereContains("ColourStatus", ptr("MIS")).
			Build()

		if want := "WHERE ip.colour_status ILIKE $1"; !strings.Contains(sql, want) {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 1 || args[0] != "%MIS%" {
			t.Errorf("args = %v, want [%%MIS%%]", args)
		}
	})

	t.Run("nil and empty values are no-ops", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereContains("ColourStatus", nil).
			WhereContains("ColourStatus", ptr("")).
			WhereEquals("BatchKey", (*string)(nil)).
			WhereIn("ProductKey", nil).
			WhereSearch(nil, "ColourStatus").
			Build()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("in numbers each placeholder", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereIn("ColourStatus", []any{"MATCH", "MISMATCH"}).
			Build()

		if want := "WHERE ip.colour_status IN ($1, $2)"; !strings.Contains(sql, want) {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 {
			t.Errorf("args = %v", args)
		}
	})

	t.Run("nullable emits is null", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereNullable("ColourStatus", nil).
			Build()

		if want := "WHERE ip.colour_status IS NULL"; !strings.Contains(sql, want) {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("search spans fields with or", func(t *testing.T) {
		sql, args := query.NewBuilder(projection()).
			WhereSearch(ptr("oak"), "ColourStatus", "BatchKey").
			Build()

		want := "WHERE (ip.colour_status ILIKE $1 OR ip.batch_key ILIKE $2)"
		if !strings.Contains(sql, want) {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 || args[0] != "%oak%" || args[1] != "%oak%" {
			t.Errorf("args = %v", args)
		}
	})
}

func TestParseSortFields(t *testing.T) {
	t.Run("mixed directions", func(t *testing.T) {
		got := query.ParseSortFields("name,-created_at")
		if len(got) != 2 {
			t.Fatalf("fields = %d, want 2", len(got))
		}
		if got[0].Field != "name" || got[0].Descending {
			t.Errorf("fields[0] = %+v", got[0])
		}
		if got[1].Field != "created_at" || !got[1].Descending {
			t.Errorf("fields[1] = %+v", got[1])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := query.ParseSortFields(""); got != nil {
			t.Errorf("fields = %v, want nil", got)
		}
	})

	t.Run("blank segments skipped", func(t *testing.T) {
		got := query.ParseSortFields("name, ,-age")
		if len(got) != 2 {
			t.Errorf("fields = %v, want 2 entries", got)
		}
	})
}

func TestProjectionJoin(t *testing.T) {
	p := query.
		NewProjectionMap("public", "products", "p").
		Project("product_key", "ProductKey").
		Join("public", "product_details", "pd", "LEFT JOIN", "pd.product_url = p.system_name").
		Project("product_title", "ProductTitle")

	wantFrom := "public.products p LEFT JOIN public.product_details pd ON pd.product_url = p.system_name"
	if got := p.From(); got != wantFrom {
		t.Errorf("From = %q, want %q", got, wantFrom)
	}

	if got := p.Column("ProductTitle"); got != "pd.product_title" {
		t.Errorf("Column(ProductTitle) = %q, want pd.product_title", got)
	}
	if got := p.Column("ProductKey"); got != "p.product_key" {
		t.Errorf("Column(ProductKey) = %q, want p.product_key", got)
	}
}
