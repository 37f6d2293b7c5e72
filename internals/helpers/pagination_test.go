package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(95, 2, 10)
	if p.TotalPages != 10 {
		t.Errorf("TotalPages = %d, want 10", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want true/true", p.HasNext, p.HasPrev)
	}

	p = BuildPagination(0, 1, 10)
	if p.TotalPages != 1 || p.HasNext || p.HasPrev {
		t.Errorf("pagination kosong = %+v", p)
	}
}

func resolveVia(t *testing.T, target string) Paging {
	t.Helper()
	app := fiber.New()
	var got Paging
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 100)
		return c.SendString("ok")
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return got
}

func TestResolvePaging(t *testing.T) {
	p := resolveVia(t, "/x?page=3&per_page=25")
	if p.Page != 3 || p.PerPage != 25 || p.Offset != 50 {
		t.Errorf("paging = %+v", p)
	}

	// alias lama pageSize / limit tetap dikenali
	p = resolveVia(t, "/x?pageSize=5")
	if p.PerPage != 5 {
		t.Errorf("pageSize alias: PerPage = %d", p.PerPage)
	}
	p = resolveVia(t, "/x?limit=7")
	if p.PerPage != 7 {
		t.Errorf("limit alias: PerPage = %d", p.PerPage)
	}

	// nilai aneh dinormalisasi
	p = resolveVia(t, "/x?page=-2&per_page=100000")
	if p.Page != 1 || p.PerPage != 100 {
		t.Errorf("normalisasi = %+v", p)
	}
}
