package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/msomdec/taskboard/internal/view"
)

func TestHomePage_EscapesContent(t *testing.T) {
	var buf bytes.Buffer
	endpoints := []view.Endpoint{{Method: "GET", Path: "/x", Description: "<script>alert(1)</script>", Auth: true}}

	if err := view.HomePage(endpoints).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Fatal("expected description to be escaped")
	}
	if !strings.Contains(out, "bearer token") {
		t.Fatal("expected auth column to be rendered")
	}
}

func TestHomePage_ListsEndpoints(t *testing.T) {
	var buf bytes.Buffer
	if err := view.HomePage(view.Endpoints).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, e := range view.Endpoints {
		if !strings.Contains(buf.String(), e.Path) {
			t.Fatalf("expected page to mention %s", e.Path)
		}
	}
}

func TestHomePage_PublicRouteHasNoAuthMarker(t *testing.T) {
	var buf bytes.Buffer
	endpoints := []view.Endpoint{{Method: "GET", Path: "/healthz", Description: "Liveness probe."}}

	if err := view.HomePage(endpoints).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "bearer token") {
		t.Fatal("expected no auth marker for a public route")
	}
	if !strings.Contains(buf.String(), "<td><code>/healthz</code></td>") {
		t.Fatalf("expected a row for /healthz, got %s", buf.String())
	}
}
