package openapi

import (
	"context"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-f2f/pkg/fault"
	"github.com/goliatone/go-f2f/pkg/widget"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    parameters:
      - name: limit
        in: query
        description: Page size.
        schema:
          type: integer
          minimum: 1
          maximum: 50
          default: 20
    get:
      operationId: listPets
      summary: List pets
      parameters:
        - name: species
          in: query
          schema:
            type: string
            enum: [cat, dog, fish]
            default: dog
        - name: vaccinated
          in: query
          schema:
            type: boolean
        - name: tags
          in: query
          schema:
            type: array
            items:
              type: string
        - name: name
          in: query
          required: true
          schema:
            type: string
        - name: X-Trace
          in: header
          schema:
            type: string
      responses:
        "200":
          description: ok
  /pets/{id}:
    get:
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
`

func loadPetstore(t *testing.T) *Document {
	t.Helper()
	fsys := fstest.MapFS{"petstore.yaml": {Data: []byte(petstore)}}
	doc, err := LoadFS(context.Background(), fsys, "petstore.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestDocument_Operations(t *testing.T) {
	doc := loadPetstore(t)
	ops := doc.Operations()
	want := []Operation{
		{ID: "getPet", Method: "GET", Path: "/pets/{id}"},
		{ID: "listPets", Method: "GET", Path: "/pets", Summary: "List pets", Query: []string{"limit", "species", "vaccinated", "tags", "name"}},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_Group(t *testing.T) {
	doc := loadPetstore(t)
	group, err := doc.Group("listPets")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	if group.Name() != "listPets" || group.Description() != "List pets" {
		t.Fatalf("unexpected group %q %q", group.Name(), group.Description())
	}

	kinds := map[string]widget.Kind{}
	for _, p := range group.Params() {
		kinds[p.Name] = p.Widget.Kind()
	}
	wantKinds := map[string]widget.Kind{
		"limit":      widget.KindText,
		"species":    widget.KindSelect,
		"vaccinated": widget.KindCheckBox,
		"tags":       widget.KindText,
		"name":       widget.KindText,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	limit, _ := group.Param("limit")
	if got := limit.Widget.Read("k", url.Values{}); got.Value != 20 {
		t.Fatalf("expected default limit, got %+v", got)
	}
	if got := limit.Widget.Read("k", url.Values{"k": {"99"}}); got.Outcome != widget.OutcomeInvalid {
		t.Fatalf("expected maximum check, got %+v", got)
	}

	species, _ := group.Param("species")
	if desc := species.Widget.Describe(); desc.DefaultOption != "dog" || len(desc.Options) != 3 {
		t.Fatalf("unexpected select %+v", desc)
	}

	tags, _ := group.Param("tags")
	if got := tags.Widget.Read("k", url.Values{"k": {"a,b"}}); !cmp.Equal(got.Value, []string{"a", "b"}) {
		t.Fatalf("unexpected list %+v", got)
	}
	if got := tags.Widget.Read("k", url.Values{}); got.Outcome != widget.OutcomeOK {
		t.Fatalf("optional list must accept empty input, got %+v", got)
	}

	name, _ := group.Param("name")
	if !name.Widget.Describe().Required {
		t.Fatalf("required query parameter must stay required")
	}
}

func TestDocument_GroupErrors(t *testing.T) {
	doc := loadPetstore(t)
	if _, err := doc.Group("missing"); err == nil {
		t.Fatalf("expected unknown operation error")
	}
	if _, err := doc.Group("getPet"); !fault.IsDefinition(err) {
		t.Fatalf("expected definition error for operation without query parameters, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := Parse(ctx, nil, "empty"); err == nil {
		t.Fatalf("expected empty payload error")
	}
	if _, err := Parse(ctx, []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n"), "nopaths"); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}
