package seed

import (
	"context"
	"strings"
	"testing"

	"shophub/internal/domain"
	"shophub/internal/repository"

	"go.uber.org/zap"
)

const sampleSeed = `
products:
  - name: Desk Lamp
    description: Warm white LED lamp
    price: 24.5
    image: https://images.example.com/lamp.jpg
    category: Home
    stock: 12
  - id: 7
    name: Cordless Drill
    price: "89.999"
    category: Tools
    stock: 3
`

// catalogRepository behaves like the products table: Create draws from a
// sequence and Save writes under the given ID, advancing the sequence.
type catalogRepository struct {
	repository.ProductRepository
	products map[int64]*domain.Product
	sequence int64
	created  []*domain.Product
}

func newCatalogRepository(existing ...*domain.Product) *catalogRepository {
	r := &catalogRepository{products: map[int64]*domain.Product{}}
	for _, p := range existing {
		r.products[p.ID] = p
		if p.ID > r.sequence {
			r.sequence = p.ID
		}
	}
	return r
}

func (r *catalogRepository) Create(ctx context.Context, p *domain.Product) error {
	r.sequence++
	p.ID = r.sequence
	r.products[p.ID] = p
	r.created = append(r.created, p)
	return nil
}

func (r *catalogRepository) Save(ctx context.Context, p *domain.Product) (bool, error) {
	_, exists := r.products[p.ID]
	r.products[p.ID] = p
	if p.ID > r.sequence {
		r.sequence = p.ID
	}
	if !exists {
		r.created = append(r.created, p)
	}
	return !exists, nil
}

func TestParse(t *testing.T) {
	file, err := Parse(strings.NewReader(sampleSeed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(file.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(file.Products))
	}
	if got := file.Products[0].Price.String(); got != "24.5" {
		t.Errorf("expected price 24.5, got %s", got)
	}
	if file.Products[1].ID != 7 || file.Products[1].Stock != 3 {
		t.Errorf("unexpected second product %+v", file.Products[1])
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"missing name":   "products:\n  - category: Home\n    price: 1\n",
		"negative stock": "products:\n  - name: A\n    category: Home\n    price: 1\n    stock: -1\n",
		"negative price": "products:\n  - name: A\n    category: Home\n    price: -1\n",
		"unknown field":  "products:\n  - name: A\n    category: Home\n    colour: red\n",
		"bad image url":  "products:\n  - name: A\n    category: Home\n    image: not a url\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	file, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(file.Products) != 0 {
		t.Errorf("expected no products, got %d", len(file.Products))
	}
}

func TestApply(t *testing.T) {
	file, err := Parse(strings.NewReader(sampleSeed + `  - id: 3
    name: Rug
    price: 40
    category: Home
    stock: 1
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	repo := newCatalogRepository(&domain.Product{ID: 3, Name: "Old Rug", Category: "Home"})
	result, err := Apply(context.Background(), repo, file, zap.NewNop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// id 7 is unknown, so it is created under that id alongside the entry without one
	if result.Created != 2 || result.Updated != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if repo.products[3].Name != "Rug" {
		t.Errorf("expected product 3 to be overwritten, got %+v", repo.products[3])
	}
	drill, ok := repo.products[7]
	if !ok {
		t.Fatalf("expected product 7 to keep its id, catalog %v", repo.products)
	}
	if got := drill.Price.String(); got != "90" {
		t.Errorf("expected price rounded to cents, got %s", got)
	}
	if len(repo.products) != 4 {
		t.Errorf("expected 4 products, got %d", len(repo.products))
	}
}

func TestApply_RerunKeepsCatalogSize(t *testing.T) {
	doc := "products:\n  - id: 42\n    name: Mug\n    price: 8\n    category: Kitchen\n    stock: 4\n"
	repo := newCatalogRepository()

	for run := 1; run <= 3; run++ {
		file, err := Parse(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}

		result, err := Apply(context.Background(), repo, file, zap.NewNop())
		if err != nil {
			t.Fatalf("run %d: Apply: %v", run, err)
		}

		if len(repo.products) != 1 {
			t.Fatalf("run %d: expected 1 product, got %d", run, len(repo.products))
		}
		wantCreated := 0
		if run == 1 {
			wantCreated = 1
		}
		if result.Created != wantCreated || result.Created+result.Updated != 1 {
			t.Errorf("run %d: unexpected result %+v", run, result)
		}
	}

	if _, ok := repo.products[42]; !ok {
		t.Error("expected the product to be stored under id 42")
	}
}

func TestLoadFile(t *testing.T) {
	file, err := LoadFile("testdata/catalog.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(file.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(file.Products))
	}
	for _, p := range file.Products {
		if p.ID != 0 || p.Category == "" || p.Price.IsZero() {
			t.Errorf("unexpected product %+v", p)
		}
	}

	if _, err := LoadFile("testdata/missing.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
