// Package seed loads catalog products from YAML files. Products are managed
// out of band; this is the operator path for creating and updating them.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"shophub/internal/domain"
	"shophub/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File is the top-level document of a seed file
type File struct {
	Products []Product `yaml:"products" validate:"dive"`
}

// Product is one catalog entry. An entry with an ID is written under that ID,
// so applying the same file again overwrites it; an entry without one is
// always created.
type Product struct {
	ID          int64           `yaml:"id" validate:"gte=0"`
	Name        string          `yaml:"name" validate:"required,max=255"`
	Description string          `yaml:"description"`
	Price       decimal.Decimal `yaml:"price"`
	Image       string          `yaml:"image" validate:"omitempty,url"`
	Category    string          `yaml:"category" validate:"required,max=100"`
	Stock       int             `yaml:"stock" validate:"gte=0"`
}

// Result counts what Apply did
type Result struct {
	Created int
	Updated int
}

var validate = validator.New()

// Parse decodes and validates a seed document
func Parse(r io.Reader) (*File, error) {
	var file File

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}

	for i, p := range file.Products {
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("invalid seed file: product %d (%s) has a negative price", i, p.Name)
		}
	}

	return &file, nil
}

// LoadFile parses the seed file at path
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Apply writes every product in the file to the catalog
func Apply(ctx context.Context, repo repository.ProductRepository, file *File, logger *zap.Logger) (Result, error) {
	var result Result

	for _, p := range file.Products {
		product := &domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.Round(2),
			Image:       p.Image,
			Category:    p.Category,
			Stock:       p.Stock,
		}

		if product.ID != 0 {
			created, err := repo.Save(ctx, product)
			if err != nil {
				return result, fmt.Errorf("failed to save product %d: %w", product.ID, err)
			}
			if created {
				result.Created++
				logger.Debug("Product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
			} else {
				result.Updated++
				logger.Debug("Product updated", zap.Int64("id", product.ID), zap.String("name", product.Name))
			}
			continue
		}

		if err := repo.Create(ctx, product); err != nil {
			return result, fmt.Errorf("failed to create product %q: %w", product.Name, err)
		}
		result.Created++
		logger.Debug("Product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
	}

	return result, nil
}
