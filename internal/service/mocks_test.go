package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"shophub/internal/domain"
	"shophub/internal/repository"

	"github.com/shopspring/decimal"
)

// Mock repositories for testing. They share one store so cart and wishlist
// rows can see product stock the way the SQL joins do.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*domain.Product
	cart     map[int64]*domain.CartItem
	wishlist map[int64]*domain.WishlistItem
	profiles map[string]*domain.UserProfile
	reviews  map[int64]*domain.Review
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products: make(map[int64]*domain.Product),
		cart:     make(map[int64]*domain.CartItem),
		wishlist: make(map[int64]*domain.WishlistItem),
		profiles: make(map[string]*domain.UserProfile),
		reviews:  make(map[int64]*domain.Review),
	}
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) addProduct(name, category string, stock int) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := &domain.Product{
		ID:        s.id(),
		Name:      name,
		Price:     decimal.RequireFromString("9.99"),
		Category:  category,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products[p.ID] = p
	return p
}

type mockProductRepository struct{ *memoryStore }

func (m mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.id()
	m.products[product.ID] = product
	return nil
}

func (m mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m mockProductRepository) Save(ctx context.Context, product *domain.Product) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.products[product.ID]
	m.products[product.ID] = product
	if product.ID > m.nextID {
		m.nextID = product.ID
	}
	return !exists, nil
}

func (m mockProductRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (m mockProductRepository) Search(ctx context.Context, query, category string) ([]*domain.Product, error) {
	all, _ := m.List(ctx)
	var products []*domain.Product
	for _, p := range all {
		if category != "" && category != domain.CategoryAll && p.Category != category {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (m mockProductRepository) Suggestions(ctx context.Context, product *domain.Product, limit int) ([]*domain.Product, error) {
	all, _ := m.List(ctx)
	var products []*domain.Product
	for _, p := range all {
		if p.ID != product.ID && p.Category == product.Category && len(products) < limit {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	all, _ := m.List(ctx)
	seen := make(map[string]bool)
	var categories []string
	for _, p := range all {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

type mockCartRepository struct{ *memoryStore }

func (m mockCartRepository) AddOrMerge(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok {
		return nil, false, repository.ErrProductNotFound
	}

	for _, item := range m.cart {
		if item.UserID == userID && item.ProductID == productID {
			if item.Quantity+quantity > product.Stock {
				return nil, false, repository.ErrInsufficientStock
			}
			item.Quantity += quantity
			return item, false, nil
		}
	}

	if quantity > product.Stock {
		return nil, false, repository.ErrInsufficientStock
	}

	item := &domain.CartItem{ID: m.id(), UserID: userID, ProductID: productID, Quantity: quantity}
	m.cart[item.ID] = item
	return item, true, nil
}

func (m mockCartRepository) UpdateQuantity(ctx context.Context, userID string, itemID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cart[itemID]
	if !ok || item.UserID != userID {
		return repository.ErrCartItemNotFound
	}
	if quantity > m.products[item.ProductID].Stock {
		return repository.ErrInsufficientStock
	}
	item.Quantity = quantity
	return nil
}

func (m mockCartRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cart[itemID]
	if !ok || item.UserID != userID {
		return repository.ErrCartItemNotFound
	}
	delete(m.cart, itemID)
	return nil
}

func (m mockCartRepository) FindByID(ctx context.Context, userID string, itemID int64) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cart[itemID]
	if !ok || item.UserID != userID {
		return nil, repository.ErrCartItemNotFound
	}
	return item, nil
}

func (m mockCartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItemWithProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*domain.CartItemWithProduct
	for _, item := range m.cart {
		if item.UserID == userID {
			items = append(items, &domain.CartItemWithProduct{CartItem: *item, Product: *m.products[item.ProductID]})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

type mockWishlistRepository struct{ *memoryStore }

func (m mockWishlistRepository) Add(ctx context.Context, userID string, productID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	for _, item := range m.wishlist {
		if item.UserID == userID && item.Product.ID == productID {
			return 0, repository.ErrWishlistItemExists
		}
	}

	item := &domain.WishlistItem{ID: m.id(), UserID: userID, Product: *product}
	m.wishlist[item.ID] = item
	return item.ID, nil
}

func (m mockWishlistRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.wishlist[itemID]
	if !ok || item.UserID != userID {
		return repository.ErrWishlistItemNotFound
	}
	delete(m.wishlist, itemID)
	return nil
}

func (m mockWishlistRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*domain.WishlistItem
	for _, item := range m.wishlist {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

type mockProfileRepository struct{ *memoryStore }

func (m mockProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return profile, nil
}

func (m mockProfileRepository) Upsert(ctx context.Context, userID string, columns map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	profile, ok := m.profiles[userID]
	if !ok {
		profile = &domain.UserProfile{UserID: userID}
		m.profiles[userID] = profile
	}

	fields := map[string]**string{
		"first_name":    &profile.FirstName,
		"last_name":     &profile.LastName,
		"phone":         &profile.Phone,
		"address_line1": &profile.AddressLine1,
		"address_line2": &profile.AddressLine2,
		"city":          &profile.City,
		"state":         &profile.State,
		"zip_code":      &profile.ZipCode,
		"country":       &profile.Country,
	}
	for column, value := range columns {
		v := value
		*fields[column] = &v
	}
	return nil
}

type mockReviewRepository struct{ *memoryStore }

func (m mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return repository.ErrReviewExists
		}
	}
	review.ID = m.id()
	m.reviews[review.ID] = review
	return nil
}

func (m mockReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var reviews []*domain.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID > reviews[j].ID })
	return reviews, nil
}

func (m mockReviewRepository) Summary(ctx context.Context, productID int64) (*domain.ReviewSummary, error) {
	reviews, _ := m.ListByProduct(ctx, productID)
	summary := &domain.ReviewSummary{TotalCount: len(reviews)}
	if len(reviews) == 0 {
		return summary, nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	summary.AverageRating = float64(total) / float64(len(reviews))
	return summary, nil
}
