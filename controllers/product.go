package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/money"
	"go-shop/repository"
)

// ProductController handles catalog management and browsing
type ProductController struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
	validate   *validator.Validate
}

// NewProductController creates a new ProductController
func NewProductController(products *repository.ProductRepository, categories *repository.CategoryRepository) *ProductController {
	return &ProductController{
		products:   products,
		categories: categories,
		validate:   validator.New(),
	}
}

type createProductRequest struct {
	Name        string       `json:"name" validate:"required,min=2,max=100"`
	Description string       `json:"description" validate:"required,min=10"`
	Price       money.Amount `json:"price" validate:"gt=0"`
	Discount    money.Amount `json:"discount" validate:"gte=0"`
	Category    string       `json:"category" validate:"required"`
}

type updateProductRequest struct {
	Name        string       `json:"name" validate:"required,min=2,max=100"`
	Description string       `json:"description" validate:"required,min=10"`
	Price       money.Amount `json:"price" validate:"gt=0"`
	Discount    money.Amount `json:"discount" validate:"gte=0"`
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type searchByNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type searchByPriceRequest struct {
	MinPrice money.Amount `json:"min_price" validate:"gte=0"`
	MaxPrice money.Amount `json:"max_price" validate:"gtefield=MinPrice"`
}

// CreateCategory adds a new product category. Admin only.
func (pc *ProductController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := pc.categories.FindByName(ctx, req.Name); err == nil {
		respondMessage(w, http.StatusBadRequest, "Category with this name already exists")
		return
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		respondError(w, err)
		return
	}

	category := &models.Category{Name: req.Name, Products: []primitive.ObjectID{}}
	if err := pc.categories.Create(ctx, category); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

// CreateProduct adds a new product to the catalog. Admin only.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category, err := pc.categories.FindByName(ctx, req.Category)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondMessage(w, http.StatusBadRequest, "Category is invalid")
			return
		}
		respondError(w, err)
		return
	}

	exists, err := pc.products.ExistsByName(ctx, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	if exists {
		respondMessage(w, http.StatusBadRequest, "Product with the same name already exists")
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		CategoryID:  category.ID,
		IsActive:    true,
	}
	if err := pc.products.Create(ctx, product); err != nil {
		respondError(w, err)
		return
	}
	if err := pc.categories.AddProduct(ctx, category.ID, product.ID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates a product's details. Admin only.
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, mux.Vars(r)["productId"])
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
	}
	if err := pc.products.Update(ctx, id, product); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Product updated successfully")
}

// ArchiveProduct takes a product off sale. Admin only.
func (pc *ProductController) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	pc.setActive(w, r, false, "Product archived successfully")
}

// ActivateProduct puts a product back on sale. Admin only.
func (pc *ProductController) ActivateProduct(w http.ResponseWriter, r *http.Request) {
	pc.setActive(w, r, true, "Product activated successfully")
}

func (pc *ProductController) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	id, ok := pathObjectID(w, mux.Vars(r)["productId"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := pc.products.SetActive(ctx, id, active); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, message)
}

// DeleteProduct permanently removes a product. Admin only.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, mux.Vars(r)["productId"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := pc.products.Delete(ctx, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}

// GetProducts lists every product including archived ones. Admin only.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.products.FindAll(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetActiveProducts lists products currently on sale.
func (pc *ProductController) GetActiveProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.products.FindActive(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProductByID retrieves a single product by ID.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, mux.Vars(r)["productId"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.products.FindByID(ctx, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

// SearchByName finds products whose name contains the given text.
func (pc *ProductController) SearchByName(w http.ResponseWriter, r *http.Request) {
	var req searchByNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.products.SearchByName(ctx, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// SearchByPrice finds products priced within the given range.
func (pc *ProductController) SearchByPrice(w http.ResponseWriter, r *http.Request) {
	var req searchByPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := pc.validate.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.products.SearchByPriceRange(ctx, req.MinPrice, req.MaxPrice)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}
