package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ormsample/inventory/models"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Category    Category `json:"category"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type Response struct {
	Products []Product `json:"products"`
}

// productInput mirrors the original entry form: price and quantity
// arrive as free text and fall back to zero when they do not parse.
type productInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	CategoryID  uint   `json:"category_id"`
}

type ProductProvider interface {
	GetAllProducts() ([]models.Product, error)
	CreateProduct(draft *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
	Refresh() error
}

type ProductsHandler struct {
	repo ProductProvider
}

func NewProductsHandler(r ProductProvider) *ProductsHandler {
	return &ProductsHandler{
		repo: r,
	}
}

// HandleList refreshes the tracked entities and returns the full
// product list as one snapshot, so stale cached state never reaches
// the display. The refresh is a deliberate policy of this caller, not
// a side effect of listing.
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Refresh(); err != nil {
		writeError(w, err)
		return
	}

	list, err := h.repo.GetAllProducts()
	if err != nil {
		writeError(w, err)
		return
	}

	response := Response{Products: make([]Product, len(list))}
	for i, p := range list {
		response.Products[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Missing product name")
		return
	}
	if input.CategoryID == 0 {
		writeMessage(w, http.StatusBadRequest, "Missing category")
		return
	}

	draft := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       parsePrice(input.Price),
		Quantity:    parseQuantity(input.Quantity),
		CategoryID:  input.CategoryID,
	}

	if err := h.repo.CreateProduct(&draft); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toResponse(draft)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" {
		writeMessage(w, http.StatusBadRequest, "Missing product name")
		return
	}
	if input.CategoryID == 0 {
		writeMessage(w, http.StatusBadRequest, "Missing category")
		return
	}

	product := models.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       parsePrice(input.Price),
		Quantity:    parseQuantity(input.Quantity),
		CategoryID:  input.CategoryID,
	}

	if err := h.repo.UpdateProduct(&product); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toResponse(product)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.repo.DeleteProduct(id); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Product deleted successfully",
	})
}

func toResponse(p models.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Quantity:    p.Quantity,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parsePrice(raw string) decimal.Decimal {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return price
}

func parseQuantity(raw string) int {
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return quantity
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrConstraintViolation):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		writeMessage(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}
