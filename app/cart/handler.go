package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/burgerhub/menu-ordering/app/api"
	"github.com/burgerhub/menu-ordering/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Item struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Observation   string  `json:"observation"`
	Subtotal      float64 `json:"subtotal"`
	SubtotalLabel string  `json:"subtotalLabel"`
}

type Response struct {
	Items      []Item  `json:"items"`
	Count      int     `json:"count"`
	Total      float64 `json:"total"`
	TotalLabel string  `json:"totalLabel"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

type observationRequest struct {
	Observation string `json:"observation"`
}

// CartService is the cart engine the handler drives.
type CartService interface {
	Items() []models.CartItem
	Total() decimal.Decimal
	Count() int
	AddItem(ctx context.Context, product models.Product) error
	RemoveItem(ctx context.Context, productID string) error
	ChangeQuantity(ctx context.Context, productID string, delta int) error
	SetObservation(ctx context.Context, productID, text string) error
	Clear(ctx context.Context) error
}

type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type CartHandler struct {
	cart       CartService
	products   ProductLookup
	link       models.DeepLink
	restaurant string
	logger     *zap.Logger
}

func NewCartHandler(c CartService, p ProductLookup, link models.DeepLink, restaurant string, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:       c,
		products:   p,
		link:       link,
		restaurant: restaurant,
		logger:     logger,
	}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	api.OKResponse(w, h.snapshot())
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var input addItemRequest
	if err := api.DecodeJSON(r, &input); err != nil || input.ProductID == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := h.products.GetProduct(r.Context(), input.ProductID)
	if errors.Is(err, models.ErrProductNotFound) {
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		h.logger.Error("get product failed", zap.String("product_id", input.ProductID), zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	err = h.cart.AddItem(r.Context(), *product)
	if errors.Is(err, models.ErrProductUnavailable) {
		api.ErrorResponse(w, http.StatusConflict, "Produto indisponível")
		return
	}
	if err != nil {
		h.storageError(w, "add item", input.ProductID, err)
		return
	}

	h.logger.Debug("item added", zap.String("product_id", product.ID))
	api.OKResponse(w, h.snapshot())
}

func (h *CartHandler) HandleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var input changeQuantityRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id := r.PathValue("id")
	if err := h.cart.ChangeQuantity(r.Context(), id, input.Delta); err != nil {
		h.storageError(w, "change quantity", id, err)
		return
	}
	api.OKResponse(w, h.snapshot())
}

func (h *CartHandler) HandleSetObservation(w http.ResponseWriter, r *http.Request) {
	var input observationRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id := r.PathValue("id")
	if err := h.cart.SetObservation(r.Context(), id, input.Observation); err != nil {
		h.storageError(w, "set observation", id, err)
		return
	}
	api.OKResponse(w, h.snapshot())
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.cart.RemoveItem(r.Context(), id); err != nil {
		h.storageError(w, "remove item", id, err)
		return
	}
	api.OKResponse(w, h.snapshot())
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.storageError(w, "clear cart", "", err)
		return
	}
	api.OKResponse(w, h.snapshot())
}

// HandleCheckout composes the order message and its chat link. The cart is
// left as it is; clearing it is a separate request.
func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var input models.CheckoutRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := models.ComposeOrder(input, h.cart.Items())
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		api.ValidationResponse(w, vErr)
		return
	case errors.Is(err, models.ErrEmptyCart):
		api.ErrorResponse(w, http.StatusBadRequest, "Seu carrinho está vazio.")
		return
	case err != nil:
		h.logger.Error("compose order failed", zap.Error(err))
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to compose order")
		return
	}

	message := order.Text(h.restaurant)
	h.logger.Info("order composed",
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.Total.StringFixed(2)),
		zap.String("payment", string(order.PaymentMethod)),
	)
	api.OKResponse(w, CheckoutResponse{Message: message, URL: h.link.URL(message)})
}

func (h *CartHandler) storageError(w http.ResponseWriter, op, productID string, err error) {
	h.logger.Error(op+" failed", zap.String("product_id", productID), zap.Error(err))
	api.ErrorResponse(w, api.StorageErrorStatus(err), "Failed to update cart")
}

func (h *CartHandler) snapshot() Response {
	items := h.cart.Items()
	resp := Response{
		Items: make([]Item, len(items)),
		Count: h.cart.Count(),
	}
	total := h.cart.Total()
	resp.Total = total.InexactFloat64()
	resp.TotalLabel = models.FormatCurrency(total)

	for i, item := range items {
		subtotal := item.Subtotal()
		resp.Items[i] = Item{
			ProductID:     item.ID,
			Name:          item.Name,
			Image:         item.Image,
			Price:         item.Price.InexactFloat64(),
			Quantity:      item.Quantity,
			Observation:   item.Observation,
			Subtotal:      subtotal.InexactFloat64(),
			SubtotalLabel: models.FormatCurrency(subtotal),
		}
	}
	return resp
}
