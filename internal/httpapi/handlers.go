package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"orderservice/internal/inventory"
	"orderservice/internal/money"
	"orderservice/internal/order"
	"orderservice/internal/platform/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler maps the HTTP surface onto the order service.
type Handler struct {
	service   *order.Service
	logger    observability.Logger
	startedAt time.Time
}

func NewHandler(service *order.Service, logger observability.Logger) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		startedAt: time.Now(),
	}
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Success: false, Message: message})
}

type createOrderRequest struct {
	UserID          string         `json:"userId"`
	Items           []orderLine    `json:"items"`
	ShippingAddress addressPayload `json:"shippingAddress"`
}

type orderLine struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type addressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

type orderView struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Items           []itemView     `json:"items"`
	Total           string         `json:"total"`
	ShippingAddress addressPayload `json:"shippingAddress"`
	Status          string         `json:"status"`
	PaymentStatus   string         `json:"paymentStatus"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type itemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

func toOrderView(o *order.Order) orderView {
	items := make([]itemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   money.FormatCents(item.UnitPriceCents),
			Subtotal:    money.FormatCents(item.SubtotalCents),
		})
	}
	return orderView{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Total:           money.FormatCents(o.TotalCents),
		ShippingAddress: addressPayload(o.ShippingAddress),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		CreatedAt:       o.CreatedAt,
	}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	lines := make([]order.LineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, order.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	placed, err := h.service.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		UserID:          req.UserID,
		Lines:           lines,
		ShippingAddress: order.Address(req.ShippingAddress),
	})
	if err != nil {
		h.writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Order   orderView `json:"order"`
	}{
		Success: true,
		Message: "Order created successfully",
		Order:   toOrderView(placed),
	})
}

// writeOrderError maps the placement error taxonomy onto HTTP statuses:
// malformed input and insufficient stock are the caller's to fix (400),
// unknown products are 404, storage failures are retryable 500s.
func (h *Handler) writeOrderError(w http.ResponseWriter, err error) {
	var validationErr *order.ValidationError
	var notFoundErr *inventory.NotFoundError
	var stockErr *inventory.InsufficientStockError
	var persistErr *order.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		writeFailure(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &stockErr):
		writeFailure(w, http.StatusBadRequest, stockErr.Error())
	case errors.As(err, &notFoundErr):
		writeFailure(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &persistErr):
		h.logger.Error("Order persistence failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "Error creating order")
	default:
		h.logger.Error("Order placement failed", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "Error creating order")
	}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := order.Filter{
		Status: order.Status(q.Get("status")),
		UserID: q.Get("userId"),
		Page:   parseIntParam(q.Get("page"), 1),
		Limit:  parseIntParam(q.Get("limit"), 10),
	}

	orders, total, err := h.service.Orders(r.Context(), filter)
	if err != nil {
		h.logger.Error("Error fetching orders", zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}

	pages := total / filter.Limit
	if total%filter.Limit != 0 {
		pages++
	}

	writeJSON(w, http.StatusOK, struct {
		Success    bool        `json:"success"`
		Orders     []orderView `json:"orders"`
		Pagination pagination  `json:"pagination"`
	}{
		Success: true,
		Orders:  views,
		Pagination: pagination{
			Page:  filter.Page,
			Pages: pages,
			Total: total,
		},
	})
}

type pagination struct {
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
	Total int64 `json:"total"`
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")

	o, err := h.service.Order(r.Context(), id)
	if errors.Is(err, order.ErrOrderNotFound) {
		writeFailure(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.logger.Error("Error fetching order", zap.Error(err), zap.String("order_id", id))
		writeFailure(w, http.StatusInternalServerError, "Error fetching order")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool      `json:"success"`
		Order   orderView `json:"order"`
	}{Success: true, Order: toOrderView(o)})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status    string  `json:"status"`
		Timestamp string  `json:"timestamp"`
		Uptime    float64 `json:"uptime"`
	}{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

func parseIntParam(s string, fallback int64) int64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
