package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"muskan-shop/internal/cart"
	"muskan-shop/internal/catalog"
	"muskan-shop/internal/contextutil"
	"muskan-shop/internal/kafka"
	"muskan-shop/internal/messaging"
	"muskan-shop/internal/money"
	"muskan-shop/internal/offer"
	"muskan-shop/internal/order"
	myErr "muskan-shop/internal/types/errors"
)

var (
	cartOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_cart_operations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"operation"},
	)

	orderMessagesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_order_messages_total",
			Help: "Total number of generated WhatsApp order messages",
		},
	)
)

func init() {
	prometheus.MustRegister(cartOperationsTotal, orderMessagesTotal)
}

// Contact номера, на которые уходит заказ
type Contact struct {
	WhatsAppNumber string
	Phone          string
}

// CartHandler ручки корзины посетителя
type CartHandler struct {
	Logger        *zap.SugaredLogger
	Store         cart.Store
	ProductRepo   catalog.ProductRepo
	OfferRepo     offer.OfferRepo
	OrderRepo     order.OrderRepo
	EventProducer kafka.EventProducer
	Contact       Contact
	KeyPrefix     string
}

// NewCartHandler конструктор
func NewCartHandler(
	log *zap.SugaredLogger,
	store cart.Store,
	pr catalog.ProductRepo,
	offr offer.OfferRepo,
	or order.OrderRepo,
	ep kafka.EventProducer,
	contact Contact,
	keyPrefix string,
) *CartHandler {
	return &CartHandler{
		Logger:        log,
		Store:         store,
		ProductRepo:   pr,
		OfferRepo:     offr,
		OrderRepo:     or,
		EventProducer: ep,
		Contact:       contact,
		KeyPrefix:     keyPrefix,
	}
}

type cartView struct {
	Items       []cart.Line     `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type promoRequest struct {
	Code string `json:"code"`
}

type checkoutRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
	PromoCode string `json:"promo_code"`
}

type checkoutResponse struct {
	OrderNumber  string          `json:"order_number"`
	Message      string          `json:"message"`
	WhatsAppURL  string          `json:"whatsapp_url"`
	TelURI       string          `json:"tel_uri"`
	Discount     decimal.Decimal `json:"discount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	FreeDelivery bool            `json:"free_delivery"`
}

// GetCart - GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	c, err := h.load(r.Context(), sessionID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendCart(w, c)
}

// AddItem - POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	if strings.TrimSpace(input.ProductID) == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}
	if input.Quantity < 1 {
		myErr.SendErrorTo(w, myErr.ErrInvalidQuantity, http.StatusBadRequest, h.Logger)
		return
	}

	product, err := h.ProductRepo.GetByID(r.Context(), input.ProductID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	c, err := h.update(r.Context(), sessionID, func(c *cart.Cart) {
		c.Add(*product, input.Quantity)
	})
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	cartOperationsTotal.WithLabelValues("add").Inc()

	h.sendEvent(r.Context(), kafka.NewEvent(sessionID, kafka.EventTypeAddToCart, []string{product.Category}))

	h.Logger.Infof("added %d x %s to cart of session %s", input.Quantity, product.ID, sessionID)
	h.sendCart(w, c)
}

// UpdateItem - PUT /api/cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	var input updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.update(r.Context(), sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, input.Quantity)
	})
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	cartOperationsTotal.WithLabelValues("update").Inc()

	h.Logger.Infof("set quantity of %s to %d in cart of session %s", productID, input.Quantity, sessionID)
	h.sendCart(w, c)
}

// RemoveItem - DELETE /api/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	productID := mux.Vars(r)["productID"]
	if productID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.update(r.Context(), sessionID, func(c *cart.Cart) {
		c.Remove(productID)
	})
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	cartOperationsTotal.WithLabelValues("remove").Inc()

	h.Logger.Infof("removed %s from cart of session %s", productID, sessionID)
	h.sendCart(w, c)
}

// ClearCart - DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	h.clear(r.Context(), sessionID)
	cartOperationsTotal.WithLabelValues("clear").Inc()

	h.Logger.Infof("cleared cart of session %s", sessionID)
	h.sendCart(w, cart.New())
}

// ApplyPromo - POST /api/cart/promo
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input promoRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}
	if strings.TrimSpace(input.Code) == "" {
		err := myErr.NewValidationError("code")
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.load(r.Context(), sessionID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if c.IsEmpty() {
		myErr.SendErrorTo(w, myErr.ErrEmptyCart, http.StatusBadRequest, h.Logger)
		return
	}

	quote, err := h.quote(r.Context(), input.Code, c.TotalAmount())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.Logger.Infof("promo %s quoted for session %s", quote.PromoCode, sessionID)
	h.sendJSON(w, http.StatusOK, quote)
}

// Checkout - POST /api/cart/checkout
// Сохраняет заказ, собирает сообщение для WhatsApp и очищает корзину
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := contextutil.GetSessionIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var input checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	c, err := h.load(r.Context(), sessionID)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}
	if c.IsEmpty() {
		myErr.SendErrorTo(w, myErr.ErrEmptyCart, http.StatusBadRequest, h.Logger)
		return
	}

	customer := cart.Customer{Name: input.Name, Phone: input.Phone, Address: input.Address}
	message, err := c.OrderMessage(customer)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	discount := decimal.Zero
	var quote *offer.Quote
	if strings.TrimSpace(input.PromoCode) != "" {
		quote, err = h.quote(r.Context(), input.PromoCode, c.TotalAmount())
		if err != nil {
			myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
			return
		}
		discount = quote.Discount
	}

	o := order.FromCart(c, customer, discount)
	o.CustomerEmail = optional(input.Email)
	o.Notes = optional(input.Notes)
	if quote != nil {
		o.PromoCode = &quote.PromoCode
	}

	if err = h.OrderRepo.Create(r.Context(), o); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	message += fmt.Sprintf("\n🧾 Order Number: %s", o.Number)
	if quote != nil {
		message += fmt.Sprintf("\n🏷️ Promo %s: -%s\n💵 Payable: %s",
			quote.PromoCode, money.Grouped(quote.Discount), money.Grouped(o.TotalAmount))
	}
	orderMessagesTotal.Inc()

	h.sendEvent(r.Context(), kafka.NewEvent(sessionID, kafka.EventTypeOrderPlaced, c.Categories()))

	h.clear(r.Context(), sessionID)

	h.Logger.Infof("order %s placed by session %s for %s", o.Number, sessionID, o.TotalAmount)
	h.sendJSON(w, http.StatusCreated, checkoutResponse{
		OrderNumber:  o.Number,
		Message:      message,
		WhatsAppURL:  messaging.WhatsAppURL(h.Contact.WhatsAppNumber, message),
		TelURI:       messaging.TelURI(h.Contact.Phone),
		Discount:     discount,
		TotalAmount:  o.TotalAmount,
		FreeDelivery: quote != nil && quote.FreeDelivery,
	})
}

// quote находит действующую акцию по промокоду и считает по ней сумму
func (h *CartHandler) quote(ctx context.Context, code string, subtotal decimal.Decimal) (*offer.Quote, error) {
	o, err := h.OfferRepo.GetByPromoCode(ctx, code)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			return nil, myErr.ErrInvalidPromoCode
		}
		return nil, err
	}

	if !o.IsValidAt(time.Now()) {
		return nil, myErr.ErrInvalidPromoCode
	}

	return o.QuoteFor(subtotal)
}

// load битую корзину заменяет пустой, недоступное хранилище отдает как ErrCartUnavailable
func (h *CartHandler) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := cart.Load(ctx, h.Store, cart.Key(h.KeyPrefix, sessionID))
	if err != nil {
		if errors.Is(err, cart.ErrCorrupt) {
			h.Logger.Warnw("broken cart data, starting empty", "sessionID", sessionID, "err", err)
			return cart.New(), nil
		}

		h.Logger.Warnw("failed to load cart", "sessionID", sessionID, "err", err)
		return nil, myErr.ErrCartUnavailable
	}

	return c, nil
}

// update меняет корзину атомарно, параллельные запросы сессии не теряют изменений
func (h *CartHandler) update(ctx context.Context, sessionID string, fn func(c *cart.Cart)) (*cart.Cart, error) {
	c, err := cart.Update(ctx, h.Store, cart.Key(h.KeyPrefix, sessionID), fn)
	if err != nil {
		h.Logger.Warnw("failed to update cart", "sessionID", sessionID, "err", err)
		return nil, myErr.ErrCartUnavailable
	}

	return c, nil
}

func (h *CartHandler) clear(ctx context.Context, sessionID string) {
	if err := h.Store.Delete(ctx, cart.Key(h.KeyPrefix, sessionID)); err != nil {
		h.Logger.Warnw("failed to delete cart", "sessionID", sessionID, "err", err)
	}
}

func (h *CartHandler) sendEvent(ctx context.Context, event kafka.Event) {
	if err := h.EventProducer.SendEvent(ctx, event); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", event.Type, err)
	}
}

func (h *CartHandler) sendCart(w http.ResponseWriter, c *cart.Cart) {
	h.sendJSON(w, http.StatusOK, cartView{
		Items:       c.Lines(),
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
	})
}

func (h *CartHandler) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
