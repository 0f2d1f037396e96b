package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"muskan-shop/internal/catalog"
	"muskan-shop/internal/contextutil"
	"muskan-shop/internal/inventory"
	"muskan-shop/internal/kafka"
	"muskan-shop/internal/search"
	myErr "muskan-shop/internal/types/errors"
)

// CatalogHandler ручки витрины
type CatalogHandler struct {
	Logger        *zap.SugaredLogger
	ProductRepo   catalog.ProductRepo
	InventoryRepo inventory.InventoryRepo
	Searcher      search.Searcher
	EventProducer kafka.EventProducer
}

func NewCatalogHandler(
	l *zap.SugaredLogger,
	pr catalog.ProductRepo,
	ir inventory.InventoryRepo,
	s search.Searcher,
	ep kafka.EventProducer,
) *CatalogHandler {
	return &CatalogHandler{
		Logger:        l,
		ProductRepo:   pr,
		InventoryRepo: ir,
		Searcher:      s,
		EventProducer: ep,
	}
}

// ProductView товар с наличием на складе
type ProductView struct {
	catalog.Product
	StockStatus string `json:"stock_status,omitempty"`
	InStock     *bool  `json:"in_stock,omitempty"`
}

// List handles GET /api/products?category=&min_price=&max_price=&featured=&sort=
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}
	if err = filter.Validate(); err != nil {
		myErr.SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	products, err := h.ProductRepo.List(r.Context(), filter)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendJSON(w, h.annotate(r.Context(), products))
	h.Logger.Infof("listed %d products", len(products))
}

// GetByID handles GET /api/products/{id}
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, http.StatusBadRequest, h.Logger)
		return
	}

	p, err := h.ProductRepo.GetByID(r.Context(), id)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendEvent(r.Context(), kafka.EventTypeView, []string{p.Category})

	h.sendJSON(w, h.annotate(r.Context(), []catalog.Product{*p})[0])
	h.Logger.Infof("fetched product by id: %s", id)
}

// Categories handles GET /api/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.ProductRepo.Categories(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	h.sendJSON(w, append([]string{catalog.AllCategories}, categories...))
}

// Search handles GET /api/products/search?q={query}
// Если поисковый индекс недоступен, ищет подстрокой по названию в каталоге
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		myErr.SendErrorTo(w, myErr.NewValidationError("q"), http.StatusBadRequest, h.Logger)
		return
	}

	products, err := h.search(r.Context(), q)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusFor(err), h.Logger)
		return
	}

	categories := make([]string, 0, len(products))
	for _, p := range products {
		categories = append(categories, p.Category)
	}
	if len(categories) > 0 {
		h.sendEvent(r.Context(), kafka.EventTypeSearch, categories)
	}

	h.sendJSON(w, h.annotate(r.Context(), products))
	h.Logger.Infof("searched products with query: %s", q)
}

func (h *CatalogHandler) search(ctx context.Context, q string) ([]catalog.Product, error) {
	docs, err := h.Searcher.SearchByName(ctx, q, search.DefaultSize)
	if err == nil {
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
		return h.ProductRepo.GetByIDs(ctx, ids)
	}

	h.Logger.Warnw("search index unavailable, falling back to catalog scan", "query", q, "err", err)

	all, err := h.ProductRepo.List(ctx, catalog.Filter{})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(q)
	found := make([]catalog.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			found = append(found, p)
		}
	}

	return found, nil
}

// annotate добавляет остатки, ошибка склада не мешает показать каталог
func (h *CatalogHandler) annotate(ctx context.Context, products []catalog.Product) []ProductView {
	views := make([]ProductView, 0, len(products))

	stock, err := h.InventoryRepo.ListAll(ctx)
	if err != nil {
		h.Logger.Warnw("inventory unavailable, listing without stock", "err", err)
	}

	for _, p := range products {
		v := ProductView{Product: p}
		if s, ok := stock[p.ID]; ok {
			available := s.Available()
			v.StockStatus = s.Status
			v.InStock = &available
		}
		views = append(views, v)
	}

	return views
}

func (h *CatalogHandler) sendEvent(ctx context.Context, t kafka.EventType, categories []string) {
	sessionID, ok := contextutil.GetSessionIDFromContext(ctx)
	if !ok {
		return
	}

	if err := h.EventProducer.SendEvent(ctx, kafka.NewEvent(sessionID, t, categories)); err != nil {
		h.Logger.Warnf("failed to send %s event: %v", t, err)
	}
}

func (h *CatalogHandler) sendJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Errorf("failed to encode response: %v", err)
	}
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	query := r.URL.Query()
	f := catalog.Filter{Sort: query.Get("sort")}

	for _, raw := range query["category"] {
		for _, c := range strings.Split(raw, ",") {
			c = strings.TrimSpace(c)
			if c != "" && c != catalog.AllCategories {
				f.Categories = append(f.Categories, c)
			}
		}
	}

	if v := query.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, myErr.ErrInvalidPrice
		}
		f.MinPrice = &d
	}
	if v := query.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, myErr.ErrInvalidPrice
		}
		f.MaxPrice = &d
	}

	if v := query.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return f, myErr.NewValidationError("featured")
		}
		f.FeaturedOnly = featured
	}

	return f, nil
}
