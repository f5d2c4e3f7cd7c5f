package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"warehouse-cost-service/internal/api/dto"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/platform/obs"
	"warehouse-cost-service/internal/ports"
	"warehouse-cost-service/internal/services"
)

const maxOrderBodyBytes = 1 << 20

type QuoteHandler struct {
	Engine *services.Engine
	Cache  ports.QuoteCache
}

// CalculateCost returns only the total: {"total_cost": <number>}.
func (h *QuoteHandler) CalculateCost(w http.ResponseWriter, r *http.Request) {
	q, _, ok := h.quote(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CostResponse{TotalCost: q.TotalCost})
}

// Quote returns the total with every charged leg.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q, cached, ok := h.quote(w, r)
	if !ok {
		return
	}

	res := dto.QuoteResponse{
		TotalCost:      q.TotalCost,
		Cached:         cached,
		Legs:           make([]dto.LegResponse, 0, len(q.Legs)),
		UnsourcedItems: make([]string, 0, len(q.Unsourced)),
	}
	for _, l := range q.Legs {
		res.Legs = append(res.Legs, dto.LegResponse{
			Kind:     string(l.Kind),
			Center:   l.Center,
			Distance: l.Distance,
			Weight:   l.Weight,
			Rate:     l.Rate,
			Cost:     l.Cost,
		})
	}
	res.UnsourcedItems = append(res.UnsourcedItems, q.Unsourced...)

	writeJSON(w, r, http.StatusOK, res)
}

// quote decodes and prices the order, writing the error response itself on failure.
func (h *QuoteHandler) quote(w http.ResponseWriter, r *http.Request) (*domain.Quote, bool, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false, false
	}

	order, err := decodeOrder(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, false, false
	}

	// An empty order never reaches the engine.
	if len(order) == 0 {
		writeError(w, r, http.StatusBadRequest, "Order cannot be empty")
		return nil, false, false
	}

	q, cached, err := services.QuoteOrder(r.Context(), order, h.Engine, h.Cache)
	if err != nil {
		writeQuoteError(w, r, err)
		return nil, false, false
	}

	return q, cached, true
}

func decodeOrder(r *http.Request) (domain.Order, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxOrderBodyBytes))

	var raw map[string]json.Number
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Order{}, nil
		}
		return nil, errors.New("invalid json body: expected an object of item quantities")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("body must contain only one JSON object")
	}

	order := make(domain.Order, len(raw))
	for item, n := range raw {
		// 1, 1.0 and 1e0 are the same quantity.
		f, err := n.Float64()
		if err != nil || math.Trunc(f) != f || math.Abs(f) > math.MaxInt32 {
			return nil, fmt.Errorf("quantity for item %q must be a positive integer", item)
		}
		order[item] = int(f)
	}
	return order, nil
}

func writeQuoteError(w http.ResponseWriter, r *http.Request, err error) {
	var unsourced *domain.UnsourceableError

	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, r, http.StatusBadRequest, "Order cannot be empty")
	case errors.Is(err, domain.ErrInvalidQuantity):
		msg := err.Error()
		if inner := errors.Unwrap(err); inner != nil {
			msg = inner.Error()
		}
		writeError(w, r, http.StatusBadRequest, msg)
	case errors.As(err, &unsourced):
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: domain.ErrUnsourceableItem.Error(),
			Items: unsourced.Items,
		})
	default:
		log.Printf("req_id=%s quote order failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
