package services

import (
	"sync"
	"testing"
	"warehouse-cost-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultEngine(t *testing.T, policy UnsourcedPolicy) *Engine {
	t.Helper()

	e, err := NewEngine(domain.DefaultCatalog(), domain.DefaultRates(), policy)
	require.NoError(t, err)
	return e
}

func TestEngineComputeCostScenarios(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedReject)

	tests := []struct {
		name  string
		order domain.Order
		want  float64
	}{
		{"single light item", domain.Order{"A": 1}, 30},
		{"single heavy item", domain.Order{"E": 1}, 105},
		{"two centers", domain.Order{"A": 1, "E": 1}, 160},
		// C1 payload 3+2+8 = 13 -> rate 26, no repositioning inside one center.
		{"one center many items", domain.Order{"A": 1, "B": 1, "C": 1}, 78},
		// C1: 3 x 10, C3: reposition 2 x 10 + delivery 2 x 10 (0.5 <= 5).
		{"light items from C1 and C3", domain.Order{"A": 1, "G": 1}, 70},
		// C1 30, C2 reposition 25 + 2.5 x 26 (weight 12), C3 reposition 20 + 2 x 10.
		{"all three centers", domain.Order{"A": 1, "D": 1, "H": 1}, 30 + 25 + 65 + 20 + 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.ComputeCost(tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineRateTierBoundaries(t *testing.T) {
	cat := &domain.Catalog{
		Hub:   "HUB",
		Items: map[string]float64{"five": 5, "tiny": 0.0001, "ten": 10},
		Centers: []domain.Center{
			{ID: "X", DistanceToHub: 1, Stock: map[string]float64{"five": 1, "tiny": 1, "ten": 1}},
		},
	}
	e, err := NewEngine(cat, domain.DefaultRates(), UnsourcedReject)
	require.NoError(t, err)

	tests := []struct {
		order domain.Order
		want  float64
	}{
		{domain.Order{"five": 1}, 10},
		{domain.Order{"five": 1, "tiny": 1}, 18},
		{domain.Order{"ten": 1}, 18},
		{domain.Order{"ten": 1, "tiny": 1}, 26},
		{domain.Order{"five": 3}, 26},
	}

	for _, tt := range tests {
		got, err := e.ComputeCost(tt.order)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "order %s", tt.order.Key())
	}
}

func TestEngineCostPositiveForEveryKnownSubset(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedReject)
	items := e.Catalog().ItemIDs()

	for mask := 1; mask < 1<<len(items); mask++ {
		order := domain.Order{}
		for i, id := range items {
			if mask&(1<<i) != 0 {
				order[id] = 1 + i%3
			}
		}

		q, err := e.Quote(order)
		require.NoError(t, err, order.Key())
		assert.Positive(t, q.TotalCost, order.Key())

		sum, deliveries, repositions := 0.0, 0, 0
		for _, l := range q.Legs {
			assert.GreaterOrEqual(t, l.Cost, 0.0, order.Key())
			sum += l.Cost
			switch l.Kind {
			case domain.LegDelivery:
				deliveries++
			case domain.LegReposition:
				repositions++
			}
		}
		assert.InDelta(t, q.TotalCost, sum, 1e-9, order.Key())
		assert.Equal(t, deliveries-1, repositions, order.Key())
	}
}

func TestEngineQuoteLegs(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedReject)

	q, err := e.Quote(domain.Order{"E": 1, "A": 1})
	require.NoError(t, err)

	require.Len(t, q.Legs, 3)
	assert.Equal(t, domain.Leg{Kind: domain.LegDelivery, Center: "C1", Distance: 3, Weight: 3, Rate: 10, Cost: 30}, q.Legs[0])
	assert.Equal(t, domain.Leg{Kind: domain.LegReposition, Center: "C2", Distance: 2.5, Rate: 10, Cost: 25}, q.Legs[1])
	assert.Equal(t, domain.Leg{Kind: domain.LegDelivery, Center: "C2", Distance: 2.5, Weight: 25, Rate: 42, Cost: 105}, q.Legs[2])
	assert.Equal(t, 160.0, q.TotalCost)
	assert.Empty(t, q.Unsourced)
}

func TestEngineRepositionsOnlyBetweenCenters(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedReject)

	q, err := e.Quote(domain.Order{"D": 2, "E": 1, "F": 4})
	require.NoError(t, err)

	for _, leg := range q.Legs {
		assert.NotEqual(t, domain.LegReposition, leg.Kind)
	}
	require.Len(t, q.Legs, 1)
	// 24 + 25 + 60 = 109 -> ceil(104/5) = 21 brackets -> 10 + 168.
	assert.Equal(t, 178.0, q.Legs[0].Rate)
	assert.Equal(t, 2.5*178, q.TotalCost)
}

func TestEngineUnsourcedPolicies(t *testing.T) {
	order := domain.Order{"A": 1, "Z": 5}

	strict := newDefaultEngine(t, UnsourcedReject)
	_, err := strict.Quote(order)
	require.ErrorIs(t, err, domain.ErrUnsourceableItem)

	var ue *domain.UnsourceableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"Z"}, ue.Items)

	lenient := newDefaultEngine(t, UnsourcedDrop)
	q, err := lenient.Quote(order)
	require.NoError(t, err)
	assert.Equal(t, 30.0, q.TotalCost)
	assert.Equal(t, []string{"Z"}, q.Unsourced)

	q, err = lenient.Quote(domain.Order{"Z": 1})
	require.NoError(t, err)
	assert.Zero(t, q.TotalCost)
	assert.Empty(t, q.Legs)
}

func TestEngineRejectsInvalidOrders(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedDrop)

	_, err := e.Quote(domain.Order{})
	require.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = e.Quote(domain.Order{"A": -1})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestEngineIsolatedFromCatalogMutation(t *testing.T) {
	cat := domain.DefaultCatalog()
	e, err := NewEngine(cat, domain.DefaultRates(), UnsourcedReject)
	require.NoError(t, err)
	before := e.Fingerprint()

	cat.Items["A"] = 100
	cat.Centers[0].DistanceToHub = 50

	got, err := e.ComputeCost(domain.Order{"A": 1})
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)
	assert.Equal(t, before, e.Fingerprint())
}

func TestEngineFingerprintTracksInputs(t *testing.T) {
	a := newDefaultEngine(t, UnsourcedReject)
	b := newDefaultEngine(t, UnsourcedReject)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	rates := domain.DefaultRates()
	rates.BracketStep = 9
	c, err := NewEngine(domain.DefaultCatalog(), rates, UnsourcedReject)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := newDefaultEngine(t, UnsourcedDrop)
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestEngineConcurrentQuotes(t *testing.T) {
	e := newDefaultEngine(t, UnsourcedReject)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.ComputeCost(domain.Order{"A": 1, "E": 1})
			if err != nil {
				errs <- err
				return
			}
			if got != 160 {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent quote failed: %v", err)
	}
}

func TestParseUnsourcedPolicy(t *testing.T) {
	p, err := ParseUnsourcedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, UnsourcedReject, p)

	p, err = ParseUnsourcedPolicy(" DROP ")
	require.NoError(t, err)
	assert.Equal(t, UnsourcedDrop, p)

	_, err = ParseUnsourcedPolicy("split")
	require.Error(t, err)
}
