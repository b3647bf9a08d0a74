package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saajhamandi/internal/catalog"
)

func newTestPipeline() *Pipeline {
	c := catalog.Default()
	p := NewPipeline(c, NewSimulator(c, 42), zap.NewNop())

	n := 0
	p.newID = func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	}
	return p
}

func strPtr(s string) *string {
	return &s
}

func TestPipeline_TomatoesAndMilk(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Process(strPtr("2kg tomatoes and 1 liter milk"))
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "line-1", result.Items[0].ID)
	assert.Equal(t, "Tomato", result.Items[0].DisplayName)
	assert.Equal(t, "2 kg", result.Items[0].Quantity)
	assert.Equal(t, "₹100.00", result.Items[0].Price)
	assert.Equal(t, 100.0, result.Items[0].Amount)
	assert.Equal(t, 1, result.Items[0].ProductID)

	assert.Equal(t, "Milk", result.Items[1].DisplayName)
	assert.Equal(t, "1 liter", result.Items[1].Quantity)
	assert.Equal(t, "₹60.00", result.Items[1].Price)

	assert.Equal(t, 160.0, result.Total)
	assert.Equal(t, "2kg tomatoes and 1 liter milk", result.Transcript)
	assert.False(t, result.Simulated)
}

func TestPipeline_GramsOfButter(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Process(strPtr("500g butter"))
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Butter", result.Items[0].DisplayName)
	assert.Equal(t, "500 g", result.Items[0].Quantity)
	assert.Equal(t, "₹45.00", result.Items[0].Price)
	assert.Equal(t, 45.0, result.Total)
}

// A bare count against a dozen price is not converted; the line is charged
// one unit price. This is a known approximation kept for compatibility.
func TestPipeline_SixEggsChargesUnitPrice(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Process(strPtr("6 eggs"))
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Egg", result.Items[0].DisplayName)
	assert.Equal(t, "6", result.Items[0].Quantity)
	assert.Equal(t, "₹70.00", result.Items[0].Price)
}

func TestPipeline_DefaultQuantity(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Process(strPtr("bananas"))
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "Banana", result.Items[0].DisplayName)
	assert.Equal(t, "1 dozen", result.Items[0].Quantity)
	assert.Equal(t, "₹30.00", result.Items[0].Price)
}

func TestPipeline_NoItemsRecognized(t *testing.T) {
	p := newTestPipeline()

	for _, utterance := range []string{"", "good morning", "5 kg of mangoes"} {
		result, err := p.Process(strPtr(utterance))
		assert.ErrorIs(t, err, ErrNoItemsRecognized, utterance)
		require.NotNil(t, result)
		assert.Empty(t, result.Items)
		assert.Equal(t, utterance, result.Transcript)
	}
}

func TestPipeline_Simulated(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Process(nil)
	require.NoError(t, err)

	assert.True(t, result.Simulated)
	assert.Empty(t, result.Transcript)
	assert.GreaterOrEqual(t, len(result.Items), 2)
	assert.LessOrEqual(t, len(result.Items), 4)

	sum := 0.0
	for _, item := range result.Items {
		assert.NotEmpty(t, item.Quantity)
		assert.Equal(t, p.pricer.FormatPrice(item.Amount), item.Price)
		sum += item.Amount
	}
	assert.Equal(t, Round2(sum), result.Total)
}

func TestSimulator_DeterministicForSeed(t *testing.T) {
	c := catalog.Default()

	a := NewSimulator(c, 7).Mentions()
	b := NewSimulator(c, 7).Mentions()

	assert.Equal(t, a, b)

	seen := map[string]bool{}
	for _, m := range a {
		assert.False(t, seen[m.RawName], "duplicate product %s", m.RawName)
		seen[m.RawName] = true

		e, ok := c.Lookup(m.RawName)
		require.True(t, ok)
		assert.Contains(t, e.PackageSizes, m.RawQuantity)
	}
}
