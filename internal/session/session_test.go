package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/rentcalc/outsource-calculator/internal/domain"
	"github.com/rentcalc/outsource-calculator/internal/history"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	store := history.Open(context.Background(), history.NewMemoryBackend(nil))
	return New(store, WithIDGenerator(sequentialIDs()))
}

func TestNewSessionIsIncomplete(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, domain.ModeSubletting, s.Mode())
	assert.Equal(t, "20", s.TargetMargin().String())

	result, ok := s.Result()
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestSublettingFlow(t *testing.T) {
	s := newTestSession(t)
	s.SetRentCost("20000")
	s.SetTotalRevenue("45000")
	s.SetOutsourceRate("10")

	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, "18357", result.Profit.String())
	assert.Equal(t, "4500", result.NetPay.String())
}

func TestModeSwitchKeepsBuckets(t *testing.T) {
	s := newTestSession(t)
	s.SetRentCost("20000")
	s.SetTotalRevenue("45000")
	s.SetOutsourceRate("10")

	require.NoError(t, s.SetMode(domain.ModeManagement))
	_, ok := s.Result()
	assert.False(t, ok, "management bucket starts empty")

	s.SetRentAmount("30000")
	s.SetServiceFeeRate("15")
	s.SetSplitRatio("50")
	result, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, "2036", result.Profit.String())

	require.NoError(t, s.SetMode(domain.ModeSubletting))
	result, ok = s.Result()
	require.True(t, ok)
	assert.Equal(t, "18357", result.Profit.String())
	assert.Equal(t, "30000", s.Management().RentAmount)

	assert.Error(t, s.SetMode("other"))
	assert.Equal(t, domain.ModeSubletting, s.Mode())
}

func TestAmortizationItems(t *testing.T) {
	s := newTestSession(t)
	s.SetRentCost("20000")
	s.SetTotalRevenue("45000")
	s.SetOutsourceRate("10")

	a := s.AddAmortizationItem("Furniture", "3000")
	b := s.AddAmortizationItem("Cleaning", "1000")
	c := s.AddAmortizationItem("Repairs", "500")
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, []string{a, b, c})

	result, _ := s.Result()
	assert.Equal(t, "4500", result.AmortizationTotal.String())
	assert.Equal(t, "24500", result.OperationalCost.String())

	require.NoError(t, s.UpdateAmortizationItem(b, "Deep cleaning", "1200"))
	assert.ErrorIs(t, s.UpdateAmortizationItem("missing", "x", "1"), ErrItemNotFound)

	items := s.AmortizationItems()
	items[0].Amount = "0"
	assert.Equal(t, "3000", s.AmortizationItems()[0].Amount, "returned items are copies")

	assert.True(t, s.RemoveAmortizationItem(a))
	assert.False(t, s.RemoveAmortizationItem(a))

	items = s.AmortizationItems()
	require.Len(t, items, 2)
	assert.Equal(t, domain.AmortizationItem{ID: b, Label: "Deep cleaning", Amount: "1200"}, items[0])
	assert.Equal(t, c, items[1].ID)

	result, _ = s.Result()
	assert.Equal(t, "1700", result.AmortizationTotal.String())
}

func TestBudgetAssistant(t *testing.T) {
	s := newTestSession(t)
	s.SetTotalRevenue("42000") // 40000 ex VAT

	assert.True(t, s.SetTargetMargin(decimal.NewFromInt(20)))
	assert.Equal(t, "32000", s.Subletting().RentCost)
	assert.Equal(t, "20", s.TargetMargin().String())

	assert.True(t, s.ApplyPreset(decimal.NewFromInt(30)))
	assert.Equal(t, "28000", s.Subletting().RentCost)

	assert.True(t, s.SetTargetMargin(decimal.NewFromInt(80)))
	assert.Equal(t, "50", s.TargetMargin().String())
	assert.Equal(t, "20000", s.Subletting().RentCost)

	cost, ok := s.SuggestedCost()
	require.True(t, ok)
	assert.Equal(t, "20000", cost.String())
}

func TestBudgetAssistantWithoutRevenue(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.SetTargetMargin(decimal.NewFromInt(25)))
	assert.Equal(t, "25", s.TargetMargin().String())
	assert.Equal(t, "", s.Subletting().RentCost)

	_, ok := s.SuggestedCost()
	assert.False(t, ok)
}

func TestRentCostEditsRespectHysteresis(t *testing.T) {
	s := newTestSession(t)
	s.SetTotalRevenue("42000")

	s.SetRentCost("31900") // 20.25%
	assert.Equal(t, "20", s.TargetMargin().String())

	s.SetRentCost("32200") // 19.5%, on the band edge
	assert.Equal(t, "20", s.TargetMargin().String())

	s.SetRentCost("30000") // 25%
	assert.Equal(t, "25", s.TargetMargin().String())

	s.SetRentCost("not a number")
	assert.Equal(t, "25", s.TargetMargin().String())
}

func TestSaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	_, err := s.Save(ctx, "Main St")
	var verr *history.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, history.ErrNoResult)

	s.SetRentCost("20000")
	s.SetTotalRevenue("45000")
	s.SetOutsourceRate("10")
	s.AddAmortizationItem("Paint", "900")

	_, err = s.Save(ctx, "")
	assert.ErrorIs(t, err, history.ErrEmptyLabel)

	rec, err := s.Save(ctx, "Main St")
	require.NoError(t, err)
	saved := s.Subletting()

	s.SetRentCost("1")
	s.RemoveAmortizationItem("item-1")
	require.NoError(t, s.SetMode(domain.ModeManagement))
	s.SetRentAmount("30000")

	require.NoError(t, s.LoadRecord(rec.ID))
	assert.Equal(t, domain.ModeSubletting, s.Mode())
	assert.Equal(t, saved, s.Subletting())
	assert.Equal(t, "30000", s.Management().RentAmount, "loading a subletting record leaves management inputs alone")

	require.Len(t, s.Records(), 1)
	removed, err := s.DeleteRecord(ctx, rec.ID, func(domain.SavedRecord) bool { return true })
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.Records())

	assert.ErrorIs(t, s.LoadRecord(rec.ID), history.ErrNotFound)
}

func TestLoadLegacyRecordAssignsItemIDs(t *testing.T) {
	blob := `[{"id":"7","timestamp":7,"address":"Old","mode":"subletting",
		"subletData":{"rentCost":"1","totalRevenue":"2","outsourceRate":"3","amortizationItems":[{"label":"legacy","amount":"5"}]}}]`
	store := history.Open(context.Background(), history.NewMemoryBackend([]byte(blob)))
	s := New(store, WithIDGenerator(sequentialIDs()))

	require.NoError(t, s.LoadRecord("7"))
	items := s.AmortizationItems()
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)
}

func TestSessionWithoutStore(t *testing.T) {
	s := New(nil)
	_, err := s.Save(context.Background(), "x")
	assert.Error(t, err)
	assert.Error(t, s.LoadRecord("1"))
	_, err = s.DeleteRecord(context.Background(), "1", nil)
	assert.Error(t, err)
	assert.Nil(t, s.Records())
}
