package extraction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullRecord(t *testing.T) {
	rec := Normalize(map[string]interface{}{
		"contact_name":   "Priya Sharma",
		"company_name":   "Acme Corp",
		"deal_value_usd": float64(1000),
		"sentiment":      "Positive",
		"next_step":      "Send revised proposal",
		"follow_up_date": "2024-03-05",
		"full_summary":   "Priya wants a revised proposal by next week.",
		"at_risk":        false,
	})

	require.NotNil(t, rec.ContactName)
	assert.Equal(t, "Priya Sharma", *rec.ContactName)
	require.NotNil(t, rec.DealValueUSD)
	assert.Equal(t, int64(1000), *rec.DealValueUSD)
	require.NotNil(t, rec.Sentiment)
	assert.Equal(t, "Positive", *rec.Sentiment)
	require.NotNil(t, rec.FollowUpDate)
	assert.Equal(t, "2024-03-05", *rec.FollowUpDate)
	require.NotNil(t, rec.AtRisk)
	assert.False(t, *rec.AtRisk)
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]interface{}{})

	assert.Nil(t, rec.ContactName)
	assert.Nil(t, rec.CompanyName)
	assert.Nil(t, rec.DealValueUSD)
	assert.Nil(t, rec.Sentiment)
	assert.Nil(t, rec.NextStep)
	assert.Nil(t, rec.FollowUpDate)
	assert.Nil(t, rec.FullSummary)
	assert.Nil(t, rec.AtRisk)
}

func TestNormalizeCanonicalRecordIsNoOp(t *testing.T) {
	first := Normalize(map[string]interface{}{
		"contact_name":   "Raj Patel",
		"company_name":   "Acme Corp",
		"deal_value_usd": float64(1000),
		"sentiment":      "Positive",
		"next_step":      "Confirm the deal",
		"follow_up_date": "2024-03-05",
		"full_summary":   "Raj wants the deal confirmed by March 5th.",
		"at_risk":        false,
	})

	second := Normalize(map[string]interface{}{
		"contact_name":   *first.ContactName,
		"company_name":   *first.CompanyName,
		"deal_value_usd": float64(*first.DealValueUSD),
		"sentiment":      *first.Sentiment,
		"next_step":      *first.NextStep,
		"follow_up_date": *first.FollowUpDate,
		"full_summary":   *first.FullSummary,
		"at_risk":        *first.AtRisk,
	})
	assert.Equal(t, first, second)
}

func TestNormalizeString(t *testing.T) {
	assert.Nil(t, normalizeString(nil))
	assert.Nil(t, normalizeString(""))
	assert.Nil(t, normalizeString("   "))
	assert.Nil(t, normalizeString("null"))
	assert.Nil(t, normalizeString("NULL"))
	assert.Nil(t, normalizeString(float64(42)))

	got := normalizeString("  Acme Corp  ")
	require.NotNil(t, got)
	assert.Equal(t, "Acme Corp", *got)
}

func TestNormalizeDealValue(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want *int64
	}{
		{"plain number", float64(5000), int64p(5000)},
		{"zero", float64(0), int64p(0)},
		{"negative", float64(-100), nil},
		{"fractional", float64(99.5), nil},
		{"dollar string", "$12,000", int64p(12000)},
		{"usd suffix", "5000 USD", int64p(5000)},
		{"rupee string", "₹80,000", int64p(1000)},
		{"rupee odd amount", "₹100", int64p(1)},
		{"beyond int64 number", float64(1e19), nil},
		{"int64 boundary", float64(math.MaxInt64), nil},
		{"beyond int64 string", "10000000000000000000", nil},
		{"garbage string", "call me maybe", nil},
		{"null string", "null", nil},
		{"boolean", true, nil},
		{"nil", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeDealValue(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestNormalizeSentiment(t *testing.T) {
	for in, want := range map[string]string{
		"Positive": "Positive",
		"positive": "Positive",
		"NEUTRAL":  "Neutral",
		"negative": "Negative",
	} {
		got := normalizeSentiment(in)
		require.NotNil(t, got, in)
		assert.Equal(t, want, *got)
	}

	assert.Nil(t, normalizeSentiment("happy"))
	assert.Nil(t, normalizeSentiment(""))
	assert.Nil(t, normalizeSentiment(float64(1)))
	assert.Nil(t, normalizeSentiment(nil))
}

func TestNormalizeDate(t *testing.T) {
	got := normalizeDate("2024-03-05")
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-05", *got)

	assert.Nil(t, normalizeDate("2024-13-40"), "impossible calendar date")
	assert.Nil(t, normalizeDate("2024-02-30"))
	assert.Nil(t, normalizeDate("05/03/2024"))
	assert.Nil(t, normalizeDate("next Tuesday"))
	assert.Nil(t, normalizeDate("2024-3-5"))
	assert.Nil(t, normalizeDate(nil))
}

func TestNormalizeBool(t *testing.T) {
	got := normalizeBool(true)
	require.NotNil(t, got)
	assert.True(t, *got)

	assert.Nil(t, normalizeBool("true"))
	assert.Nil(t, normalizeBool(float64(1)))
	assert.Nil(t, normalizeBool(nil))
}

func int64p(n int64) *int64 { return &n }
