package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/zeroclick/core/internal/models"
)

// rupeeToUSDRate is the fixed conversion rate applied when the model left
// a rupee-tagged amount unconverted.
const rupeeToUSDRate = 80

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Normalize coerces a loosely-typed extraction result into the canonical
// record schema. Model output is unreliable input, so every field degrades
// to null independently; Normalize never fails and never drops the record.
func Normalize(raw map[string]interface{}) models.CrmRecordModel {
	var rec models.CrmRecordModel
	rec.ContactName = normalizeString(raw["contact_name"])
	rec.CompanyName = normalizeString(raw["company_name"])
	rec.DealValueUSD = normalizeDealValue(raw["deal_value_usd"])
	rec.Sentiment = normalizeSentiment(raw["sentiment"])
	rec.NextStep = normalizeString(raw["next_step"])
	rec.FollowUpDate = normalizeDate(raw["follow_up_date"])
	rec.FullSummary = normalizeString(raw["full_summary"])
	rec.AtRisk = normalizeBool(raw["at_risk"])
	return rec
}

func normalizeString(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	// Models told to "return null" sometimes emit the literal word.
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// normalizeDealValue accepts a JSON number or a string amount. String
// amounts may carry currency symbols and thousands separators; a rupee
// amount is converted at the fixed 80:1 rate. The final value must be a
// finite non-negative integer, otherwise null.
func normalizeDealValue(v interface{}) *int64 {
	switch val := v.(type) {
	case float64:
		return validUSDAmount(val)
	case string:
		s := strings.TrimSpace(val)
		if s == "" || strings.EqualFold(s, "null") {
			return nil
		}
		inRupees := strings.Contains(s, "₹")
		for _, cut := range []string{"₹", "$", "USD", ",", " "} {
			s = strings.ReplaceAll(s, cut, "")
		}
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		if inRupees {
			amount = math.Trunc(amount / rupeeToUSDRate)
		}
		return validUSDAmount(amount)
	default:
		return nil
	}
}

func validUSDAmount(amount float64) *int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	if amount < 0 || amount != math.Trunc(amount) {
		return nil
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if amount >= math.MaxInt64 {
		return nil
	}
	n := int64(amount)
	return &n
}

func normalizeSentiment(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	for _, canonical := range []string{
		models.SentimentPositive,
		models.SentimentNeutral,
		models.SentimentNegative,
	} {
		if strings.EqualFold(strings.TrimSpace(s), canonical) {
			c := canonical
			return &c
		}
	}
	return nil
}

// normalizeDate accepts only exact YYYY-MM-DD strings naming a real
// calendar date. Ambiguity is resolved by rejection, not guessing.
func normalizeDate(v interface{}) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if !datePattern.MatchString(s) {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return nil
	}
	return &s
}

// normalizeBool accepts only a real boolean. Truthy numbers and strings
// are rejected, not coerced.
func normalizeBool(v interface{}) *bool {
	b, ok := v.(bool)
	if !ok {
		return nil
	}
	return &b
}
