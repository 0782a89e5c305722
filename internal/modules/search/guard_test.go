package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroclick/core/internal/modules/genai"
	"go.uber.org/zap"
)

const testTable = "zero_click_crm.crm_records"

type fakeModel struct {
	output  string
	err     error
	calls   int
	lastReq genai.Request
}

func (f *fakeModel) Generate(_ context.Context, req genai.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.output, f.err
}

func newTestGuard(model *fakeModel) *Guard {
	return NewGuard(model, testTable, 50, zap.NewNop())
}

func TestTranslateCleanQuery(t *testing.T) {
	want := "SELECT * FROM zero_click_crm.crm_records WHERE at_risk = true ORDER BY created_at DESC LIMIT 50"
	model := &fakeModel{output: want}
	guard := newTestGuard(model)

	q, err := guard.Translate(context.Background(), "show me deals at risk")
	require.NoError(t, err)
	assert.Equal(t, want, q.SQL())
	assert.Equal(t, 1, model.calls)
}

func TestTranslateSanitization(t *testing.T) {
	want := "SELECT * FROM zero_click_crm.crm_records ORDER BY created_at DESC LIMIT 50"
	cases := map[string]string{
		"sql fence":        "```sql\n" + want + "\n```",
		"bare fence":       "```\n" + want + "\n```",
		"wrapping ticks":   "`" + want + "`",
		"leading prose":    "Sure, here is the query:\n" + want,
		"trailing semi":    want + ";",
		"lowercase select": "select * from zero_click_crm.crm_records order by created_at desc limit 50",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			guard := newTestGuard(&fakeModel{output: raw})
			q, err := guard.Translate(context.Background(), "anything")
			require.NoError(t, err)
			assert.Contains(t, q.SQL(), "crm_records")
		})
	}
}

func TestTranslateRejectsProse(t *testing.T) {
	model := &fakeModel{output: "I'm sorry, I cannot write that query for you."}
	guard := newTestGuard(model)

	_, err := guard.Translate(context.Background(), "delete everything")
	require.ErrorIs(t, err, ErrUnsafeQuery)
}

func TestTranslateRejectsUnsafeSQL(t *testing.T) {
	cases := map[string]string{
		"delete":          "DELETE FROM zero_click_crm.crm_records",
		"drop":            "DROP TABLE zero_click_crm.crm_records",
		"multi statement": "SELECT 1 FROM zero_click_crm.crm_records; DROP TABLE zero_click_crm.crm_records",
		"embedded insert": "SELECT * FROM zero_click_crm.crm_records WHERE id IN (INSERT INTO x VALUES (1))",
		"wrong table":     "SELECT * FROM mysql.user ORDER BY 1 DESC LIMIT 50",
		"empty":           "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			guard := newTestGuard(&fakeModel{output: raw})
			_, err := guard.Translate(context.Background(), "anything")
			require.ErrorIs(t, err, ErrUnsafeQuery)
		})
	}
}

func TestTranslateAllowsColumnNamesResemblingKeywords(t *testing.T) {
	out := "SELECT created_at, contact_name FROM zero_click_crm.crm_records ORDER BY created_at DESC LIMIT 50 OFFSET 10"
	guard := newTestGuard(&fakeModel{output: out})

	q, err := guard.Translate(context.Background(), "page two")
	require.NoError(t, err)
	assert.Equal(t, out, q.SQL())
}

func TestTranslatePromptShape(t *testing.T) {
	model := &fakeModel{output: "SELECT * FROM zero_click_crm.crm_records ORDER BY created_at DESC LIMIT 50"}
	guard := newTestGuard(model)

	_, err := guard.Translate(context.Background(), "recent deals")
	require.NoError(t, err)
	assert.Contains(t, model.lastReq.System, testTable)
	assert.Contains(t, model.lastReq.System, "at_risk:BOOLEAN")
	assert.Contains(t, model.lastReq.Prompt, `"recent deals"`)
	assert.InDelta(t, 0.1, model.lastReq.Temperature, 1e-9)
}
