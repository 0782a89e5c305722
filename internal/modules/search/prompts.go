package search

import "fmt"

// searchTemperature matches the extraction side: SQL generation needs
// reproducibility, not creativity.
const searchTemperature = 0.1

const tableSchema = `contact_name:STRING, company_name:STRING, deal_value_usd:INTEGER, sentiment:STRING, next_step:STRING, follow_up_date:DATE, full_summary:STRING, at_risk:BOOLEAN, transcript:STRING, created_at:TIMESTAMP`

const systemPromptTemplate = `You are a SQL expert.
Your job is to convert a user's natural language query into a single valid SQL query.
You must query the table: %s
The table schema is:
%s

RULES:
- ONLY respond with the single, valid, complete SQL query.
- DO NOT wrap the query in markdown or add any other text.
- ONLY generate a read-only SELECT statement. Never INSERT, UPDATE, DELETE, DROP or ALTER.
- Be smart: "deals at risk" means "at_risk = true".
- "this week" should be relative to CURRENT_TIMESTAMP.
- Always sort by 'created_at DESC'.
- Always end with 'LIMIT %d'.

Examples:
Q: show me deals at risk
SQL: SELECT * FROM %s WHERE at_risk = true ORDER BY created_at DESC LIMIT %d
Q: what did I discuss with Acme this week
SQL: SELECT * FROM %s WHERE company_name = 'Acme' AND created_at >= TIMESTAMP(DATE_SUB(CURRENT_DATE, INTERVAL 7 DAY)) ORDER BY created_at DESC LIMIT %d`

func buildSystemPrompt(fullTable string, rowLimit int) string {
	return fmt.Sprintf(systemPromptTemplate,
		fullTable, tableSchema,
		rowLimit,
		fullTable, rowLimit,
		fullTable, rowLimit)
}

func userTurn(question string) string {
	return fmt.Sprintf("User Query: %q\nSQL:", question)
}
