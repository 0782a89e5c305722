package models

// CrmRecordModel is one extracted customer-relationship record.
// Rows are append-only: there is no update or delete path.
// Every extracted field is nullable; only the source transcript is required.
type CrmRecordModel struct {
	Base
	ContactName  *string `json:"contact_name"   gorm:"type:varchar(191)"`
	CompanyName  *string `json:"company_name"   gorm:"type:varchar(191)"`
	DealValueUSD *int64  `json:"deal_value_usd" gorm:"column:deal_value_usd"`
	Sentiment    *string `json:"sentiment"      gorm:"type:varchar(16)"`
	NextStep     *string `json:"next_step"      gorm:"type:text"`
	FollowUpDate *string `json:"follow_up_date" gorm:"type:char(10)"`
	FullSummary  *string `json:"full_summary"   gorm:"type:text"`
	AtRisk       *bool   `json:"at_risk"`
	Transcript   string  `json:"transcript"     gorm:"type:longtext;not null"`
}

func (CrmRecordModel) TableName() string { return "crm_records" }

// Sentiment values accepted on a record. Anything else normalizes to null.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)
