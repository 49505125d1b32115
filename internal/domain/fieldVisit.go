package domain

import "time"

type VisitPurpose string

const (
	VisitPurposeSales       VisitPurpose = "sales"
	VisitPurposeFollowUp    VisitPurpose = "followup"
	VisitPurposeNewCustomer VisitPurpose = "newcustomer"
	VisitPurposeCollection  VisitPurpose = "collection"
	VisitPurposeSurvey      VisitPurpose = "survey"
	VisitPurposeDelivery    VisitPurpose = "delivery"
	VisitPurposeMaintenance VisitPurpose = "maintenance"
)

var VisitPurposes = []VisitPurpose{
	VisitPurposeSales,
	VisitPurposeFollowUp,
	VisitPurposeNewCustomer,
	VisitPurposeCollection,
	VisitPurposeSurvey,
	VisitPurposeDelivery,
	VisitPurposeMaintenance,
}

func (p VisitPurpose) IsValid() bool {
	for _, purpose := range VisitPurposes {
		if p == purpose {
			return true
		}
	}
	return false
}

type FieldVisit struct {
	ID           string               `json:"id"`
	SalesRepID   string               `json:"sales_rep_id"`
	SalesRep     *SalesRepresentative `json:"sales_rep,omitempty"`
	StoreID      string               `json:"store_id"`
	Store        *Store               `json:"store,omitempty"`
	VisitPurpose VisitPurpose         `json:"visit_purpose"`
	Notes        *string              `json:"notes,omitempty"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	Photos       []string             `json:"photos"`
	CheckInTime  time.Time            `json:"check_in_time"`
	VisitDate    time.Time            `json:"visit_date"`
	CheckOutTime *time.Time           `json:"check_out_time,omitempty"`
	Result       *string              `json:"result,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type FieldVisitFilter struct {
	SalesRepID *string
}
