package models

import "time"

type Musteri struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ContactInfo    string `json:"contactInfo"`
	Address        string `json:"address"`
	JobDescription string `json:"jobDescription"`
}

type GelirYontemi string

const (
	GelirTRY  GelirYontemi = "TRY"
	GelirUSD  GelirYontemi = "USD"
	GelirEUR  GelirYontemi = "EUR"
	GelirGold GelirYontemi = "GOLD"
)

type AltinTuru string

const (
	AltinGram   AltinTuru = "gram"
	AltinCeyrek AltinTuru = "quarter"
	AltinTam    AltinTuru = "full"
)

// IsHakedis - bir iş içinde tek personelin hakedişi (o iş için hak ettiği tutar)
type IsHakedis struct {
	PersonelID    int          `json:"personnelId"`
	Payment       float64      `json:"payment"`
	DaysWorked    float64      `json:"daysWorked"`
	PaymentMethod OdemeYontemi `json:"paymentMethod,omitempty"`
}

type Malzeme struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type MusteriIs struct {
	ID                  int          `json:"id"`
	MusteriID           int          `json:"customerId"`
	Location            string       `json:"location"`
	Description         string       `json:"description"`
	Date                time.Time    `json:"date"`
	Income              float64      `json:"income"`
	IncomePaymentMethod GelirYontemi `json:"incomePaymentMethod"`
	IncomeGoldType      AltinTuru    `json:"incomeGoldType,omitempty"` // sadece GOLD için
	PersonelIDs         []int        `json:"personnelIds"`             // türetilmiş alan, hakedişlerden hesaplanır
	Hakedisler          []IsHakedis  `json:"personnelPayments"`
	Malzemeler          []Malzeme    `json:"materials"`
}
