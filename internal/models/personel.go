package models

import "time"

// PersonelNotu - personel kartındaki serbest not alanı
type PersonelNotu struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Personel struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"` // backend "EMPTY" gönderirse boş string olur
	Note      *PersonelNotu `json:"note,omitempty"`
	ForemanID *int          `json:"foremanId,omitempty"` // bağlı olduğu usta/ekip başı
}

type Odeyen string

const (
	OdeyenOmer  Odeyen = "Omer"
	OdeyenBaris Odeyen = "Baris"
	OdeyenKasa  Odeyen = "Kasa"
)

type OdemeYontemi string

const (
	OdemeNakit    OdemeYontemi = "cash"
	OdemeKart     OdemeYontemi = "card"
	OdemeTransfer OdemeYontemi = "transfer"
)

// PersonelOdeme - personele yapılan fiili ödeme (hakedişten bağımsız)
type PersonelOdeme struct {
	ID            int          `json:"id"`
	PersonelID    int          `json:"personnelId"`
	Amount        float64      `json:"amount"`
	Date          time.Time    `json:"date"`
	CustomerJobID *int         `json:"customerJobId,omitempty"`
	Payer         Odeyen       `json:"payer"`
	PaymentMethod OdemeYontemi `json:"paymentMethod"`
}
