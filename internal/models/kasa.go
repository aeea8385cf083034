package models

import "time"

type DefterTur string

const (
	DefterGelir DefterTur = "income"
	DefterGider DefterTur = "expense"
)

type DefterDurum string

const (
	DefterOdendi   DefterDurum = "paid"
	DefterOdenmedi DefterDurum = "unpaid"
)

// DefterEntry - defterdeki tek satır (gelir/gider kaydı)
type DefterEntry struct {
	ID          int         `json:"id"`
	Type        DefterTur   `json:"type"`
	Status      DefterDurum `json:"status"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	PaidDate    *time.Time  `json:"paidDate,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// DefterNote - yapışkan not; kategori ve vade opsiyonel
type DefterNote struct {
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Category  string     `json:"category,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// OrtakGider - ortak kasadan yapılan gider. DeletedAt dolu ise soft-delete
// edilmiştir: aktif listelerden ve bakiye toplamlarından düşer ama kalıcı
// silinene kadar koleksiyonda kalır.
type OrtakGider struct {
	ID            int          `json:"id"`
	Description   string       `json:"description"`
	Amount        float64      `json:"amount"`
	Payer         Odeyen       `json:"payer"`
	PaymentMethod OdemeYontemi `json:"paymentMethod"`
	Status        DefterDurum  `json:"status"`
	Date          time.Time    `json:"date"`
	DeletedAt     *time.Time   `json:"deletedAt,omitempty"`
}
