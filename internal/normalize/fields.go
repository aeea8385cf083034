package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Alan eşleme tabloları: her mantıksal alan için aday anahtarlar öncelik
// sırasıyla denenir. Backend (.NET) PascalCase/Türkçe, eski frontend sözleşmesi
// camelCase/İngilizce gönderebildiği için iki taraf da listededir.
var (
	keysID         = []string{"Id", "id", "ID"}
	keysAdSoyad    = []string{"AdSoyad", "adSoyad", "name", "Name"}
	keysNot        = []string{"Not", "not", "note", "Note"}
	keysUstabasiID = []string{"UstabasiId", "ustabasiId", "foremanId", "ForemanId"}

	keysIletisim  = []string{"Iletisim", "iletisim", "contactInfo", "ContactInfo"}
	keysAdres     = []string{"Adres", "adres", "address", "Address"}
	keysIsTanimi  = []string{"IsTanimi", "isTanimi", "jobDescription", "JobDescription"}
	keysMusteriID = []string{"MusteriId", "musteriId", "customerId", "CustomerId"}

	keysKonum        = []string{"Konum", "konum", "location", "Location"}
	keysAciklama     = []string{"Aciklama", "aciklama", "description", "Description"}
	keysTarih        = []string{"Tarih", "tarih", "date", "Date"}
	keysGelir        = []string{"Gelir", "gelir", "income", "Income"}
	keysGelirYontemi = []string{"GelirOdemeYontemi", "gelirOdemeYontemi", "incomePaymentMethod", "IncomePaymentMethod"}
	keysAltinTuru    = []string{"AltinTuru", "altinTuru", "incomeGoldType", "IncomeGoldType"}
	keysPersonelIDs  = []string{"PersonelIds", "personelIds", "personnelIds", "PersonnelIds"}
	keysHakedisler   = []string{"Hakedisler", "hakedisler", "personnelPayments", "PersonnelPayments"}
	keysMalzemeler   = []string{"Malzemeler", "malzemeler", "materials", "Materials"}

	keysPersonelID = []string{"PersonelId", "personelId", "personnelId", "PersonnelId"}
	keysOdeme      = []string{"Odeme", "odeme", "payment", "Payment"}
	keysGunSayisi  = []string{"CalisilanGun", "calisilanGun", "daysWorked", "DaysWorked"}

	keysAd         = []string{"Ad", "ad", "name", "Name"}
	keysBirim      = []string{"Birim", "birim", "unit", "Unit"}
	keysMiktar     = []string{"Miktar", "miktar", "quantity", "Quantity"}
	keysBirimFiyat = []string{"BirimFiyat", "birimFiyat", "unitPrice", "UnitPrice"}

	keysTutar        = []string{"Tutar", "tutar", "amount", "Amount"}
	keysMusteriIsID  = []string{"MusteriIsId", "musteriIsId", "customerJobId", "CustomerJobId"}
	keysOdeyen       = []string{"Odeyen", "odeyen", "payer", "Payer"}
	keysOdemeYontemi = []string{"OdemeYontemi", "odemeYontemi", "paymentMethod", "PaymentMethod"}

	keysTur        = []string{"Tur", "tur", "type", "Type"}
	keysDurum      = []string{"Durum", "durum", "status", "Status"}
	keysVade       = []string{"VadeTarihi", "vadeTarihi", "dueDate", "DueDate"}
	keysOdemeTarih = []string{"OdemeTarihi", "odemeTarihi", "paidDate", "PaidDate"}
	keysNotlar     = []string{"Notlar", "notlar", "notes", "Notes"}
	keysSilinme    = []string{"SilinmeTarihi", "silinmeTarihi", "deletedAt", "DeletedAt"}
	keysTamamlandi = []string{"Tamamlandi", "tamamlandi", "completed", "Completed"}
	keysKategori   = []string{"Kategori", "kategori", "category", "Category"}
	keysMetin      = []string{"Metin", "metin", "text", "Text"}
	keysGuncelleme = []string{"GuncellemeTarihi", "guncellemeTarihi", "updatedAt", "UpdatedAt"}

	keysKayitID     = []string{"KayitId", "kayitId", "Id", "id"}
	keysGunlukUcret = []string{"GunlukUcret", "gunlukUcret", "dailyWage", "DailyWage"}

	keysEmail = []string{"Email", "email", "Eposta", "eposta"}
	keysSifre = []string{"SifreHash", "sifreHash", "passwordHash", "PasswordHash"}
	keysRol   = []string{"Rol", "rol", "role", "Role"}
)

// kabul edilen tarih formatları, sırayla denenir
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func pickRaw(rec map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func str(rec map[string]any, keys []string) string {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// num - JS tarafındaki Number(x) || 0 davranışı: sayı değilse sıfır
func num(rec map[string]any, keys []string) float64 {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return 0
}

func numInt(rec map[string]any, keys []string) int {
	return int(num(rec, keys))
}

func boolVal(rec map[string]any, keys []string) bool {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	case float64:
		return b != 0
	}
	return false
}

func parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// date - çözümlenemeyen tarih ileriye geçersiz değer taşımasın diye "şimdi"ye düşer
func date(rec map[string]any, keys []string) time.Time {
	if v, ok := pickRaw(rec, keys); ok {
		if t, ok := parseDate(v); ok {
			return t
		}
	}
	return time.Now()
}

// dateP - opsiyonel tarih: yoksa ya da bozuksa nil
func dateP(rec map[string]any, keys []string) *time.Time {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return nil
	}
	if t, ok := parseDate(v); ok {
		return &t
	}
	return nil
}

func rawSlice(rec map[string]any, keys []string) []map[string]any {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func intSlice(rec map[string]any, keys []string) []int {
	v, ok := pickRaw(rec, keys)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, it := range items {
		if f, ok := it.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}

// cleanName - backend "isim yok" için "EMPTY" sabiti gönderir, boş stringe çevrilir
func cleanName(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "EMPTY") {
		return ""
	}
	return s
}
