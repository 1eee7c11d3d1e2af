package models

import "encoding/json"

// TriState is a boolean whose negative was never observed. Marketplace pages
// show a verified badge when a supplier is verified, but a missing badge does
// not mean "not verified" - it usually means the template did not render one.
// A TriState therefore only ever moves from Unknown to True.
type TriState int

const (
	Unknown TriState = iota
	True
)

func (t TriState) Known() bool { return t == True }

func (t TriState) MarshalJSON() ([]byte, error) {
	if t == True {
		return []byte("true"), nil
	}
	return []byte("null"), nil
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b != nil && *b {
		*t = True
	} else {
		*t = Unknown
	}
	return nil
}

// Supplier is the normalized record for a marketplace seller, assembled from
// several extraction layers of decreasing trust. Once a field is set by a
// higher-precedence layer it is never overwritten by a lower one.
type Supplier struct {
	Name           string   `json:"name"`
	Country        string   `json:"country"`
	YearsActive    string   `json:"years_active"`
	Rating         string   `json:"rating"`
	Reviews        string   `json:"reviews"`
	DeliveryRate   string   `json:"delivery_rate"`
	ResponseRate   string   `json:"response_rate"`
	ResponseTime   string   `json:"response_time"`
	BusinessType   string   `json:"business_type"`
	TradeAssurance TriState `json:"trade_assurance"`
	Verified       TriState `json:"verified"`
	ExportRevenue  string   `json:"export_revenue"`
	OnlineRevenue  string   `json:"online_revenue"`
	FactoryArea    string   `json:"factory_area"`
	Employees      string   `json:"employees"`
	FoundedYear    string   `json:"founded_year"`
	Services       []string `json:"services,omitempty"`
	BrandCount     string   `json:"brand_count"`
	SupplierRank   string   `json:"supplier_rank"`
	ProfileURL     string   `json:"profile_url,omitempty"`
}

func NewSupplier() *Supplier {
	return &Supplier{}
}

// Merge fills empty fields of s from other. First writer wins per field, not
// per record: a populated field is never replaced, tri-states only flip from
// Unknown to True.
func (s *Supplier) Merge(other *Supplier) {
	if other == nil {
		return
	}
	fill(&s.Name, other.Name)
	fill(&s.Country, other.Country)
	fill(&s.YearsActive, other.YearsActive)
	fill(&s.Rating, other.Rating)
	fill(&s.Reviews, other.Reviews)
	fill(&s.DeliveryRate, other.DeliveryRate)
	fill(&s.ResponseRate, other.ResponseRate)
	fill(&s.ResponseTime, other.ResponseTime)
	fill(&s.BusinessType, other.BusinessType)
	fill(&s.ExportRevenue, other.ExportRevenue)
	fill(&s.OnlineRevenue, other.OnlineRevenue)
	fill(&s.FactoryArea, other.FactoryArea)
	fill(&s.Employees, other.Employees)
	fill(&s.FoundedYear, other.FoundedYear)
	fill(&s.BrandCount, other.BrandCount)
	fill(&s.SupplierRank, other.SupplierRank)
	fill(&s.ProfileURL, other.ProfileURL)
	if len(s.Services) == 0 && len(other.Services) > 0 {
		s.Services = append([]string(nil), other.Services...)
	}
	if other.TradeAssurance == True {
		s.TradeAssurance = True
	}
	if other.Verified == True {
		s.Verified = True
	}
}

func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
