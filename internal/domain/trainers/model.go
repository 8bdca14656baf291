package trainers

import "time"

// MaxSpecializations limita el portfolio a 3 entradas.
// Los excedentes se truncan en silencio, no se rechazan.
const MaxSpecializations = 3

type Certification struct {
	Name string
}

type BusinessInfo struct {
	YearsOfExperience int
	Certifications    []Certification
}

// ServiceOffering es un servicio publicado por el trainer.
type ServiceOffering struct {
	Type        string
	Description string
	Duration    int
	Price       float64
}

// Location del trainer (sin zipCode, a diferencia del owner).
type Location struct {
	Address string
	City    string
	State   string
}

// Ratings es read-only para el trainer: lo alimentaría el módulo de
// reviews, nunca el update de perfil.
type Ratings struct {
	AverageRating float64
	TotalReviews  int
}

type Portfolio struct {
	Bio             string
	Specializations []string
}

// Profile es el registro de rol del trainer, 1:1 con su User.
type Profile struct {
	UserID string

	BusinessInfo BusinessInfo
	Services     []ServiceOffering
	Location     Location
	Ratings      Ratings
	Portfolio    Portfolio
	IsVerified   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// normalized devuelve el perfil con todas las listas no-nil,
// para que las vistas nunca saquen null.
func (p Profile) normalized() Profile {
	if p.BusinessInfo.Certifications == nil {
		p.BusinessInfo.Certifications = []Certification{}
	}
	if p.Services == nil {
		p.Services = []ServiceOffering{}
	}
	if p.Portfolio.Specializations == nil {
		p.Portfolio.Specializations = []string{}
	}
	return p
}
