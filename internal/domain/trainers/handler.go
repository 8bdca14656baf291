package trainers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"woofpoint-backend/internal/middleware"
	"woofpoint-backend/internal/platform/logger"
)

// RegisterRoutes monta el perfil propio del trainer bajo /trainer.
// El directorio público vive bajo /owner y lo monta el handler de
// owners vía RegisterDirectoryRoutes.
func RegisterRoutes(r chi.Router, svc *Service, gate func(http.Handler) http.Handler, log logger.Logger) {
	r.Route("/trainer", func(tr chi.Router) {
		tr.Use(gate)
		tr.Get("/profile", getProfileHandler(svc, log))
		tr.Put("/profile", updateProfileHandler(svc, log))
	})
}

// RegisterDirectoryRoutes monta el directorio de trainers dentro del
// router que le pasen (en la práctica, el subrouter /owner ya gateado).
func RegisterDirectoryRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/trainers", listTrainersHandler(svc, log))
	r.Get("/trainers/{trainerID}", trainerDetailHandler(svc, log))
}

type certificationPayload struct {
	Name string `json:"name"`
}

type businessInfoPayload struct {
	YearsOfExperience int                    `json:"yearsOfExperience"`
	Certifications    []certificationPayload `json:"certifications"`
}

type servicePayload struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

type locationPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type ratingsPayload struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

type portfolioPayload struct {
	Bio             string   `json:"bio"`
	Specializations []string `json:"specializations"`
}

type profileResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	ZipCode      string `json:"zipCode"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profilePhoto"`

	BusinessInfo businessInfoPayload `json:"businessInfo"`
	Services     []servicePayload    `json:"services"`
	Location     locationPayload     `json:"location"`
	Ratings      ratingsPayload      `json:"ratings"`
	Portfolio    portfolioPayload    `json:"portfolio"`
	IsVerified   bool                `json:"isVerified"`
}

func toProfileResponse(v View) profileResponse {
	return profileResponse{
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Phone:        v.Phone,
		ZipCode:      v.ZipCode,
		Email:        v.Email,
		ProfilePhoto: v.ProfilePhoto,
		BusinessInfo: businessInfoPayload{
			YearsOfExperience: v.BusinessInfo.YearsOfExperience,
			Certifications:    toCertPayloads(v.BusinessInfo.Certifications),
		},
		Services:   toServicePayloads(v.Services),
		Location:   locationPayload{Address: v.Location.Address, City: v.Location.City, State: v.Location.State},
		Ratings:    ratingsPayload{AverageRating: v.Ratings.AverageRating, TotalReviews: v.Ratings.TotalReviews},
		Portfolio:  portfolioPayload{Bio: v.Portfolio.Bio, Specializations: nonNil(v.Portfolio.Specializations)},
		IsVerified: v.IsVerified,
	}
}

func toCertPayloads(in []Certification) []certificationPayload {
	out := make([]certificationPayload, 0, len(in))
	for _, c := range in {
		out = append(out, certificationPayload{Name: c.Name})
	}
	return out
}

func toServicePayloads(in []ServiceOffering) []servicePayload {
	out := make([]servicePayload, 0, len(in))
	for _, sv := range in {
		out = append(out, servicePayload{
			Type:        sv.Type,
			Description: sv.Description,
			Duration:    sv.Duration,
			Price:       sv.Price,
		})
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func getProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		view, err := svc.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "User not found")
			default:
				serverError(w, log, "get trainer profile error", err)
			}
			return
		}

		// a diferencia del lado owner, este sale sin envolver
		writeJSON(w, http.StatusOK, toProfileResponse(view))
	}
}

// El PUT recibe los campos del perfil al tope (yearsOfExperience,
// certifications, etc.), no anidados como salen en el GET.
type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	ZipCode   string `json:"zipCode"`

	YearsOfExperience int                    `json:"yearsOfExperience"`
	Certifications    []certificationPayload `json:"certifications"`
	Services          []servicePayload       `json:"services"`
	Bio               string                 `json:"bio"`
	Specializations   []string               `json:"specializations"`
	Location          locationPayload        `json:"location"`
}

func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		certs := make([]Certification, 0, len(req.Certifications))
		for _, c := range req.Certifications {
			certs = append(certs, Certification{Name: c.Name})
		}
		services := make([]ServiceOffering, 0, len(req.Services))
		for _, sv := range req.Services {
			services = append(services, ServiceOffering{
				Type:        sv.Type,
				Description: sv.Description,
				Duration:    sv.Duration,
				Price:       sv.Price,
			})
		}

		view, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateInput{
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			ZipCode:           req.ZipCode,
			YearsOfExperience: req.YearsOfExperience,
			Certifications:    certs,
			Services:          services,
			Bio:               req.Bio,
			Specializations:   req.Specializations,
			Location: Location{
				Address: req.Location.Address,
				City:    req.Location.City,
				State:   req.Location.State,
			},
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "User not found")
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "invalid profile data")
			default:
				serverError(w, log, "update trainer profile error", err)
			}
			return
		}

		log.Info("trainer profile updated", map[string]any{"user_id": claims.UserID})

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Trainer profile updated successfully",
			"profile": toProfileResponse(view),
		})
	}
}

type summaryResponse struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	ProfilePhoto    string          `json:"profilePhoto"`
	Specializations []string        `json:"specializations"`
	AverageRating   float64         `json:"averageRating"`
	TotalReviews    int             `json:"totalReviews"`
	Location        locationPayload `json:"location"`
}

func listTrainersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.ListTrainers(r.Context())
		if err != nil {
			serverError(w, log, "list trainers error", err)
			return
		}

		out := make([]summaryResponse, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, summaryResponse{
				ID:              s.ID,
				FirstName:       s.FirstName,
				LastName:        s.LastName,
				ProfilePhoto:    s.ProfilePhoto,
				Specializations: nonNil(s.Specializations),
				AverageRating:   s.AverageRating,
				TotalReviews:    s.TotalReviews,
				Location:        locationPayload{Address: s.Location.Address, City: s.Location.City, State: s.Location.State},
			})
		}

		// lista plana, sin envolver (contrato del frontend)
		writeJSON(w, http.StatusOK, out)
	}
}

// detailResponse es plano: el detalle público mezcla User y perfil en
// un solo nivel (es el contrato que el frontend ya consume).
type detailResponse struct {
	ID                string                 `json:"id"`
	FirstName         string                 `json:"firstName"`
	LastName          string                 `json:"lastName"`
	ProfilePhoto      string                 `json:"profilePhoto"`
	Email             string                 `json:"email"`
	Phone             string                 `json:"phone"`
	Location          locationPayload        `json:"location"`
	Bio               string                 `json:"bio"`
	YearsOfExperience int                    `json:"yearsOfExperience"`
	Certifications    []certificationPayload `json:"certifications"`
	Services          []servicePayload       `json:"services"`
	Specializations   []string               `json:"specializations"`
	AverageRating     float64                `json:"averageRating"`
	TotalReviews      int                    `json:"totalReviews"`
	IsVerified        bool                   `json:"isVerified"`
}

func trainerDetailHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainerID := chi.URLParam(r, "trainerID")

		d, err := svc.GetDetail(r.Context(), trainerID)
		if err != nil {
			switch err {
			case ErrInvalidID:
				writeError(w, http.StatusBadRequest, "Invalid trainer ID")
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "Trainer not found")
			default:
				serverError(w, log, "get trainer detail error", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, detailResponse{
			ID:                d.ID,
			FirstName:         d.FirstName,
			LastName:          d.LastName,
			ProfilePhoto:      d.ProfilePhoto,
			Email:             d.Email,
			Phone:             d.Phone,
			Location:          locationPayload{Address: d.Location.Address, City: d.Location.City, State: d.Location.State},
			Bio:               d.Portfolio.Bio,
			YearsOfExperience: d.BusinessInfo.YearsOfExperience,
			Certifications:    toCertPayloads(d.BusinessInfo.Certifications),
			Services:          toServicePayloads(d.Services),
			Specializations:   nonNil(d.Portfolio.Specializations),
			AverageRating:     d.Ratings.AverageRating,
			TotalReviews:      d.Ratings.TotalReviews,
			IsVerified:        d.IsVerified,
		})
	}
}

// Mismos helpers que en users/handler.go: duplicados a propósito por módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]any{"error": err.Error()})

	body := map[string]string{"error": "Server error"}
	if os.Getenv("APP_ENV") == "development" {
		body["details"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
