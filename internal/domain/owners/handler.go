package owners

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"woofpoint-backend/internal/domain/trainers"
	"woofpoint-backend/internal/middleware"
	"woofpoint-backend/internal/platform/logger"
)

// RegisterRoutes monta todo el lado owner bajo /owner: su perfil, los
// perros y el directorio de trainers (navegable solo por owners
// logueados, por eso vive acá y no como ruta pública).
func RegisterRoutes(r chi.Router, svc *Service, trainersSvc *trainers.Service, gate func(http.Handler) http.Handler, log logger.Logger) {
	r.Route("/owner", func(or chi.Router) {
		or.Use(gate)

		or.Get("/profile", getProfileHandler(svc, log))
		or.Put("/profile", updateProfileHandler(svc, log))

		or.Post("/dogs", addDogHandler(svc, log))
		or.Put("/dogs/{dogID}", updateDogHandler(svc, log))
		or.Delete("/dogs/{dogID}", deleteDogHandler(svc, log))

		trainers.RegisterDirectoryRoutes(or, trainersSvc, log)
	})
}

type locationPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type dogResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Breed  string   `json:"breed"`
	Age    int      `json:"age"`
	Size   string   `json:"size"`
	Photos []string `json:"photos"`
}

func toDogResponse(d Dog) dogResponse {
	photos := d.Photos
	if photos == nil {
		photos = []string{}
	}
	return dogResponse{
		ID:     d.ID,
		Name:   d.Name,
		Breed:  d.Breed,
		Age:    d.Age,
		Size:   string(d.Size),
		Photos: photos,
	}
}

type profileResponse struct {
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Phone        string          `json:"phone"`
	ZipCode      string          `json:"zipCode"`
	Email        string          `json:"email"`
	ProfilePhoto string          `json:"profilePhoto"`
	Location     locationPayload `json:"location"`
	Dogs         []dogResponse   `json:"dogs"`
}

func toProfileResponse(v View) profileResponse {
	dogs := make([]dogResponse, 0, len(v.Dogs))
	for _, d := range v.Dogs {
		dogs = append(dogs, toDogResponse(d))
	}
	return profileResponse{
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Phone:        v.Phone,
		ZipCode:      v.ZipCode,
		Email:        v.Email,
		ProfilePhoto: v.ProfilePhoto,
		Location: locationPayload{
			Address: v.Location.Address,
			City:    v.Location.City,
			State:   v.Location.State,
			ZipCode: v.Location.ZipCode,
		},
		Dogs: dogs,
	}
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
				serverError(w, log, "get owner profile error", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"profile": toProfileResponse(view)})
	}
}

type updateProfileRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Phone     string           `json:"phone"`
	ZipCode   string           `json:"zipCode"`
	Location  *locationPayload `json:"location"`
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

		in := UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			ZipCode:   req.ZipCode,
		}
		if req.Location != nil {
			in.Location = &LocationInput{
				Address: req.Location.Address,
				City:    req.Location.City,
				State:   req.Location.State,
				ZipCode: req.Location.ZipCode,
			}
		}

		view, err := svc.UpdateProfile(r.Context(), claims.UserID, in)
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "User not found")
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "invalid profile data")
			default:
				serverError(w, log, "update owner profile error", err)
			}
			return
		}

		log.Info("owner profile updated", map[string]any{"user_id": claims.UserID})

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Owner profile updated successfully",
			"profile": toProfileResponse(view),
		})
	}
}

type dogRequest struct {
	Name   string   `json:"name"`
	Breed  string   `json:"breed"`
	Size   string   `json:"size"`
	Age    *int     `json:"age"`
	Photos []string `json:"photos"`
}

func addDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		dog, err := svc.AddDog(r.Context(), claims.UserID, DogInput{
			Name:   req.Name,
			Breed:  req.Breed,
			Size:   req.Size,
			Age:    req.Age,
			Photos: req.Photos,
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "Owner not found")
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "invalid dog data")
			default:
				serverError(w, log, "add dog error", err)
			}
			return
		}

		log.Info("dog added", map[string]any{"user_id": claims.UserID, "dog_id": dog.ID})

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Dog added successfully",
			"dog":     toDogResponse(dog),
		})
	}
}

type dogPatchRequest struct {
	Name   *string   `json:"name"`
	Breed  *string   `json:"breed"`
	Size   *string   `json:"size"`
	Age    *int      `json:"age"`
	Photos *[]string `json:"photos"`
}

func updateDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req dogPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		dog, err := svc.UpdateDog(r.Context(), claims.UserID, chi.URLParam(r, "dogID"), DogPatch{
			Name:   req.Name,
			Breed:  req.Breed,
			Size:   req.Size,
			Age:    req.Age,
			Photos: req.Photos,
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "Dog not found")
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "invalid dog data")
			default:
				serverError(w, log, "update dog error", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Dog updated successfully",
			"dog":     toDogResponse(dog),
		})
	}
}

func deleteDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.DeleteDog(r.Context(), claims.UserID, chi.URLParam(r, "dogID")); err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "Owner not found")
			default:
				serverError(w, log, "delete dog error", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Dog deleted successfully"})
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
