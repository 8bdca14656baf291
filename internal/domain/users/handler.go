package users

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"woofpoint-backend/internal/middleware"
	"woofpoint-backend/internal/platform/logger"
)

// Límite de la foto de perfil: 5MB (mismo límite que imponía multer).
const maxUploadBytes = 5 << 20

func RegisterRoutes(r chi.Router, svc *Service, gate func(http.Handler) http.Handler, log logger.Logger) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signupHandler(svc, log))
		ar.Post("/login", loginHandler(svc, log))

		// Logout es stateless: no exige token, pero si viene usamos la
		// identidad para el log de auditoría (AuthContext global).
		ar.Post("/logout", logoutHandler(svc, log))

		ar.With(gate).Post("/upload-photo", uploadPhotoHandler(svc, log))
	})
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	ZipCode   string `json:"zipCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone"`
	ZipCode      string    `json:"zipCode"`
	ProfilePhoto string    `json:"profilePhoto"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toUserResponse(u User) userResponse {
	// Nunca exponemos el hash; la key de la foto sí (es opaca).
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		ZipCode:      u.ZipCode,
		ProfilePhoto: u.ProfilePhoto,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func signupHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, err := svc.Signup(r.Context(), SignupInput{
			Email:     req.Email,
			Password:  req.Password,
			Role:      req.Role,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			ZipCode:   req.ZipCode,
		})
		if err != nil {
			switch err {
			case ErrEmailTaken:
				log.Warn("signup attempt for existing user", map[string]any{"email": strings.ToLower(strings.TrimSpace(req.Email))})
				writeError(w, http.StatusBadRequest, "User already exists")
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "invalid signup data")
			default:
				serverError(w, log, "signup error", err)
			}
			return
		}

		log.Info("new user created", map[string]any{
			"email": strings.ToLower(strings.TrimSpace(req.Email)),
			"role":  req.Role,
		})

		writeJSON(w, http.StatusCreated, map[string]string{"token": token})
	}
}

func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				writeError(w, http.StatusBadRequest, "Email and password are required")
			case ErrInvalidCredentials:
				log.Warn("login failed", map[string]any{"email": strings.ToLower(strings.TrimSpace(req.Email))})
				writeError(w, http.StatusUnauthorized, "Invalid email or password")
			default:
				serverError(w, log, "login error", err)
			}
			return
		}

		log.Info("user logged in", map[string]any{"user_id": u.ID, "email": u.Email})

		writeJSON(w, http.StatusOK, map[string]any{
			"user":    toUserResponse(u),
			"token":   token,
			"role":    string(u.Role),
			"message": "Login successful",
		})
	}
}

func logoutHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	// Con JWT stateless no hay nada que invalidar server-side;
	// el logout queda como evento de auditoría.
	return func(w http.ResponseWriter, r *http.Request) {
		fields := map[string]any{}
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			fields["user_id"] = claims.UserID
			if u, err := svc.Get(r.Context(), claims.UserID); err == nil {
				fields["email"] = u.Email
			}
		}
		log.Info("user logged out", fields)

		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	}
}

func uploadPhotoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Margen extra sobre el límite para el overhead del multipart.
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
			return
		}

		file, header, err := r.FormFile("profilePhoto")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil || len(data) == 0 {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		if len(data) > maxUploadBytes {
			writeError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
			return
		}

		// Sniffeamos el content type en vez de confiar en el header del part.
		contentType := http.DetectContentType(data)
		if !strings.HasPrefix(contentType, "image/") {
			writeError(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}

		u, photoURL, err := svc.UploadPhoto(r.Context(), claims.UserID, PhotoUpload{
			FileName:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				writeError(w, http.StatusNotFound, "User not found")
			default:
				serverError(w, log, "upload photo error", err)
			}
			return
		}

		log.Info("profile photo uploaded", map[string]any{
			"user_id": u.ID,
			"key":     u.ProfilePhoto,
			"size":    len(data),
		})

		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Profile photo uploaded successfully",
			"photoUrl": photoURL,
			"user":     toUserResponse(u),
		})
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (users/owners/trainers), igual que en el resto del codebase: todavía no
// amerita un paquete de helpers compartido.
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
