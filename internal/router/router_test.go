package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"woofpoint-backend/internal/adapters/auth/jwtauth"
	"woofpoint-backend/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Tokens: jwtauth.NewService("test-secret", 0),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_OwnerFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Signup owner => 201 {token}
	ownerToken := signup(t, ts.URL, map[string]any{
		"email":     "ana@example.com",
		"password":  "secret1",
		"role":      "owner",
		"firstName": "Ana",
		"lastName":  "García",
		"phone":     "5551234567",
		"zipCode":   "12345",
	})

	// 2) Sin token => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/owner/profile", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// 3) Token basura => 403
	{
		st, _ := doReq(t, ts.URL, "GET", "/owner/profile", "garbage.token.here", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 with bad token, got %d", st)
		}
	}

	// 4) Perfil recién creado: vacío pero completo
	{
		st, body := doReq(t, ts.URL, "GET", "/owner/profile", ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get profile, got %d body=%s", st, string(body))
		}
		var resp struct {
			Profile struct {
				FirstName string           `json:"firstName"`
				Dogs      []map[string]any `json:"dogs"`
			} `json:"profile"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Profile.FirstName != "Ana" {
			t.Fatalf("expected firstName Ana, got %q", resp.Profile.FirstName)
		}
		if resp.Profile.Dogs == nil || len(resp.Profile.Dogs) != 0 {
			t.Fatalf("expected empty dogs array, got %#v", resp.Profile.Dogs)
		}
	}

	// 5) Agregar perro => 201 con id
	dogID := addDog(t, ts.URL, ownerToken, map[string]any{
		"name":  "Milo",
		"breed": "mixed",
		"size":  "medium",
		"age":   2,
	})

	// 6) El perfil ahora lista 1 perro
	{
		st, body := doReq(t, ts.URL, "GET", "/owner/profile", ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get profile, got %d", st)
		}
		var resp struct {
			Profile struct {
				Dogs []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"dogs"`
			} `json:"profile"`
		}
		mustUnmarshal(t, body, &resp)
		if len(resp.Profile.Dogs) != 1 || resp.Profile.Dogs[0].ID != dogID {
			t.Fatalf("expected 1 dog with id %s, got %#v", dogID, resp.Profile.Dogs)
		}
	}

	// 7) Update parcial: solo age, el resto queda
	{
		st, body := doReq(t, ts.URL, "PUT", "/owner/dogs/"+dogID, ownerToken, map[string]any{
			"age": 3,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update dog, got %d body=%s", st, string(body))
		}
		var resp struct {
			Dog struct {
				Name string `json:"name"`
				Age  int    `json:"age"`
				Size string `json:"size"`
			} `json:"dog"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Dog.Age != 3 || resp.Dog.Name != "Milo" || resp.Dog.Size != "medium" {
			t.Fatalf("expected partial update, got %#v", resp.Dog)
		}
	}

	// 8) Update de perro inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "PUT", "/owner/dogs/no-such-dog", ownerToken, map[string]any{"age": 1})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown dog, got %d", st)
		}
	}

	// 9) Delete dos veces: idempotente, 200 ambas
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "DELETE", "/owner/dogs/"+dogID, ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("delete #%d: expected 200, got %d body=%s", i+1, st, string(body))
		}
	}

	// 10) Update del perfil del owner
	{
		st, body := doReq(t, ts.URL, "PUT", "/owner/profile", ownerToken, map[string]any{
			"firstName": "Marta",
			"location": map[string]any{
				"address": "Calle Falsa 123",
				"city":    "Springfield",
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update profile, got %d body=%s", st, string(body))
		}
		var resp struct {
			Profile struct {
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
				Location  struct {
					City string `json:"city"`
				} `json:"location"`
			} `json:"profile"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Profile.FirstName != "Marta" || resp.Profile.LastName != "García" {
			t.Fatalf("expected merged names, got %#v", resp.Profile)
		}
		if resp.Profile.Location.City != "Springfield" {
			t.Fatalf("expected location updated, got %#v", resp.Profile.Location)
		}
	}
}

func TestHTTP_AuthFlow(t *testing.T) {
	ts := newTestServer(t)

	signup(t, ts.URL, map[string]any{
		"email":     "ana@example.com",
		"password":  "secret1",
		"role":      "owner",
		"firstName": "Ana",
		"lastName":  "García",
		"phone":     "5551234567",
		"zipCode":   "12345",
	})

	// signup duplicado => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/signup", "", map[string]any{
			"email":     "ANA@example.com",
			"password":  "secret1",
			"role":      "owner",
			"firstName": "Ana",
			"lastName":  "García",
			"phone":     "5551234567",
			"zipCode":   "12345",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate signup, got %d body=%s", st, string(body))
		}
	}

	// login ok => user + token + message
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "secret1",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var resp struct {
			Token   string `json:"token"`
			Role    string `json:"role"`
			Message string `json:"message"`
			User    struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Token == "" || resp.Role != "owner" || resp.Message != "Login successful" {
			t.Fatalf("unexpected login response: %s", string(body))
		}
		if resp.User.Email != "ana@example.com" {
			t.Fatalf("expected user in response, got %s", string(body))
		}
	}

	// password incorrecto => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "wrongpass",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong password, got %d", st)
		}
	}

	// logout: sin token igual responde 200
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/logout", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logout, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_TrainerFlow_AndDirectory(t *testing.T) {
	ts := newTestServer(t)

	trainerToken := signup(t, ts.URL, map[string]any{
		"email":     "carlos@example.com",
		"password":  "secret1",
		"role":      "trainer",
		"firstName": "Carlos",
		"lastName":  "Pérez",
		"phone":     "5557654321",
		"zipCode":   "54321",
	})
	ownerToken := signup(t, ts.URL, map[string]any{
		"email":     "ana@example.com",
		"password":  "secret1",
		"role":      "owner",
		"firstName": "Ana",
		"lastName":  "García",
		"phone":     "5551234567",
		"zipCode":   "12345",
	})

	// id del trainer vía login
	trainerID := loginUserID(t, ts.URL, "carlos@example.com", "secret1")

	// El trainer publica su perfil; specializations se validan contra services
	{
		st, body := doReq(t, ts.URL, "PUT", "/trainer/profile", trainerToken, map[string]any{
			"yearsOfExperience": 5,
			"certifications":    []map[string]any{{"name": "CPDT-KA"}},
			"services": []map[string]any{
				{"type": "Obedience", "description": "basic", "duration": 60, "price": 40},
				{"type": "Agility"},
			},
			"bio":             "entrenador con 5 años de experiencia",
			"specializations": []string{"obedience", "agility", "surfing"},
			"location":        map[string]any{"city": "Springfield", "state": "SP"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update trainer profile, got %d body=%s", st, string(body))
		}
		var resp struct {
			Profile struct {
				Portfolio struct {
					Specializations []string `json:"specializations"`
				} `json:"portfolio"`
				Services []struct {
					Duration int `json:"duration"`
				} `json:"services"`
			} `json:"profile"`
		}
		mustUnmarshal(t, body, &resp)
		if len(resp.Profile.Portfolio.Specializations) != 2 {
			t.Fatalf("expected surfing dropped, got %v", resp.Profile.Portfolio.Specializations)
		}
		// servicio sin duration => 0
		if resp.Profile.Services[1].Duration != 0 {
			t.Fatalf("expected duration default 0, got %#v", resp.Profile.Services)
		}
	}

	// El owner lista trainers
	{
		st, body := doReq(t, ts.URL, "GET", "/owner/trainers", ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list trainers, got %d body=%s", st, string(body))
		}
		var resp []struct {
			ID            string  `json:"id"`
			FirstName     string  `json:"firstName"`
			AverageRating float64 `json:"averageRating"`
		}
		mustUnmarshal(t, body, &resp)
		if len(resp) != 1 || resp[0].ID != trainerID {
			t.Fatalf("expected 1 trainer %s, got %s", trainerID, string(body))
		}
	}

	// Detalle por id
	{
		st, body := doReq(t, ts.URL, "GET", "/owner/trainers/"+trainerID, ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trainer detail, got %d body=%s", st, string(body))
		}
		// el detalle sale plano, sin envolver
		var resp struct {
			FirstName         string   `json:"firstName"`
			YearsOfExperience int      `json:"yearsOfExperience"`
			Specializations   []string `json:"specializations"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.FirstName != "Carlos" || resp.YearsOfExperience != 5 {
			t.Fatalf("unexpected detail: %s", string(body))
		}
		if len(resp.Specializations) != 2 {
			t.Fatalf("expected 2 specializations, got %v", resp.Specializations)
		}
	}

	// Id malformado => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/owner/trainers/not-a-uuid", ownerToken, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid trainer id, got %d", st)
		}
	}

	// Id de un owner => 404
	{
		ownerID := loginUserID(t, ts.URL, "ana@example.com", "secret1")
		st, _ := doReq(t, ts.URL, "GET", "/owner/trainers/"+ownerID, ownerToken, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for owner id in trainer detail, got %d", st)
		}
	}

	// Un trainer no tiene perfil de owner
	{
		st, _ := doReq(t, ts.URL, "GET", "/owner/profile", trainerToken, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 owner profile for trainer token, got %d", st)
		}
	}
}

func TestHTTP_UploadPhoto(t *testing.T) {
	ts := newTestServer(t)

	token := signup(t, ts.URL, map[string]any{
		"email":     "ana@example.com",
		"password":  "secret1",
		"role":      "owner",
		"firstName": "Ana",
		"lastName":  "García",
		"phone":     "5551234567",
		"zipCode":   "12345",
	})

	// PNG mínimo válido para que el sniffing lo tome como image/png
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	{
		st, body := uploadFile(t, ts.URL, token, "profilePhoto", "selfie.png", png)
		if st != http.StatusOK {
			t.Fatalf("expected 200 upload, got %d body=%s", st, string(body))
		}
		var resp struct {
			PhotoURL string `json:"photoUrl"`
			User     struct {
				ProfilePhoto string `json:"profilePhoto"`
			} `json:"user"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.PhotoURL == "" || resp.User.ProfilePhoto == "" {
			t.Fatalf("expected photo url and stored key, got %s", string(body))
		}
	}

	// Archivo que no es imagen => 400
	{
		st, _ := uploadFile(t, ts.URL, token, "profilePhoto", "notes.txt", []byte("plain text, not an image"))
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for non-image, got %d", st)
		}
	}

	// Field equivocado => 400
	{
		st, _ := uploadFile(t, ts.URL, token, "photo", "selfie.png", png)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for wrong field name, got %d", st)
		}
	}

	// Sin token => 401
	{
		st, _ := uploadFile(t, ts.URL, "", "profilePhoto", "selfie.png", png)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func signup(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/signup", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 signup, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.Token == "" {
		t.Fatalf("signup: missing token body=%s", string(body))
	}
	return resp.Token
}

func loginUserID(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.User.ID == "" {
		t.Fatalf("login: missing user id body=%s", string(body))
	}
	return resp.User.ID
}

func addDog(t *testing.T, baseURL, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/owner/dogs", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		Dog struct {
			ID string `json:"id"`
		} `json:"dog"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.Dog.ID == "" {
		t.Fatalf("add dog: missing id body=%s", string(body))
	}
	return resp.Dog.ID
}

func uploadFile(t *testing.T, baseURL, token, field, filename string, data []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/auth/upload-photo", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("unmarshal %s: %v", string(body), err)
	}
}
