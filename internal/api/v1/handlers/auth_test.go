package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd@2024", true},
		{"a1@a1@a1@a1@", true},
		{"Short1@", false},            // under 12 chars
		{"NoDigitsHere@!", false},     // missing digit
		{"1234567890123", false},      // missing letter and symbol
		{"LettersAnd12345", false},    // missing symbol
		{"Has Spaces 12@", false},     // space outside the allowed set
		{"Passw0rd#2024", false},      // # not in the allowed symbol set
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, isPasswordValid(tc.password), "password %q", tc.password)
	}
}

func TestAadharValidation(t *testing.T) {
	assert.True(t, isAadharValid("123456789012"))
	assert.False(t, isAadharValid("12345678901"))
	assert.False(t, isAadharValid("1234567890123"))
	assert.False(t, isAadharValid("1234-5678-9012"))
	assert.False(t, isAadharValid("12345678901a"))
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"name":     "asha",
			"email":    "asha@example.com",
			"password": "Passw0rd@2024",
			"address":  testAddress(),
			"gender":   "Female",
			"aadharNo": nextAadhar(),
			"phoneNo":  "9876543210",
			"dropdown": "Senior Citizen",
			"age":      70,
		}
	}

	t.Run("missing fields", func(t *testing.T) {
		body := base()
		delete(body, "phoneNo")
		code, result := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "All fields except photo are required", result["error"])
	})

	t.Run("invalid email", func(t *testing.T) {
		body := base()
		body["email"] = "not-an-email"
		code, result := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid email format", result["error"])
	})

	t.Run("weak password", func(t *testing.T) {
		body := base()
		body["password"] = "short1@"
		code, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("bad aadhar", func(t *testing.T) {
		body := base()
		body["aadharNo"] = "1234-5678-9012"
		code, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("bad category", func(t *testing.T) {
		body := base()
		body["dropdown"] = "Teenager"
		code, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
		require.Equal(t, http.StatusBadRequest, code)
	})
}

func TestRegisterDuplicates(t *testing.T) {
	app := setupTestApp(t)

	registerUser(t, app, "ramesh", "Senior Citizen")

	// Same email, fresh aadhar.
	body := map[string]interface{}{
		"name":     "someone else",
		"email":    "ramesh@example.com",
		"password": "Passw0rd@2024",
		"address":  testAddress(),
		"gender":   "Male",
		"aadharNo": nextAadhar(),
		"phoneNo":  "9876543210",
		"dropdown": "Adult",
		"age":      30,
	}
	code, result := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with the same email or aadhar number already exists", result["error"])

	// The rejected registration must not leave a record behind.
	code, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "someone-else@example.com",
		"password": "Passw0rd@2024",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterDuplicateAadhar(t *testing.T) {
	app := setupTestApp(t)

	body := map[string]interface{}{
		"name":     "first",
		"email":    "first@example.com",
		"password": "Passw0rd@2024",
		"address":  testAddress(),
		"gender":   "Male",
		"aadharNo": "999999999999",
		"phoneNo":  "9876543210",
		"dropdown": "Adult",
		"age":      40,
	}
	code, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, code)

	body["name"] = "second"
	body["email"] = "second@example.com"
	code, result := doJSON(t, app, http.MethodPost, "/api/auth/register", body, "")
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User with the same email or aadhar number already exists", result["error"])
}

func TestLoginRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	registerUser(t, app, "meena", "Senior Citizen")

	code, result := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "meena@example.com",
		"password": "Passw0rd@2024",
	}, "")
	require.Equal(t, http.StatusOK, code)
	token, _ := result["token"].(string)
	assert.NotEmpty(t, token)
	// Login returns the token only, no profile.
	assert.Nil(t, result["user"])

	code, result = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "meena@example.com",
		"password": "WrongPass@123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", result["error"])

	// Unknown email yields the same message as a wrong password.
	code, result = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "Passw0rd@2024",
	}, "")
	require.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", result["error"])
}

func TestLoginMissingFields(t *testing.T) {
	app := setupTestApp(t)

	code, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email": "meena@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, code)
}
