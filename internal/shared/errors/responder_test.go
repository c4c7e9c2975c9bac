package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

var errTaken = errors.New("email taken")

func respond(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/members", nil)
	r.RespondError(c, err)

	var p ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return w, p
}

func TestRespondError_UsesMappers(t *testing.T) {
	r := NewResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errTaken) {
			return ErrConflict.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	w, p := respond(t, r, errTaken)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	require.Equal(t, "/api/members", p.Instance)
	require.Equal(t, "email taken", p.Detail)

	w, p = respond(t, r, errors.New("db down"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, p.Detail, "db down")
}

func TestRespondError_ValidationFields(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	err := validator.New().Struct(payload{Email: "nope"})
	w, p := respond(t, NewResponder("https://coffee.example"), err)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "https://coffee.example"+TypeValidation, p.Type)
	require.Equal(t, map[string]string{"payload.Email": "email"}, p.Fields())
}

func TestNewNotFoundProblem(t *testing.T) {
	p := NewNotFoundProblem("order", 7)
	require.Equal(t, http.StatusNotFound, HTTPStatusFromError(p))
	require.Equal(t, "Resource Not Found: order with identifier '7' not found", p.Error())
	require.Empty(t, ErrNotFound.Extensions)
}
