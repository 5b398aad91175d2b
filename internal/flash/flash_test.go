package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies the cookies set on rec onto a fresh request
func carry(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestAddAndPop(t *testing.T) {
	rec := httptest.NewRecorder()
	Add(rec, httptest.NewRequest(http.MethodPost, "/upload", nil), Success, "report.pdf uploaded successfully!")

	r := carry(t, rec)
	rec = httptest.NewRecorder()
	messages := Pop(rec, r)

	require.Len(t, messages, 1)
	assert.Equal(t, Success, messages[0].Kind)
	assert.Equal(t, "report.pdf uploaded successfully!", messages[0].Text)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAddKeepsPendingMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), Info, "first")

	rec2 := httptest.NewRecorder()
	Add(rec2, carry(t, rec), Error, "second")

	messages := Pop(httptest.NewRecorder(), carry(t, rec2))
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, Error, messages[1].Kind)
}

func TestPopWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Empty(t, Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPopIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "!!not-base64!!"})
	assert.Empty(t, Pop(httptest.NewRecorder(), r))
}
