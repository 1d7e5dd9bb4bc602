package adminapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x", Token: "tok123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDoBodyParsing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"json object", `{"detail":"ok"}`, map[string]any{"detail": "ok"}},
		{"json array", `[1,2]`, []any{float64(1), float64(2)}},
		{"raw text", `not json at all`, "not json at all"},
		{"empty body", ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			c := New(ts.URL, ts.Client())
			resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			require.NoError(t, err)
			assert.True(t, resp.OK)
			assert.Equal(t, tt.want, resp.Data)
		})
	}
}

func TestDoNon2xxIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":"invalid"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.JSONEq(t, `{"detail":"invalid"}`, resp.BodyText())
}

func TestLoginReturnsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login-json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "s3cret", body["password"])
		io.WriteString(w, `{"access_token":"tok123","token_type":"bearer"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	tok, resp, err := c.Login(context.Background(), "a@b.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "tok123", tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
}

func TestListTablesFiltersByStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emoluments/tables", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		io.WriteString(w, `[{"id":"t1","uf":"SP","year":2026,"status":"active","created_at":"2026-01-02T03:04:05"}]`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	tables, _, err := c.ListTables(context.Background(), "tok", "active")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "SP", tables[0].UF)
	assert.Equal(t, 2026, tables[0].Year)
}

func TestUpdateBracketSendsFullPayload(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody BracketUpdate
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"ok":true}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	resp, err := c.UpdateBracket(context.Background(), "tok", "b1", BracketUpdate{
		RangeFrom: 1000.5, RangeTo: 2000, Amount: 150.75, Active: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/emoluments/brackets/b1", gotPath)
	assert.Equal(t, 1000.5, gotBody.RangeFrom)
	assert.Equal(t, 2000.0, gotBody.RangeTo)
	assert.Equal(t, 150.75, gotBody.Amount)
	assert.True(t, gotBody.Active)
}

func TestImportV5UploadsMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emoluments/import/v5", r.URL.Path)
		assert.Equal(t, "2026", r.URL.Query().Get("year"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "tabela.xlsx", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "sheet-bytes", string(content))
		io.WriteString(w, `{"imported":10}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	resp, err := c.ImportV5(context.Background(), "tok", "2026", "tabela.xlsx", strings.NewReader("sheet-bytes"))
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.JSONEq(t, `{"imported":10}`, resp.BodyText())
}

func TestDeedEconomyDecodesResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calc/deed-economy", r.URL.Path)
		assert.Equal(t, "SP", r.URL.Query().Get("uf"))
		assert.Equal(t, "500000", r.URL.Query().Get("property_value"))
		io.WriteString(w, `{
			"input":{"uf":"SP","property_value":500000},
			"local":{"uf":"SP","emolumento":2000},
			"best":{"uf":"MG","emolumento":500},
			"economia":1500,
			"economia_pct":75
		}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	result, resp, err := c.DeedEconomy(context.Background(), "SP", 500000)
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "MG", result.Best.UF)
	assert.Equal(t, 500.0, result.Best.Emolumento)
	assert.Equal(t, 1500.0, result.Economia)
	assert.Equal(t, 75.0, result.EconomiaPct)
}

func TestCreateLeadPostsConsent(t *testing.T) {
	var got Lead
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/leads", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"ok":true,"id":"l1"}`)
	}))
	defer ts.Close()

	c := New(ts.URL, ts.Client())
	resp, err := c.CreateLead(context.Background(), Lead{Name: "Maria", Phone: "22997303566", Profile: "broker", Consent: true})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "Maria", got.Name)
	assert.True(t, got.Consent)
	assert.Empty(t, got.Email)
}
