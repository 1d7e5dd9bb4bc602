package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Request describes one call against the admin API. Path is relative to the
// base URL; Token, Query, Body and ContentType are all optional.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Token       string
	Body        io.Reader
	ContentType string
}

// Response is the outcome of a completed HTTP exchange. A non-2xx status is
// not an error: callers inspect OK. Data holds the body decoded as JSON when
// it parses, the raw text when it does not, and nil for empty bodies.
type Response struct {
	Status int
	OK     bool
	Raw    []byte
	Data   any
}

// BodyText renders the response body the way the views show it in status
// lines: the JSON stringification of Data.
func (r Response) BodyText() string {
	if r.Data == nil {
		return "null"
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return string(r.Raw)
	}
	return string(b)
}

// Client defines every call the two front-ends make.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
	Login(ctx context.Context, email, password string) (TokenResponse, Response, error)
	ListTables(ctx context.Context, token, status string) ([]FeeTable, Response, error)
	ListBrackets(ctx context.Context, token, tableID string) ([]FeeBracket, Response, error)
	UpdateBracket(ctx context.Context, token, bracketID string, upd BracketUpdate) (Response, error)
	ImportV5(ctx context.Context, token, year, filename string, file io.Reader) (Response, error)
	DeedEconomy(ctx context.Context, uf string, propertyValue float64) (EconomyResult, Response, error)
	CreateLead(ctx context.Context, lead Lead) (Response, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) Client {
	return &client{baseURL: baseURL, http: httpClient}
}

// Do issues one request. It attaches the bearer token when present and never
// retries; the only error it returns is a transport failure.
func (c *client) Do(ctx context.Context, r Request) (Response, error) {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, r.Body)
	if err != nil {
		return Response{}, err
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	out := Response{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Raw:    raw,
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		out.Data = string(raw)
	} else {
		out.Data = data
	}
	return out, nil
}

func (c *client) Login(ctx context.Context, email, password string) (TokenResponse, Response, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/auth/login-json",
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
	if err != nil || !resp.OK {
		return TokenResponse{}, resp, err
	}
	var tok TokenResponse
	if err := json.Unmarshal(resp.Raw, &tok); err != nil {
		return TokenResponse{}, resp, fmt.Errorf("decode login response: %w", err)
	}
	return tok, resp, nil
}

func (c *client) ListTables(ctx context.Context, token, status string) ([]FeeTable, Response, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/emoluments/tables",
		Query:  q,
		Token:  token,
	})
	if err != nil || !resp.OK {
		return nil, resp, err
	}
	var tables []FeeTable
	if err := json.Unmarshal(resp.Raw, &tables); err != nil {
		return nil, resp, fmt.Errorf("decode tables: %w", err)
	}
	return tables, resp, nil
}

func (c *client) ListBrackets(ctx context.Context, token, tableID string) ([]FeeBracket, Response, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/emoluments/tables/" + url.PathEscape(tableID) + "/brackets",
		Token:  token,
	})
	if err != nil || !resp.OK {
		return nil, resp, err
	}
	var brackets []FeeBracket
	if err := json.Unmarshal(resp.Raw, &brackets); err != nil {
		return nil, resp, fmt.Errorf("decode brackets: %w", err)
	}
	return brackets, resp, nil
}

func (c *client) UpdateBracket(ctx context.Context, token, bracketID string, upd BracketUpdate) (Response, error) {
	body, _ := json.Marshal(upd)
	return c.Do(ctx, Request{
		Method:      http.MethodPut,
		Path:        "/emoluments/brackets/" + url.PathEscape(bracketID),
		Token:       token,
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
}

func (c *client) ImportV5(ctx context.Context, token, year, filename string, file io.Reader) (Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Response{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Response{}, err
	}
	if err := mw.Close(); err != nil {
		return Response{}, err
	}
	q := url.Values{}
	q.Set("year", year)
	return c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/emoluments/import/v5",
		Query:       q,
		Token:       token,
		Body:        &buf,
		ContentType: mw.FormDataContentType(),
	})
}

func (c *client) DeedEconomy(ctx context.Context, uf string, propertyValue float64) (EconomyResult, Response, error) {
	q := url.Values{}
	q.Set("uf", uf)
	q.Set("property_value", strconv.FormatFloat(propertyValue, 'f', -1, 64))
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/calc/deed-economy",
		Query:  q,
	})
	if err != nil || !resp.OK {
		return EconomyResult{}, resp, err
	}
	var result EconomyResult
	if err := json.Unmarshal(resp.Raw, &result); err != nil {
		return EconomyResult{}, resp, fmt.Errorf("decode economy result: %w", err)
	}
	return result, resp, nil
}

func (c *client) CreateLead(ctx context.Context, lead Lead) (Response, error) {
	body, _ := json.Marshal(lead)
	return c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/public/leads",
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
	})
}
