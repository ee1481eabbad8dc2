package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

const defaultRequestTimeout = 30 * time.Second

// APIError is a failure response from the backend, carrying the
// human-readable detail the server attached, if any.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsUnauthorized reports whether the backend rejected the bearer token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// TokenFunc supplies the current bearer token for outgoing requests.
// An empty return means the request goes out unauthenticated.
type TokenFunc func() string

// API is the HTTP client for the invoice backend. The token function is
// consulted on every request, so a login or logout in the same process is
// picked up without rebuilding the client.
type API struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
}

// NewAPI creates an API client for the given base URL.
func NewAPI(baseURL string, token TokenFunc) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		token:      token,
	}
}

// FileAttachment is a document selected for upload.
type FileAttachment struct {
	Name    string
	Content []byte
}

// InvoiceMetadata is the manually entered invoice form. Amount holds the raw
// text exactly as typed: an empty string means "unspecified" and is sent as
// null, which is not the same thing as zero.
type InvoiceMetadata struct {
	Vendor      string
	Amount      string
	InvoiceDate string
	Category    string
}

// invoiceDataPayload is the JSON metadata part of an upload.
type invoiceDataPayload struct {
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceDate *string          `json:"invoice_date"`
	Category    *string          `json:"category"`
}

// payload converts form text to the wire shape. Blank fields become null.
func (m InvoiceMetadata) payload() (invoiceDataPayload, error) {
	var p invoiceDataPayload
	if v := strings.TrimSpace(m.Vendor); v != "" {
		p.Vendor = &v
	}
	if a := strings.TrimSpace(m.Amount); a != "" {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return p, fmt.Errorf("invalid amount %q: %w", m.Amount, err)
		}
		p.Amount = &d
	}
	if d := strings.TrimSpace(m.InvoiceDate); d != "" {
		p.InvoiceDate = &d
	}
	if c := strings.TrimSpace(m.Category); c != "" {
		p.Category = &c
	}
	return p, nil
}

// invoiceResponse is the backend's invoice record shape.
type invoiceResponse struct {
	ID          string           `json:"id"`
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceDate *string          `json:"invoice_date"`
	Category    *string          `json:"category"`
	FileName    string           `json:"file_name"`
	UploadDate  time.Time        `json:"upload_date"`
}

func (r invoiceResponse) toEntity() *entity.Invoice {
	inv := &entity.Invoice{
		Vendor:     r.Vendor,
		Amount:     r.Amount,
		Category:   r.Category,
		FileName:   r.FileName,
		UploadDate: r.UploadDate,
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		inv.ID = id
	}
	if r.InvoiceDate != nil {
		if t, err := time.Parse(entity.InvoiceDateLayout, *r.InvoiceDate); err == nil {
			inv.InvoiceDate = &t
		}
	}
	return inv
}

// Login exchanges credentials for a bearer token via the form-encoded
// token endpoint.
func (a *API) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := a.do(req, &body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}

// Register creates a new account.
func (a *API) Register(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode register request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/auth/register", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return a.do(req, nil)
}

// ListInvoices fetches the caller's invoice records.
func (a *API) ListInvoices(ctx context.Context) ([]*entity.Invoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/invoices/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}

	var body []invoiceResponse
	if err := a.do(req, &body); err != nil {
		return nil, err
	}

	invoices := make([]*entity.Invoice, 0, len(body))
	for _, r := range body {
		invoices = append(invoices, r.toEntity())
	}
	return invoices, nil
}

// UploadInvoice submits a new invoice record: an optional file part plus the
// JSON-encoded metadata part.
func (a *API) UploadInvoice(ctx context.Context, file *FileAttachment, metadata InvoiceMetadata) error {
	payload, err := metadata.payload()
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode invoice metadata: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if file != nil {
		part, err := writer.CreateFormFile("file", file.Name)
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("failed to write file part: %w", err)
		}
	}
	if err := writer.WriteField("invoice_data", string(data)); err != nil {
		return fmt.Errorf("failed to write metadata part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/invoices/", &buf)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return a.do(req, nil)
}

// UpdateInvoice replaces the metadata of an existing record.
func (a *API) UpdateInvoice(ctx context.Context, id uuid.UUID, metadata InvoiceMetadata) error {
	payload, err := metadata.payload()
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode invoice metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/invoices/%s", a.baseURL, id), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return a.do(req, nil)
}

// DeleteInvoice removes a record.
func (a *API) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/invoices/%s", a.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	return a.do(req, nil)
}

// do attaches the bearer token, executes the request and decodes the
// response; non-2xx responses become *APIError with the server's detail.
func (a *API) do(req *http.Request, out interface{}) error {
	if a.token != nil {
		if token := a.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     decodeErrorDetail(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeErrorDetail pulls a human-readable message out of an error body.
// The backend uses either {"detail": ...} or {"error": ...}.
func decodeErrorDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
