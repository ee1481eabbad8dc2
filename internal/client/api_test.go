package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

func TestAPI_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.PostFormValue("username"))
		assert.Equal(t, "Sup3rSecret!", r.PostFormValue("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)
	token, err := api.Login(context.Background(), "user@example.com", "Sup3rSecret!")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestAPI_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)
	_, err := api.Login(context.Background(), "user@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
}

func TestAPI_ListInvoicesAttachesBearer(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"` + id.String() +
			`","vendor":"Acme","amount":"12.50","invoice_date":"2024-01-15","category":"Travel","file_name":"invoice.pdf"}]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, func() string { return "tok-123" })
	invoices, err := api.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, id, inv.ID)
	assert.Equal(t, "Acme", *inv.Vendor)
	assert.Equal(t, "12.5", inv.Amount.String())
	assert.Equal(t, "2024-01-15", inv.InvoiceDate.Format(entity.InvoiceDateLayout))
}

func TestAPI_ListInvoicesNumericAmount(t *testing.T) {
	// The backend may serialize amounts as JSON numbers rather than strings.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"` + uuid.NewString() + `","amount":7.5,"file_name":"a.pdf"}]`))
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)
	invoices, err := api.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "7.5", invoices[0].Amount.String())
	assert.Nil(t, invoices[0].Vendor)
}

func TestAPI_UploadInvoice(t *testing.T) {
	t.Run("file plus metadata", func(t *testing.T) {
		var gotFile []byte
		var gotData map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/invoices/", r.URL.Path)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "invoice.pdf", header.Filename)
			gotFile, err = io.ReadAll(file)
			require.NoError(t, err)

			require.NoError(t, json.Unmarshal([]byte(r.FormValue("invoice_data")), &gotData))
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		api := NewAPI(srv.URL, func() string { return "tok" })
		err := api.UploadInvoice(context.Background(),
			&FileAttachment{Name: "invoice.pdf", Content: []byte("%PDF-1.4")},
			InvoiceMetadata{Vendor: "Acme", Amount: "12.50"})
		require.NoError(t, err)

		assert.Equal(t, []byte("%PDF-1.4"), gotFile)
		assert.JSONEq(t, `"Acme"`, string(gotData["vendor"]))
		assert.JSONEq(t, `"12.5"`, string(gotData["amount"]))
	})

	t.Run("blank fields are sent as null", func(t *testing.T) {
		var gotData string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			_, _, err := r.FormFile("file")
			assert.Error(t, err)
			gotData = r.FormValue("invoice_data")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		api := NewAPI(srv.URL, nil)
		err := api.UploadInvoice(context.Background(), nil,
			InvoiceMetadata{Vendor: "Acme", Amount: "  "})
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"vendor":"Acme","amount":null,"invoice_date":null,"category":null}`,
			gotData)
	})

	t.Run("unparseable amount fails before the request", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		api := NewAPI(srv.URL, nil)
		err := api.UploadInvoice(context.Background(), nil,
			InvoiceMetadata{Amount: "twelve"})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestAPI_DeleteInvoice(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/invoices/"+id.String(), r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := NewAPI(srv.URL, nil)
	require.NoError(t, api.DeleteInvoice(context.Background(), id))
}
