package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-tracker/invoicetrack/internal/commands"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func credentialFile(t *testing.T, token string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "token")
	if token != "" {
		require.NoError(t, os.WriteFile(path, []byte(token), 0o600))
	}
	return path
}

func TestLogin_SavesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice@example.com", r.PostFormValue("username"))
		assert.Equal(t, "hunter2longer", r.PostFormValue("password"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-abc", "token_type": "bearer"})
	}))
	defer server.Close()

	creds := credentialFile(t, "")
	out, err := runCommand(t,
		"login", "--api-url", server.URL, "--credentials", creds,
		"--email", "alice@example.com", "--password", "hunter2longer")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice@example.com")

	saved, err := os.ReadFile(creds)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(saved))
}

func TestLogin_RejectedShowsServerDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer server.Close()

	creds := credentialFile(t, "")
	out, err := runCommand(t,
		"login", "--api-url", server.URL, "--credentials", creds,
		"--email", "alice@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, out, "Incorrect email or password")

	_, statErr := os.Stat(creds)
	assert.True(t, os.IsNotExist(statErr))
}

func TestList_RequiresLogin(t *testing.T) {
	creds := credentialFile(t, "")
	_, err := runCommand(t, "list", "--credentials", creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestList_PrintsInvoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/invoices/", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":           "00000000-0000-0000-0000-000000000001",
				"vendor":       "Acme Corp",
				"amount":       "12.50",
				"invoice_date": "2024-03-01",
				"category":     "Travel",
				"file_name":    "march.pdf",
				"upload_date":  "2024-03-02T10:00:00Z",
			},
		})
	}))
	defer server.Close()

	creds := credentialFile(t, "tok-abc")
	out, err := runCommand(t, "list", "--api-url", server.URL, "--credentials", creds)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "march.pdf")
}

func TestUpload_ManualEntry(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/invoices/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("invoice_data")), &received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "00000000-0000-0000-0000-000000000001"})
	}))
	defer server.Close()

	creds := credentialFile(t, "tok-abc")
	out, err := runCommand(t,
		"upload", "--api-url", server.URL, "--credentials", creds,
		"--vendor", "Acme Corp", "--amount", "99.90", "--category", "Office")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice uploaded")
	assert.Equal(t, "Acme Corp", received["vendor"])
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("plain text"), 0o600))

	creds := credentialFile(t, "tok-abc")
	_, err := runCommand(t, "upload", doc, "--credentials", creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")
}

func TestDashboard_PrintsAggregates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id": "00000000-0000-0000-0000-000000000001", "vendor": "Acme Corp",
				"amount": "10.00", "invoice_date": "2024-01-05", "category": "travel",
				"file_name": "a.pdf", "upload_date": "2024-01-05T10:00:00Z",
			},
			{
				"id": "00000000-0000-0000-0000-000000000002", "vendor": "Acme Corp",
				"amount": "5.50", "invoice_date": "2024-02-01", "category": nil,
				"file_name": "b.pdf", "upload_date": "2024-02-01T10:00:00Z",
			},
		})
	}))
	defer server.Close()

	creds := credentialFile(t, "tok-abc")
	out, err := runCommand(t, "dashboard", "--api-url", server.URL, "--credentials", creds)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoices: 2")
	assert.Contains(t, out, "Total spend: 15.50")
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "Uncategorized")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "Acme Corp")
}

func TestDelete_InvalidID(t *testing.T) {
	creds := credentialFile(t, "tok-abc")
	_, err := runCommand(t, "delete", "not-a-uuid", "--credentials", creds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid invoice id")
}

func TestDelete_RemovesInvoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/invoices/00000000-0000-0000-0000-000000000001", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	creds := credentialFile(t, "tok-abc")
	out, err := runCommand(t,
		"delete", "00000000-0000-0000-0000-000000000001",
		"--api-url", server.URL, "--credentials", creds)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice deleted")
}
