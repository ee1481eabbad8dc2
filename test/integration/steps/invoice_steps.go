package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/invoice-tracker/invoicetrack/internal/integration/persistence/model"
)

// registerInvoiceSteps registers invoice upload and verification steps.
func registerInvoiceSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I upload an invoice with metadata:$`, iUploadAnInvoiceWithMetadata)
	ctx.Step(`^I upload a PDF named "([^"]*)" with metadata:$`, iUploadAPDFNamedWithMetadata)
	ctx.Step(`^I upload a file named "([^"]*)" without metadata$`, iUploadAFileNamedWithoutMetadata)
	ctx.Step(`^the invoice list should have (\d+) invoices?$`, theInvoiceListShouldHaveInvoices)
	ctx.Step(`^I update the first invoice with body:$`, iUpdateTheFirstInvoiceWithBody)
	ctx.Step(`^I delete the first invoice$`, iDeleteTheFirstInvoice)
	ctx.Step(`^a welcome email should be queued for "([^"]*)"$`, aWelcomeEmailShouldBeQueuedFor)
}

func iUploadAnInvoiceWithMetadata(ctx context.Context, metadata *godog.DocString) (context.Context, error) {
	return uploadInvoice(ctx, "", metadata.Content)
}

func iUploadAPDFNamedWithMetadata(ctx context.Context, fileName string, metadata *godog.DocString) (context.Context, error) {
	return uploadInvoice(ctx, fileName, metadata.Content)
}

func iUploadAFileNamedWithoutMetadata(ctx context.Context, fileName string) (context.Context, error) {
	return uploadInvoice(ctx, fileName, "")
}

// uploadInvoice posts a multipart invoice submission: an optional document
// part plus an optional JSON metadata part, the same shape browsers send.
func uploadInvoice(ctx context.Context, fileName, metadata string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			return ctx, err
		}
		if _, err := part.Write([]byte("%PDF-1.4 test invoice document")); err != nil {
			return ctx, err
		}
	}
	if strings.TrimSpace(metadata) != "" {
		if err := writer.WriteField("invoice_data", metadata); err != nil {
			return ctx, err
		}
	}
	if err := writer.Close(); err != nil {
		return ctx, err
	}

	if err := tc.doRequest(http.MethodPost, "/invoices/", writer.FormDataContentType(), &buf); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

// listInvoices fetches the caller's invoices through the API.
func (tc *TestContext) listInvoices() ([]map[string]interface{}, error) {
	if err := tc.doRequest(http.MethodGet, "/invoices/", "", nil); err != nil {
		return nil, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing invoices returned status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var invoices []map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &invoices); err != nil {
		return nil, fmt.Errorf("failed to parse invoice list: %w", err)
	}
	return invoices, nil
}

func theInvoiceListShouldHaveInvoices(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	invoices, err := tc.listInvoices()
	if err != nil {
		return err
	}
	if len(invoices) != expected {
		return fmt.Errorf("expected %d invoices, got %d", expected, len(invoices))
	}
	return nil
}

// firstInvoiceID resolves the id of the most recently uploaded invoice.
func (tc *TestContext) firstInvoiceID() (string, error) {
	invoices, err := tc.listInvoices()
	if err != nil {
		return "", err
	}
	if len(invoices) == 0 {
		return "", fmt.Errorf("no invoices to act on")
	}

	id, ok := invoices[0]["id"].(string)
	if !ok {
		return "", fmt.Errorf("invoice id missing from list response")
	}
	return id, nil
}

func iUpdateTheFirstInvoiceWithBody(ctx context.Context, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	id, err := tc.firstInvoiceID()
	if err != nil {
		return ctx, err
	}
	if err := tc.doRequest(http.MethodPut, "/invoices/"+id, "application/json", bytes.NewBufferString(body.Content)); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iDeleteTheFirstInvoice(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	id, err := tc.firstInvoiceID()
	if err != nil {
		return ctx, err
	}
	if err := tc.doRequest(http.MethodDelete, "/invoices/"+id, "", nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func aWelcomeEmailShouldBeQueuedFor(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var count int64
	err := tc.db.Conn.Model(&model.EmailQueueModel{}).
		Where("recipient_email = ?", email).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to query email queue: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("no queued email found for %s", email)
	}
	return nil
}
