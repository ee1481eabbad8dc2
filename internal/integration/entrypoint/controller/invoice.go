// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	usecase "github.com/invoice-tracker/invoicetrack/internal/application/usecase/invoice"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/dto"
	"github.com/invoice-tracker/invoicetrack/internal/integration/entrypoint/middleware"
)

// InvoiceController handles invoice endpoints.
type InvoiceController struct {
	createUseCase *usecase.CreateInvoiceUseCase
	listUseCase   *usecase.ListInvoicesUseCase
	updateUseCase *usecase.UpdateInvoiceUseCase
	deleteUseCase *usecase.DeleteInvoiceUseCase
	maxFileSize   int64
}

// NewInvoiceController creates a new invoice controller instance.
func NewInvoiceController(
	createUseCase *usecase.CreateInvoiceUseCase,
	listUseCase *usecase.ListInvoicesUseCase,
	updateUseCase *usecase.UpdateInvoiceUseCase,
	deleteUseCase *usecase.DeleteInvoiceUseCase,
	maxFileSize int64,
) *InvoiceController {
	return &InvoiceController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		maxFileSize:   maxFileSize,
	}
}

// Create handles POST /invoices/ requests. The body is multipart form data
// with an optional file part and a JSON invoice_data part.
func (c *InvoiceController) Create(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Not authenticated"})
		return
	}

	var data dto.InvoiceDataRequest
	if raw := ctx.PostForm("invoice_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Detail: "invoice_data is not valid JSON",
				Code:   string(domainerror.ErrCodeMissingInvoiceData),
			})
			return
		}
	}

	input := usecase.CreateInvoiceInput{
		OwnerID:     ownerID,
		Vendor:      data.Vendor,
		Amount:      data.Amount,
		InvoiceDate: data.InvoiceDate,
		Category:    data.Category,
	}

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		if c.maxFileSize > 0 && fileHeader.Size > c.maxFileSize {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Detail: "File too large",
			})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Could not read uploaded file"})
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Could not read uploaded file"})
			return
		}

		input.FileName = fileHeader.Filename
		input.File = content
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInvoiceResponse(output.Invoice))
}

// List handles GET /invoices/ requests.
func (c *InvoiceController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Not authenticated"})
		return
	}

	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), usecase.ListInvoicesInput{
		OwnerID: ownerID,
		Skip:    skip,
		Limit:   limit,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponses(output.Invoices))
}

// Update handles PUT /invoices/:id requests.
func (c *InvoiceController) Update(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Not authenticated"})
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Detail: "Invoice not found",
			Code:   string(domainerror.ErrCodeInvoiceNotFound),
		})
		return
	}

	var data dto.InvoiceDataRequest
	if err := ctx.ShouldBindJSON(&data); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "Invalid request body"})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), usecase.UpdateInvoiceInput{
		ID:          id,
		OwnerID:     ownerID,
		Vendor:      data.Vendor,
		Amount:      data.Amount,
		InvoiceDate: data.InvoiceDate,
		Category:    data.Category,
	})
	if err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInvoiceResponse(output.Invoice))
}

// Delete handles DELETE /invoices/:id requests.
func (c *InvoiceController) Delete(ctx *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Not authenticated"})
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Detail: "Invoice not found",
			Code:   string(domainerror.ErrCodeInvoiceNotFound),
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), usecase.DeleteInvoiceInput{
		ID:      id,
		OwnerID: ownerID,
	}); err != nil {
		c.handleInvoiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleInvoiceError maps invoice domain errors to HTTP responses.
func (c *InvoiceController) handleInvoiceError(ctx *gin.Context, err error) {
	var invErr *domainerror.InvoiceError
	if !errors.As(err, &invErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Detail: "Internal server error",
		})
		return
	}

	switch invErr.Code {
	case domainerror.ErrCodeInvoiceNotFound:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Detail: "Invoice not found",
			Code:   string(invErr.Code),
		})
	case domainerror.ErrCodeUnsupportedFileType:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Detail: "Only PDF files allowed",
			Code:   string(invErr.Code),
		})
	case domainerror.ErrCodeInvalidInvoiceDate, domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingInvoiceData:
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Detail: invErr.Message,
			Code:   string(invErr.Code),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Detail: "Internal server error",
			Code:   string(invErr.Code),
		})
	}
}
