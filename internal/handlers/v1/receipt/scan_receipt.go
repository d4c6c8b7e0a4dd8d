package receipt

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/finexa/finexa-server/internal/domain"
	"github.com/finexa/finexa-server/internal/handlers/v1/apierrors"
	"github.com/finexa/finexa-server/internal/handlers/v1/identity"
	"github.com/finexa/finexa-server/internal/logging"
)

// ScanReceiptBody is the request body for scanning a receipt.
type ScanReceiptBody struct {
	Image    string `json:"image" required:"true" doc:"Base64-encoded receipt image"`
	MimeType string `json:"mimeType" required:"true" enum:"image/jpeg,image/png,image/webp" doc:"Image MIME type"`
}

// ScanReceiptInput is the Huma input for scanning a receipt.
type ScanReceiptInput struct {
	identity.Header
	Body ScanReceiptBody
}

// ScanReceiptResponse is the extracted transaction draft.
type ScanReceiptResponse struct {
	Amount       string `json:"amount" doc:"Total amount on the receipt"`
	Date         string `json:"date" doc:"ISO date on the receipt"`
	Description  string `json:"description" doc:"Short summary of the purchase"`
	MerchantName string `json:"merchantName" doc:"Merchant or store name"`
	Category     string `json:"category" doc:"Suggested category slug"`
}

// ScanReceiptOutput is the Huma output for scanning a receipt.
type ScanReceiptOutput struct {
	Body ScanReceiptResponse
}

// receiptScanner is the interface for extracting fields from a receipt image.
type receiptScanner interface {
	ScanReceipt(ctx context.Context, imageData []byte, mimeType string) (domain.ReceiptScan, error)
}

// ScanReceiptHandler handles POST /v1/receipt/scan.
type ScanReceiptHandler struct {
	Scanner receiptScanner
}

// NewScanReceiptHandler creates a new ScanReceiptHandler.
func NewScanReceiptHandler(scanner receiptScanner) *ScanReceiptHandler {
	return &ScanReceiptHandler{Scanner: scanner}
}

// Register registers the receipt scan endpoint with the Huma API.
func (h *ScanReceiptHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "scan-receipt",
		Method:      http.MethodPost,
		Path:        "/v1/receipt/scan",
		Summary:     "Scan receipt",
		Description: "Extracts a transaction draft from a receipt image.",
		Tags:        []string{"Receipts"},
	}, h.handle)
}

func (h *ScanReceiptHandler) handle(ctx context.Context, input *ScanReceiptInput) (*ScanReceiptOutput, error) {
	if _, err := input.Resolve(); err != nil {
		return nil, err
	}

	imageData, err := base64.StdEncoding.DecodeString(input.Body.Image)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid base64 image", err)
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("scanReceiptMs")
	}
	scan, err := h.Scanner.ScanReceipt(ctx, imageData, input.Body.MimeType)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierrors.Map(err, "failed to scan receipt")
	}

	return &ScanReceiptOutput{
		Body: ScanReceiptResponse{
			Amount:       scan.Amount.String(),
			Date:         scan.Date,
			Description:  scan.Description,
			MerchantName: scan.MerchantName,
			Category:     scan.Category,
		},
	}, nil
}
