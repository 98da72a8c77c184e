package handler

import (
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartpantry/internal/csvexport"
	"smartpantry/internal/domain"
	"smartpantry/internal/service"
)

// ReceiptHandler handles receipt scanning and persistence endpoints.
type ReceiptHandler struct {
	receiptService service.ReceiptService
	fileService    service.FileService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptService service.ReceiptService, fileService service.FileService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, fileService: fileService}
}

// Scan handles POST /api/v1/receipts/scan. The image is stored first, then
// run through OCR and structure extraction. With async=true only the upload
// happens here; a pending receipt is queued for the scan worker instead of
// scanning inline.
func (h *ReceiptHandler) Scan(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	meta, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		UserID: userID,
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if c.PostForm("async") == "true" {
		receipt, err := h.receiptService.CreateFromUpload(c.Request.Context(), userID, meta.ID)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: gin.H{
			"file":    meta,
			"receipt": receipt,
		}})
		return
	}

	// Rewind the multipart file for the inline OCR pass; Upload consumed it.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		HandleError(c, err)
		return
	}

	path, cleanup, err := spoolToTemp(file, meta)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer cleanup()

	result, err := h.receiptService.ScanImage(c.Request.Context(), path)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"file": meta,
		"scan": result,
	})
}

// CreateFromUpload handles POST /api/v1/receipts/from-upload. It queues an
// already uploaded image for asynchronous scanning.
func (h *ReceiptHandler) CreateFromUpload(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input struct {
		FileID uuid.UUID `json:"file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipt, err := h.receiptService.CreateFromUpload(c.Request.Context(), userID, input.FileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: receipt})
}

// Create handles POST /api/v1/receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.CreateReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, receipt)
}

// List handles GET /api/v1/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, limit := pagination(c)
	receipts, total, err := h.receiptService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, receipts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/receipts/:id
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), userID, receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, receipt)
}

// Items handles GET /api/v1/receipts/:id/items
func (h *ReceiptHandler) Items(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt ID")
		return
	}

	items, err := h.receiptService.ListItems(c.Request.Context(), userID, receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// ImageURL handles GET /api/v1/receipts/:id/image
func (h *ReceiptHandler) ImageURL(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), userID, receiptID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if receipt.FileID == nil {
		RespondError(c, http.StatusNotFound, "NO_IMAGE", "receipt has no attached image")
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), userID, *receipt.FileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// Export handles GET /api/v1/receipts/export. It streams the caller's
// receipts as a CSV download.
func (h *ReceiptHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	filename := csvexport.BuildFilename("receipts")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}

	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		receipts, total, err := h.receiptService.List(c.Request.Context(), userID, offset, pageSize)
		if err != nil {
			// Headers are already out; nothing sensible to send but a log.
			log.Printf("receiptHandler.Export: list failed at offset %d: %v", offset, err)
			return
		}
		if err := w.WriteReceipts(receipts); err != nil {
			return
		}
		if offset+len(receipts) >= total || len(receipts) == 0 {
			break
		}
	}
	w.Flush()
}

// Delete handles DELETE /api/v1/receipts/:id
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid receipt ID")
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), userID, receiptID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "receipt deleted"})
}

// spoolToTemp copies the uploaded image to a temp file so the OCR binary
// can read it from disk. The caller removes it via the returned cleanup.
func spoolToTemp(file io.Reader, meta *domain.FileMeta) (string, func(), error) {
	tmp, err := os.CreateTemp("", "receipt-*."+string(meta.FileType))
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
