package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Notices shown on the HTML pages after a redirect.
const (
	noticeCreated      = "created"
	noticeUpdated      = "updated"
	noticeDeleted      = "deleted"
	noticeNotFound     = "not_found"
	noticeLoadFailed   = "load_failed"
	noticeDeleteFailed = "delete_failed"
)

var noticeMessages = map[string]string{
	noticeCreated:      "Invoice saved successfully.",
	noticeUpdated:      "Invoice updated successfully.",
	noticeDeleted:      "Invoice deleted successfully.",
	noticeNotFound:     "Invoice not found.",
	noticeLoadFailed:   "Failed to fetch invoice. Please try again.",
	noticeDeleteFailed: "Failed to delete invoice. Please try again.",
}

// invoiceIDFromQuery reads the edit target. An empty value means the form
// creates a new invoice.
func invoiceIDFromQuery(c *gin.Context) string {
	return strings.TrimSpace(c.Query("invoiceId"))
}

func noticeFromQuery(c *gin.Context) string {
	return noticeMessages[strings.TrimSpace(c.Query("notice"))]
}
