package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/export"
	"github.com/smallbiznis/fbrinvoice/internal/invoice/format"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	id := c.Param("id")
	tagInvoice(c, id)

	rec, err := s.invoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdf.GenerateInvoice(c.Request.Context(), rec)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := s.documentName(rec)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, name))
	c.Data(http.StatusOK, "application/pdf", body)
}

func (s *Server) ExportInvoicesXLSX(c *gin.Context) {
	records, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		AbortWithError(c, err)
		return
	}

	name := "invoices-" + s.clock.Now().Format("20060102")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) documentName(rec invoicedomain.Record) string {
	template := s.cfg.DocumentNameTemplate
	if template == "" {
		template = format.DefaultDocumentNameTemplate
	}
	name, err := format.FormatDocumentName(template, rec, s.clock.Now())
	if err == nil {
		return name
	}

	s.log.Warn("invalid document name template, using default", zap.String("template", template), zap.Error(err))
	name, err = format.FormatDocumentName(format.DefaultDocumentNameTemplate, rec, s.clock.Now())
	if err != nil {
		return "invoice"
	}
	return name
}
