package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	records, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id := c.Param("id")
	tagInvoice(c, id)

	rec, err := s.invoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.Record
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = ""

	rec, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	tagInvoice(c, rec.ID)

	c.JSON(http.StatusCreated, gin.H{"data": rec})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id := c.Param("id")
	tagInvoice(c, id)

	var req invoicedomain.Record
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rec, err := s.invoiceSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rec})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	tagInvoice(c, id)

	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}})
}

func (s *Server) GetInvoiceTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.invoiceSvc.Blank()})
}
