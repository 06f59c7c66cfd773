package server

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"go.uber.org/zap"
)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRecord checks required fields before a form submission is saved.
// It returns form input names mapped to messages. The JSON API does not call it.
func validateRecord(rec invoicedomain.Record) map[string]string {
	err := formValidator.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := formFieldName(fe.Namespace())
		switch fe.Tag() {
		case "required":
			out[name] = "This field is required."
		case "min":
			out[name] = "At least one item is required."
		default:
			out[name] = "Invalid value."
		}
	}
	return out
}

// formFieldName turns a validator namespace such as "Record.items[0].hsCode"
// into the matching form input name "items.0.hsCode".
func formFieldName(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return strings.NewReplacer("[", ".", "]", "").Replace(namespace)
}

func fieldErrorsToValidation(fieldErrors map[string]string) error {
	out := &ValidationErrors{}
	for field, msg := range fieldErrors {
		out.Errors = append(out.Errors, ValidationError{Field: field, Code: "required", Message: msg})
	}
	return out
}

func (s *Server) ShowInvoiceForm(c *gin.Context) {
	ref := s.reference.Get()
	id := invoiceIDFromQuery(c)
	if id == "" {
		page := buildFormPage(s.invoiceSvc.Blank(), ref, nil)
		page.Notice = noticeFromQuery(c)
		s.ui.renderForm(c, http.StatusOK, page)
		return
	}
	tagInvoice(c, id)

	rec, err := s.invoiceSvc.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound):
		redirectWithNotice(c, "/invoice", noticeNotFound)
		return
	case err != nil:
		redirectWithNotice(c, "/invoice", noticeLoadFailed)
		return
	}

	page := buildFormPage(rec, ref, nil)
	page.Notice = noticeFromQuery(c)
	s.ui.renderForm(c, http.StatusOK, page)
}

func (s *Server) SubmitInvoiceForm(c *gin.Context) {
	rec := recordFromForm(c)
	tagInvoice(c, rec.ID)
	ref := s.reference.Get()

	if c.PostForm("action") == "add_item" {
		rec.AddItem()
		s.ui.renderForm(c, http.StatusOK, buildFormPage(rec, ref, nil))
		return
	}

	if fieldErrors := validateRecord(rec); len(fieldErrors) > 0 {
		_ = c.Error(fieldErrorsToValidation(fieldErrors))
		page := buildFormPage(rec, ref, fieldErrors)
		page.Error = "Please fill in all required fields."
		s.ui.renderForm(c, http.StatusUnprocessableEntity, page)
		return
	}

	creating := rec.IsNew()
	saved, err := s.invoiceSvc.Save(c.Request.Context(), rec.ID, rec)
	if err != nil {
		_ = c.Error(err)
		status, _ := mapError(err)
		s.log.Warn("invoice form save failed", zap.String("invoice_id", rec.ID), zap.Error(err))
		page := buildFormPage(rec, ref, nil)
		page.Error = "Failed to save invoice: " + saveFailureMessage(err)
		s.ui.renderForm(c, status, page)
		return
	}
	tagInvoice(c, saved.ID)

	notice := noticeUpdated
	if creating {
		notice = noticeCreated
	}
	redirectWithNotice(c, "/invoice/view", notice)
}

func saveFailureMessage(err error) string {
	switch {
	case errors.Is(err, invoicedomain.ErrNotFound):
		return "the invoice no longer exists."
	case errors.Is(err, invoicedomain.ErrStoreUnavailable):
		return "the invoice store is unavailable."
	default:
		return "unexpected error."
	}
}

func (s *Server) ShowInvoiceList(c *gin.Context) {
	page := listPage{
		Styles: uiStyleSheet(),
		Notice: noticeFromQuery(c),
	}

	records, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		status, _ := mapError(err)
		page.Error = "Failed to fetch invoices. Please try again."
		s.ui.renderList(c, status, page)
		return
	}

	page.Rows = records
	for i := range page.Rows {
		page.Rows[i].InvoiceDate = invoicedomain.NormalizeDate(page.Rows[i].InvoiceDate)
	}
	s.ui.renderList(c, http.StatusOK, page)
}

func (s *Server) DeleteInvoiceFromList(c *gin.Context) {
	id := c.Param("id")
	tagInvoice(c, id)

	if err := s.invoiceSvc.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		redirectWithNotice(c, "/invoice/view", noticeDeleteFailed)
		return
	}

	redirectWithNotice(c, "/invoice/view", noticeDeleted)
}
