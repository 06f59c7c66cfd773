package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
)

type uiRenderer struct {
	form *template.Template
	list *template.Template
}

func newUIRenderer() *uiRenderer {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}
	return &uiRenderer{
		form: template.Must(template.New("form").Funcs(funcs).Parse(invoiceFormTemplate)),
		list: template.Must(template.New("list").Funcs(funcs).Parse(invoiceListTemplate)),
	}
}

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	List     string
	Error    string
	Required bool
}

type datalistView struct {
	ID      string
	Options []string
}

type formPage struct {
	Styles template.CSS
	Title  string
	Submit string
	Notice string
	Error  string
	ID     string
	Header []fieldView
	Items  [][]fieldView
	Lists  []datalistView
}

type listPage struct {
	Styles template.CSS
	Notice string
	Error  string
	Rows   []invoicedomain.Record
}

// suggestions maps a field key to the datalist offering reference values.
var suggestions = map[string]string{
	"invoiceType":           "invoiceTypes",
	"sellerProvince":        "provinces",
	"buyerProvince":         "provinces",
	"buyerRegistrationType": "registrationTypes",
	"saleType":              "saleTypes",
	"uoM":                   "unitsOfMeasure",
	"rate":                  "rates",
}

func uiStyleSheet() template.CSS {
	return template.CSS(uiStyles)
}

func itemFieldName(index int, key string) string {
	return fmt.Sprintf("items.%d.%s", index, key)
}

func buildFormPage(rec invoicedomain.Record, ref config.ReferenceData, fieldErrors map[string]string) formPage {
	page := formPage{
		Styles: uiStyleSheet(),
		Title:  "Create Invoice",
		Submit: "Create Invoice",
		ID:     rec.ID,
	}
	if !rec.IsNew() {
		page.Title = "Update Invoice"
		page.Submit = "Update Invoice"
	}

	for _, f := range invoicedomain.HeaderFields() {
		value := rec.FieldValue(f.Key)
		kind := "text"
		if f.Key == "invoiceDate" {
			value = invoicedomain.NormalizeDate(value)
			kind = "date"
		}
		page.Header = append(page.Header, fieldView{
			Name:     f.Key,
			Label:    f.Label,
			Type:     kind,
			Value:    value,
			List:     suggestions[f.Key],
			Error:    fieldErrors[f.Key],
			Required: f.Required,
		})
	}

	for i, item := range rec.Items {
		views := make([]fieldView, 0, len(invoicedomain.LineItemFields()))
		for _, f := range invoicedomain.LineItemFields() {
			kind := "text"
			if f.Numeric {
				kind = "number"
			}
			name := itemFieldName(i, f.Key)
			views = append(views, fieldView{
				Name:     name,
				Label:    f.Label,
				Type:     kind,
				Value:    item.FieldValue(f.Key),
				List:     suggestions[f.Key],
				Error:    fieldErrors[name],
				Required: f.Required,
			})
		}
		page.Items = append(page.Items, views)
	}

	page.Lists = []datalistView{
		{ID: "invoiceTypes", Options: ref.InvoiceTypes},
		{ID: "provinces", Options: ref.Provinces},
		{ID: "registrationTypes", Options: ref.RegistrationTypes},
		{ID: "saleTypes", Options: ref.SaleTypes},
		{ID: "unitsOfMeasure", Options: ref.UnitsOfMeasure},
		{ID: "rates", Options: ref.Rates},
	}
	return page
}

// recordFromForm rebuilds the edit buffer from a posted form. Numeric inputs
// go through the same coercion as keystrokes, so an empty box stays empty.
func recordFromForm(c *gin.Context) invoicedomain.Record {
	var rec invoicedomain.Record
	rec.ID = strings.TrimSpace(c.PostForm("invoiceId"))
	for _, f := range invoicedomain.HeaderFields() {
		rec.SetField(f.Key, c.PostForm(f.Key))
	}

	count, err := strconv.Atoi(strings.TrimSpace(c.PostForm("itemCount")))
	if err != nil || count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		item := invoicedomain.BlankLineItem()
		for _, f := range invoicedomain.LineItemFields() {
			item.SetField(f.Key, c.PostForm(itemFieldName(i, f.Key)))
		}
		rec.Items = append(rec.Items, item)
	}
	return rec
}

func (r *uiRenderer) renderForm(c *gin.Context, status int, page formPage) {
	r.render(c, r.form, status, page)
}

func (r *uiRenderer) renderList(c *gin.Context, status int, page listPage) {
	r.render(c, r.list, status, page)
}

func (r *uiRenderer) render(c *gin.Context, tpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	c.Redirect(http.StatusSeeOther, path+"?notice="+notice)
}
