package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func completeForm() url.Values {
	form := url.Values{}
	for _, f := range invoicedomain.HeaderFields() {
		form.Set(f.Key, "x")
	}
	form.Set("invoiceDate", "2024-03-05")
	form.Set("itemCount", "1")
	form.Set("items.0.hsCode", "0101.2100")
	form.Set("items.0.productDescription", "Cement")
	form.Set("items.0.quantity", "")
	form.Set("action", "submit")
	return form
}

func TestShowBlankForm(t *testing.T) {
	s := newTestServer(t, newFakeInvoiceService())

	w := doJSON(t, s, http.MethodGet, "/invoice", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w.Body.String())
	assert.Equal(t, "Create Invoice", doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find(".item").Length())
	val, _ := doc.Find(`input[name="items.0.quantity"]`).Attr("value")
	assert.Equal(t, "0", val)
	list, _ := doc.Find(`input[name="sellerProvince"]`).Attr("list")
	assert.Equal(t, "provinces", list)
	assert.Equal(t, 1, doc.Find(`datalist#provinces option[value="Sindh"]`).Length())
}

func TestFormMarksRequiredInputs(t *testing.T) {
	s := newTestServer(t, newFakeInvoiceService())

	w := doJSON(t, s, http.MethodGet, "/invoice", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w.Body.String())
	for _, f := range invoicedomain.HeaderFields() {
		_, ok := doc.Find(fmt.Sprintf(`input[name="%s"]`, f.Key)).Attr("required")
		assert.Equal(t, f.Required, ok, f.Key)
	}
	_, ok := doc.Find(`input[name="items.0.hsCode"]`).Attr("required")
	assert.True(t, ok)
	_, ok = doc.Find(`input[name="items.0.quantity"]`).Attr("required")
	assert.False(t, ok)
	_, ok = doc.Find(`button[value="add_item"]`).Attr("formnovalidate")
	assert.True(t, ok)
}

func TestShowFormForExistingInvoice(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)
	rec := seed(t, svc, "INV-9")
	stored := svc.records[rec.ID]
	stored.InvoiceDate = "3/5/2024"
	svc.records[rec.ID] = stored

	w := doJSON(t, s, http.MethodGet, "/invoice?invoiceId="+rec.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w.Body.String())
	assert.Equal(t, "Update Invoice", doc.Find("h1").Text())
	id, _ := doc.Find(`input[name="invoiceId"]`).Attr("value")
	assert.Equal(t, rec.ID, id)
	date, _ := doc.Find(`input[name="invoiceDate"]`).Attr("value")
	assert.Equal(t, "2024-03-05", date)
	ref, _ := doc.Find(`input[name="invoiceRefNo"]`).Attr("value")
	assert.Equal(t, "INV-9", ref)
}

func TestShowFormUnknownIDRedirects(t *testing.T) {
	s := newTestServer(t, newFakeInvoiceService())

	w := doJSON(t, s, http.MethodGet, "/invoice?invoiceId=nope", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/invoice?notice=not_found", w.Header().Get("Location"))
}

func TestShowFormLoadFailureRedirects(t *testing.T) {
	svc := newFakeInvoiceService()
	svc.err = invoicedomain.ErrStoreUnavailable
	s := newTestServer(t, svc)

	w := doJSON(t, s, http.MethodGet, "/invoice?invoiceId=abc", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/invoice?notice=load_failed", w.Header().Get("Location"))
}

func TestAddItemKeepsEditBuffer(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)

	form := url.Values{}
	form.Set("invoiceRefNo", "INV-3")
	form.Set("itemCount", "1")
	form.Set("items.0.quantity", "")
	form.Set("items.0.discount", "12abc")
	form.Set("action", "add_item")

	w := doForm(t, s, "/invoice", form)
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w.Body.String())
	assert.Equal(t, 2, doc.Find(".item").Length())
	ref, _ := doc.Find(`input[name="invoiceRefNo"]`).Attr("value")
	assert.Equal(t, "INV-3", ref)
	qty, _ := doc.Find(`input[name="items.0.quantity"]`).Attr("value")
	assert.Equal(t, "", qty)
	discount, _ := doc.Find(`input[name="items.0.discount"]`).Attr("value")
	assert.Equal(t, "12", discount)
	newQty, _ := doc.Find(`input[name="items.1.quantity"]`).Attr("value")
	assert.Equal(t, "0", newQty)
	assert.Empty(t, svc.records)
}

func TestSubmitMissingFieldsRendersErrors(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)

	form := completeForm()
	form.Set("sellerAddress", "")
	form.Set("items.0.hsCode", "")

	w := doForm(t, s, "/invoice", form)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	doc := parseHTML(t, w.Body.String())
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="sellerAddress"]`).Length())
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="items.0.hsCode"]`).Length())
	assert.Equal(t, 0, doc.Find(`.field-error[data-field="buyerAddress"]`).Length())
	assert.Empty(t, svc.records)
}

func TestSubmitCreatesAndRedirects(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)

	w := doForm(t, s, "/invoice", completeForm())

	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/invoice/view?notice=created", w.Header().Get("Location"))
	require.Len(t, svc.records, 1)
	saved := svc.records["id-1"]
	assert.False(t, saved.Items[0].Quantity.IsEmpty())
}

func TestSubmitUpdatesExisting(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)
	rec := seed(t, svc, "INV-1")

	form := completeForm()
	form.Set("invoiceId", rec.ID)
	form.Set("invoiceRefNo", "INV-1-rev")

	w := doForm(t, s, "/invoice", form)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/invoice/view?notice=updated", w.Header().Get("Location"))
	assert.Equal(t, "INV-1-rev", svc.records[rec.ID].InvoiceRefNo)
	assert.Len(t, svc.records, 1)
}

func TestSubmitStoreFailureKeepsBuffer(t *testing.T) {
	svc := newFakeInvoiceService()
	svc.err = fmt.Errorf("%w: timeout", invoicedomain.ErrStoreUnavailable)
	s := newTestServer(t, svc)

	form := completeForm()
	form.Set("invoiceRefNo", "INV-KEEP")

	w := doForm(t, s, "/invoice", form)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	doc := parseHTML(t, w.Body.String())
	assert.Contains(t, doc.Find("#error").Text(), "unavailable")
	ref, _ := doc.Find(`input[name="invoiceRefNo"]`).Attr("value")
	assert.Equal(t, "INV-KEEP", ref)
}

func TestInvoiceList(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)
	first := seed(t, svc, "INV-1")
	second := seed(t, svc, "INV-2")

	w := doJSON(t, s, http.MethodGet, "/invoice/view?notice=deleted", "")
	require.Equal(t, http.StatusOK, w.Code)

	doc := parseHTML(t, w.Body.String())
	rows := doc.Find("#invoices tbody tr[data-id]")
	require.Equal(t, 2, rows.Length())
	id, _ := rows.Eq(0).Attr("data-id")
	assert.Equal(t, first.ID, id)
	id, _ = rows.Eq(1).Attr("data-id")
	assert.Equal(t, second.ID, id)
	assert.Equal(t, "INV-2", rows.Eq(1).Find("td").Eq(4).Text())
	assert.Equal(t, noticeMessages[noticeDeleted], doc.Find("#notice").Text())
}

func TestInvoiceListEmptyAndFailure(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)

	w := doJSON(t, s, http.MethodGet, "/invoice/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, parseHTML(t, w.Body.String()).Find("tr.empty").Length())

	svc.err = invoicedomain.ErrStoreUnavailable
	w = doJSON(t, s, http.MethodGet, "/invoice/view", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 1, parseHTML(t, w.Body.String()).Find("#error").Length())
}

func TestDeleteFromList(t *testing.T) {
	svc := newFakeInvoiceService()
	s := newTestServer(t, svc)
	rec := seed(t, svc, "INV-1")

	w := doForm(t, s, "/invoice/view/"+rec.ID+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/invoice/view?notice=deleted", w.Header().Get("Location"))
	assert.Empty(t, svc.records)

	w = doForm(t, s, "/invoice/view/"+rec.ID+"/delete", url.Values{})
	assert.Equal(t, "/invoice/view?notice=delete_failed", w.Header().Get("Location"))
}

func TestLegacyRoutesRedirect(t *testing.T) {
	s := newTestServer(t, newFakeInvoiceService())

	w := doJSON(t, s, http.MethodGet, "/add-invoice", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/invoice", w.Header().Get("Location"))

	w = doJSON(t, s, http.MethodGet, "/view-invoice", "")
	assert.Equal(t, "/invoice/view", w.Header().Get("Location"))
}

func TestFormFieldName(t *testing.T) {
	assert.Equal(t, "sellerAddress", formFieldName("Record.sellerAddress"))
	assert.Equal(t, "items.2.hsCode", formFieldName("Record.items[2].hsCode"))
}
