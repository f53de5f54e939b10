// Package fiscal exporta la factura de una reserva como XML estilo UBL y
// calcula su huella: SHA-384 en hex sobre el XML canónico (C14N). La huella
// identifica el documento emitido; dos emisiones del mismo contenido producen
// la misma huella aunque cambie el formato del XML.
package fiscal

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/andresjj98/appagencia-api/internal/application/document"
	"github.com/andresjj98/appagencia-api/internal/domain/docs"
)

const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	nsCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
)

var _ document.FiscalExporter = (*Exporter)(nil)

// Exporter construye el XML fiscal con etree.
type Exporter struct{}

// NewExporter crea el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export genera el XML de la factura y su huella SHA-384.
func (e *Exporter) Export(p *docs.InvoicePayload) ([]byte, string, error) {
	if p == nil || p.InvoiceNumber == "" {
		return nil, "", fmt.Errorf("fiscal: la reserva no tiene factura emitida")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cbc", nsCBC)
	root.CreateAttr("xmlns:cac", nsCAC)

	root.CreateElement("cbc:ID").SetText(p.InvoiceNumber)
	root.CreateElement("cbc:IssueDate").SetText(p.IssueDate)
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(nonEmpty(p.Currency, "COP"))

	supplier := root.CreateElement("cac:AccountingSupplierParty")
	party := supplier.CreateElement("cac:Party")
	party.CreateElement("cbc:Name").SetText(p.Agency.Name)
	if p.Agency.TaxID != "" {
		party.CreateElement("cbc:CompanyID").SetText(p.Agency.TaxID)
	}
	if p.Agency.Address != "" {
		party.CreateElement("cbc:StreetName").SetText(p.Agency.Address)
	}

	customer := root.CreateElement("cac:AccountingCustomerParty")
	cparty := customer.CreateElement("cac:Party")
	cparty.CreateElement("cbc:Name").SetText(p.Client.Name)
	if p.Client.IDNumber != "" {
		cparty.CreateElement("cbc:CompanyID").SetText(p.Client.IDNumber)
	}

	for i, l := range p.PaymentLines {
		line := root.CreateElement("cac:InvoiceLine")
		line.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", i+1))
		line.CreateElement("cbc:Note").SetText(l.Concept)
		qty := line.CreateElement("cbc:InvoicedQuantity")
		qty.CreateAttr("unitCode", "EA")
		qty.SetText(fmt.Sprintf("%d", l.Count))
		price := line.CreateElement("cbc:PriceAmount")
		price.CreateAttr("currencyID", nonEmpty(p.Currency, "COP"))
		price.SetText(l.UnitPrice.StringFixed(2))
		amount := line.CreateElement("cbc:LineExtensionAmount")
		amount.CreateAttr("currencyID", nonEmpty(p.Currency, "COP"))
		amount.SetText(l.Amount.StringFixed(2))
	}

	totals := root.CreateElement("cac:LegalMonetaryTotal")
	sub := totals.CreateElement("cbc:LineExtensionAmount")
	sub.CreateAttr("currencyID", nonEmpty(p.Currency, "COP"))
	sub.SetText(p.Subtotal.StringFixed(2))
	payable := totals.CreateElement("cbc:PayableAmount")
	payable.CreateAttr("currencyID", nonEmpty(p.Currency, "COP"))
	payable.SetText(p.Total.StringFixed(2))

	for i, ins := range p.Installments {
		pm := root.CreateElement("cac:PaymentMeans")
		pm.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", i+1))
		if ins.DueDate != "" {
			pm.CreateElement("cbc:PaymentDueDate").SetText(ins.DueDate)
		}
		amt := pm.CreateElement("cbc:PaymentAmount")
		amt.CreateAttr("currencyID", nonEmpty(p.Currency, "COP"))
		amt.SetText(ins.Amount.StringFixed(2))
	}

	xmlBytes, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("fiscal: serializar XML: %w", err)
	}

	fingerprint, err := Fingerprint(xmlBytes)
	if err != nil {
		return nil, "", err
	}
	return xmlBytes, fingerprint, nil
}

// Fingerprint calcula SHA-384 en hex sobre la forma canónica (C14N) del XML.
func Fingerprint(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("fiscal: canonicalizar XML: %w", err)
	}
	sum := sha512.Sum384(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
