package sifen

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/maxdominios/go-kude/internal/format"
	"github.com/maxdominios/go-kude/internal/model"
)

// testHostMarker distinguishes the SET test environment in the QR
// verification URL host.
const testHostMarker = "consultas-test"

// MensajeAmbientePrueba is the advisory printed on documents generated
// against the test environment.
const MensajeAmbientePrueba = "Factura generada en Ambiente NO CONECTADO a la SET"

// BuildInvoice assembles the full view-model from a parsed document and
// merges the optional caller-supplied issuer override on top. The
// override wins field by field; omitted fields stay extractor-derived.
func BuildInvoice(doc *Document, override *model.EmisorOverride) *model.Invoice {
	de := doc.DE()
	qrURL := doc.QRURL()
	isTest := qrURL != "" && strings.Contains(qrURL, testHostMarker)

	inv := &model.Invoice{
		Emisor:         extractEmisor(de),
		Receptor:       extractReceptor(de),
		Timbrado:       extractTimbrado(de),
		Operacion:      extractOperacion(de),
		Items:          extractItems(de),
		Totales:        extractTotales(de),
		CDC:            format.CDC(attr(de, "Id")),
		QRURL:          qrURL,
		AmbientePrueba: isTest,
	}
	if isTest {
		inv.MensajeAmbiente = MensajeAmbientePrueba
	}

	override.Apply(&inv.Emisor)
	return inv
}

func extractEmisor(de *etree.Element) model.Emisor {
	g := child(child(de, "gDatGralOpe"), "gEmis")

	// gActEco may be absent, single or repeated; entries missing either
	// the code or the description are dropped.
	var actividades []string
	for _, act := range children(g, "gActEco") {
		code := text(act, "cActEco")
		desc := text(act, "dDesActEco")
		if code != "" && desc != "" {
			actividades = append(actividades, code+" - "+desc)
		}
	}

	return model.Emisor{
		RUC:          text(g, "dRucEm") + "-" + text(g, "dDVEmi"),
		Nombre:       text(g, "dNomEmi"),
		Direccion:    text(g, "dDirEmi"),
		Departamento: format.Locality(text(g, "dDesDepEmi")),
		Ciudad:       format.Locality(text(g, "dDesCiuEmi")),
		Telefono:     text(g, "dTelEmi"),
		Email:        text(g, "dEmailE"),
		// The joined block is normalized in one pass, which title-cases
		// the activity code lines too. Known behavior, kept for parity
		// with the documents already in circulation.
		Actividades: format.Locality(strings.Join(actividades, "\n")),
	}
}

func extractReceptor(de *etree.Element) model.Receptor {
	g := child(child(de, "gDatGralOpe"), "gDatRec")

	// Non-taxpayer buyers carry no RUC at all; the check digit defaults
	// to "0" only when a RUC is present.
	ruc := ""
	if num := text(g, "dRucRec"); num != "" {
		dv := text(g, "dDVRec")
		if dv == "" {
			dv = "0"
		}
		ruc = num + "-" + dv
	}

	return model.Receptor{
		RUC:         ruc,
		RazonSocial: text(g, "dNomRec"),
		Direccion:   text(g, "dDirRec"),
		Telefono:    text(g, "dTelRec"),
		Ciudad:      format.Locality(text(g, "dDesCiuRec")),
		Pais:        text(g, "dDesPaisRe"),
		Distrito:    format.Locality(text(g, "dDesDisRec")),
		Email:       text(g, "dEmailRec"),
	}
}

func extractTimbrado(de *etree.Element) model.Timbrado {
	g := child(de, "gTimb")

	est := format.ZeroPad(text(g, "dEst"), 3)
	punExp := format.ZeroPad(text(g, "dPunExp"), 3)
	numDoc := format.ZeroPad(text(g, "dNumDoc"), 7)

	return model.Timbrado{
		Tipo:                text(g, "dDesTiDE"),
		NumeroTimbrado:      text(g, "dNumTim"),
		FechaInicioVigencia: format.Date(text(g, "dFeIniT")),
		NumeroFormateado:    est + "-" + punExp + "-" + numDoc,
	}
}

func extractOperacion(de *etree.Element) model.Operacion {
	gDat := child(de, "gDatGralOpe")
	gOpe := child(gDat, "gOpeCom")
	gCond := child(child(de, "gDtipDE"), "gCamCond")

	moneda := text(gOpe, "cMoneOpe")
	if moneda == "" {
		moneda = "PYG"
	}

	return model.Operacion{
		FechaEmision:       format.DateTime(text(gDat, "dFeEmiDE")),
		TipoTransaccion:    text(gOpe, "dDesTipTra"),
		Moneda:             moneda,
		CondicionOperacion: text(gCond, "dDCondOpe"),
	}
}

func extractItems(de *etree.Element) []model.Item {
	var items []model.Item
	for _, it := range children(child(de, "gDtipDE"), "gCamItem") {
		gVal := child(it, "gValorItem")
		gRest := child(gVal, "gValorRestaItem")
		gIVA := child(it, "gCamIVA")

		// The post-discount line total lands in the 5% or 10% bucket by
		// exact rate match; any other rate leaves both at "0".
		tasa := format.IntOrZero(text(gIVA, "dTasaIVA"))
		total := format.DecimalOrZero(text(gRest, "dTotOpeItem"))

		iva5, iva10 := "0", "0"
		switch tasa {
		case 5:
			iva5 = format.Amount(total.String(), 0)
		case 10:
			iva10 = format.Amount(total.String(), 0)
		}

		cantidad := text(it, "dCantProSer")
		if cantidad == "" {
			cantidad = "1"
		}

		items = append(items, model.Item{
			Descripcion:    text(it, "dDesProSer"),
			PrecioUnitario: format.Amount(text(gVal, "dPUniProSer"), 0),
			Cantidad:       cantidad,
			IVA5:           iva5,
			IVA10:          iva10,
		})
	}
	return items
}

func extractTotales(de *etree.Element) model.Totales {
	g := child(de, "gTotSub")
	return model.Totales{
		Subtotal5:    format.Amount(text(g, "dSub5"), 0),
		Subtotal10:   format.Amount(text(g, "dSub10"), 0),
		TotalGeneral: format.Amount(text(g, "dTotGralOpe"), 0),
		IVA5:         format.Amount(text(g, "dIVA5"), 0),
		IVA10:        format.Amount(text(g, "dIVA10"), 0),
		TotalIVA:     format.Amount(text(g, "dTotIVA"), 0),
	}
}
