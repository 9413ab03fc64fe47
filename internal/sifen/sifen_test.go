package sifen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxdominios/go-kude/internal/model"
	"github.com/maxdominios/go-kude/internal/sifen"
)

func readTestFile(t *testing.T, filename string) []byte {
	t.Helper()
	path := filepath.Join("testdata", filename)
	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read test file: %s", filename)
	return content
}

func parseTestFile(t *testing.T, filename string) *sifen.Document {
	t.Helper()
	doc, err := sifen.Parse(readTestFile(t, filename))
	require.NoError(t, err)
	return doc
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed XML", content: `<rDE><DE>`},
		{name: "wrong root element", content: `<factura><DE Id="1"/></factura>`},
		{name: "missing DE entry", content: `<rDE><gCamFuFD><dCarQR>x</dCarQR></gCamFuFD></rDE>`},
		{name: "empty document", content: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sifen.ParseString(tt.content)
			require.Error(t, err)

			var structErr *model.StructuralError
			require.ErrorAs(t, err, &structErr)
		})
	}
}

func TestParse_QRURLOptional(t *testing.T) {
	doc, err := sifen.ParseString(`<rDE><DE Id="123"></DE></rDE>`)
	require.NoError(t, err)
	assert.Empty(t, doc.QRURL(), "missing QR URL is not an error")
}

func TestParse_QRURL(t *testing.T) {
	doc := parseTestFile(t, "factura.xml")
	assert.Contains(t, doc.QRURL(), "https://ekuatia.set.gov.py/consultas-test/qr")
}

func TestBuildInvoice_Emisor(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)

	e := inv.Emisor
	assert.Equal(t, "80069563-1", e.RUC)
	assert.Equal(t, "COMERCIAL DEL SUR S.A.", e.Nombre)
	assert.Equal(t, "Avda. Mcal. López 1234 c/ Brasil", e.Direccion)
	assert.Equal(t, "Capital", e.Departamento)
	assert.Equal(t, "Asuncion", e.Ciudad, "parenthetical qualifier removed")
	assert.Equal(t, "021-123456", e.Telefono)
	assert.Equal(t, "facturacion@comercialdelsur.com.py", e.Email)

	// Three gActEco entries, one without a description: only two survive,
	// newline-joined and title-cased as one block.
	assert.Equal(t, "46201 - Comercio Al Por Mayor\n62010 - Desarrollo De Software", e.Actividades)
}

func TestBuildInvoice_Receptor(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)

	r := inv.Receptor
	assert.Equal(t, "4554737-2", r.RUC)
	assert.Equal(t, "JUAN ANDRES GONZALEZ", r.RazonSocial)
	assert.Equal(t, "Tte. Fariña 567", r.Direccion)
	assert.Equal(t, "0981-555123", r.Telefono)
	assert.Equal(t, "San Lorenzo", r.Ciudad)
	assert.Equal(t, "Paraguay", r.Pais)
	assert.Equal(t, "San Lorenzo", r.Distrito)
}

func TestBuildInvoice_ReceptorWithoutRUC(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), nil)
	assert.Empty(t, inv.Receptor.RUC, "non-taxpayer buyer has no RUC")
	assert.Equal(t, "SIN NOMBRE", inv.Receptor.RazonSocial)
}

func TestBuildInvoice_ReceptorCheckDigitDefault(t *testing.T) {
	doc, err := sifen.ParseString(`<rDE><DE Id="1">
		<gDatGralOpe><gDatRec><dRucRec>1234567</dRucRec></gDatRec></gDatGralOpe>
	</DE></rDE>`)
	require.NoError(t, err)

	inv := sifen.BuildInvoice(doc, nil)
	assert.Equal(t, "1234567-0", inv.Receptor.RUC)
}

func TestBuildInvoice_Timbrado(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)

	ti := inv.Timbrado
	assert.Equal(t, "Factura electrónica", ti.Tipo)
	assert.Equal(t, "12558946", ti.NumeroTimbrado)
	assert.Equal(t, "13/08/2021", ti.FechaInicioVigencia)
	assert.Equal(t, "001-001-0000061", ti.NumeroFormateado)
	assert.Regexp(t, `^\d{3}-\d{3}-\d{7}$`, ti.NumeroFormateado)
}

func TestBuildInvoice_TimbradoAbsent(t *testing.T) {
	doc, err := sifen.ParseString(`<rDE><DE Id="1"></DE></rDE>`)
	require.NoError(t, err)

	inv := sifen.BuildInvoice(doc, nil)
	assert.Equal(t, "000-000-0000000", inv.Timbrado.NumeroFormateado)
	assert.Empty(t, inv.Timbrado.FechaInicioVigencia)
}

func TestBuildInvoice_Operacion(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)

	op := inv.Operacion
	assert.Equal(t, "29/11/2021 17:59:57", op.FechaEmision)
	assert.Equal(t, "Venta de mercadería", op.TipoTransaccion)
	assert.Equal(t, "PYG", op.Moneda)
	assert.Equal(t, "Contado", op.CondicionOperacion)
}

func TestBuildInvoice_MonedaDefault(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), nil)
	assert.Equal(t, "PYG", inv.Operacion.Moneda, "currency defaults to PYG")
}

func TestBuildInvoice_ItemsTaxBuckets(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)
	require.Len(t, inv.Items, 3)

	ten := inv.Items[0]
	assert.Equal(t, "Notebook 15 pulgadas", ten.Descripcion)
	assert.Equal(t, "3.500.000", ten.PrecioUnitario)
	assert.Equal(t, "2", ten.Cantidad)
	assert.Equal(t, "0", ten.IVA5)
	assert.Equal(t, "7.000.000", ten.IVA10)

	five := inv.Items[1]
	assert.Equal(t, "150.000", five.IVA5)
	assert.Equal(t, "0", five.IVA10)

	exempt := inv.Items[2]
	assert.Equal(t, "0", exempt.IVA5)
	assert.Equal(t, "0", exempt.IVA10, "rate 0 lands in neither bucket")

	// Exactly one bucket is non-"0" for rates 5 and 10, both "0" otherwise.
	for _, it := range inv.Items {
		assert.False(t, it.IVA5 != "0" && it.IVA10 != "0",
			"item %q has both tax buckets populated", it.Descripcion)
	}
}

func TestBuildInvoice_SingleItemCoercedToSequence(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), nil)
	require.Len(t, inv.Items, 1)

	it := inv.Items[0]
	assert.Equal(t, "Servicio de consultoría", it.Descripcion)
	assert.Equal(t, "1", it.Cantidad, "quantity defaults to 1")
	assert.Equal(t, "110.000", it.IVA10)
	assert.Equal(t, "0", it.IVA5)
}

func TestBuildInvoice_Totales(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), nil)

	to := inv.Totales
	assert.Equal(t, "110.000", to.Subtotal10)
	assert.Equal(t, "110.000", to.TotalGeneral)
	assert.Equal(t, "10.000", to.TotalIVA)
	assert.Equal(t, "0", to.Subtotal5)
	assert.Equal(t, "0", to.IVA5)
}

func TestBuildInvoice_CDC(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)
	assert.Equal(t, "0180 0695 6310 0100 1000 0006 1202 1112 9175 9571 4694", inv.CDC)
}

func TestBuildInvoice_TestEnvironment(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura.xml"), nil)
	assert.True(t, inv.AmbientePrueba)
	assert.Equal(t, sifen.MensajeAmbientePrueba, inv.MensajeAmbiente)
}

func TestBuildInvoice_ProductionEnvironment(t *testing.T) {
	doc, err := sifen.ParseString(`<rDE>
		<DE Id="1"></DE>
		<gCamFuFD><dCarQR>https://ekuatia.set.gov.py/consultas/qr?Id=1</dCarQR></gCamFuFD>
	</rDE>`)
	require.NoError(t, err)

	inv := sifen.BuildInvoice(doc, nil)
	assert.False(t, inv.AmbientePrueba)
	assert.Empty(t, inv.MensajeAmbiente)
}

func TestBuildInvoice_NoQRURL(t *testing.T) {
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), nil)
	assert.Empty(t, inv.QRURL)
	assert.False(t, inv.AmbientePrueba)
}

func TestBuildInvoice_EmisorOverride(t *testing.T) {
	nombre := "ACME"
	tel := "+595 21 000000"
	inv := sifen.BuildInvoice(parseTestFile(t, "factura_minima.xml"), &model.EmisorOverride{
		Nombre:   &nombre,
		Telefono: &tel,
	})

	assert.Equal(t, "ACME", inv.Emisor.Nombre)
	assert.Equal(t, "+595 21 000000", inv.Emisor.Telefono)
	// Fields the caller omitted stay extractor-derived.
	assert.Equal(t, "80012345-7", inv.Emisor.RUC)
	assert.Equal(t, "Ruta 2 Km 20", inv.Emisor.Direccion)
	assert.Equal(t, "Capiata", inv.Emisor.Ciudad)
}

func TestBuildInvoice_EmptyGroupsDegrade(t *testing.T) {
	doc, err := sifen.ParseString(`<rDE><DE Id="99"></DE></rDE>`)
	require.NoError(t, err)

	inv := sifen.BuildInvoice(doc, nil)
	assert.Equal(t, "-", inv.Emisor.RUC, "empty number and check digit still compose")
	assert.Empty(t, inv.Items)
	assert.Equal(t, "0", inv.Totales.TotalGeneral)
	assert.Equal(t, "99", inv.CDC)
	assert.Equal(t, "PYG", inv.Operacion.Moneda)
}
