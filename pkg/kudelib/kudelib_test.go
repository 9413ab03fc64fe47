package kudelib_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxdominios/go-kude/pkg/kudelib"
)

const testXML = `<?xml version="1.0" encoding="UTF-8"?>
<rDE xmlns="http://ekuatia.set.gov.py/sifen/xsd">
  <DE Id="01800123450010010000001232024010112345678901">
    <gTimb>
      <dDesTiDE>Factura electrónica</dDesTiDE>
      <dNumTim>87654321</dNumTim>
      <dEst>1</dEst>
      <dPunExp>2</dPunExp>
      <dNumDoc>123</dNumDoc>
    </gTimb>
    <gDatGralOpe>
      <dFeEmiDE>2024-03-15T10:30:00</dFeEmiDE>
      <gEmis>
        <dRucEm>80012345</dRucEm>
        <dDVEmi>7</dDVEmi>
        <dNomEmi>COMERCIAL DEL ESTE S.A.</dNomEmi>
      </gEmis>
    </gDatGralOpe>
    <gDtipDE>
      <gCamItem>
        <dDesProSer>Servicio mensual</dDesProSer>
        <gValorItem>
          <dPUniProSer>110000</dPUniProSer>
          <gValorRestaItem><dTotOpeItem>110000</dTotOpeItem></gValorRestaItem>
        </gValorItem>
        <gCamIVA><dTasaIVA>10</dTasaIVA></gCamIVA>
      </gCamItem>
    </gDtipDE>
    <gTotSub>
      <dSub10>110000</dSub10>
      <dTotGralOpe>110000</dTotGralOpe>
      <dIVA10>10000</dIVA10>
      <dTotIVA>10000</dTotIVA>
    </gTotSub>
  </DE>
</rDE>`

func TestGenerate(t *testing.T) {
	pdf, err := kudelib.Generate(context.Background(), kudelib.Options{
		SourceXML:   testXML,
		ReturnBytes: true,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestExtract(t *testing.T) {
	inv, err := kudelib.Extract(context.Background(), kudelib.Options{SourceXML: testXML})
	require.NoError(t, err)

	assert.Equal(t, "COMERCIAL DEL ESTE S.A.", inv.Emisor.Nombre)
	assert.Equal(t, "80012345-7", inv.Emisor.RUC)
	assert.Equal(t, "001-002-0000123", inv.Timbrado.NumeroFormateado)
	assert.Equal(t, "110.000", inv.Totales.TotalGeneral)
}

func TestGenerate_MissingSource(t *testing.T) {
	_, err := kudelib.Generate(context.Background(), kudelib.Options{ReturnBytes: true})
	require.Error(t, err)

	var configErr *kudelib.ConfigError
	assert.ErrorAs(t, err, &configErr)
}
