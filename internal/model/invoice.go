// Package model defines the canonical KUDE view-model assembled from a
// SIFEN electronic invoice (factura electrónica).
//
// Every field is carried as the exact string the printed representation
// shows: amounts are already grouped, dates already rendered, identifiers
// already padded. Records are built once per document and never mutated
// afterwards, so they are safe to share between goroutines.
package model

// Emisor holds the issuer block of the invoice.
type Emisor struct {
	RUC          string `json:"ruc"`
	Nombre       string `json:"nombre"`
	Direccion    string `json:"direccion"`
	Departamento string `json:"departamento"`
	Ciudad       string `json:"ciudad"`
	Pais         string `json:"pais,omitempty"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	// Actividades is the newline-joined list of "<code> - <description>"
	// economic activity entries, locality-normalized as one block.
	Actividades string `json:"actividades"`
}

// Receptor holds the recipient block. RUC is empty for non-taxpayer buyers.
type Receptor struct {
	RUC         string `json:"ruc"`
	RazonSocial string `json:"razonSocial"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Ciudad      string `json:"ciudad"`
	Pais        string `json:"pais"`
	Distrito    string `json:"distrito"`
	Email       string `json:"email"`
}

// Timbrado holds the fiscal stamp authorization data.
type Timbrado struct {
	Tipo                string `json:"tipo"`
	NumeroTimbrado      string `json:"numeroTimbrado"`
	FechaInicioVigencia string `json:"fechaInicioVigencia"`
	// NumeroFormateado is the canonical document number
	// "EST-PUNEXP-NUMDOC" with fixed widths 3-3-7, zero padded.
	NumeroFormateado string `json:"numeroFormateado"`
}

// Operacion holds operation metadata.
type Operacion struct {
	FechaEmision       string `json:"fechaEmision"`
	TipoTransaccion    string `json:"tipoTransaccion"`
	Moneda             string `json:"moneda"`
	CondicionOperacion string `json:"condicionOperacion"`
}

// Item is one invoice line. Exactly one of IVA5/IVA10 is non-"0" when the
// declared tax rate is 5 or 10; both are "0" for any other rate.
type Item struct {
	Descripcion    string `json:"descripcion"`
	PrecioUnitario string `json:"precioUnitario"`
	Cantidad       string `json:"cantidad"`
	IVA5           string `json:"iva5"`
	IVA10          string `json:"iva10"`
}

// Totales holds the invoice totals, bucketed by tax rate.
type Totales struct {
	Subtotal5    string `json:"subtotal5"`
	Subtotal10   string `json:"subtotal10"`
	TotalGeneral string `json:"totalGeneral"`
	IVA5         string `json:"iva5"`
	IVA10        string `json:"iva10"`
	TotalIVA     string `json:"totalIVA"`
}

// Invoice is the aggregate view-model for one KUDE.
type Invoice struct {
	Emisor    Emisor    `json:"emisor"`
	Receptor  Receptor  `json:"receptor"`
	Timbrado  Timbrado  `json:"timbrado"`
	Operacion Operacion `json:"operacion"`
	Items     []Item    `json:"items"`
	Totales   Totales   `json:"totales"`
	// CDC is the document control code, grouped in blocks of 4 characters.
	CDC   string `json:"cdc"`
	QRURL string `json:"qrUrl,omitempty"`
	// AmbientePrueba is true when the QR verification URL points at the
	// SET test host; MensajeAmbiente then carries the printed advisory.
	AmbientePrueba  bool   `json:"isAmbientePrueba"`
	MensajeAmbiente string `json:"mensajeAmbiente,omitempty"`
}

// EmisorOverride is a partial issuer record supplied by the caller.
// Non-nil fields replace the extracted value; nil fields keep it.
type EmisorOverride struct {
	RUC       *string `json:"ruc,omitempty"`
	Nombre    *string `json:"nombre,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Ciudad    *string `json:"ciudad,omitempty"`
	Pais      *string `json:"pais,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// Apply merges the override into e, field by field.
func (o *EmisorOverride) Apply(e *Emisor) {
	if o == nil {
		return
	}
	if o.RUC != nil {
		e.RUC = *o.RUC
	}
	if o.Nombre != nil {
		e.Nombre = *o.Nombre
	}
	if o.Direccion != nil {
		e.Direccion = *o.Direccion
	}
	if o.Ciudad != nil {
		e.Ciudad = *o.Ciudad
	}
	if o.Pais != nil {
		e.Pais = *o.Pais
	}
	if o.Telefono != nil {
		e.Telefono = *o.Telefono
	}
	if o.Email != nil {
		e.Email = *o.Email
	}
}
