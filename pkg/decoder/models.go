package decoder

// Category identifica la tabla de decodificación de un campo
type Category string

const (
	CatSIMState     Category = "sim_state"
	CatPhoneType    Category = "phone_type"
	CatCallState    Category = "call_state"
	CatDataState    Category = "data_state"
	CatNetworkType  Category = "network_type"
	CatServiceState Category = "service_state"
)

// DecodedField es un código crudo junto a su etiqueta canónica
type DecodedField struct {
	Category Category `json:"category"`
	Code     int      `json:"code"`
	Label    string   `json:"label"`
	Known    bool     `json:"known"` // false si el código no está en la tabla
}

// String retorna la etiqueta
func (f DecodedField) String() string {
	return f.Label
}
