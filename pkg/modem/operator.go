package modem

const imsiMinLength = 15

// mccCountries mapea MCC a código de país ISO. Sólo los mercados donde se
// despliega el agente; MCC desconocido → "".
var mccCountries = map[string]string{
	"208": "fr",
	"214": "es",
	"222": "it",
	"234": "gb",
	"235": "gb",
	"262": "de",
	"302": "ca",
	"310": "us",
	"311": "us",
	"312": "us",
	"313": "us",
	"314": "us",
	"315": "us",
	"316": "us",
	"334": "mx",
	"440": "jp",
	"441": "jp",
	"450": "kr",
	"460": "cn",
	"466": "tw",
	"505": "au",
	"716": "pe",
	"722": "ar",
	"724": "br",
	"730": "cl",
	"732": "co",
}

// threeDigitMNC: MCC de Norteamérica usan MNC de 3 dígitos
var threeDigitMNC = map[string]bool{
	"302": true, "310": true, "311": true, "312": true, "313": true,
	"314": true, "315": true, "316": true, "334": true,
}

// operatorFromIMSI retorna MCC+MNC a partir del IMSI ("" si es inválido)
func operatorFromIMSI(imsi string) string {
	if len(imsi) < imsiMinLength || !isAllDigits(imsi) {
		return ""
	}
	if threeDigitMNC[imsi[:3]] {
		return imsi[:6]
	}
	return imsi[:5]
}

// countryFromOperator retorna el país ISO del MCC+MNC
func countryFromOperator(mccmnc string) string {
	if len(mccmnc) < 3 {
		return ""
	}
	return mccCountries[mccmnc[:3]]
}
