package detector

import "testing"

func TestDetectVendor(t *testing.T) {
	tests := map[string]string{
		"Teltonika RUT950":             "Teltonika",
		"RUTX11 router":                "Teltonika",
		"Sierra Wireless AirLink RV55": "Sierra",
		"Cisco IOS Software, IR1101":   "Cisco",
		"Huawei B535-232":              "Huawei",
		"RouterOS RBLtAP-2HnD":         "MikroTik",
		"Linux OpenWrt armv7l":         "Generic",
	}

	for descr, want := range tests {
		if got := DetectVendor(descr); got != want {
			t.Errorf("DetectVendor(%q) = %q, want %q", descr, got, want)
		}
	}
}

func TestDetectPrefersObjectID(t *testing.T) {
	vendor, confidence := Detect("Linux OpenWrt", ".1.3.6.1.4.1.48690.1.2")
	if vendor != "Teltonika" || confidence != 0.99 {
		t.Errorf("Detect = %q, %v", vendor, confidence)
	}

	vendor, confidence = Detect("Linux OpenWrt", "1.3.6.1.4.1.8072.3.2.10")
	if vendor != "Generic" || confidence != 0.50 {
		t.Errorf("Detect sin enterprise conocido = %q, %v", vendor, confidence)
	}
}

func TestDetectVendorByObjectID(t *testing.T) {
	if got := DetectVendorByObjectID("1.3.6.1.4.1.9.1.2588"); got != "Cisco" {
		t.Errorf("Cisco = %q", got)
	}
	// 1.3.6.1.4.1.94 no es Cisco (1.3.6.1.4.1.9)
	if got := DetectVendorByObjectID("1.3.6.1.4.1.94.1"); got != "" {
		t.Errorf("prefijo parcial = %q", got)
	}
}

func TestGetVendorConfidence(t *testing.T) {
	if got := GetVendorConfidence("Teltonika RUT950", "Teltonika"); got != 0.98 {
		t.Errorf("Teltonika = %v", got)
	}
	if got := GetVendorConfidence("RUT950", "Teltonika"); got != 0.85 {
		t.Errorf("Teltonika sin nombre = %v", got)
	}
	if got := GetVendorConfidence("RouterOS", "MikroTik"); got != 0.75 {
		t.Errorf("default = %v", got)
	}
}
