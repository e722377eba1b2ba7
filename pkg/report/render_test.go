package report

import (
	"strings"
	"testing"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

func TestRender_Layout(t *testing.T) {
	snap := baseSnapshot()
	snap.PermissionGranted = false

	got := Build(snap).String()

	wantPrefix := "【Permission】\nREAD_PHONE_STATE: denied\n\n【Available without permission】\nSIM operator (MCC+MNC): 44010\n"
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("render prefix mismatch:\n%s", got)
	}

	wantSuffix := "【Requires READ_PHONE_STATE】\nStatus: " + PlaceholderPermissionDenied + "\n"
	if !strings.HasSuffix(got, wantSuffix) {
		t.Errorf("render suffix mismatch:\n%s", got)
	}

	if n := strings.Count(got, "\n\n"); n != 2 {
		t.Errorf("blank lines = %d, want 2 (three sections)", n)
	}
}

func TestRender_EmptyValue(t *testing.T) {
	rep := Report{Sections: []Section{{Title: "T", Entries: []Entry{{Label: "x", Value: ""}}}}}
	if got := rep.String(); got != "【T】\nx: \n" {
		t.Errorf("render = %q", got)
	}
}

func TestRender_NRLine(t *testing.T) {
	snap := baseSnapshot()
	snap.DataNetworkType = telephony.NetworkTypeNR
	snap.ServiceState = nrServiceState()

	got := Build(snap).String()
	if !strings.Contains(got, "Network type: NR (5G) (NSA - non-standalone) millimeter wave\n") {
		t.Errorf("render missing NR line:\n%s", got)
	}
	if !strings.Contains(got, "【5G NR detail】\n") {
		t.Errorf("render missing NR section:\n%s", got)
	}
}
