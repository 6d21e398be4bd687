package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAuthentication(t *testing.T) {
	before := testutil.ToFloat64(authenticationAttempts.WithLabelValues("test-realm", "success"))

	RecordAuthentication("test-realm", "success")
	RecordAuthentication("test-realm", "success")
	RecordAuthentication("test-realm", "failure")

	success := testutil.ToFloat64(authenticationAttempts.WithLabelValues("test-realm", "success"))
	if success != before+2 {
		t.Errorf("success counter = %v, want %v", success, before+2)
	}

	failure := testutil.ToFloat64(authenticationAttempts.WithLabelValues("test-realm", "failure"))
	if failure < 1 {
		t.Errorf("failure counter = %v, want at least 1", failure)
	}
}

func TestSetActivationState(t *testing.T) {
	SetActivationState(true, 3)
	if got := testutil.ToFloat64(activationState); got != 1 {
		t.Errorf("activation state = %v, want 1", got)
	}
	if got := testutil.ToFloat64(activeRealms); got != 3 {
		t.Errorf("active realms = %v, want 3", got)
	}

	SetActivationState(false, 0)
	if got := testutil.ToFloat64(activationState); got != 0 {
		t.Errorf("activation state = %v, want 0", got)
	}
	if got := testutil.ToFloat64(activeRealms); got != 0 {
		t.Errorf("active realms = %v, want 0", got)
	}
}

func TestRecordRegionOperation(t *testing.T) {
	before := testutil.ToFloat64(regionOperations.WithLabelValues("test-region", "get"))

	RecordRegionOperation("test-region", "get")

	after := testutil.ToFloat64(regionOperations.WithLabelValues("test-region", "get"))
	if after != before+1 {
		t.Errorf("region operation counter = %v, want %v", after, before+1)
	}
}

func TestHandler(t *testing.T) {
	if Handler() == nil {
		t.Error("Handler() = nil")
	}
}
