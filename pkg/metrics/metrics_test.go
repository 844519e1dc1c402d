package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_ExposesObservations(t *testing.T) {
	r := New()
	r.ObserveClassification("Repair")
	r.ObserveSolve("capacity", 2*time.Millisecond, "Repairable")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "d2drepair_faults_classified_total")
	assert.Contains(t, body, "d2drepair_solver_duration_seconds")
	assert.Contains(t, body, "d2drepair_solver_outcomes_total")
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.ObserveClassification("Benign")

	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), `tag="Benign"`)
}
