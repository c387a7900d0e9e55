package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMustRegisterAddsServiceLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg, "campusswap")

	AuthLoginsTotal.WithLabelValues("success").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "auth_logins_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "service" && lp.GetValue() == "campusswap" {
					return
				}
			}
		}
	}
	t.Fatalf("auth_logins_total with service label not found")
}
