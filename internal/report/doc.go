// Package report turns sweep results into outputs: a console summary
// table, alarm-budget rescaling and the illustrative cost model
// (report.go), a Prometheus text-format export (promexport.go), and
// degradation-curve PNGs (plot.go).
package report
