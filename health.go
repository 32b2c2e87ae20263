package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"coursebot/internal/format"
)

// HealthReport is the body of GET /healthz.
type HealthReport struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	HostUptime string            `json:"host_uptime,omitempty"`
	MemUsed    string            `json:"mem_used,omitempty"`
	MemTotal   string            `json:"mem_total,omitempty"`
	MemPercent float64           `json:"mem_percent,omitempty"`
	Catalog    map[string]string `json:"catalog"`
}

// getHealthReport checks that every catalog file is readable and adds
// host figures when the platform exposes them.
func getHealthReport(ctx *AppContext) HealthReport {
	report := HealthReport{
		Status:  "ok",
		Uptime:  format.FormatDuration(time.Since(ctx.StartTime)),
		Catalog: map[string]string{},
	}

	for _, path := range []string{ctx.Catalog.CoursesPath(), ctx.Catalog.SchedulePath(), ctx.Catalog.PricesPath()} {
		f, err := os.Open(path)
		if err != nil {
			report.Catalog[path] = "unavailable"
			report.Status = "degraded"
			continue
		}
		f.Close()
		report.Catalog[path] = "ok"
	}

	if up, err := host.Uptime(); err == nil {
		report.HostUptime = format.FormatUptime(up)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report.MemUsed = format.FormatBytes(vm.Used)
		report.MemTotal = format.FormatBytes(vm.Total)
		report.MemPercent = vm.UsedPercent
	}
	return report
}

func healthHandler(ctx *AppContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := getHealthReport(ctx)
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
