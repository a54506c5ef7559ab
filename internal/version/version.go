// Пакет version хранит сведения о сборке, заполняемые через -ldflags.
package version

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build описывает сборку сервиса.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current возвращает сведения о текущей сборке.
func Current() Build {
	return Build{Version: version, Commit: commit, Date: date}
}

func (b Build) String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", b.Version, b.Commit, b.Date)
}

// Collector публикует константную метрику burger_build_info с метками сборки.
func (b Build) Collector() prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "burger",
		Name:      "build_info",
		Help:      "Build information of the running binary.",
		ConstLabels: prometheus.Labels{
			"version": b.Version,
			"commit":  b.Commit,
			"date":    b.Date,
		},
	}, func() float64 { return 1 })
}
