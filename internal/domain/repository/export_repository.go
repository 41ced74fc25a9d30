package repository

import (
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// ExportRepository writes a computed report bundle to disk. Every method
// returns the path of the written file.
type ExportRepository interface {
	ExportToCSV(bundle entity.ReportBundle, filename string, outputDir string) (string, error)
	ExportToHTML(bundle entity.ReportBundle, filename string, outputDir string) (string, error)
	ExportToPDF(bundle entity.ReportBundle, filename string, outputDir string) (string, error)
	ExportToXLSX(bundle entity.ReportBundle, filename string, outputDir string) (string, error)
	ExportToJSON(bundle entity.ReportBundle, filename string, outputDir string) (string, error)
}
