package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/fuellog-go/internal/domain/entity"
	"github.com/diillson/fuellog-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	formatter *Formatter
	now       func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(formatter *Formatter) repository.ExportRepository {
	return &ExportRepositoryImpl{formatter: formatter, now: time.Now}
}

func (r *ExportRepositoryImpl) ExportToCSV(bundle entity.ReportBundle, filename, outputDir string) (string, error) {
	data, err := r.formatter.RenderDelimited(bundle)
	if err != nil {
		return "", err
	}
	return r.write(data, filename, outputDir, "csv")
}

func (r *ExportRepositoryImpl) ExportToHTML(bundle entity.ReportBundle, filename, outputDir string) (string, error) {
	data, err := r.formatter.RenderDocument(bundle)
	if err != nil {
		return "", err
	}
	return r.write(data, filename, outputDir, "html")
}

func (r *ExportRepositoryImpl) ExportToPDF(bundle entity.ReportBundle, filename, outputDir string) (string, error) {
	data, err := r.formatter.RenderPDF(bundle)
	if err != nil {
		return "", err
	}
	return r.write(data, filename, outputDir, "pdf")
}

func (r *ExportRepositoryImpl) ExportToXLSX(bundle entity.ReportBundle, filename, outputDir string) (string, error) {
	data, err := r.formatter.RenderXLSX(bundle)
	if err != nil {
		return "", err
	}
	return r.write(data, filename, outputDir, "xlsx")
}

// ExportToJSON grava o bundle exatamente como calculado.
func (r *ExportRepositoryImpl) ExportToJSON(bundle entity.ReportBundle, filename, outputDir string) (string, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}
	return r.write(append(data, '\n'), filename, outputDir, "json")
}

func (r *ExportRepositoryImpl) write(data []byte, filename, outputDir, ext string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, ext, r.now())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFilename, data, 0644); err != nil {
		return "", fmt.Errorf("error creating %s file: %w", ext, err)
	}
	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string, at time.Time) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := at.Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
