package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Header []string    `json:"header"`
	Times  []float64   `json:"times"`
	Rows   [][]float64 `json:"rows"`
}

func newExport(meta RunMetadata, trace *Trace) ExportData {
	data := ExportData{Run: meta}
	if trace != nil {
		data.Header = trace.Header
		data.Times = trace.Times
		data.Rows = trace.Rows
	}
	return data
}

func ExportJSON(path string, meta RunMetadata, trace *Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, trace)
}

func WriteJSON(w io.Writer, meta RunMetadata, trace *Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExport(meta, trace))
}
